package ranking

// AnnotatedRow is a Row with the context columns of the query that produced it.
// Sources never fill these, the caller does after acquisition.
type AnnotatedRow struct {
	Row
	Stroke   string
	Distance string
	AgeRange string
	Pool     string
	Gender   string
}

func Annotate(rows []Row, filter Filter) []AnnotatedRow {
	out := make([]AnnotatedRow, len(rows))
	for i, r := range rows {
		out[i] = AnnotatedRow{
			Row:      r,
			Stroke:   filter.Stroke.Name,
			Distance: filter.Distance.Name,
			AgeRange: filter.AgeRange(),
			Pool:     filter.Pool.Name,
			Gender:   filter.Gender.Name,
		}
	}
	return out
}
