package interactive

import (
	"context"
	"fmt"
	"strings"
	"swimrank-backend/internal/assert"
	"swimrank-backend/internal/htmlutil"
	"swimrank-backend/internal/ranking"
	"swimrank-backend/internal/telemetry"
)

const (
	report_machine_transition = "machine.transition"
	report_machine_apply      = "machine.apply"
	report_machine_run        = "machine.run"
	report_machine_extract    = "machine.extract"
)

// State is a step of one acquisition attempt.
type State int

const (
	StateStart State = iota
	StateFiltersApplied
	StateSettled
	StateExtracted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateFiltersApplied:
		return "filters-applied"
	case StateSettled:
		return "settled"
	case StateExtracted:
		return "extracted"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == StateExtracted || s == StateFailed
}

type controlKind int

const (
	selectControl controlKind = iota
	textControl
)

// Step is one filter application against the remote view.
type Step struct {
	Control string
	Value   string
	kind    controlKind
}

// Steps returns the filter applications for `filter` in the order they must
// happen. The date range goes last because changing any other control makes
// the remote view silently reset it.
func Steps(filter ranking.Filter) []Step {
	return []Step{
		{Control: ControlStroke, Value: filter.Stroke.ID, kind: selectControl},
		{Control: ControlDistance, Value: filter.Distance.ID, kind: selectControl},
		{Control: ControlAgeMin, Value: filter.MinAge, kind: textControl},
		{Control: ControlAgeMax, Value: filter.MaxAge, kind: textControl},
		{Control: ControlGender, Value: filter.Gender.ID, kind: selectControl},
		{Control: ControlPool, Value: filter.Pool.ID, kind: selectControl},
		{Control: ControlStartDate, Value: ranking.FormatWireDate(filter.Start), kind: textControl},
		{Control: ControlEndDate, Value: ranking.FormatWireDate(filter.End), kind: textControl},
	}
}

// Machine drives a single acquisition attempt:
//
//	Start -> FiltersApplied -> Settled -> {Extracted | Failed}
//
// It never retries. A Machine that reached a terminal state must not be reused,
// restarting means running a new Machine from Start, which navigates back to
// the base view first.
type Machine struct {
	page    Page
	policy  WaitPolicy
	baseUrl string
	tel     telemetry.API

	state    State
	failedAt State
}

func NewMachine(page Page, policy WaitPolicy, baseUrl string, tel telemetry.API) *Machine {
	assert.NotNil("page", page)
	assert.NotNil("policy.Clock", policy.Clock)
	assert.NotNil("tel", tel)
	return &Machine{
		page:    page,
		policy:  policy,
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		tel:     tel,
		state:   StateStart,
	}
}

func (m *Machine) State() State {
	return m.state
}

// FailedAt is the state the machine was in when it failed, only meaningful
// when State() is StateFailed.
func (m *Machine) FailedAt() State {
	return m.failedAt
}

func (m *Machine) transition(next State) {
	m.tel.ReportDebug(report_machine_transition, m.state.String(), next.String())
	m.state = next
}

func (m *Machine) fail(stage string, err error) (ranking.Outcome, error) {
	m.failedAt = m.state
	m.transition(StateFailed)
	m.tel.ReportBroken(report_machine_run, err, stage, m.failedAt.String())
	return ranking.Outcome{}, ranking.Fail(stage, err)
}

// Run executes the full sequence for `filter`.
func (m *Machine) Run(ctx context.Context, filter ranking.Filter) (ranking.Outcome, error) {
	if m.state != StateStart {
		return ranking.Outcome{}, ranking.Fail("run", fmt.Errorf("machine already ran (state %s)", m.state))
	}

	err := filter.Validate()
	if err != nil {
		return m.fail("validate", err)
	}

	err = m.page.Navigate(ctx, m.baseUrl+BasePath)
	if err != nil {
		return m.fail("navigate", err)
	}
	err = m.page.WaitPresent(ctx, ControlStroke)
	if err != nil {
		return m.fail("navigate", err)
	}

	for _, step := range Steps(filter) {
		err = m.apply(ctx, step)
		if err != nil {
			return m.fail("apply "+step.Control, err)
		}
	}
	m.transition(StateFiltersApplied)

	err = m.policy.Clock.Sleep(ctx, m.policy.SettleDelay)
	if err != nil {
		return m.fail("settle", err)
	}
	m.transition(StateSettled)

	outcome, err := m.extract(ctx)
	if err != nil {
		return m.fail("extract", err)
	}
	m.transition(StateExtracted)
	return outcome, nil
}

func (m *Machine) apply(ctx context.Context, step Step) error {
	err := m.page.WaitPresent(ctx, step.Control)
	if err != nil {
		return err
	}

	current, err := m.page.Value(ctx, step.Control)
	if err != nil {
		return err
	}
	if current == step.Value {
		m.tel.ReportDebug(report_machine_apply, step.Control, "already set", step.Value)
		return nil
	}

	switch step.kind {
	case selectControl:
		err = m.page.SelectValue(ctx, step.Control, step.Value)
	case textControl:
		err = m.page.SetText(ctx, step.Control, step.Value)
	}
	if err != nil {
		return err
	}

	err = m.policy.Await(ctx, func(ctx context.Context) (bool, error) {
		return m.page.Visible(ctx, LoadIndicator)
	})
	if err != nil {
		return err
	}

	applied, err := m.page.Value(ctx, step.Control)
	if err != nil {
		return err
	}
	if applied != step.Value {
		return fmt.Errorf("value not accepted: applied %q, read back %q", step.Value, applied)
	}
	m.tel.ReportDebug(report_machine_apply, step.Control, step.Value)
	return nil
}

// NoDataSentinel is the text the remote table shows when a query matched nothing.
const NoDataSentinel = "No data available in table"

func (m *Machine) extract(ctx context.Context) (ranking.Outcome, error) {
	markup, err := m.page.OuterHTML(ctx, ResultTable)
	if err != nil {
		return ranking.Outcome{}, err
	}
	table, err := htmlutil.ParseTable(ctx, markup)
	if err != nil {
		return ranking.Outcome{}, err
	}
	rows, err := rowsFromTable(table)
	if err != nil {
		return ranking.Outcome{}, err
	}
	m.tel.ReportCount(report_machine_extract, int64(len(rows)))
	return ranking.Outcome{Rows: rows}, nil
}

// the remote table has the columns:
// rank, name, club, nationality, time, competition, start date, end date
const minTableColumns = 7

func rowsFromTable(table htmlutil.Table) ([]ranking.Row, error) {
	var rows []ranking.Row
	for i, cells := range table.Rows {
		if strings.Contains(strings.Join(cells, " "), NoDataSentinel) {
			continue
		}
		if len(cells) < minTableColumns {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", i, minTableColumns, len(cells))
		}
		rows = append(rows, ranking.Row{
			Rank:            cells[0],
			Name:            cells[1],
			Club:            cells[2],
			Nationality:     cells[3],
			Time:            cells[4],
			Competition:     cells[5],
			CompetitionDate: cells[6],
		})
	}
	return rows, nil
}
