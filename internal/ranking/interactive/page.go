package interactive

import "context"

// Element ids on the remote ranking page.
const (
	ControlStroke    = "SwimmingTypeDetail"
	ControlDistance  = "Distance"
	ControlAgeMin    = "AgeGroupMin"
	ControlAgeMax    = "AgeGroupMax"
	ControlGender    = "GenderGroup"
	ControlPool      = "PoolLengthId"
	ControlStartDate = "StartDate"
	ControlEndDate   = "EndDate"

	LoadIndicator = "ResultTable_processing"
	ResultTable   = "ResultTable"
)

// BasePath is the remote view's base state, it is navigated to at the start of
// every acquisition so that no state carries over between attempts.
const BasePath = "/Index/HomeRanking?Distance=1&SwimmingTypeDetailId=2"

// Page is the stateful remote view the state machine drives. Elements are
// addressed by their DOM id.
type Page interface {
	Navigate(ctx context.Context, url string) error
	// WaitPresent blocks until the element exists in the DOM.
	WaitPresent(ctx context.Context, id string) error
	// SelectValue picks an option of a <select> and fires its change event.
	SelectValue(ctx context.Context, id, value string) error
	// SetText sets the value of an <input>, fires change and blurs it.
	SetText(ctx context.Context, id, value string) error
	// Value reads back the current value of a control.
	Value(ctx context.Context, id string) (string, error)
	// Visible reports whether the element exists and is displayed.
	Visible(ctx context.Context, id string) (bool, error)
	OuterHTML(ctx context.Context, id string) (string, error)
	Close() error
}
