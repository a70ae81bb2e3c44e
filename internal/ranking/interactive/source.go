// Package interactive acquires rankings by driving the remote ranking page in a
// real browser, the same way a person filling in the filters would.
package interactive

import (
	"context"
	"swimrank-backend/internal/assert"
	"swimrank-backend/internal/ranking"
	"swimrank-backend/internal/telemetry"

	"github.com/google/uuid"
)

const report_source_scrape = "source.scrape"

// PageFactory opens a fresh, independent Page for one acquisition.
type PageFactory func(ctx context.Context) (Page, error)

// ChromeFactory returns a PageFactory that launches a new browser session per call.
func ChromeFactory(opts ChromeOptions) PageFactory {
	return func(ctx context.Context) (Page, error) {
		return NewChromePage(ctx, opts)
	}
}

// Source is a ranking.Source that runs one Machine per Scrape on its own page.
type Source struct {
	baseUrl string
	newPage PageFactory
	policy  WaitPolicy
	tel     telemetry.API
}

var _ ranking.Source = Source{}

func NewSource(baseUrl string, newPage PageFactory, policy WaitPolicy, tel telemetry.API) Source {
	assert.NotEmpty("baseUrl", baseUrl)
	assert.NotNil("newPage", newPage)
	assert.NotNil("tel", tel)
	return Source{
		baseUrl: baseUrl,
		newPage: newPage,
		policy:  policy,
		tel:     telemetry.NewScopedAPI("interactive_source", tel),
	}
}

// Scrape opens a page, runs the state machine and always releases the page.
func (s Source) Scrape(ctx context.Context, filter ranking.Filter) (ranking.Outcome, error) {
	runId := uuid.NewString()
	tel := telemetry.NewScopedAPI(runId, s.tel)
	tel.ReportDebug(report_source_scrape, filter.String())

	page, err := s.newPage(ctx)
	if err != nil {
		tel.ReportBroken(report_source_scrape, err)
		return ranking.Outcome{}, ranking.Fail("open session", err)
	}
	defer func() {
		err := page.Close()
		if err != nil {
			tel.ReportWarning(report_source_scrape, "close page", err)
		}
	}()

	machine := NewMachine(page, s.policy, s.baseUrl, tel)
	outcome, err := machine.Run(ctx, filter)
	if err != nil {
		return ranking.Outcome{}, err
	}
	tel.ReportCount(report_source_scrape, int64(len(outcome.Rows)))
	return outcome, nil
}

// Close is a no-op, pages are released at the end of every Scrape.
func (s Source) Close() error {
	return nil
}
