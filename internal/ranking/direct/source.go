// Package direct acquires ranking rows by calling the remote page's own data
// endpoint instead of driving the page. It yields rows with the same column
// schema as the interactive source.
package direct

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"swimrank-backend/internal/assert"
	"swimrank-backend/internal/ranking"
	"swimrank-backend/internal/telemetry"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	report_source_scrape = "source.scrape"
	report_source_rows   = "source.rows"
)

// RankPath is the endpoint the ranking page's table requests its data from.
const RankPath = "/Index/CheckRank"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	// RatePerSecond bounds the request rate, 0 means 2 requests per second.
	RatePerSecond float64
	Timeout       time.Duration
}

type Source struct {
	http *resty.Client
	tel  telemetry.API
}

var _ ranking.Source = (*Source)(nil)

func NewSource(baseUrl string, opts Options, tel telemetry.API) (*Source, error) {
	assert.NotNil("tel", tel)
	tel = telemetry.NewScopedAPI("direct_source", tel)

	parsedBaseUrl, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimSuffix(baseUrl, "/"))
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	httpClient.SetTimeout(timeout)

	perSecond := opts.RatePerSecond
	if perSecond <= 0 {
		perSecond = 2
	}
	// max burst >= 2 just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(rate.Limit(perSecond), 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	return &Source{http: httpClient, tel: tel}, nil
}

type competitionEvent struct {
	TimestdF             string `json:"TimestdF"`
	SwimmingTypeDetailId string `json:"SwimmingTypeDetailId"`
	GenderId             string `json:"GenderId"`
	DistId               string `json:"DistId"`
	AgeMax               string `json:"AgeMax"`
	AgeMin               string `json:"AgeMin"`
	PoolLengthId         string `json:"PoolLengthId"`
	NationId             string `json:"NationId"`
}

// FormData is the form body posted to RankPath for `filter`.
func FormData(filter ranking.Filter) (map[string]string, error) {
	event, err := json.Marshal(competitionEvent{
		SwimmingTypeDetailId: filter.Stroke.ID,
		GenderId:             filter.Gender.ID,
		DistId:               filter.Distance.ID,
		AgeMax:               filter.MaxAge,
		AgeMin:               filter.MinAge,
		PoolLengthId:         filter.Pool.ID,
		// all nations
		NationId: "0",
	})
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"CompetitionEvent": string(event),
		"startDate":        ranking.FormatWireDate(filter.Start),
		"endDate":          ranking.FormatWireDate(filter.End),
		// server-side table paging, length -1 returns every row
		"draw":          "1",
		"start":         "0",
		"length":        "-1",
		"search[value]": "",
		"search[regex]": "false",
	}, nil
}

// text accepts both json strings and numbers, the endpoint is not consistent
// about which one it sends for numeric columns.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	err := json.Unmarshal(data, &n)
	if err != nil {
		return err
	}
	*t = text(n.String())
	return nil
}

type rankItem struct {
	Place       text `json:"Place"`
	FullName    text `json:"FullName"`
	ClubName    text `json:"ClubName"`
	Nation      text `json:"Nation"`
	Time        text `json:"Time"`
	Competition *struct {
		Name           text `json:"Name"`
		StartDayString text `json:"StartDayString"`
	} `json:"Competition"`
}

type rankResponse struct {
	Data []rankItem `json:"data"`
}

func (i rankItem) row() ranking.Row {
	row := ranking.Row{
		Rank:        strings.TrimSpace(string(i.Place)),
		Name:        strings.TrimSpace(string(i.FullName)),
		Club:        strings.TrimSpace(string(i.ClubName)),
		Nationality: strings.TrimSpace(string(i.Nation)),
		Time:        strings.TrimSpace(string(i.Time)),
	}
	if i.Competition != nil {
		row.Competition = strings.TrimSpace(string(i.Competition.Name))
		row.CompetitionDate = strings.TrimSpace(string(i.Competition.StartDayString))
	}
	return row
}

func (s *Source) Scrape(ctx context.Context, filter ranking.Filter) (ranking.Outcome, error) {
	tel := telemetry.NewScopedAPI(uuid.NewString(), s.tel)
	tel.ReportDebug(report_source_scrape, filter.String())

	err := filter.Validate()
	if err != nil {
		return ranking.Outcome{}, ranking.Fail("validate", err)
	}
	form, err := FormData(filter)
	if err != nil {
		return ranking.Outcome{}, ranking.Fail("encode", err)
	}

	res, err := s.http.R().
		SetContext(ctx).
		SetHeader("x-requested-with", "XMLHttpRequest").
		SetHeader("accept", "application/json, text/javascript, */*; q=0.01").
		SetFormData(form).
		Post(RankPath)
	if err != nil {
		tel.ReportBroken(report_source_scrape, fmt.Errorf("fetch: %w", err))
		return ranking.Outcome{}, ranking.Fail("fetch", err)
	}
	if res.IsError() {
		err = fmt.Errorf("unexpected status %d", res.StatusCode())
		tel.ReportBroken(report_source_scrape, err)
		return ranking.Outcome{}, ranking.Fail("fetch", err)
	}

	var parsed rankResponse
	err = json.Unmarshal(res.Body(), &parsed)
	if err != nil {
		tel.ReportBroken(report_source_scrape, fmt.Errorf("unmarshal json: %w", err))
		return ranking.Outcome{}, ranking.Fail("decode", err)
	}

	rows := make([]ranking.Row, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		rows = append(rows, item.row())
	}
	tel.ReportCount(report_source_rows, int64(len(rows)))
	if len(rows) == 0 {
		return ranking.Outcome{}, nil
	}
	return ranking.Outcome{Rows: rows}, nil
}

func (s *Source) Close() error {
	return nil
}
