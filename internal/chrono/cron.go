package chrono

import (
	"fmt"
	"strings"
	"swimrank-backend/internal/telemetry"
	"time"

	"github.com/robfig/cron/v3"
)

const report_cron_job = "cron.job"

// CronAPI schedules callbacks, harvest depends on it instead of a real
// scheduler so tests can fire jobs by hand.
type CronAPI interface {
	Cron(spec string, callback func()) error
	Stop()
}

// ParseSpec parses a standard 5 field cron expression (or a descriptor like
// @daily) in `location`.
func ParseSpec(spec string, location *time.Location) (cron.Schedule, error) {
	if location != nil && !strings.HasPrefix(spec, "CRON_TZ=") && !strings.HasPrefix(spec, "TZ=") {
		spec = fmt.Sprintf("CRON_TZ=%s %s", location.String(), spec)
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("cron spec %q: %w", spec, err)
	}
	return schedule, nil
}

// NextRun is when `spec` fires next after `from`.
func NextRun(spec string, from time.Time) (time.Time, error) {
	schedule, err := ParseSpec(spec, from.Location())
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(from), nil
}

// StandardCron runs callbacks with robfig/cron. A callback that is still
// running when it fires again is skipped rather than overlapped.
type StandardCron struct {
	cron *cron.Cron
}

func NewStandardCron(tel telemetry.API, location *time.Location) StandardCron {
	logger := cronLogger{tel: tel}
	c := cron.New(
		cron.WithLocation(location),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Start()
	return StandardCron{cron: c}
}

func (s StandardCron) Cron(spec string, callback func()) error {
	_, err := s.cron.AddFunc(spec, callback)
	if err != nil {
		return fmt.Errorf("cron spec %q: %w", spec, err)
	}
	return nil
}

// Stop stops scheduling and blocks until running callbacks return.
func (s StandardCron) Stop() {
	<-s.cron.Stop().Done()
}

// cronLogger adapts telemetry.API to cron.Logger.
type cronLogger struct {
	tel telemetry.API
}

func pairs(keysAndValues []any) []any {
	out := make([]any, 0, (len(keysAndValues)+1)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out = append(out, fmt.Sprintf("%v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	return out
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.tel.ReportDebug("cron "+msg, pairs(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	params := append([]any{fmt.Errorf("%s: %w", msg, err)}, pairs(keysAndValues)...)
	l.tel.ReportBroken(report_cron_job, params...)
}
