// Package config is the shape of config.json5 shared by every command.
package config

import (
	"errors"
	"fmt"
	"os"
	"swimrank-backend/internal/chrono"
	"swimrank-backend/internal/configutil"
	"swimrank-backend/internal/ranking"
	"swimrank-backend/internal/ranking/interactive"
	"time"
)

const (
	SourceInteractive = "interactive"
	SourceDirect      = "direct"

	DefaultBaseUrl     = "https://www.thaiaquatics.or.th"
	DefaultDatabase    = "swimrank.db"
	DefaultSchoolsFile = "schools.txt"
	// every day at 03:00 local time
	DefaultWatchCron = "0 3 * * *"
)

type Database struct {
	// File is a local sqlite database, used when Url is empty.
	File string `json:"file"`
	// Url is a libsql:// (or https://) url of a remote database.
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

type Source struct {
	Kind          string  `json:"kind"`
	BaseUrl       string  `json:"base_url"`
	Headless      *bool   `json:"headless"`
	ChromePath    string  `json:"chrome_path"`
	RatePerSecond float64 `json:"rate_per_second"`
}

type Wait struct {
	ProbeTimeoutMs  int `json:"probe_timeout_ms"`
	SettleTimeoutMs int `json:"settle_timeout_ms"`
	SettleDelayMs   int `json:"settle_delay_ms"`
	PollIntervalMs  int `json:"poll_interval_ms"`
}

// Job is a filter harvested on a schedule. Either Start and End (YYYY-MM-DD)
// or LookbackDays is given, LookbackDays wins when both are.
type Job struct {
	Stroke       string `json:"stroke"`
	Distance     string `json:"distance"`
	Gender       string `json:"gender"`
	Pool         string `json:"pool"`
	MinAge       int    `json:"min_age"`
	MaxAge       int    `json:"max_age"`
	Start        string `json:"start"`
	End          string `json:"end"`
	LookbackDays int    `json:"lookback_days"`
}

type Watch struct {
	Cron string `json:"cron"`
	Jobs []Job  `json:"jobs"`
}

type Config struct {
	Database    Database `json:"database"`
	Source      Source   `json:"source"`
	Wait        Wait     `json:"wait"`
	SchoolsFile string   `json:"schools_file"`
	Watch       Watch    `json:"watch"`
}

// Read reads `path` (and its .local override) and fills in defaults. A missing
// file is not an error, the defaults are returned instead.
func Read(path string) (Config, error) {
	cfg, err := configutil.Read[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) ApplyDefaults() {
	if c.Database.File == "" && c.Database.Url == "" {
		c.Database.File = DefaultDatabase
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceInteractive
	}
	if c.Source.BaseUrl == "" {
		c.Source.BaseUrl = DefaultBaseUrl
	}
	if c.Source.Headless == nil {
		headless := true
		c.Source.Headless = &headless
	}
	if c.Source.RatePerSecond <= 0 {
		c.Source.RatePerSecond = 2
	}
	if c.Wait.ProbeTimeoutMs <= 0 {
		c.Wait.ProbeTimeoutMs = 2000
	}
	if c.Wait.SettleTimeoutMs <= 0 {
		c.Wait.SettleTimeoutMs = 15000
	}
	if c.Wait.SettleDelayMs <= 0 {
		c.Wait.SettleDelayMs = 1000
	}
	if c.Wait.PollIntervalMs <= 0 {
		c.Wait.PollIntervalMs = 100
	}
	if c.SchoolsFile == "" {
		c.SchoolsFile = DefaultSchoolsFile
	}
	if c.Watch.Cron == "" {
		c.Watch.Cron = DefaultWatchCron
	}
}

func (c Config) Validate() error {
	switch c.Source.Kind {
	case SourceInteractive, SourceDirect:
	default:
		return fmt.Errorf("unknown source kind %q, expected %q or %q", c.Source.Kind, SourceInteractive, SourceDirect)
	}
	_, err := chrono.ParseSpec(c.Watch.Cron, nil)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// WaitPolicy converts the configured timings into the interactive source's wait policy.
func (w Wait) WaitPolicy(clock chrono.API) interactive.WaitPolicy {
	return interactive.WaitPolicy{
		Probe:       time.Duration(w.ProbeTimeoutMs) * time.Millisecond,
		Load:        time.Duration(w.SettleTimeoutMs) * time.Millisecond,
		Poll:        time.Duration(w.PollIntervalMs) * time.Millisecond,
		SettleDelay: time.Duration(w.SettleDelayMs) * time.Millisecond,
		Clock:       clock,
	}
}

// Filter resolves the job into a concrete filter, relative dates are computed from `now`.
func (j Job) Filter(now time.Time) (ranking.Filter, error) {
	var errs []error
	stroke, err := ranking.ParseStroke(j.Stroke)
	errs = append(errs, err)
	distance, err := ranking.ParseDistance(j.Distance)
	errs = append(errs, err)
	gender, err := ranking.ParseGender(j.Gender)
	errs = append(errs, err)
	pool, err := ranking.ParsePoolType(j.Pool)
	errs = append(errs, err)

	filter := ranking.Filter{
		Stroke:   stroke,
		Distance: distance,
		Gender:   gender,
		Pool:     pool,
		MinAge:   fmt.Sprint(j.MinAge),
		MaxAge:   fmt.Sprint(j.MaxAge),
	}

	if j.LookbackDays > 0 {
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		filter.Start = end.AddDate(0, 0, -j.LookbackDays)
		filter.End = end
	} else {
		filter.Start, err = time.Parse(time.DateOnly, j.Start)
		if err != nil {
			errs = append(errs, fmt.Errorf("start: %w", err))
		}
		filter.End, err = time.Parse(time.DateOnly, j.End)
		if err != nil {
			errs = append(errs, fmt.Errorf("end: %w", err))
		}
	}

	err = errors.Join(errs...)
	if err != nil {
		return ranking.Filter{}, err
	}
	return filter, filter.Validate()
}
