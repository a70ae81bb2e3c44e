// Package sources picks the ranking source implementation named in the configuration.
package sources

import (
	"fmt"
	"swimrank-backend/internal/chrono"
	"swimrank-backend/internal/config"
	"swimrank-backend/internal/ranking"
	"swimrank-backend/internal/ranking/direct"
	"swimrank-backend/internal/ranking/interactive"
	"swimrank-backend/internal/telemetry"
)

func New(cfg config.Config, clock chrono.API, tel telemetry.API) (ranking.Source, error) {
	switch cfg.Source.Kind {
	case config.SourceInteractive:
		headless := cfg.Source.Headless == nil || *cfg.Source.Headless
		factory := interactive.ChromeFactory(interactive.ChromeOptions{
			Headless: headless,
			ExecPath: cfg.Source.ChromePath,
		})
		return interactive.NewSource(cfg.Source.BaseUrl, factory, cfg.Wait.WaitPolicy(clock), tel), nil
	case config.SourceDirect:
		return direct.NewSource(cfg.Source.BaseUrl, direct.Options{
			RatePerSecond: cfg.Source.RatePerSecond,
		}, tel)
	}
	return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
}
