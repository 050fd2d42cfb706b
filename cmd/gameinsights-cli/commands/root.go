package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gameinsights-backend/lib/collector"
	"gameinsights-backend/lib/configutil"
)

// Config is read from gameinsights.json5 next to the working directory; a
// gameinsights.local.json5 can override single fields (api keys usually
// live there).
type Config struct {
	Region          string `json:"region"`
	Language        string `json:"language"`
	SteamAPIKey     string `json:"steam_api_key"`
	GamalyticAPIKey string `json:"gamalytic_api_key"`
	Calls           int    `json:"calls"`
	PeriodSeconds   int    `json:"period_seconds"`
}

var rootCmd = &cobra.Command{
	Use:   "gameinsights-cli",
	Short: "gameinsights-cli fetches and aggregates Steam game data from multiple sources.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
	os.Exit(1)
}

func newCollector() *collector.Collector {
	cfg, err := configutil.ReadOptional[Config]("gameinsights.json5")
	if err != nil {
		fatal("failed to read config", err)
	}

	return collector.New(collector.Options{
		Region:          cfg.Region,
		Language:        cfg.Language,
		SteamAPIKey:     cfg.SteamAPIKey,
		GamalyticAPIKey: cfg.GamalyticAPIKey,
		Calls:           cfg.Calls,
		Period:          time.Duration(cfg.PeriodSeconds) * time.Second,
	})
}
