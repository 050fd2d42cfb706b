package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"gameinsights-backend/cmd/gameinsights-cli/utils"
	"gameinsights-backend/lib/collector"
)

var (
	gamesRecap           *bool
	gamesIncludeFailures *bool
	gamesRaiseOnError    *bool
	gamesFormat          *string
)

func init() {
	gamesRecap = gamesCmd.Flags().Bool("recap", false, "Reduce each record to the recap field set.")
	gamesIncludeFailures = gamesCmd.Flags().Bool("include-failures", false, "Also print the per-appid outcome list.")
	gamesRaiseOnError = gamesCmd.Flags().Bool("raise-on-error", false, "Abort on the first primary-source failure.")
	gamesFormat = gamesCmd.Flags().String("format", "json", "Output format: json or table.")
	rootCmd.AddCommand(gamesCmd)
}

var gamesCmd = &cobra.Command{
	Use:   "games <appid> [appid...]",
	Short: "Fetches merged game data for one or more Steam appids.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newCollector()
		defer c.Close()

		t1 := time.Now()
		data, outcomes, err := c.GetGamesData(cmd.Context(), args, collector.GamesOptions{
			Recap:           *gamesRecap,
			IncludeFailures: *gamesIncludeFailures,
			RaiseOnError:    *gamesRaiseOnError,
		})
		if err != nil {
			fatal("failed to fetch game data", err)
		}
		slog.Info("fetch time", "seconds", time.Since(t1).Seconds())

		switch *gamesFormat {
		case "table":
			renderGamesTable(data)
		default:
			if err := utils.RenderJSON(data); err != nil {
				fatal("failed to render output", err)
			}
		}

		if *gamesIncludeFailures {
			if err := utils.RenderJSON(outcomes); err != nil {
				fatal("failed to render outcomes", err)
			}
		}
	},
}

var gamesTableColumns = []string{
	"steam_appid",
	"name",
	"release_date",
	"price_final",
	"price_currency",
	"total_reviews",
	"copies_sold",
	"active_player_24h",
}

func renderGamesTable(data []map[string]any) {
	t := utils.NewTable()

	header := table.Row{}
	for _, column := range gamesTableColumns {
		header = append(header, column)
	}
	t.AppendHeader(header)

	for _, record := range data {
		row := table.Row{}
		for _, column := range gamesTableColumns {
			value := record[column]
			if value == nil {
				value = ""
			}
			row = append(row, fmt.Sprint(value))
		}
		t.AppendRow(row)
	}

	t.Render()
}
