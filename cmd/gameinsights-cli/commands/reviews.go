package commands

import (
	"github.com/spf13/cobra"

	"gameinsights-backend/cmd/gameinsights-cli/utils"
)

var reviewsFull *bool

func init() {
	reviewsFull = reviewsCmd.Flags().Bool("full", false, "Print the full payload including the summary instead of the bare review list.")
	rootCmd.AddCommand(reviewsCmd)
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews <appid>",
	Short: "Fetches the most recent review page for a Steam appid.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newCollector()
		defer c.Close()

		records, err := c.GetGameReview(cmd.Context(), args[0], !*reviewsFull)
		if err != nil {
			fatal("failed to fetch reviews", err)
		}
		if err := utils.RenderJSON(records); err != nil {
			fatal("failed to render output", err)
		}
	},
}
