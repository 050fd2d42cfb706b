package commands

import (
	"github.com/spf13/cobra"

	"gameinsights-backend/cmd/gameinsights-cli/utils"
)

var playersFillNA *int

func init() {
	playersFillNA = playersCmd.Flags().Int("fill-na", -1, "Value filled into missing numeric columns.")
	rootCmd.AddCommand(playersCmd)
}

var playersCmd = &cobra.Command{
	Use:   "players <appid> [appid...]",
	Short: "Fetches month-by-month active player counts for one or more appids.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newCollector()
		defer c.Close()

		data, _, err := c.GetGamesActivePlayerData(cmd.Context(), args, *playersFillNA, false)
		if err != nil {
			fatal("failed to fetch active player data", err)
		}
		if err := utils.RenderJSON(data); err != nil {
			fatal("failed to render output", err)
		}
	},
}
