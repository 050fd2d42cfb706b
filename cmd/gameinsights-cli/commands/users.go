package commands

import (
	"github.com/spf13/cobra"

	"gameinsights-backend/cmd/gameinsights-cli/utils"
)

var usersIncludeFree *bool

func init() {
	usersIncludeFree = usersCmd.Flags().Bool("include-free-games", true, "Count played free games in the owned-games list.")
	rootCmd.AddCommand(usersCmd)
}

var usersCmd = &cobra.Command{
	Use:   "users <steamid> [steamid...]",
	Short: "Fetches profile and library data for one or more 64-bit steamids.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newCollector()
		defer c.Close()

		results := c.GetUserData(cmd.Context(), args, *usersIncludeFree)
		if err := utils.RenderJSON(results); err != nil {
			fatal("failed to render output", err)
		}
	},
}
