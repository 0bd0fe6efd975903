package cli

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/mobli/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("mobli version %s\n", app.BuildVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
