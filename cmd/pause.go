package cmd

import (
	"lever/core"

	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "pause all mutating ledger operations",
	Run: func(cmd *cobra.Command, args []string) {
		togglePaused(cmd, true)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "resume ledger operations",
	Run: func(cmd *cobra.Command, args []string) {
		togglePaused(cmd, false)
	},
}

func togglePaused(cmd *cobra.Command, paused bool) {
	ctx := cmd.Context()

	database := provideDatabase()
	defer database.Close()

	propertyStore := providePropertyStore(database)
	if err := core.WritePaused(ctx, propertyStore, paused); err != nil {
		cmd.PrintErrln("toggle pause error:", err)
		return
	}

	cmd.Println("paused:", paused)
}

func init() {
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
}
