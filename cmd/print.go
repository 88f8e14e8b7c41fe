package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kalimba-tab/render"
	"kalimba-tab/theme"
)

var (
	printASCII bool
	printColor bool
)

func init() {
	printCmd.Flags().BoolVar(&printASCII, "ascii", false, "use letters instead of note symbols")
	printCmd.Flags().BoolVar(&printColor, "color", false, "color the output with the configured palette")
	rootCmd.AddCommand(printCmd)
}

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Print a tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := loadSong(args[0])
		if err != nil {
			return err
		}

		opts := render.Plain(printASCII || cfg.Editor.ASCII)
		if printColor {
			th, err := theme.Load(cfg.Editor.Palette)
			if err != nil {
				return err
			}
			opts.Theme = th
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bpm)\n%s\n", song.Title, song.Tempo, render.Tab(song, opts))
		return nil
	},
}
