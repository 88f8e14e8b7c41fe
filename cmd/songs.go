package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"kalimba-tab/tab"
)

func init() {
	rootCmd.AddCommand(songsCmd)
}

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List saved tabs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cfg.SongsPath()
		if err != nil {
			return err
		}
		songs, err := tab.ListSongs(dir)
		if err != nil {
			return fmt.Errorf("cannot list %s: %w", dir, err)
		}

		out := cmd.OutOrStdout()
		if len(songs) == 0 {
			fmt.Fprintf(out, "no tabs in %s\n", dir)
			return nil
		}
		for _, s := range songs {
			fmt.Fprintf(out, "%-30s %-16s %s\n", s.Name, humanize.Time(s.Modified), s.Path)
		}
		return nil
	},
}
