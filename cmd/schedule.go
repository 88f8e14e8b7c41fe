package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"kalimba-tab/playback"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <file>",
	Short: "Print the playback events of a tab",
	Long:  `Prints one line per row in playback order with its start time, wait and notes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := loadSong(args[0])
		if err != nil {
			return err
		}

		events := playback.Compact(song.Song)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %d bpm  whole note = %s\n", song.Title, song.Tempo, fmtDuration(playback.BaseDelay(song.Tempo)))
		fmt.Fprintf(out, "%5s %5s %10s %8s %4s  %s\n", "event", "row", "start", "wait", "time", "notes")
		for _, s := range playback.Schedule(events, song.Tempo) {
			notes := strings.Join(s.Notes, " ")
			if notes == "" {
				notes = "-"
			}
			fmt.Fprintf(out, "%5d %5d %10s %8s %4d  %s\n",
				s.Index, s.Column, fmtDuration(s.Start), fmtDuration(s.Delay), s.Time, notes)
		}
		fmt.Fprintf(out, "total %s\n", fmtDuration(playback.Total(events, song.Tempo)))
		return nil
	},
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}
