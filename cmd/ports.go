package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kalimba-tab/audio"
	"kalimba-tab/midi"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI ports",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "outputs:")
		for i, name := range audio.ListOutPorts() {
			fmt.Fprintf(out, "  %d: %s\n", i, name)
		}
		fmt.Fprintln(out, "inputs:")
		for i, name := range midi.ListInPorts() {
			fmt.Fprintf(out, "  %d: %s\n", i, name)
		}
	},
}
