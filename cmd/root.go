package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"kalimba-tab/config"
	"kalimba-tab/debug"
	"kalimba-tab/tab"
)

var (
	cfgPath   string
	debugFlag bool
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kalimba-tab [file]",
	Short: "Write and play kalimba tablature",
	Long: `Write and play 17-key kalimba tablature in the terminal.

Without a subcommand the editor opens the given tab (or a new one).`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { debug.Disable() },
	RunE:              runEditor,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/kalimba-tab/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log to "+debug.Path())
}

// setup loads the config, enables the debug log and puts a stderr logger
// in the command context
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgPath != "" {
		cfg, err = config.LoadFrom(cfgPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	if debugFlag || cfg.Debug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("cannot enable debug log: %w", err)
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if debugFlag {
		logger.SetLevel(log.DebugLevel)
	}
	cmd.SetContext(log.WithContext(cmd.Context(), logger))
	return nil
}

// loadSong reads a tab file
func loadSong(path string) (*tab.Song, error) {
	song, err := tab.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	return song, nil
}

// titleFromPath turns "my-song.kal" into "my song"
func titleFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ReplaceAll(name, "-", " ")
}
