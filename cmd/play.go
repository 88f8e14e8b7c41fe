package cmd

import (
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/hako/durafmt"
	"github.com/spf13/cobra"

	"kalimba-tab/audio"
	"kalimba-tab/config"
	"kalimba-tab/playback"
)

var (
	playTempo  int
	playEngine string
)

func init() {
	playCmd.Flags().IntVar(&playTempo, "tempo", 0, "override the song tempo (bpm)")
	playCmd.Flags().StringVar(&playEngine, "engine", "", "audio engine: midi, synth or none")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a tab without the editor",
	Long:  `Plays a tab from its last row to row 0. Ctrl-C stops playback.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := log.FromContext(cmd.Context())

	song, err := loadSong(args[0])
	if err != nil {
		return err
	}
	if playTempo > 0 {
		song.Tempo = playTempo
	}

	if playEngine != "" {
		cfg.Audio.Engine = config.EngineType(playEngine)
	}
	engine, err := audio.Open(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	player := playback.NewPlayer(engine)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-player.Updates():
				if idx := player.CurrentIndex(); idx != playback.NoIndex {
					logger.Debug("row", "column", idx)
				}
			case <-done:
				return
			}
		}
	}()

	total := playback.Total(playback.Compact(song.Song), song.Tempo)
	logger.Info("playing", "title", song.Title, "tempo", song.Tempo,
		"length", durafmt.Parse(total).LimitFirstN(2).String())

	if err := player.Play(ctx, *song); err != nil {
		return err
	}
	if ctx.Err() != nil {
		logger.Info("stopped")
	}
	return nil
}
