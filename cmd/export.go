package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"kalimba-tab/audio"
	"kalimba-tab/export"
	"kalimba-tab/tab"
)

var (
	exportOut       string
	exportSoundFont string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file: .mid, .txt, .yaml, .kal or .wav")
	exportCmd.Flags().StringVar(&exportSoundFont, "soundfont", "", "SoundFont for .wav output (default from config)")
	exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Convert a tab to MIDI, text, YAML or audio",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	song, err := loadSong(args[0])
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(exportOut))
	switch ext {
	case ".yaml", ".yml", ".kal", ".json":
		if err := tab.Save(exportOut, song); err != nil {
			return fmt.Errorf("cannot write %s: %w", exportOut, err)
		}
	case ".mid", ".midi", ".txt", ".wav":
		if err := writeExport(exportOut, ext, song); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q", ext)
	}

	size := ""
	if info, err := os.Stat(exportOut); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	log.FromContext(cmd.Context()).Info("exported", "file", exportOut, "size", size)
	return nil
}

func writeExport(path, ext string, song *tab.Song) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch ext {
	case ".txt":
		return export.Text(f, song, cfg.Editor.ASCII)
	case ".wav":
		sfPath := exportSoundFont
		if sfPath == "" {
			sfPath = cfg.Audio.SoundFont
		}
		if sfPath == "" {
			return fmt.Errorf("no SoundFont: pass --soundfont or set audio.soundFont")
		}
		sf, err := audio.LoadSoundFont(sfPath)
		if err != nil {
			return err
		}
		return export.WAV(f, song, sf, cfg.Audio.Program)
	}
	return export.MIDI(f, song)
}
