package tab

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format is a song document encoding
type Format string

const (
	FormatJSON Format = "json" // .kal files
	FormatYAML Format = "yaml"
)

// SongExt is the extension of saved tabs
const SongExt = ".kal"

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode reads a song document and validates it. A missing tuning is filled
// with the default one.
func Decode(r io.Reader, format Format) (*Song, error) {
	song := &Song{}
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(song); err != nil {
			return nil, fmt.Errorf("cannot decode yaml song: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(song); err != nil {
			return nil, fmt.Errorf("cannot decode song: %w", err)
		}
	}

	if song.TineNotes.IsZero() {
		song.TineNotes = DefaultTuning
	}
	if song.Tempo == 0 {
		song.Tempo = DefaultTempo
	}
	if err := song.Validate(); err != nil {
		return nil, fmt.Errorf("invalid song %q: %w", song.Title, err)
	}
	return song, nil
}

// Encode writes a song document
func Encode(w io.Writer, song *Song, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(song); err != nil {
			return fmt.Errorf("cannot encode yaml song: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.Marshal(song)
		if err != nil {
			return fmt.Errorf("cannot encode song: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
}

// Load reads a song from disk
func Load(path string) (*Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, FormatFromPath(path))
}

// Save writes a song to disk, creating the parent directory
func Save(path string, song *Song) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, song, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SongInfo describes a saved tab in the library
type SongInfo struct {
	Path     string
	Name     string
	Modified time.Time
}

// ListSongs returns the tabs in dir, newest first
func ListSongs(dir string) ([]SongInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SongInfo{}, nil
		}
		return nil, err
	}

	var songs []SongInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != SongExt && ext != ".yaml" && ext != ".yml" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		songs = append(songs, SongInfo{
			Path:     filepath.Join(dir, name),
			Name:     strings.TrimSuffix(name, filepath.Ext(name)),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(songs, func(i, j int) bool {
		return songs[i].Modified.After(songs[j].Modified)
	})
	return songs, nil
}

// SongPath returns the library path for a title
func SongPath(dir, title string) string {
	name := SanitizeFilename(strings.TrimSpace(title))
	if name == "" {
		name = "untitled"
	}
	return filepath.Join(dir, name+SongExt)
}

// SanitizeFilename removes/replaces characters that are problematic in filenames
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, ":", "-")
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, "?", "")
	name = strings.ReplaceAll(name, "\"", "")
	name = strings.ReplaceAll(name, "<", "")
	name = strings.ReplaceAll(name, ">", "")
	name = strings.ReplaceAll(name, "|", "")
	return name
}
