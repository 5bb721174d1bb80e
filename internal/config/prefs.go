package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	prefsVersion  = 1
	prefsFileName = "prefs.json"
	appDirName    = "medibuddy"
)

// Prefs are the durable user preferences, mirrored to
// ~/.local/state/medibuddy/prefs.json (respecting XDG_STATE_HOME). They are
// read once at startup and written on every change; the in-memory session
// state remains the single source of truth while the client runs.
type Prefs struct {
	Version int    `json:"version"`
	Region  string `json:"region"`
	Theme   string `json:"theme"` // "light" or "dark"

	UpdatedAt time.Time `json:"updatedAt"`
}

// PrefsStore reads and writes Prefs in one directory.
type PrefsStore struct {
	dir string
}

// NewPrefsStore creates a store rooted at dir. Pass an empty string to use
// the default XDG state path.
func NewPrefsStore(dir string) *PrefsStore {
	if dir == "" {
		dir = defaultPrefsDir()
	}
	return &PrefsStore{dir: dir}
}

// Path returns the full path of the prefs file.
func (s *PrefsStore) Path() string {
	return filepath.Join(s.dir, prefsFileName)
}

// Load reads preferences from disk. A missing or unreadable file yields the
// defaults: corrupt preferences must never prevent startup.
func (s *PrefsStore) Load() *Prefs {
	defaults := &Prefs{Version: prefsVersion, Region: "FL", Theme: "dark"}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		return defaults
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return defaults
	}
	if p.Region == "" {
		p.Region = defaults.Region
	}
	if p.Theme != "light" && p.Theme != "dark" {
		p.Theme = defaults.Theme
	}
	return &p
}

// Save writes preferences using a temp-file-then-rename so a crash mid-write
// cannot corrupt the previous copy.
func (s *PrefsStore) Save(p *Prefs) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating prefs dir: %w", err)
	}

	p.Version = prefsVersion
	p.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling prefs: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, ".prefs-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		return fmt.Errorf("committing prefs: %w", err)
	}
	committed = true
	return nil
}

// defaultPrefsDir resolves XDG_STATE_HOME, falling back to
// ~/.local/state, then the working directory as a last resort.
func defaultPrefsDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}
	return filepath.Join(home, ".local", "state", appDirName)
}
