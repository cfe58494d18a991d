// Package settings resolves where the user's data lives and persists the user
// settings document (name, role list, storage directory).
//
// The storage directory is found through a pointer file kept in the per-user
// config directory, so the data stays reachable when the executable is moved.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"jobtracker/jsonfile"
	"jobtracker/models"
)

// Store owns the settings document for one installation.
// It is not safe for concurrent use.
type Store struct {
	installDir  string
	pointerPath string
	logger      *slog.Logger

	dir      string // resolved storage directory
	source   Source
	settings models.Settings
	found    bool // a settings document exists at dir
}

// Option configures a Store
type Option func(*Store)

// WithPointerFile overrides the pointer file location. An empty path disables it.
func WithPointerFile(path string) Option {
	return func(s *Store) { s.pointerPath = path }
}

// WithLogger sets the logger used for settings events
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open resolves the storage directory for installDir and loads the settings found
// there. Missing or unreadable settings are replaced by defaults held in memory;
// nothing is written until the first change.
func Open(installDir string, opts ...Option) *Store {
	s := &Store{
		installDir:  absPath(installDir),
		pointerPath: "",
		logger:      slog.Default(),
	}
	if p, err := DefaultPointerPath(); err == nil {
		s.pointerPath = p
	}
	for _, opt := range opts {
		opt(s)
	}

	res := ResolveDataDirectory(s.installDir, s.pointerPath)
	s.dir = res.Dir
	s.source = res.Source

	s.settings, s.found = s.readSettings(filepath.Join(s.dir, models.SettingsFileName))

	switch res.Source {
	case SourceInstallDir:
		if s.settings.DataDirectory != "" {
			s.logger.Warn("configured data directory is unavailable, using install directory",
				"data_directory", s.settings.DataDirectory, "install_dir", s.installDir)
			s.settings.DataDirectory = ""
		}
	default:
		s.settings.DataDirectory = s.dir
	}

	s.logger.Info("storage directory resolved", "dir", s.dir, "source", res.Source.String(), "settings_found", s.found)
	return s
}

// readSettings loads the settings document at path, falling back to defaults
func (s *Store) readSettings(path string) (models.Settings, bool) {
	var loaded models.Settings
	if err := jsonfile.Read(path, &loaded); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("settings file is unreadable, using defaults", "path", path, "error", err)
		}
		return models.DefaultSettings(), false
	}
	loaded.JobRoles = cleanRoles(loaded.JobRoles)
	loaded.UserName = strings.TrimSpace(loaded.UserName)
	return loaded, true
}

// UserName returns the stored user name, empty when unset
func (s *Store) UserName() string {
	return s.settings.UserName
}

// UpdateUserName stores the trimmed name. An empty name clears it.
func (s *Store) UpdateUserName(name string) error {
	next := s.snapshot()
	next.UserName = strings.TrimSpace(name)
	return s.commit(next)
}

// JobRoles returns a copy of the configured roles in order
func (s *Store) JobRoles() []string {
	return slices.Clone(s.settings.JobRoles)
}

// AddJobRole appends role unless it is blank or already present
func (s *Store) AddJobRole(role string) error {
	role = strings.TrimSpace(role)
	if role == "" || slices.Contains(s.settings.JobRoles, role) {
		return nil
	}
	next := s.snapshot()
	next.JobRoles = append(next.JobRoles, role)
	return s.commit(next)
}

// RemoveJobRole removes role if present, ignoring surrounding whitespace
func (s *Store) RemoveJobRole(role string) error {
	role = strings.TrimSpace(role)
	idx := slices.Index(s.settings.JobRoles, role)
	if idx < 0 {
		return nil
	}
	next := s.snapshot()
	next.JobRoles = slices.Delete(next.JobRoles, idx, idx+1)
	return s.commit(next)
}

// UpdateJobRoles replaces the role list. Blank entries and repeats are dropped,
// keeping the first occurrence.
func (s *Store) UpdateJobRoles(roles []string) error {
	next := s.snapshot()
	next.JobRoles = cleanRoles(roles)
	return s.commit(next)
}

// cleanRoles trims roles and drops blanks and repeats, keeping first occurrences
func cleanRoles(roles []string) []string {
	cleaned := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r != "" && !slices.Contains(cleaned, r) {
			cleaned = append(cleaned, r)
		}
	}
	return cleaned
}

// StorageDirectory returns the directory holding settings and records
func (s *Store) StorageDirectory() string {
	return s.dir
}

// StorageSource reports how the storage directory was resolved
func (s *Store) StorageSource() Source {
	return s.source
}

// SettingsPath returns the settings file in the storage directory
func (s *Store) SettingsPath() string {
	return filepath.Join(s.dir, models.SettingsFileName)
}

// RecordsPath returns the records file in the storage directory
func (s *Store) RecordsPath() string {
	return filepath.Join(s.dir, models.RecordsFileName)
}

// IsFirstRun reports whether the user still has to complete setup
func (s *Store) IsFirstRun() bool {
	return !s.found || s.settings.UserName == ""
}

// SetStorageDirectory moves the storage directory to path.
//
// The directory is created if needed. The current records file is copied over
// only when path has none, so existing data at the destination is never
// overwritten, and the old copy is left in place. Settings are then written to the
// new location. The pointer file and the install directory's settings are both
// updated on a best-effort basis; either one is enough to find path again.
func (s *Store) SetStorageDirectory(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("storage directory must not be empty")
	}
	newDir := absPath(path)

	if err := os.MkdirAll(newDir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	oldRecords := s.RecordsPath()
	copied, err := jsonfile.CopyIfAbsent(oldRecords, filepath.Join(newDir, models.RecordsFileName))
	if err != nil {
		return fmt.Errorf("failed to migrate job applications: %w", err)
	}

	next := s.snapshot()
	next.DataDirectory = newDir
	if err := s.write(newDir, next); err != nil {
		return err
	}

	oldDir := s.dir
	s.dir = newDir
	s.source = SourcePointer
	s.settings = next
	s.found = true

	if err := writePointer(s.pointerPath, newDir); err != nil {
		s.logger.Warn("failed to update storage pointer", "path", s.pointerPath, "error", err)
	}
	if newDir != s.installDir {
		if err := s.write(s.installDir, next); err != nil {
			s.logger.Warn("failed to record storage directory in install directory", "dir", s.installDir, "error", err)
		}
	}

	s.logger.Info("storage directory changed", "from", oldDir, "to", newDir, "records_copied", copied)
	return nil
}

// snapshot returns a deep copy of the current settings
func (s *Store) snapshot() models.Settings {
	next := s.settings
	next.JobRoles = slices.Clone(s.settings.JobRoles)
	if next.JobRoles == nil {
		next.JobRoles = []string{}
	}
	return next
}

// commit persists next to the current storage directory and adopts it
func (s *Store) commit(next models.Settings) error {
	if err := s.write(s.dir, next); err != nil {
		return err
	}
	s.settings = next
	s.found = true
	return nil
}

func (s *Store) write(dir string, doc models.Settings) error {
	if err := jsonfile.Write(filepath.Join(dir, models.SettingsFileName), doc); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
