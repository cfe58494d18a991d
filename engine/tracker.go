package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"jobtracker/db"
	"jobtracker/models"
	"jobtracker/settings"
	"jobtracker/stats"
	"jobtracker/store"
)

// Tracker ties the settings store and the records repository of one storage
// directory together for the user interface and the command line.
// A Tracker is not safe for concurrent use.
type Tracker struct {
	settings *settings.Store
	repo     *store.Repository

	clock       clockwork.Clock
	logger      *slog.Logger
	loadWarning error
}

// Option configures a Tracker
type Option func(*options)

type options struct {
	pointerPath    string
	pointerPathSet bool
	clock          clockwork.Clock
	logger         *slog.Logger
}

// WithPointerFile overrides the storage pointer file location
func WithPointerFile(path string) Option {
	return func(o *options) {
		o.pointerPath = path
		o.pointerPathSet = true
	}
}

// WithClock sets the clock used to date new applications
func WithClock(c clockwork.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger passed down to the settings store and repository
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ImportResult summarizes an archive import
type ImportResult struct {
	Added      int
	Duplicates int
	Invalid    int
}

// Open resolves the storage directory for installDir and loads its records.
// A corrupt records file does not fail Open; the tracker starts empty and
// LoadWarning reports the problem.
func Open(installDir string, opts ...Option) *Tracker {
	o := options{
		clock:  clockwork.NewRealClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	settingsOpts := []settings.Option{settings.WithLogger(o.logger)}
	if o.pointerPathSet {
		settingsOpts = append(settingsOpts, settings.WithPointerFile(o.pointerPath))
	}

	t := &Tracker{
		settings: settings.Open(installDir, settingsOpts...),
		clock:    o.clock,
		logger:   o.logger,
	}
	t.loadWarning = t.loadRecords()
	return t
}

// loadRecords replaces the repository with one for the current storage directory
func (t *Tracker) loadRecords() error {
	t.repo = store.NewRepository(t.settings.RecordsPath(), store.WithClock(t.clock), store.WithLogger(t.logger))
	return t.repo.Load()
}

// Settings returns the settings store
func (t *Tracker) Settings() *settings.Store {
	return t.settings
}

// Repository returns the records repository for the current storage directory
func (t *Tracker) Repository() *store.Repository {
	return t.repo
}

// LoadWarning returns the error from the last records load, if the file was corrupt
func (t *Tracker) LoadWarning() error {
	return t.loadWarning
}

// Stats computes the basic statistics over all records
func (t *Tracker) Stats() stats.Summary {
	return stats.Basic(t.repo.Records())
}

// Daily returns the per-day application counts over all records
func (t *Tracker) Daily() []stats.DayCount {
	return stats.Daily(t.repo.Records())
}

// ChangeStorageDirectory moves the storage directory and reloads the records
// found there. The records at the new location win when both places have a file.
// A corrupt records file at the destination is reported through LoadWarning.
func (t *Tracker) ChangeStorageDirectory(path string) error {
	if err := t.settings.SetStorageDirectory(path); err != nil {
		return fmt.Errorf("failed to change storage directory: %w", err)
	}
	t.loadWarning = t.loadRecords()
	return nil
}

// ExportArchive writes all records to a SQLite file
func (t *Tracker) ExportArchive(path string) (int, error) {
	n, err := db.Export(path, t.repo.Records())
	if err != nil {
		return 0, fmt.Errorf("failed to export applications: %w", err)
	}
	t.logger.Info("applications exported", "path", path, "count", n)
	return n, nil
}

// ImportArchive adds the applications of a SQLite export. Links already tracked
// and records failing validation are skipped and counted.
func (t *Tracker) ImportArchive(path string) (ImportResult, error) {
	records, err := db.Import(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to import applications: %w", err)
	}

	var result ImportResult
	for _, rec := range records {
		err := t.repo.Add(rec.Company, rec.Link, rec.Role, rec.AppliedDate)
		switch {
		case err == nil:
			result.Added++
		case errors.Is(err, store.ErrDuplicateLink):
			result.Duplicates++
		case errors.Is(err, store.ErrInvalidRecord):
			result.Invalid++
		default:
			return result, err
		}
	}

	t.logger.Info("applications imported", "path", path, "added", result.Added, "duplicates", result.Duplicates, "invalid", result.Invalid)
	return result, nil
}

// Greeting returns the welcome line shown at the top of the interface
func (t *Tracker) Greeting() string {
	if name := t.settings.UserName(); name != "" {
		return fmt.Sprintf("Welcome back, %s!", name)
	}
	return "Welcome to Job Application Tracker!"
}

// Applications returns all records in insertion order
func (t *Tracker) Applications() []models.JobApplication {
	return t.repo.Records()
}
