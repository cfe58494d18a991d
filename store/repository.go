package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"

	"jobtracker/models"
)

// SearchMode selects how Search compares the term
type SearchMode int

const (
	// SearchByLink matches links exactly, ignoring case and surrounding whitespace
	SearchByLink SearchMode = iota
	// SearchByCompany matches companies containing the term, ignoring case
	SearchByCompany
)

func (m SearchMode) String() string {
	switch m {
	case SearchByLink:
		return "link"
	case SearchByCompany:
		return "company"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// ParseSearchMode converts "link" or "company" into a SearchMode
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "link":
		return SearchByLink, nil
	case "company":
		return SearchByCompany, nil
	default:
		return 0, fmt.Errorf("unknown search mode %q: must be 'link' or 'company'", s)
	}
}

// Repository owns the job application list backed by one records file.
// Every mutation rewrites the file before returning.
type Repository struct {
	path    string
	records []models.JobApplication
	clock   clockwork.Clock
	logger  *slog.Logger
}

// Option configures a Repository
type Option func(*Repository)

// WithClock sets the clock used to date applications added without a date
func WithClock(c clockwork.Clock) Option {
	return func(r *Repository) { r.clock = c }
}

// WithLogger sets the logger used for persistence events
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// NewRepository creates an empty repository for the records file at path.
// Call Load to read existing records.
func NewRepository(path string, opts ...Option) *Repository {
	r := &Repository{
		path:    path,
		records: []models.JobApplication{},
		clock:   clockwork.NewRealClock(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the records file backing the repository
func (r *Repository) Path() string {
	return r.path
}

// Load replaces the in-memory list with the content of the records file.
// See the package-level Load for the error contract; the list is empty whenever an
// error is returned.
func (r *Repository) Load() error {
	records, err := Load(r.path)
	r.records = records
	if err != nil {
		r.logger.Warn("records file could not be loaded, starting empty", "path", r.path, "error", err)
		return err
	}
	r.logger.Debug("records loaded", "path", r.path, "count", len(records))
	return nil
}

// Records returns a copy of all records in insertion order
func (r *Repository) Records() []models.JobApplication {
	out := make([]models.JobApplication, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records
func (r *Repository) Len() int {
	return len(r.records)
}

// Add validates and appends a new application, then persists the list.
// A blank date is replaced with today's date. Nothing changes when an error is
// returned.
func (r *Repository) Add(company, link, role, date string) error {
	record := models.JobApplication{
		Company:     strings.TrimSpace(company),
		Link:        strings.TrimSpace(link),
		Role:        strings.TrimSpace(role),
		AppliedDate: strings.TrimSpace(date),
	}

	if record.Company == "" {
		return &ValidationError{Field: "company", Message: "is required"}
	}
	if record.Link == "" {
		return &ValidationError{Field: "link", Message: "is required"}
	}
	if record.AppliedDate == "" {
		record.AppliedDate = r.clock.Now().Format(models.DateLayout)
	} else if _, err := models.ParseAppliedDate(record.AppliedDate); err != nil {
		return &ValidationError{Field: "date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", record.AppliedDate)}
	}

	key := models.NormalizeLink(record.Link)
	for _, existing := range r.records {
		if models.NormalizeLink(existing.Link) == key {
			return &DuplicateLinkError{Link: record.Link, Existing: existing.Link, Company: existing.Company}
		}
	}

	r.records = append(r.records, record)
	if err := Save(r.path, r.records); err != nil {
		r.records = r.records[:len(r.records)-1]
		return err
	}

	r.logger.Info("job application added", "company", record.Company, "link", record.Link)
	return nil
}

// DeleteByLink removes every record whose link matches link after trimming and
// case folding, and returns how many were removed. No match is not an error.
func (r *Repository) DeleteByLink(link string) (int, error) {
	key := models.NormalizeLink(link)

	kept := make([]models.JobApplication, 0, len(r.records))
	for _, rec := range r.records {
		if models.NormalizeLink(rec.Link) != key {
			kept = append(kept, rec)
		}
	}

	removed := len(r.records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := Save(r.path, kept); err != nil {
		return 0, err
	}
	r.records = kept

	r.logger.Info("job application deleted", "link", strings.TrimSpace(link), "removed", removed)
	return removed, nil
}

// DeleteAll removes every record and persists an empty list
func (r *Repository) DeleteAll() error {
	if err := Save(r.path, nil); err != nil {
		return err
	}
	count := len(r.records)
	r.records = []models.JobApplication{}

	r.logger.Info("all job applications deleted", "removed", count)
	return nil
}

// Search returns the records matching term in insertion order.
// A blank term matches everything.
func (r *Repository) Search(term string, mode SearchMode) []models.JobApplication {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return r.Records()
	}

	var match func(models.JobApplication) bool
	switch mode {
	case SearchByCompany:
		match = func(rec models.JobApplication) bool {
			return strings.Contains(strings.ToLower(rec.Company), needle)
		}
	default:
		match = func(rec models.JobApplication) bool {
			return models.NormalizeLink(rec.Link) == needle
		}
	}

	results := []models.JobApplication{}
	for _, rec := range r.records {
		if match(rec) {
			results = append(results, rec)
		}
	}
	return results
}
