package store

import (
	"errors"
	"fmt"
	"io/fs"

	"jobtracker/jsonfile"
	"jobtracker/models"
)

// Load reads the records file at path.
//
// A missing file yields an empty list and no error. A file that exists but cannot
// be read or parsed also yields an empty list, together with an error wrapping
// ErrCorruptData that callers should surface as a warning.
func Load(path string) ([]models.JobApplication, error) {
	records := []models.JobApplication{}
	if err := jsonfile.Read(path, &records); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.JobApplication{}, nil
		}
		return []models.JobApplication{}, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	if records == nil {
		// a literal "null" document
		records = []models.JobApplication{}
	}
	return records, nil
}

// Save overwrites the records file at path with the full list
func Save(path string, records []models.JobApplication) error {
	if records == nil {
		records = []models.JobApplication{}
	}
	if err := jsonfile.Write(path, records); err != nil {
		return fmt.Errorf("failed to save job applications: %w", err)
	}
	return nil
}
