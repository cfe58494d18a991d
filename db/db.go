package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jobtracker/models"

	_ "modernc.org/sqlite" // Use pure Go SQLite driver (no CGO required)
)

// Archive is a SQLite file holding an exported copy of the job applications
type Archive struct {
	db   *gorm.DB
	path string
}

// Open opens or creates the SQLite archive at path and migrates its schema
func Open(path string) (*Archive, error) {
	config := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		PrepareStmt: true,
	}

	// modernc.org/sqlite registers as "sqlite"; the DSN pragmas keep datetimes readable
	dsn := path + "?_pragma=busy_timeout(5000)&_time_format=sqlite"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	gdb, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, config)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Exports are single standalone files, so no WAL here.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := gdb.AutoMigrate(&models.ApplicationRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Debug("sqlite archive opened", "path", path)
	return &Archive{db: gdb, path: path}, nil
}

// ReplaceAll replaces the archive content with records, preserving their order.
// Records repeating an earlier link are skipped. It returns the number written.
func (a *Archive) ReplaceAll(records []models.JobApplication) (int, error) {
	now := time.Now()
	seen := make(map[string]struct{}, len(records))
	rows := make([]models.ApplicationRow, 0, len(records))
	for i, rec := range records {
		key := models.NormalizeLink(rec.Link)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		rows = append(rows, models.ApplicationRow{
			Position:    i,
			Company:     rec.Company,
			Link:        rec.Link,
			LinkKey:     key,
			Role:        rec.Role,
			AppliedDate: rec.AppliedDate,
			CreatedAt:   now,
		})
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ApplicationRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear archive: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to write applications: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Applications returns every archived application in its original order
func (a *Archive) Applications() ([]models.JobApplication, error) {
	var rows []models.ApplicationRow
	if err := a.db.Order("position ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve applications: %w", err)
	}

	records := make([]models.JobApplication, len(rows))
	for i, row := range rows {
		records[i] = row.ToApplication()
	}
	return records, nil
}

// Count returns the number of archived applications
func (a *Archive) Count() (int, error) {
	var count int64
	if err := a.db.Model(&models.ApplicationRow{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return int(count), nil
}

// Close closes the database connection
func (a *Archive) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Export writes records to a SQLite archive at path, replacing its content
func Export(path string, records []models.JobApplication) (int, error) {
	archive, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer archive.Close()

	return archive.ReplaceAll(records)
}

// Import reads every application from the existing SQLite archive at path
func Import(path string) ([]models.JobApplication, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	archive, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	return archive.Applications()
}
