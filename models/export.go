package models

import "time"

// ApplicationRow is the SQLite representation of a JobApplication used by exports
type ApplicationRow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Position    int       `gorm:"not null;index" json:"position"` // insertion order in the records file
	Company     string    `gorm:"not null" json:"company"`
	Link        string    `gorm:"not null" json:"link"`
	LinkKey     string    `gorm:"not null;uniqueIndex" json:"-"` // NormalizeLink(Link)
	Role        string    `json:"role"`
	AppliedDate string    `gorm:"type:text" json:"applied_date"`
	CreatedAt   time.Time `gorm:"type:datetime" json:"created_at"`
}

// TableName overrides the gorm default
func (ApplicationRow) TableName() string {
	return "job_applications"
}

// ToApplication converts the row back into a record
func (r ApplicationRow) ToApplication() JobApplication {
	return JobApplication{
		Company:     r.Company,
		Link:        r.Link,
		Role:        r.Role,
		AppliedDate: r.AppliedDate,
	}
}
