// ABOUTME: Persistence records stored through gorm
// ABOUTME: Single-row credential and schedule tables plus the sign log

package models

import "time"

// Sign log status and trigger values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

// SingletonID is the primary key of single-row tables
const SingletonID uint = 1

// Credential holds every stored secret in one row
type Credential struct {
	ID                  uint   `gorm:"primaryKey"`
	LinuxDoToken        string `gorm:"size:4000"`
	LinuxDoConnectToken string `gorm:"size:4000"`
	BoheSignToken       string `gorm:"size:4000"`
	NewAPIAuthorization string `gorm:"size:4000"`
	NewAPIUserID        string `gorm:"size:64"`
	UpdatedAt           time.Time
}

// NewAPIConfigured reports whether both NewAPI fields are present
func (c Credential) NewAPIConfigured() bool {
	return c.NewAPIAuthorization != "" && c.NewAPIUserID != ""
}

// SignLog is one check-in attempt
type SignLog struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Status    string    `gorm:"not null;size:16;index"`
	Trigger   string    `gorm:"not null;size:16"`
	Message   string    `gorm:"size:1000"`
	CreatedAt time.Time `gorm:"index"`
}

// Entry converts the record to its wire form
func (l SignLog) Entry() LogEntry {
	return LogEntry{
		ID:      l.ID,
		Time:    l.CreatedAt,
		Status:  l.Status,
		Trigger: l.Trigger,
		Message: l.Message,
	}
}

// Schedule is the daily check-in configuration
type Schedule struct {
	ID        uint   `gorm:"primaryKey"`
	Enabled   bool   `gorm:"not null;default:false"`
	Time      string `gorm:"size:5"`
	LastRun   *time.Time
	UpdatedAt time.Time
}
