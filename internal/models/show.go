package models

import (
	"time"
)

// ShowSession tags settlements made during a show or event. A session with
// a nil EndTime is active; an account never has more than one active session.
type ShowSession struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	AccountID string     `json:"account_id" gorm:"not null;index"`
	Name      string     `json:"name" gorm:"not null"`
	StartTime time.Time  `json:"start_time" gorm:"not null"`
	EndTime   *time.Time `json:"end_time,omitempty" gorm:"index"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsActive reports whether the session is still open.
func (s ShowSession) IsActive() bool {
	return s.EndTime == nil
}
