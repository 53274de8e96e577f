package model

import (
	"fmt"
	"time"
)

type SleepLog struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"user_id"`
	SleepStart      *time.Time `db:"sleep_start" json:"sleep_start"`
	WakeEnd         *time.Time `db:"wake_end" json:"wake_end"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes"`
	QualityRating   *int       `db:"quality_rating" json:"quality_rating"`
	Notes           *string    `db:"notes" json:"notes"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// IsActive reports whether the log is an in-progress sleep session.
func (l *SleepLog) IsActive() bool {
	return l != nil && l.SleepStart != nil && l.WakeEnd == nil
}

// Finish sets wake_end and the derived duration.
func (l *SleepLog) Finish(wakeEnd time.Time) {
	l.WakeEnd = &wakeEnd
	if l.SleepStart != nil {
		minutes := DurationMinutes(*l.SleepStart, wakeEnd)
		l.DurationMinutes = &minutes
	}
}

// FormatDuration renders the duration as "7h 30m", or "Ongoing" when unset.
func (l *SleepLog) FormatDuration() string {
	if l.DurationMinutes == nil {
		return "Ongoing"
	}
	return FormatMinutes(*l.DurationMinutes)
}

// DurationMinutes is the number of whole minutes between start and end.
func DurationMinutes(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// SleepLogUpdate is a partial update of a sleep log. Setting WakeEnd stops
// an active session.
type SleepLogUpdate struct {
	WakeEnd       *time.Time `json:"wake_end,omitempty"`
	QualityRating *int       `json:"quality_rating,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

func (u SleepLogUpdate) IsEmpty() bool {
	return u.WakeEnd == nil && u.QualityRating == nil && u.Notes == nil
}
