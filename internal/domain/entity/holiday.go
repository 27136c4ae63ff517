// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Holiday is a user-owned named date range used to group trip transactions.
type Holiday struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewHoliday creates a new Holiday entity.
func NewHoliday(userID uuid.UUID, name string, startDate, endDate time.Time) *Holiday {
	now := time.Now().UTC()
	return &Holiday{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Contains reports whether date falls within [StartDate, EndDate], by calendar day.
func (h *Holiday) Contains(date time.Time) bool {
	day := date.Format(time.DateOnly)
	return day >= h.StartDate.Format(time.DateOnly) && day <= h.EndDate.Format(time.DateOnly)
}
