package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	ProjectStatuses   = []string{"not-started", "in-progress", "completed", "on-hold"}
	ProjectPriorities = []string{"high", "medium", "low"}
)

// Project is a unit of work belonging to exactly one Program of the same owner.
type Project struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	ProgramID   uint            `gorm:"index;not null" json:"programId"`
	Status      string          `gorm:"size:50;not null;default:'not-started'" json:"status"`
	Priority    string          `gorm:"size:20;not null;default:'medium'" json:"priority"`
	Budget      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"budget"`
	Progress    int             `gorm:"default:0" json:"progress"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"startDate"`
	Deadline    time.Time       `gorm:"type:date;not null" json:"deadline"`
	UserID      uint            `gorm:"index;not null" json:"-"`
}
