package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Program categories and statuses accepted by forms and by the spreadsheet importer.
var (
	ProgramCategories = []string{"innovation", "digital", "sustainability", "formation"}
	ProgramStatuses   = []string{"active", "pending", "completed"}
)

// Program represents a top-level funded initiative owned by a user.
type Program struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:100;not null" json:"category"`
	Status      string          `gorm:"size:50;not null;default:'active'" json:"status"`
	Budget      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"budget"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"startDate"`
	EndDate     *time.Time      `gorm:"type:date" json:"endDate"`
	UserID      uint            `gorm:"index;not null" json:"-"`
	Projects    []Project       `gorm:"foreignKey:ProgramID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
