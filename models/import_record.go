package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Import outcome statuses. "error" is only written by the fast-fail path when
// the uploaded file itself cannot be decoded; the row loop never produces it.
const (
	ImportStatusSuccess = "success"
	ImportStatusPartial = "partial"
	ImportStatusError   = "error"
)

// ErrorList stores ordered row error messages as a jsonb column.
type ErrorList []string

func (e ErrorList) Value() (driver.Value, error) {
	if len(e) == 0 {
		return nil, nil
	}
	return json.Marshal(e)
}

func (e *ErrorList) Scan(value interface{}) error {
	if value == nil {
		*e = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	default:
		return fmt.Errorf("unsupported type %T for ErrorList", value)
	}
}

// ImportRecord is the append-only audit row for one upload attempt.
// Never updated after creation.
type ImportRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	Filename        string    `gorm:"size:255;not null" json:"filename"`
	Status          string    `gorm:"size:50;not null" json:"status"`
	RecordsImported int       `gorm:"default:0" json:"recordsImported"`
	Errors          ErrorList `gorm:"type:jsonb" json:"errors"`
	UserID          uint      `gorm:"index;not null" json:"-"`
}
