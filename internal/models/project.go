package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of project deadlines.
const DateLayout = "2006-01-02"

type Project struct {
	ID          uint                        `gorm:"primaryKey" json:"id" db:"id"`
	Title       string                      `gorm:"type:varchar(200);not null" json:"title" db:"title"`
	Description string                      `gorm:"type:text" json:"description" db:"description"`
	Budget      float64                     `gorm:"not null;default:0" json:"budget" db:"budget"`
	Deadline    time.Time                   `gorm:"type:date" json:"deadline" db:"deadline"`
	Category    string                      `gorm:"type:varchar(80);index" json:"category" db:"category"`
	Skills      datatypes.JSONSlice[string] `json:"skills" db:"skills"`
	ClientID    uint                        `gorm:"not null;index" json:"client_id" db:"client_id"`
	Status      ProjectStatus               `gorm:"type:varchar(20);not null;default:'open';index" json:"status" db:"status"`
	CreatedAt   time.Time                   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at" db:"updated_at"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty" db:"-"`
}

type projectJSON Project

// MarshalJSON renders the deadline as YYYY-MM-DD, or "" when unset.
func (p Project) MarshalJSON() ([]byte, error) {
	deadline := ""
	if !p.Deadline.IsZero() {
		deadline = p.Deadline.Format(DateLayout)
	}
	return json.Marshal(struct {
		projectJSON
		Deadline string `json:"deadline"`
	}{projectJSON(p), deadline})
}

func (p *Project) UnmarshalJSON(b []byte) error {
	aux := struct {
		*projectJSON
		Deadline string `json:"deadline"`
	}{projectJSON: (*projectJSON)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d, err := ParseDate(aux.Deadline)
	if err != nil {
		return err
	}
	p.Deadline = d
	return nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp. Empty input is the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
