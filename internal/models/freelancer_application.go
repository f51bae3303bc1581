package models

import (
	"time"

	"gorm.io/datatypes"
)

// FreelancerApplication is a student's request to be flagged as a freelancer.
type FreelancerApplication struct {
	ID           uint                        `gorm:"primaryKey" json:"id" db:"id"`
	UserID       uint                        `gorm:"not null;index" json:"user_id" db:"user_id"`
	FullName     string                      `gorm:"type:varchar(120)" json:"full_name" db:"full_name"`
	Email        string                      `gorm:"type:varchar(190)" json:"email" db:"email"`
	University   string                      `gorm:"type:varchar(160)" json:"university" db:"university"`
	Major        string                      `gorm:"type:varchar(120)" json:"major" db:"major"`
	Skills       datatypes.JSONSlice[string] `json:"skills" db:"skills"`
	Experience   string                      `gorm:"type:text" json:"experience" db:"experience"`
	PortfolioURL string                      `gorm:"type:text" json:"portfolio_url" db:"portfolio_url"`
	GithubURL    string                      `gorm:"type:text" json:"github_url" db:"github_url"`
	ResumeURL    string                      `gorm:"type:text" json:"resume_url" db:"resume_url"`
	Status       ApplicationStatus           `gorm:"type:varchar(20);not null;default:'pending'" json:"status" db:"status"`
	CreatedAt    time.Time                   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at" db:"updated_at"`
}

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id" db:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name" db:"name"`
	Email     string    `gorm:"type:varchar(190);not null" json:"email" db:"email"`
	Subject   string    `gorm:"type:varchar(200)" json:"subject" db:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
