package models

import "time"

type Application struct {
	ID          uint              `gorm:"primaryKey" json:"id" db:"id"`
	ProjectID   uint              `gorm:"not null;index" json:"project_id" db:"project_id"`
	UserID      uint              `gorm:"not null;index" json:"user_id" db:"user_id"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter" db:"cover_letter"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status" db:"status"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty" db:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"-" db:"-"`
}

// ApplicationView is an application joined with its project title and applicant.
type ApplicationView struct {
	Application
	ProjectTitle string `json:"project_title" db:"project_title"`
	UserName     string `json:"user_name" db:"user_name"`
	UserEmail    string `json:"user_email" db:"user_email"`
}
