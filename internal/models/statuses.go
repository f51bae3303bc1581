package models

type ProjectStatus string

const (
	ProjectOpen      ProjectStatus = "open"
	ProjectAssigned  ProjectStatus = "assigned"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectOpen, ProjectAssigned, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}
