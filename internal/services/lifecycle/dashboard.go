package lifecycle

import (
	"context"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

type ApplicationCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type Earnings struct {
	Total     float64 `json:"total"`
	Pending   float64 `json:"pending"`
	Completed float64 `json:"completed"`
}

// Dashboard is the freelancer's overview of their applications and work.
type Dashboard struct {
	UserID             uint                     `json:"user_id"`
	Applications       ApplicationCounts        `json:"applications"`
	RecentApplications []models.ApplicationView `json:"recent_applications"`
	ActiveProjects     []models.Project         `json:"active_projects"`
	Earnings           Earnings                 `json:"earnings"`
	CompletedProjects  int                      `json:"completed_projects"`
}

const recentApplications = 5

// FreelancerDashboard aggregates a user's applications and the projects they
// were approved for. Earnings are summed project budgets.
func (s *Service) FreelancerDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	apps, err := s.store.ListApplications(ctx, store.ApplicationFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		UserID:             userID,
		RecentApplications: []models.ApplicationView{},
		ActiveProjects:     []models.Project{},
	}

	var approved []uint
	for _, a := range apps {
		d.Applications.Total++
		switch a.Status {
		case models.ApplicationPending:
			d.Applications.Pending++
		case models.ApplicationApproved:
			d.Applications.Approved++
			approved = append(approved, a.ProjectID)
		case models.ApplicationRejected:
			d.Applications.Rejected++
		}
		if len(d.RecentApplications) < recentApplications {
			d.RecentApplications = append(d.RecentApplications, a)
		}
	}

	if len(approved) == 0 {
		return d, nil
	}

	projects, err := s.store.ListProjects(ctx, store.ProjectFilter{IDs: approved})
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		d.ActiveProjects = append(d.ActiveProjects, p)
		d.Earnings.Total += p.Budget
		switch p.Status {
		case models.ProjectAssigned:
			d.Earnings.Pending += p.Budget
		case models.ProjectCompleted:
			d.Earnings.Completed += p.Budget
			d.CompletedProjects++
		}
	}
	return d, nil
}

// ClientOverview summarises the projects a client posted and the applications
// they received.
type ClientOverview struct {
	ClientID           uint                     `json:"client_id"`
	TotalProjects      int                      `json:"total_projects"`
	ActiveProjects     int                      `json:"active_projects"`
	CompletedProjects  int                      `json:"completed_projects"`
	TotalApplications  int                      `json:"total_applications"`
	TotalSpent         float64                  `json:"total_spent"`
	Projects           []models.Project         `json:"projects"`
	RecentApplications []models.ApplicationView `json:"recent_applications"`
}

// ClientDashboard counts open and assigned projects as active. Spending is
// the summed budget of completed projects.
func (s *Service) ClientDashboard(ctx context.Context, clientID uint) (*ClientOverview, error) {
	if _, err := s.store.GetUser(ctx, clientID); err != nil {
		return nil, err
	}

	projects, err := s.store.ListProjects(ctx, store.ProjectFilter{ClientID: clientID})
	if err != nil {
		return nil, err
	}

	d := &ClientOverview{
		ClientID:           clientID,
		TotalProjects:      len(projects),
		Projects:           []models.Project{},
		RecentApplications: []models.ApplicationView{},
	}
	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		d.Projects = append(d.Projects, p)
		ids = append(ids, p.ID)
		switch p.Status {
		case models.ProjectOpen, models.ProjectAssigned:
			d.ActiveProjects++
		case models.ProjectCompleted:
			d.CompletedProjects++
			d.TotalSpent += p.Budget
		}
	}
	if len(ids) == 0 {
		return d, nil
	}

	apps, err := s.store.ListApplications(ctx, store.ApplicationFilter{ProjectIDs: ids})
	if err != nil {
		return nil, err
	}
	d.TotalApplications = len(apps)
	if len(apps) > recentApplications {
		apps = apps[:recentApplications]
	}
	d.RecentApplications = append(d.RecentApplications, apps...)
	return d, nil
}
