// Package lifecycle implements the project and application status workflow.
//
// Approving an application moves its project to "assigned". Both writes run
// in one store transaction. Events, realtime pushes, cache invalidation and
// metrics follow a successful commit and never fail the operation.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/events"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/logger"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/metrics"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

var (
	ErrInvalidStatus  = errors.New("invalid status")
	ErrUnknownProject = errors.New("project does not exist")
	ErrUnknownUser    = errors.New("user does not exist")
)

const (
	MsgApplicationStatus = "application_status_update"
	MsgProjectStatus     = "project_status_update"
	MsgNewApplication    = "new_application"
	MsgProjectCreated    = "project_created"
)

type Notifier interface {
	SendToUser(userID uint, data interface{})
	// BroadcastJSON reaches every connected client.
	BroadcastJSON(v interface{})
}

// ProjectCache stores project listings per generation. SetProjects takes the
// generation GetProjects reported, so a listing read before an invalidation
// never becomes visible after it.
type ProjectCache interface {
	GetProjects(ctx context.Context, variant string) ([]models.Project, int64, bool)
	SetProjects(ctx context.Context, variant string, gen int64, projects []models.Project)
	InvalidateProjects(ctx context.Context)
}

type Service struct {
	store    store.Store
	events   events.Publisher
	notifier Notifier
	cache    ProjectCache
}

// New wires the service. Nil collaborators are replaced by no-ops.
func New(s store.Store, pub events.Publisher, n Notifier, c ProjectCache) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	if n == nil {
		n = nopNotifier{}
	}
	if c == nil {
		c = nopCache{}
	}
	return &Service{store: s, events: pub, notifier: n, cache: c}
}

func (s *Service) CreateApplication(ctx context.Context, projectID, userID uint, coverLetter string) (*models.Application, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownProject
	}
	if err != nil {
		return nil, fmt.Errorf("load project %d: %w", projectID, err)
	}
	if _, err := s.store.GetUser(ctx, userID); errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownUser
	} else if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}

	a := &models.Application{
		ProjectID:   projectID,
		UserID:      userID,
		CoverLetter: coverLetter,
		Status:      models.ApplicationPending,
	}
	if err := s.store.CreateApplication(ctx, a); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.publish(ctx, events.TopicApplicationCreated, events.Event{
		EntityID: a.ID, ProjectID: projectID, UserID: userID, Status: string(a.Status),
	})
	s.notifier.SendToUser(project.ClientID, realtime.Message{Type: MsgNewApplication, Data: a})
	return a, nil
}

// UpdateApplicationStatus sets the application status. Approval also assigns
// the parent project; a failure there rolls the application back.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) (*models.Application, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var (
		app     *models.Application
		project *models.Project
	)
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		if app, err = tx.GetApplication(ctx, id); err != nil {
			return err
		}
		if err := tx.UpdateApplicationStatus(ctx, id, status); err != nil {
			return err
		}
		if status != models.ApplicationApproved {
			return nil
		}
		if err := tx.UpdateProjectStatus(ctx, app.ProjectID, models.ProjectAssigned); err != nil {
			return fmt.Errorf("assign project %d: %w", app.ProjectID, err)
		}
		project, err = tx.GetProject(ctx, app.ProjectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()

	s.publish(ctx, events.TopicApplicationStatusChanged, events.Event{
		EntityID: app.ID, ProjectID: app.ProjectID, UserID: app.UserID, Status: string(status),
	})
	metrics.RecordTransition("application", string(status))
	s.notifier.SendToUser(app.UserID, realtime.Message{Type: MsgApplicationStatus, Data: app})

	if project != nil {
		s.projectChanged(ctx, project)
	}
	return app, nil
}

func (s *Service) UpdateProjectStatus(ctx context.Context, id uint, status models.ProjectStatus) (*models.Project, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.store.UpdateProjectStatus(ctx, id, status); err != nil {
		return nil, err
	}
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	s.projectChanged(ctx, project)
	return project, nil
}

func (s *Service) projectChanged(ctx context.Context, p *models.Project) {
	s.publish(ctx, events.TopicProjectStatusChanged, events.Event{
		EntityID: p.ID, ProjectID: p.ID, UserID: p.ClientID, Status: string(p.Status),
	})
	metrics.RecordTransition("project", string(p.Status))
	s.notifier.SendToUser(p.ClientID, realtime.Message{Type: MsgProjectStatus, Data: p})
	s.cache.InvalidateProjects(ctx)
}

func (s *Service) publish(ctx context.Context, topic string, ev events.Event) {
	if err := s.events.Publish(ctx, topic, ev); err != nil {
		logger.Warn("publish event failed", "topic", topic, "entity_id", ev.EntityID, "error", err)
	}
}

type nopNotifier struct{}

func (nopNotifier) SendToUser(uint, interface{}) {}
func (nopNotifier) BroadcastJSON(interface{})     {}

type nopCache struct{}

func (nopCache) GetProjects(context.Context, string) ([]models.Project, int64, bool) {
	return nil, -1, false
}
func (nopCache) SetProjects(context.Context, string, int64, []models.Project) {}
func (nopCache) InvalidateProjects(context.Context)                          {}
