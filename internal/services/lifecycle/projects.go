package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/events"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/metrics"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

// openListing is the only cached listing: open projects, newest first.
const openListing = "open"

func (s *Service) CreateProject(ctx context.Context, p *models.Project) error {
	if _, err := s.store.GetUser(ctx, p.ClientID); errors.Is(err, store.ErrNotFound) {
		return ErrUnknownUser
	} else if err != nil {
		return fmt.Errorf("load client %d: %w", p.ClientID, err)
	}
	if p.Status == "" {
		p.Status = models.ProjectOpen
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.store.CreateProject(ctx, p); err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	s.publish(ctx, events.TopicProjectCreated, events.Event{
		EntityID: p.ID, ProjectID: p.ID, UserID: p.ClientID, Status: string(p.Status),
	})
	s.cache.InvalidateProjects(ctx)
	if p.Status == models.ProjectOpen {
		s.notifier.BroadcastJSON(realtime.Message{Type: MsgProjectCreated, Data: p})
	}
	return nil
}

// ListProjects serves the open-projects listing from the cache when it can.
func (s *Service) ListProjects(ctx context.Context, f store.ProjectFilter) ([]models.Project, error) {
	cacheable := isOpenListing(f)
	var gen int64
	if cacheable {
		cached, g, ok := s.cache.GetProjects(ctx, openListing)
		if ok {
			metrics.RecordCacheLookup(true)
			return cached, nil
		}
		metrics.RecordCacheLookup(false)
		gen = g
	}

	projects, err := s.store.ListProjects(ctx, f)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	if cacheable {
		s.cache.SetProjects(ctx, openListing, gen, projects)
	}
	return projects, nil
}

func isOpenListing(f store.ProjectFilter) bool {
	return f.Status == models.ProjectOpen &&
		f.Category == "" &&
		f.ClientID == 0 &&
		len(f.IDs) == 0 &&
		store.SortColumn(f.SortBy) == "created_at" &&
		!f.Asc
}
