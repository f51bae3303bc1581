// Package onboarding handles student requests to become freelancers.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/events"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/logger"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/storage"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/store"
)

const (
	MaxResumeSize = 5 * 1024 * 1024
	MsgReviewed   = "freelancer_application_update"
)

var (
	ErrInvalidResume = errors.New("resume must be a pdf, doc or docx file of at most 5MB")
	ErrInvalidStatus = errors.New("invalid status")
	ErrUnknownUser   = errors.New("user does not exist")
)

var resumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type Notifier interface {
	SendToUser(userID uint, data interface{})
}

type Service struct {
	store    store.Store
	disk     storage.Disk
	events   events.Publisher
	notifier Notifier
}

func New(s store.Store, disk storage.Disk, pub events.Publisher, n Notifier) *Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{store: s, disk: disk, events: pub, notifier: n}
}

type Resume struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type SubmitInput struct {
	UserID       uint
	FullName     string
	Email        string
	University   string
	Major        string
	Skills       []string
	Experience   string
	PortfolioURL string
	GithubURL    string
	Resume       *Resume
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.FreelancerApplication, error) {
	if _, err := s.store.GetUser(ctx, in.UserID); errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownUser
	} else if err != nil {
		return nil, fmt.Errorf("load user %d: %w", in.UserID, err)
	}

	fa := &models.FreelancerApplication{
		UserID:       in.UserID,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		University:   strings.TrimSpace(in.University),
		Major:        strings.TrimSpace(in.Major),
		Skills:       cleanSkills(in.Skills),
		Experience:   strings.TrimSpace(in.Experience),
		PortfolioURL: strings.TrimSpace(in.PortfolioURL),
		GithubURL:    strings.TrimSpace(in.GithubURL),
		Status:       models.ApplicationPending,
	}

	var objectPath string
	if in.Resume != nil {
		path, err := s.saveResume(ctx, in.UserID, in.Resume)
		if err != nil {
			return nil, err
		}
		objectPath = path
		fa.ResumeURL = s.disk.URL(path)
	}

	if err := s.store.CreateFreelancerApplication(ctx, fa); err != nil {
		if objectPath != "" {
			if derr := s.disk.Delete(ctx, objectPath); derr != nil {
				logger.Warn("remove orphaned resume", "path", objectPath, "error", derr)
			}
		}
		return nil, fmt.Errorf("create freelancer application: %w", err)
	}
	return fa, nil
}

func (s *Service) saveResume(ctx context.Context, userID uint, r *Resume) (string, error) {
	ext := strings.ToLower(filepath.Ext(r.Filename))
	contentType, ok := resumeTypes[ext]
	if !ok || r.Size <= 0 || r.Size > MaxResumeSize {
		return "", ErrInvalidResume
	}

	path := fmt.Sprintf("resumes/%d/%s%s", userID, uuid.NewString(), ext)
	if err := s.disk.Put(ctx, path, io.LimitReader(r.Content, MaxResumeSize), contentType); err != nil {
		return "", fmt.Errorf("store resume: %w", err)
	}
	return path, nil
}

func (s *Service) List(ctx context.Context, status models.ApplicationStatus) ([]models.FreelancerApplication, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	out, err := s.store.ListFreelancerApplications(ctx, status)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.FreelancerApplication{}
	}
	return out, nil
}

// Review records the admin decision. Approval flags the applicant as a
// freelancer in the same transaction.
func (s *Service) Review(ctx context.Context, id uint, status models.ApplicationStatus) (*models.FreelancerApplication, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var fa *models.FreelancerApplication
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		if fa, err = tx.GetFreelancerApplication(ctx, id); err != nil {
			return err
		}
		if err := tx.UpdateFreelancerApplicationStatus(ctx, id, status); err != nil {
			return err
		}
		if status == models.ApplicationApproved {
			return tx.SetFreelancer(ctx, fa.UserID, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fa.Status = status

	if err := s.events.Publish(ctx, events.TopicFreelancerReviewed, events.Event{
		EntityID: fa.ID, UserID: fa.UserID, Status: string(status),
	}); err != nil {
		logger.Warn("publish event failed", "topic", events.TopicFreelancerReviewed, "error", err)
	}
	if s.notifier != nil {
		s.notifier.SendToUser(fa.UserID, realtime.Message{Type: MsgReviewed, Data: fa})
	}
	return fa, nil
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, raw := range in {
		for _, part := range strings.Split(raw, ",") {
			sk := strings.TrimSpace(part)
			if sk == "" || seen[strings.ToLower(sk)] {
				continue
			}
			seen[strings.ToLower(sk)] = true
			out = append(out, sk)
		}
	}
	return out
}
