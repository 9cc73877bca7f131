package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"attendance-bot/internal/browser"
	"attendance-bot/internal/domain/models"
	"attendance-bot/internal/lib/credentials"
	"attendance-bot/internal/lib/logger/sl"
)

var (
	ErrMissingCredentials = errors.New("missing credentials in environment variables")
	ErrPunchFailed        = errors.New("punch failed")
	ErrBrowserSetup       = errors.New("failed to setup browser")
)

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Driver
type Driver interface {
	Punch(ctx context.Context, creds models.Credentials, action models.Action) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Storage
type Storage interface {
	SavePunch(ctx context.Context, punch models.Punch) (int64, error)
	Punches(ctx context.Context, limit int) ([]models.Punch, error)
	Punch(ctx context.Context, id int64) (models.Punch, error)
}

// CredentialsFunc supplies the portal login for a single punch.
type CredentialsFunc func() (models.Credentials, error)

type Service struct {
	log         *slog.Logger
	driver      Driver
	storage     Storage
	credentials CredentialsFunc
	now         func() time.Time
}

func New(log *slog.Logger, driver Driver, storage Storage) *Service {
	return &Service{
		log:         log,
		driver:      driver,
		storage:     storage,
		credentials: credentials.FromEnv,
		now:         time.Now,
	}
}

// WithCredentials replaces the environment as the credential source.
func (s *Service) WithCredentials(fn CredentialsFunc) *Service {
	s.credentials = fn
	return s
}

func (s *Service) SignIn(ctx context.Context) (string, error) {
	return s.punch(ctx, models.ActionSignIn)
}

func (s *Service) SignOut(ctx context.Context) (string, error) {
	return s.punch(ctx, models.ActionSignOut)
}

func (s *Service) punch(ctx context.Context, action models.Action) (string, error) {
	const op = "service.attendance.punch"

	log := s.log.With(slog.String("op", op), slog.String("action", string(action)))

	creds, err := s.credentials()
	if err != nil {
		log.Error("failed to read credentials", sl.Error(err))
		return "", fmt.Errorf("%s: %w", op, ErrMissingCredentials)
	}

	started := s.now()

	// Send to browser
	err = s.driver.Punch(ctx, creds, action)
	if err != nil {
		log.Error("punch failed", sl.Error(err))
		s.record(action, models.PunchFailed, err.Error(), started, log)
		if errors.Is(err, browser.ErrLaunch) {
			return "", fmt.Errorf("%s: %w: %w", op, ErrBrowserSetup, err)
		}
		return "", fmt.Errorf("%s: %w: %w", op, ErrPunchFailed, err)
	}

	msg := action.Title() + " successful"
	s.record(action, models.PunchSucceeded, msg, started, log)

	log.Info("punch done", slog.Duration("took", s.now().Sub(started)))

	return msg, nil
}

// record keeps history best-effort; the punch outcome stands either way.
func (s *Service) record(action models.Action, status, msg string, at time.Time, log *slog.Logger) {
	// The request may have been canceled, the history row is still wanted.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.storage.SavePunch(ctx, models.Punch{
		Action:    action,
		Status:    status,
		Message:   msg,
		CreatedAt: at,
	})
	if err != nil {
		log.Warn("failed to record punch", sl.Error(err))
	}
}

func (s *Service) History(ctx context.Context, limit int) ([]models.Punch, error) {
	const op = "service.attendance.History"

	log := s.log.With(slog.String("op", op))

	punches, err := s.storage.Punches(ctx, limit)
	if err != nil {
		log.Error("failed to get punches", sl.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return punches, nil
}

func (s *Service) Punch(ctx context.Context, id int64) (models.Punch, error) {
	const op = "service.attendance.Punch"

	log := s.log.With(slog.String("op", op))

	p, err := s.storage.Punch(ctx, id)
	if err != nil {
		log.Error("failed to get punch", sl.Error(err), slog.Int64("id", id))
		return models.Punch{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}
