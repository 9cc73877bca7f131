package attendance

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"attendance-bot/internal/domain/models"
	resp "attendance-bot/internal/lib/api/response"
	"attendance-bot/internal/lib/logger/sl"
	"attendance-bot/internal/service/attendance"
	"attendance-bot/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

//go:generate go run github.com/vektra/mockery/v2@v2.28.2 --name=Service
type Service interface {
	SignIn(ctx context.Context) (string, error)
	SignOut(ctx context.Context) (string, error)
	History(ctx context.Context, limit int) ([]models.Punch, error)
	Punch(ctx context.Context, id int64) (models.Punch, error)
}

type Attendance struct {
	log     *slog.Logger
	service Service
	secret  string
}

// New builds the attendance routes. An empty secret leaves them public.
func New(log *slog.Logger, service Service, secret string) *Attendance {
	return &Attendance{
		log:     log,
		service: service,
		secret:  secret,
	}
}

func (a *Attendance) Register() func(r chi.Router) {
	return func(r chi.Router) {
		if a.secret != "" {
			tokenAuth := jwtauth.New("HS256", []byte(a.secret), nil)
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator(tokenAuth))
		}

		r.Post("/sign-in", a.signIn)
		r.Post("/sign-out", a.signOut)
		r.Get("/punches", a.history)
		r.Get("/punches/{id}", a.punchByID)
	}
}

func (a *Attendance) signIn(w http.ResponseWriter, r *http.Request) {
	a.punch(w, r, models.ActionSignIn, a.service.SignIn)
}

func (a *Attendance) signOut(w http.ResponseWriter, r *http.Request) {
	a.punch(w, r, models.ActionSignOut, a.service.SignOut)
}

func (a *Attendance) punch(w http.ResponseWriter, r *http.Request, action models.Action, run func(context.Context) (string, error)) {
	const op = "handlers.attendance.punch"

	log := a.log.With(
		slog.String("op", op),
		slog.String("action", string(action)),
	)

	// Send to service layer
	msg, err := run(r.Context())
	if err != nil {
		render.Status(r, http.StatusInternalServerError)

		if errors.Is(err, attendance.ErrMissingCredentials) {
			log.Error("credentials are not configured", sl.Error(err))
			render.JSON(w, r, resp.Err("Missing credentials in environment variables"))
			return
		}

		if errors.Is(err, attendance.ErrBrowserSetup) {
			log.Error("browser setup failed", sl.Error(err))
			render.JSON(w, r, resp.Err("Failed to setup browser"))
			return
		}

		log.Error("punch failed", sl.Error(err))
		render.JSON(w, r, resp.Err(action.Title()+" failed"))
		return
	}

	// Write response
	render.JSON(w, r, resp.OK(msg))
}

func (a *Attendance) history(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.history"

	log := a.log.With(slog.String("op", op))

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			log.Debug("invalid limit", slog.String("limit", raw))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Err("invalid limit: must be between 1 and "+strconv.Itoa(maxLimit)))
			return
		}
		limit = n
	}

	punches, err := a.service.History(r.Context(), limit)
	if err != nil {
		log.Error("failed to get punch history", sl.Error(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Err("internal error"))
		return
	}

	if punches == nil {
		punches = []models.Punch{}
	}

	render.JSON(w, r, resp.History{
		Status:  resp.StatusSuccess,
		Punches: punches,
	})
}

func (a *Attendance) punchByID(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.punchByID"

	log := a.log.With(slog.String("op", op))

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Debug("failed to get \"id\" url param", sl.Error(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, resp.Err("invalid id"))
		return
	}

	p, err := a.service.Punch(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPunchNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, resp.Err("punch not found"))
			return
		}

		log.Error("failed to get punch", sl.Error(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, resp.Err("internal error"))
		return
	}

	render.JSON(w, r, resp.Response{
		Status: resp.StatusSuccess,
		Punch:  &p,
	})
}
