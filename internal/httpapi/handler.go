// Package httpapi exposes the service over a JSON HTTP surface. Sessions are
// stored in the snapshot itself: login records the current user, and every
// subsequent command runs as that user's role.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fleetcore/internal/core"
	"fleetcore/pkg/domain"
)

// Handler routes the fleet API.
type Handler struct {
	service *core.Service
}

// NewHandler constructs the API handler.
func NewHandler(service *core.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodPost && path == "/api/v1/login":
		h.handleLogin(w, r)
	case r.Method == http.MethodPost && path == "/api/v1/logout":
		h.handleLogout(w, r)
	case path == "/api/v1/state" && r.Method == http.MethodGet:
		h.withRole(w, r, func(role domain.Role) {
			writeJSON(w, http.StatusOK, h.service.Snapshot())
		})
	case path == "/api/v1/kpis" && r.Method == http.MethodGet:
		h.withRole(w, r, func(domain.Role) {
			writeJSON(w, http.StatusOK, h.service.Views().KPIs())
		})
	case path == "/api/v1/calendar" && r.Method == http.MethodGet:
		h.handleCalendar(w, r)
	case path == "/api/v1/ships" || strings.HasPrefix(path, "/api/v1/ships/"):
		h.handleShips(w, r, strings.TrimPrefix(path, "/api/v1/ships"))
	case path == "/api/v1/components" || strings.HasPrefix(path, "/api/v1/components/"):
		h.handleComponents(w, r, strings.TrimPrefix(path, "/api/v1/components"))
	case path == "/api/v1/jobs" || strings.HasPrefix(path, "/api/v1/jobs/"):
		h.handleJobs(w, r, strings.TrimPrefix(path, "/api/v1/jobs"))
	case path == "/api/v1/notifications" || strings.HasPrefix(path, "/api/v1/notifications/"):
		h.handleNotifications(w, r, strings.TrimPrefix(path, "/api/v1/notifications"))
	default:
		http.NotFound(w, r)
	}
}

// withRole resolves the session user's role and rejects unauthenticated
// requests.
func (h *Handler) withRole(w http.ResponseWriter, r *http.Request, fn func(domain.Role)) {
	snapshot := h.service.Snapshot()
	user, ok := snapshot.CurrentUser()
	if !snapshot.Authenticated || !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	fn(user.Role)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string      `json:"id"`
	Role  domain.Role `json:"role"`
	Email string      `json:"email"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, core.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.writeCommandError(w, err)
		return
	}
	writeResult(w, http.StatusOK, loginResponse{ID: user.ID, Role: user.Role, Email: user.Email}, res)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.withRole(w, r, func(role domain.Role) {
		res, err := h.service.Logout(r.Context(), role)
		if err != nil {
			h.writeCommandError(w, err)
			return
		}
		writeResult(w, http.StatusOK, map[string]any{"ok": true}, res)
	})
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	h.withRole(w, r, func(domain.Role) {
		day := time.Now().UTC()
		if q := r.URL.Query().Get("date"); q != "" {
			parsed, err := domain.ParseDate(q)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid date")
				return
			}
			day = parsed.Time()
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"date": domain.DateOf(day),
			"week": core.WeekOf(day),
			"jobs": h.service.Views().JobsOnDate(day),
		})
	})
}

func (h *Handler) handleShips(w http.ResponseWriter, r *http.Request, rest string) {
	id := strings.TrimPrefix(rest, "/")
	h.withRole(w, r, func(role domain.Role) {
		switch {
		case r.Method == http.MethodGet && id == "":
			writeJSON(w, http.StatusOK, h.service.Snapshot().Ships)
		case r.Method == http.MethodPost && id == "":
			var ship domain.Ship
			if err := json.NewDecoder(r.Body).Decode(&ship); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			snapshot, res, err := h.service.Apply(r.Context(), domain.CreateShip{Ship: ship}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			writeResult(w, http.StatusCreated, snapshot.Ships[len(snapshot.Ships)-1], res)
		case r.Method == http.MethodPut && id != "":
			var ship domain.Ship
			if err := json.NewDecoder(r.Body).Decode(&ship); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			ship.ID = id
			snapshot, res, err := h.service.Apply(r.Context(), domain.UpdateShip{Ship: ship}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			updated, _ := snapshot.FindShip(id)
			writeResult(w, http.StatusOK, updated, res)
		case r.Method == http.MethodDelete && id != "":
			_, res, err := h.service.Apply(r.Context(), domain.DeleteShip{ID: id}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			writeResult(w, http.StatusOK, map[string]any{"deleted": id}, res)
		default:
			http.NotFound(w, r)
		}
	})
}

func (h *Handler) handleComponents(w http.ResponseWriter, r *http.Request, rest string) {
	id := strings.TrimPrefix(rest, "/")
	h.withRole(w, r, func(role domain.Role) {
		switch {
		case r.Method == http.MethodGet && id == "":
			writeJSON(w, http.StatusOK, h.service.Views().Components())
		case r.Method == http.MethodPost && id == "":
			var comp domain.Component
			if err := json.NewDecoder(r.Body).Decode(&comp); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			snapshot, res, err := h.service.Apply(r.Context(), domain.CreateComponent{Component: comp}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			writeResult(w, http.StatusCreated, snapshot.Components[len(snapshot.Components)-1], res)
		case r.Method == http.MethodPut && id != "":
			var comp domain.Component
			if err := json.NewDecoder(r.Body).Decode(&comp); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			comp.ID = id
			snapshot, res, err := h.service.Apply(r.Context(), domain.UpdateComponent{Component: comp}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			updated, _ := snapshot.FindComponent(id)
			writeResult(w, http.StatusOK, updated, res)
		case r.Method == http.MethodDelete && id != "":
			_, res, err := h.service.Apply(r.Context(), domain.DeleteComponent{ID: id}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			writeResult(w, http.StatusOK, map[string]any{"deleted": id}, res)
		default:
			http.NotFound(w, r)
		}
	})
}

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request, rest string) {
	id := strings.TrimPrefix(rest, "/")
	h.withRole(w, r, func(role domain.Role) {
		switch {
		case r.Method == http.MethodGet && id == "":
			writeJSON(w, http.StatusOK, h.service.Views().Jobs())
		case r.Method == http.MethodPost && id == "":
			var job domain.Job
			if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			snapshot, res, err := h.service.Apply(r.Context(), domain.CreateJob{Job: job}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			writeResult(w, http.StatusCreated, snapshot.Jobs[len(snapshot.Jobs)-1], res)
		case r.Method == http.MethodPut && id != "":
			var job domain.Job
			if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			job.ID = id
			snapshot, res, err := h.service.Apply(r.Context(), domain.UpdateJob{Job: job}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			updated, _ := snapshot.FindJob(id)
			writeResult(w, http.StatusOK, updated, res)
		case r.Method == http.MethodDelete && id != "":
			_, res, err := h.service.Apply(r.Context(), domain.DeleteJob{ID: id}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			writeResult(w, http.StatusOK, map[string]any{"deleted": id}, res)
		default:
			http.NotFound(w, r)
		}
	})
}

func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request, rest string) {
	h.withRole(w, r, func(role domain.Role) {
		switch {
		case r.Method == http.MethodGet && rest == "":
			writeJSON(w, http.StatusOK, h.service.Snapshot().Notifications)
		case r.Method == http.MethodGet && rest == "/unread":
			writeJSON(w, http.StatusOK, h.service.Views().Unread())
		case r.Method == http.MethodPost && strings.HasSuffix(rest, "/read"):
			id := strings.TrimSuffix(strings.TrimPrefix(rest, "/"), "/read")
			snapshot, res, err := h.service.Apply(r.Context(), domain.MarkNotificationRead{ID: id}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			updated, _ := snapshot.FindNotification(id)
			writeResult(w, http.StatusOK, updated, res)
		case r.Method == http.MethodDelete && rest == "":
			_, res, err := h.service.Apply(r.Context(), domain.ClearNotifications{}, role)
			if err != nil {
				h.writeCommandError(w, err)
				return
			}
			writeResult(w, http.StatusOK, map[string]any{"cleared": true}, res)
		default:
			http.NotFound(w, r)
		}
	})
}

// writeCommandError maps domain error kinds to HTTP statuses.
func (h *Handler) writeCommandError(w http.ResponseWriter, err error) {
	var (
		validation domain.ValidationError
		integrity  domain.ReferentialIntegrityError
		permission domain.PermissionDeniedError
		notFound   domain.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &integrity):
		writeError(w, http.StatusConflict, integrity.Error())
	case errors.As(err, &permission):
		writeError(w, http.StatusForbidden, permission.Error())
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeResult(w http.ResponseWriter, status int, payload any, res domain.Result) {
	if res.HasWarnings() {
		writeJSON(w, status, map[string]any{"data": payload, "warnings": res.Warnings})
		return
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
