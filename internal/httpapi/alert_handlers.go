package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/alert"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/auth"
)

type webhookRequest struct {
	URL string `json:"url"`
}

func (a *API) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	// Any authenticated operator sees the alert bar.
	items := a.alerts.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
		"as_of": time.Now().UTC(),
	})
}

func (a *API) handleAlertResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/alerts/")
	id, ok := strings.CutSuffix(path, "/resolve")
	if !ok || id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	al, found := a.alerts.Get(id)
	if !found {
		writeError(w, r, http.StatusNotFound, "alert not found")
		return
	}

	// Resolving is an edit on the panel the alert belongs to.
	user, ok := a.requireAccess(w, r, auth.Panel(al.Panel), auth.ActionEdit)
	if !ok {
		return
	}

	if err := a.alerts.Resolve(r.Context(), id, user.Email); err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "alert not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "resolved",
		"id":     id,
	})
}

func (a *API) handleAlertWebhook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := a.requireAccess(w, r, auth.PanelAudit, auth.ActionView); !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"url": a.alerts.Webhook(),
		})
	case http.MethodPut:
		user, ok := a.requireAccess(w, r, auth.PanelAudit, auth.ActionOverride)
		if !ok {
			return
		}
		var req webhookRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if err := a.alerts.SetWebhook(r.Context(), req.URL, user.Email); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "configured",
			"url":    a.alerts.Webhook(),
		})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

func (a *API) handleAlertNotify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	user, ok := a.requireAccess(w, r, auth.PanelAudit, auth.ActionOverride)
	if !ok {
		return
	}

	dispatched, err := a.alerts.Broadcast(r.Context(), user.Email)
	if err != nil {
		if errors.Is(err, alert.ErrNoWebhook) {
			writeError(w, r, http.StatusConflict, "webhook endpoint not configured")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":     "dispatching",
		"dispatched": dispatched,
	})
}
