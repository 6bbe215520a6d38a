package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/audit"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/auth"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/panels"
)

type panelActionRequest struct {
	Action      string `json:"action"`
	Description string `json:"description"`
}

func (a *API) handlePanelResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/panels/")
	if path == "" || strings.Count(path, "/") > 1 {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if strings.HasSuffix(path, "/actions") {
		name := strings.TrimSuffix(path, "/actions")
		panel, ok := auth.ParsePanel(name)
		if !ok {
			writeError(w, r, http.StatusNotFound, "unknown panel")
			return
		}
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.panelAction(w, r, panel)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	panel, ok := auth.ParsePanel(path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown panel")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	a.viewPanel(w, r, panel)
}

func (a *API) viewPanel(w http.ResponseWriter, r *http.Request, panel auth.Panel) {
	if _, ok := a.requireAccess(w, r, panel, auth.ActionView); !ok {
		return
	}
	meta, _ := panels.MetaFor(panel)
	data, _ := panels.Dataset(panel)
	writeJSON(w, http.StatusOK, map[string]any{
		"panel": panel,
		"meta":  meta,
		"data":  data,
	})
}

func (a *API) panelAction(w http.ResponseWriter, r *http.Request, panel auth.Panel) {
	var req panelActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	action, ok := auth.ParseAction(req.Action)
	if !ok || action == auth.ActionView {
		writeError(w, r, http.StatusBadRequest, "action must be edit or override")
		return
	}

	user, ok := a.requireAccess(w, r, panel, action)
	if !ok {
		return
	}

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		desc = fmt.Sprintf("%s action on %s panel", action, panel)
	}
	a.trail.Append(r.Context(), audit.Event{
		Action: desc,
		Panel:  string(panel),
		Actor:  user.Email,
	})

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status": "recorded",
		"panel":  panel,
		"action": action,
	})
}
