package auth

// Role is the closed set of dashboard identities.
type Role string

const (
	RoleCEO                 Role = "CEO"
	RoleFinancialController Role = "FC"
)

// Panel identifies a permission-scoped dashboard section.
type Panel string

const (
	PanelDangote     Panel = "dangote"
	PanelElumelu     Panel = "elumelu"
	PanelAudit       Panel = "audit"
	PanelOlsavsky    Panel = "olsavsky"
	PanelBookkeeping Panel = "bookkeeping"
)

// Panels lists every panel in display order.
var Panels = []Panel{PanelDangote, PanelElumelu, PanelAudit, PanelOlsavsky, PanelBookkeeping}

// ParsePanel maps a path segment onto the closed panel set.
func ParsePanel(s string) (Panel, bool) {
	for _, p := range Panels {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Action is a capability kind within a panel.
type Action string

const (
	ActionView     Action = "view"
	ActionEdit     Action = "edit"
	ActionOverride Action = "override"
)

// ParseAction maps a request field onto the closed action set.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionView, ActionEdit, ActionOverride:
		return Action(s), true
	}
	return "", false
}

// Capability is the per-panel permission record granted to a user.
type Capability struct {
	View     bool `json:"view"`
	Edit     bool `json:"edit"`
	Override bool `json:"override,omitempty"`
}

// Allows reports whether the capability grants the given action.
// Unknown actions deny rather than error.
func (c Capability) Allows(action Action) bool {
	switch action {
	case ActionView:
		return c.View
	case ActionEdit:
		return c.Edit
	case ActionOverride:
		return c.Override
	default:
		return false
	}
}

// User represents an authenticated actor. Instances are created by the
// credential store and never mutated at runtime.
type User struct {
	Email       string               `json:"email"`
	Role        Role                 `json:"role"`
	Name        string               `json:"name"`
	Permissions map[Panel]Capability `json:"permissions"`
}
