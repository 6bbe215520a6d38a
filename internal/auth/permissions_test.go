package auth

import (
	"context"
	"testing"
)

func TestCanAccessDeniesNilUser(t *testing.T) {
	for _, panel := range Panels {
		for _, action := range []Action{ActionView, ActionEdit, ActionOverride} {
			if CanAccess(nil, panel, action) {
				t.Fatalf("nil user granted %s on %s", action, panel)
			}
		}
	}
}

func TestCanAccessCEOAuditCapabilities(t *testing.T) {
	creds, err := DefaultCredentials()
	if err != nil {
		t.Fatalf("DefaultCredentials: %v", err)
	}
	entry, ok := creds.Lookup(context.Background(), "admin@vitalvida.ng")
	if !ok {
		t.Fatalf("CEO entry missing")
	}
	ceo := &entry.User

	if CanAccess(ceo, PanelAudit, ActionEdit) {
		t.Fatalf("CEO must not edit the audit panel")
	}
	if !CanAccess(ceo, PanelAudit, ActionOverride) {
		t.Fatalf("CEO must hold audit override")
	}
	if !CanAccess(ceo, PanelDangote, ActionView) {
		t.Fatalf("CEO must view dangote")
	}
	if CanAccess(ceo, PanelDangote, ActionEdit) {
		t.Fatalf("CEO is read-only on dangote")
	}
}

func TestCanAccessDeniesMissingPanelEntry(t *testing.T) {
	user := &User{
		Email:       "partial@vitalvida.ng",
		Role:        RoleFinancialController,
		Permissions: map[Panel]Capability{PanelDangote: {View: true}},
	}
	if CanAccess(user, PanelAudit, ActionView) {
		t.Fatalf("missing panel entry must deny, not grant")
	}
	if !CanAccess(user, PanelDangote, ActionView) {
		t.Fatalf("present entry must grant")
	}
	// An absent override key on a view/edit-only record denies.
	if CanAccess(user, PanelDangote, ActionOverride) {
		t.Fatalf("absent override capability must deny")
	}
}

func TestParsePanelAndAction(t *testing.T) {
	if p, ok := ParsePanel("bookkeeping"); !ok || p != PanelBookkeeping {
		t.Fatalf("ParsePanel(bookkeeping) = %v, %v", p, ok)
	}
	if _, ok := ParsePanel("treasury"); ok {
		t.Fatalf("unknown panel must not parse")
	}
	if a, ok := ParseAction("override"); !ok || a != ActionOverride {
		t.Fatalf("ParseAction(override) = %v, %v", a, ok)
	}
	if _, ok := ParseAction("delete"); ok {
		t.Fatalf("unknown action must not parse")
	}
}
