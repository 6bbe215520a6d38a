// Package alert carries the critical-alert board and its webhook
// notifications. Delivery is fire-and-forget: the caller never blocks on a
// webhook, and every delivery outcome is recorded in the audit trail.
package alert

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/audit"
)

var (
	ErrNotFound  = errors.New("alert: not found")
	ErrNoWebhook = errors.New("alert: webhook endpoint not configured")
)

// Severity grades an alert.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Alert is one critical finding surfaced on the command bar.
type Alert struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Amount     string    `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
	Resolved   bool      `json:"resolved"`
	Severity   Severity  `json:"severity"`
	Panel      string    `json:"panel"`
	ActionPath string    `json:"action_path"`
}

// Service owns the alert board, the configured webhook endpoint and the
// dispatch of notifications.
type Service struct {
	mu         sync.Mutex
	alerts     []Alert
	webhookURL string
	notifier   *Notifier
	trail      *audit.Log
}

func NewService(trail *audit.Log, notifier *Notifier) *Service {
	return &Service{
		alerts:   seedAlerts(time.Now().UTC()),
		notifier: notifier,
		trail:    trail,
	}
}

// List returns the board in seed order.
func (s *Service) List() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Get returns a single alert by id.
func (s *Service) Get(id string) (Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.ID == id {
			return a, true
		}
	}
	return Alert{}, false
}

// Resolve marks an alert handled and records who did it.
func (s *Service) Resolve(ctx context.Context, id, actor string) error {
	s.mu.Lock()
	var resolved *Alert
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].Resolved = true
			resolved = &s.alerts[i]
			break
		}
	}
	s.mu.Unlock()

	if resolved == nil {
		return ErrNotFound
	}
	s.trail.Append(ctx, audit.Event{
		Action: fmt.Sprintf("Resolved alert: %s (%s)", resolved.ID, resolved.Type),
		Actor:  actor,
	})
	return nil
}

// SetWebhook updates the outbound endpoint. An empty URL disables delivery.
func (s *Service) SetWebhook(ctx context.Context, rawURL, actor string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL != "" {
		u, err := url.Parse(rawURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("alert: invalid webhook url")
		}
	}
	s.mu.Lock()
	s.webhookURL = rawURL
	s.mu.Unlock()

	action := "Webhook endpoint configured"
	if rawURL == "" {
		action = "Webhook endpoint cleared"
	}
	s.trail.Append(ctx, audit.Event{Action: action, Actor: actor})
	return nil
}

// Webhook returns the configured endpoint, empty when disabled.
func (s *Service) Webhook() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.webhookURL
}

// Broadcast dispatches every unresolved alert to the webhook endpoint. The
// sends happen in the background with their own deadline; each outcome is
// appended to the audit trail. Returns the number of dispatched alerts.
func (s *Service) Broadcast(ctx context.Context, actor string) (int, error) {
	s.mu.Lock()
	endpoint := s.webhookURL
	var pending []Alert
	for _, a := range s.alerts {
		if !a.Resolved {
			pending = append(pending, a)
		}
	}
	s.mu.Unlock()

	if endpoint == "" {
		return 0, ErrNoWebhook
	}

	origin := "webhook-dispatch"
	for _, a := range pending {
		a := a
		go func() {
			sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			sendCtx = audit.WithOrigin(sendCtx, origin)
			if err := s.notifier.Send(sendCtx, endpoint, a); err != nil {
				s.trail.Append(sendCtx, audit.Event{
					Action: fmt.Sprintf("Webhook alert failed: %s", a.Type),
					Actor:  actor,
				})
				return
			}
			s.trail.Append(sendCtx, audit.Event{
				Action: fmt.Sprintf("Webhook alert sent: %s", a.Type),
				Actor:  actor,
			})
		}()
	}
	return len(pending), nil
}

func seedAlerts(now time.Time) []Alert {
	return []Alert{
		{ID: "alert-001", Panel: "dangote", Type: "DA_CASH_EXPOSURE", Title: "DA Cash Exposure Detected", Message: "DA Ikeja-7 cash exposure detected - policy violated ₦5.00", Amount: "₦5.00", Timestamp: now, Severity: SeverityHigh, ActionPath: "Resolve in Dangote Panel → Cash Exposure Map"},
		{ID: "alert-002", Panel: "bookkeeping", Type: "UNPAID_DELIVERY", Title: "Unpaid Delivered Order", Message: "Order 101567 delivered - no payment matched ₦32,750", Amount: "₦32,750", Timestamp: now, Severity: SeverityHigh, ActionPath: "Resolve in Bookkeeping Panel → Daily Receivables"},
		{ID: "alert-003", Panel: "audit", Type: "REFUND_NO_TRAIL", Title: "Refund Without System Trail", Message: "Refund flagged - no supporting trail ₦75,000", Amount: "₦75,000", Timestamp: now, Severity: SeverityHigh, ActionPath: "Resolve in Audit Panel → Escalated Casebook"},
		{ID: "alert-004", Panel: "elumelu", Type: "BANK_MISMATCH", Title: "Bank Reconciliation Mismatch", Message: "Reconciliation mismatch - unexplained gap ₦45,200", Amount: "₦45,200", Timestamp: now, Severity: SeverityMedium, ActionPath: "Resolve in Elumelu Panel → Bank Reconciliation"},
		{ID: "alert-005", Panel: "olsavsky", Type: "BONUS_KPI_BREACH", Title: "Bonus Trigger Without KPI Match", Message: "Bonus breach - CPL target not met for ₦80 payout", Amount: "₦80", Timestamp: now, Severity: SeverityMedium, ActionPath: "Resolve in Olsavsky Panel → Efficiency Leak Detector"},
		{ID: "alert-006", Panel: "dangote", Type: "LOW_DELIVERY_RATE", Title: "Delivery Rate Below 50%", Message: "Delivery rate alert - team conversion dropped to 47%", Amount: "N/A", Timestamp: now, Severity: SeverityMedium, ActionPath: "Resolve in Dangote Panel → Turnover Velocity"},
		{ID: "alert-007", Panel: "dangote", Type: "IDLE_INVENTORY", Title: "Idle Inventory > 7 Days", Message: "Bin Lagos-Island-3 idle > 7 days - ₦280,000 stock at risk", Amount: "₦280,000", Timestamp: now, Severity: SeverityHigh, ActionPath: "Resolve in Dangote Panel → Unsellable Stock Tracker"},
	}
}
