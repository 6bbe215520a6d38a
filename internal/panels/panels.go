// Package panels holds the dashboard datasets served behind the permission
// gate. The figures are the demo operating picture of the Nigerian
// logistics/retail operation; amounts are naira in kobo (minor units, no
// floats). External systems (Zoho, Moniepoint) appear only as source labels.
package panels

import (
	"time"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/auth"
)

// Meta describes a panel for navigation and display.
type Meta struct {
	Panel auth.Panel `json:"panel"`
	Title string     `json:"title"`
	Focus string     `json:"focus"`
}

// DAExposure is a delivery agent holding unremitted cash.
type DAExposure struct {
	DA           string `json:"da"`
	Zone         string `json:"zone"`
	ExposureKobo int64  `json:"exposure_kobo"`
	Status       string `json:"status"`
}

// StockBin is inventory sitting idle in a DA bin.
type StockBin struct {
	Bin       string `json:"bin"`
	ValueKobo int64  `json:"value_kobo"`
	IdleDays  int    `json:"idle_days"`
	AtRisk    bool   `json:"at_risk"`
}

// DangotePanel covers cash exposure and unsellable stock.
type DangotePanel struct {
	CashExposure    []DAExposure `json:"cash_exposure"`
	UnsellableStock []StockBin   `json:"unsellable_stock"`
}

// ReconLine is one bank reconciliation row.
type ReconLine struct {
	Source   string `json:"source"`
	BookKobo int64  `json:"book_kobo"`
	BankKobo int64  `json:"bank_kobo"`
	GapKobo  int64  `json:"gap_kobo"`
	Status   string `json:"status"`
}

// ElumeluPanel covers bank reconciliation discipline.
type ElumeluPanel struct {
	Reconciliation []ReconLine `json:"reconciliation"`
}

// BonusRow is one staff bonus eligibility decision input.
type BonusRow struct {
	Staff     string `json:"staff"`
	Role      string `json:"role"`
	KPIScore  int    `json:"kpi_score"`
	BonusKobo int64  `json:"bonus_kobo"`
	Eligible  bool   `json:"eligible"`
	Reason    string `json:"reason"`
}

// EfficiencyLeak is a spend line running past its target.
type EfficiencyLeak struct {
	Metric     string `json:"metric"`
	TargetKobo int64  `json:"target_kobo"`
	ActualKobo int64  `json:"actual_kobo"`
}

// OlsavskyPanel covers efficiency leaks and bonus eligibility.
type OlsavskyPanel struct {
	Leaks            []EfficiencyLeak `json:"leaks"`
	BonusEligibility []BonusRow       `json:"bonus_eligibility"`
}

// Receivable is a delivered order awaiting a matched payment.
type Receivable struct {
	OrderID     string    `json:"order_id"`
	DA          string    `json:"da"`
	AmountKobo  int64     `json:"amount_kobo"`
	DeliveredAt time.Time `json:"delivered_at"`
	Matched     bool      `json:"matched"`
}

// BookkeepingPanel covers daily receivables.
type BookkeepingPanel struct {
	Receivables []Receivable `json:"receivables"`
}

// Case is an escalated audit casebook item.
type Case struct {
	ID         string `json:"id"`
	Issue      string `json:"issue"`
	AmountKobo int64  `json:"amount_kobo"`
	RiskScore  int    `json:"risk_score"`
	Status     string `json:"status"`
}

// StaffRisk scores a staff member's override behaviour.
type StaffRisk struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Actions   int    `json:"actions"`
	Overrides int    `json:"overrides"`
	Status    string `json:"status"`
}

// AuditPanel covers the escalated casebook and staff risk scores.
type AuditPanel struct {
	Casebook  []Case      `json:"casebook"`
	StaffRisk []StaffRisk `json:"staff_risk"`
}

var metas = map[auth.Panel]Meta{
	auth.PanelDangote:     {Panel: auth.PanelDangote, Title: "Dangote Panel", Focus: "Cash exposure and stock discipline"},
	auth.PanelElumelu:     {Panel: auth.PanelElumelu, Title: "Elumelu Panel", Focus: "Bank reconciliation"},
	auth.PanelAudit:       {Panel: auth.PanelAudit, Title: "Audit Panel", Focus: "Escalated casebook and overrides"},
	auth.PanelOlsavsky:    {Panel: auth.PanelOlsavsky, Title: "Olsavsky Panel", Focus: "Efficiency leaks and bonus control"},
	auth.PanelBookkeeping: {Panel: auth.PanelBookkeeping, Title: "Bookkeeping Panel", Focus: "Daily receivables"},
}

// MetaFor returns display metadata for a panel.
func MetaFor(p auth.Panel) (Meta, bool) {
	m, ok := metas[p]
	return m, ok
}

// Dataset returns the demo dataset for a panel.
func Dataset(p auth.Panel) (any, bool) {
	switch p {
	case auth.PanelDangote:
		return dangote(), true
	case auth.PanelElumelu:
		return elumelu(), true
	case auth.PanelAudit:
		return auditPanel(), true
	case auth.PanelOlsavsky:
		return olsavsky(), true
	case auth.PanelBookkeeping:
		return bookkeeping(), true
	}
	return nil, false
}

func dangote() DangotePanel {
	return DangotePanel{
		CashExposure: []DAExposure{
			{DA: "Ikeja-7", Zone: "Lagos", ExposureKobo: 500, Status: "policy_violated"},
			{DA: "Lagos-3 (Chioma)", Zone: "Lagos", ExposureKobo: 34_750_000, Status: "blocked"},
			{DA: "Abuja-2 (Ibrahim)", Zone: "Abuja", ExposureKobo: 1_250_000, Status: "watch"},
			{DA: "PH-1 (Grace)", Zone: "Port Harcourt", ExposureKobo: 8_900_000, Status: "escalated"},
		},
		UnsellableStock: []StockBin{
			{Bin: "Lagos-Island-3", ValueKobo: 28_000_000, IdleDays: 9, AtRisk: true},
			{Bin: "Ikeja-Main", ValueKobo: 4_200_000, IdleDays: 3, AtRisk: false},
			{Bin: "Abuja-Central", ValueKobo: 11_500_000, IdleDays: 6, AtRisk: false},
		},
	}
}

func elumelu() ElumeluPanel {
	return ElumeluPanel{
		Reconciliation: []ReconLine{
			{Source: "Moniepoint", BookKobo: 145_000_000, BankKobo: 140_480_000, GapKobo: 4_520_000, Status: "mismatch"},
			{Source: "Zoho Books", BookKobo: 98_300_000, BankKobo: 98_300_000, GapKobo: 0, Status: "matched"},
			{Source: "Cash Deposits", BookKobo: 22_750_000, BankKobo: 21_500_000, GapKobo: 1_250_000, Status: "mismatch"},
		},
	}
}

func olsavsky() OlsavskyPanel {
	return OlsavskyPanel{
		Leaks: []EfficiencyLeak{
			{Metric: "Cost per lead", TargetKobo: 6_500, ActualKobo: 8_000},
			{Metric: "Delivery cost per order", TargetKobo: 95_000, ActualKobo: 112_000},
		},
		BonusEligibility: []BonusRow{
			{Staff: "Adunni Okafor", Role: "Telesales", KPIScore: 89, BonusKobo: 2_500_000, Eligible: true, Reason: "KPI targets met, all validations passed"},
			{Staff: "Kemi Adeleke", Role: "Telesales", KPIScore: 72, BonusKobo: 2_000_000, Eligible: false, Reason: "Delivery rate below 80% threshold"},
		},
	}
}

func bookkeeping() BookkeepingPanel {
	day := time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC)
	return BookkeepingPanel{
		Receivables: []Receivable{
			{OrderID: "101567", DA: "Ikeja-7", AmountKobo: 3_275_000, DeliveredAt: day.Add(10 * time.Hour), Matched: false},
			{OrderID: "VV-2024-001", DA: "Lagos-1 (Adebayo)", AmountKobo: 1_500_000, DeliveredAt: day.Add(9 * time.Hour), Matched: true},
			{OrderID: "VV-2024-003", DA: "PH-1 (Grace)", AmountKobo: 1_800_000, DeliveredAt: day.Add(13 * time.Hour), Matched: false},
		},
	}
}

func auditPanel() AuditPanel {
	return AuditPanel{
		Casebook: []Case{
			{ID: "CASE-001", Issue: "Refund flagged - no supporting trail", AmountKobo: 7_500_000, RiskScore: 95, Status: "open"},
			{ID: "CASE-002", Issue: "Bin value exceeds threshold", AmountKobo: 34_750_000, RiskScore: 78, Status: "escalated"},
			{ID: "CASE-003", Issue: "OTP entered before payment received", AmountKobo: 1_800_000, RiskScore: 95, Status: "open"},
		},
		StaffRisk: []StaffRisk{
			{Name: "Lagos-1 (Adebayo)", Score: 92, Actions: 15, Overrides: 0, Status: "safe"},
			{Name: "Lagos-3 (Chioma)", Score: 65, Actions: 28, Overrides: 3, Status: "watchlist"},
			{Name: "Abuja-2 (Ibrahim)", Score: 88, Actions: 12, Overrides: 1, Status: "safe"},
			{Name: "PH-1 (Grace)", Score: 45, Actions: 35, Overrides: 8, Status: "suspended"},
		},
	}
}
