package panels

import (
	"testing"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/auth"
)

func TestEveryPanelHasMetaAndDataset(t *testing.T) {
	for _, p := range auth.Panels {
		if _, ok := MetaFor(p); !ok {
			t.Fatalf("missing meta for %s", p)
		}
		if _, ok := Dataset(p); !ok {
			t.Fatalf("missing dataset for %s", p)
		}
	}
}

func TestUnknownPanelHasNoDataset(t *testing.T) {
	if _, ok := Dataset(auth.Panel("treasury")); ok {
		t.Fatalf("unknown panel must not resolve")
	}
	if _, ok := MetaFor(auth.Panel("treasury")); ok {
		t.Fatalf("unknown panel must not have meta")
	}
}

func TestDangoteAmountsAreKobo(t *testing.T) {
	d := dangote()
	if len(d.CashExposure) == 0 || len(d.UnsellableStock) == 0 {
		t.Fatalf("dangote dataset must not be empty")
	}
	for _, row := range d.CashExposure {
		if row.ExposureKobo < 0 {
			t.Fatalf("negative exposure for %s", row.DA)
		}
	}
}
