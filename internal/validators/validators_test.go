package validators

import (
	"errors"
	"testing"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/calculations"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/config"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/taxrules"
)

func TestValidators(t *testing.T) {
	cfg, _ := config.LoadConfig()
	rules := taxrules.Default()
	badDebt := &calculations.TaxOptions{FundType: calculations.FundDebt, SlabRatePercent: 7}

	tests := []struct {
		name      string
		check     func() error
		wantError bool
	}{
		{name: "valid sip amount", check: func() error { return CheckSIPAmount(cfg, 500) }},
		{name: "sip amount below minimum", check: func() error { return CheckSIPAmount(cfg, 499) }, wantError: true},
		{name: "valid principal", check: func() error { return CheckPrincipal(cfg, 1000) }},
		{name: "principal below minimum", check: func() error { return CheckPrincipal(cfg, 999.99) }, wantError: true},
		{name: "lumpsum amount by mode", check: func() error { return CheckAmount(cfg, calculations.ModeLumpsum, 800) }, wantError: true},
		{name: "sip amount by mode", check: func() error { return CheckAmount(cfg, calculations.ModeSIP, 800) }},
		{name: "valid rate", check: func() error { return CheckRate(cfg, 12) }},
		{name: "zero rate", check: func() error { return CheckRate(cfg, 0) }},
		{name: "rate above 30", check: func() error { return CheckRate(cfg, 30.5) }, wantError: true},
		{name: "negative rate", check: func() error { return CheckRate(cfg, -1) }, wantError: true},
		{name: "valid years", check: func() error { return CheckYears(cfg, 40) }},
		{name: "zero years", check: func() error { return CheckYears(cfg, 0) }, wantError: true},
		{name: "years above 40", check: func() error { return CheckYears(cfg, 41) }, wantError: true},
		{name: "valid phases", check: func() error { return CheckPhaseYears(cfg, 5, 0) }},
		{name: "zero invest phase left to calculator", check: func() error { return CheckPhaseYears(cfg, 0, 5) }},
		{name: "negative invest phase", check: func() error { return CheckPhaseYears(cfg, -1, 5) }, wantError: true},
		{name: "hold phase too long", check: func() error { return CheckPhaseYears(cfg, 5, 31) }, wantError: true},
		{name: "valid holding months", check: func() error { return CheckHoldingMonths(cfg, 12) }},
		{name: "negative holding months", check: func() error { return CheckHoldingMonths(cfg, -1) }, wantError: true},
		{name: "valid mode", check: func() error { return CheckMode(calculations.ModeSIP) }},
		{name: "unknown mode", check: func() error { return CheckMode("stp") }, wantError: true},
		{name: "valid fund type", check: func() error { return CheckFundType(calculations.FundDebt) }},
		{name: "unknown fund type", check: func() error { return CheckFundType("gold") }, wantError: true},
		{name: "valid slab", check: func() error { return CheckSlab(rules, 15) }},
		{name: "unknown slab", check: func() error { return CheckSlab(rules, 12) }, wantError: true},
		{name: "no tax options", check: func() error { return CheckTaxOptions(rules, nil) }},
		{name: "debt tax options with bad slab", check: func() error { return CheckTaxOptions(rules, badDebt) }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}
