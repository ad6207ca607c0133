package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/calculations"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/config"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/taxrules"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/validators"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	return Deps{
		Config: cfg,
		Rules:  taxrules.Default(),
		Tracer: noop.NewTracerProvider().Tracer("test"),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRegistry_MatchesDescriptions(t *testing.T) {
	reg := Registry(testDeps(t))
	for _, name := range Names() {
		if reg[name] == nil {
			t.Errorf("tool %q has a description but no handler", name)
		}
	}
	if len(reg) != len(Descriptions) {
		t.Errorf("expected %d tools, got %d", len(Descriptions), len(reg))
	}
}

func TestSIPCalculatorHandler(t *testing.T) {
	handler := SIPCalculatorHandler(testDeps(t))

	tests := []struct {
		name        string
		params      map[string]interface{}
		wantErr     error
		checkResult func(*testing.T, *calculations.CalculationResult)
	}{
		{
			name: "reference sip with equity tax",
			params: map[string]interface{}{
				"monthly_amount":      10000.0,
				"annual_rate_percent": 12.0,
				"years":               10.0,
				"calculate_tax":       true,
				"fund_type":           "equity",
			},
			checkResult: func(t *testing.T, r *calculations.CalculationResult) {
				if math.Abs(r.Projection.FinalValue-2323391) > 1 {
					t.Errorf("unexpected final value %f", r.Projection.FinalValue)
				}
				if r.Tax == nil {
					t.Fatal("expected tax result")
				}
				if r.Tax.Classification != calculations.ClassLTCG {
					t.Errorf("expected LTCG, got %s", r.Tax.Classification)
				}
				wantTax := (r.Projection.TotalGain - 125000) * 0.125
				if math.Abs(r.Tax.TaxAmount-wantTax) > 0.01 {
					t.Errorf("expected tax %f, got %f", wantTax, r.Tax.TaxAmount)
				}
			},
		},
		{
			name: "no tax by default",
			params: map[string]interface{}{
				"monthly_amount":      500.0,
				"annual_rate_percent": 0.0,
				"years":               1,
				"start_date":          "2026-04-01",
			},
			checkResult: func(t *testing.T, r *calculations.CalculationResult) {
				if r.Tax != nil {
					t.Error("tax should not be calculated")
				}
				if r.Projection.FinalValue != 6000 {
					t.Errorf("expected 6000, got %f", r.Projection.FinalValue)
				}
				if r.Breakdown[0].PeriodEnd == nil {
					t.Error("expected period end date")
				}
			},
		},
		{
			name:    "amount below minimum",
			params:  map[string]interface{}{"monthly_amount": 100.0, "annual_rate_percent": 12.0, "years": 10.0},
			wantErr: validators.ErrValidation,
		},
		{
			name:    "missing rate",
			params:  map[string]interface{}{"monthly_amount": 1000.0, "years": 10.0},
			wantErr: validators.ErrValidation,
		},
		{
			name:    "fractional years",
			params:  map[string]interface{}{"monthly_amount": 1000.0, "annual_rate_percent": 12.0, "years": 2.5},
			wantErr: validators.ErrValidation,
		},
		{
			name:    "bad start date",
			params:  map[string]interface{}{"monthly_amount": 1000.0, "annual_rate_percent": 12.0, "years": 2.0, "start_date": "01/04/2026"},
			wantErr: validators.ErrValidation,
		},
		{
			name: "debt with unknown slab",
			params: map[string]interface{}{
				"monthly_amount":      1000.0,
				"annual_rate_percent": 12.0,
				"years":               2.0,
				"calculate_tax":       true,
				"fund_type":           "debt",
				"slab_rate_percent":   12.0,
			},
			wantErr: validators.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := handler(context.Background(), tt.params)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handler error = %v", err)
			}
			tt.checkResult(t, out.(*calculations.CalculationResult))
		})
	}
}

func TestLumpsumCalculatorHandler_DebtTax(t *testing.T) {
	handler := LumpsumCalculatorHandler(testDeps(t))

	out, err := handler(context.Background(), map[string]interface{}{
		"principal":           100000.0,
		"annual_rate_percent": 10.0,
		"years":               2.0,
		"calculate_tax":       true,
		"fund_type":           "debt",
		"slab_rate_percent":   30.0,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	r := out.(*calculations.CalculationResult)
	if r.Projection.TotalGain != 21000 {
		t.Errorf("expected gain 21000, got %f", r.Projection.TotalGain)
	}
	if r.Tax.TaxAmount != 6300 {
		t.Errorf("expected tax 6300, got %f", r.Tax.TaxAmount)
	}
	if r.Tax.PostTaxMaturity != 114700 {
		t.Errorf("expected post-tax maturity 114700, got %f", r.Tax.PostTaxMaturity)
	}
}

func TestPhasedCalculatorHandler(t *testing.T) {
	handler := PhasedCalculatorHandler(testDeps(t))

	out, err := handler(context.Background(), map[string]interface{}{
		"mode":                "sip",
		"amount":              5000.0,
		"annual_rate_percent": 12.0,
		"invest_years":        5.0,
		"hold_years":          3.0,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	r := out.(*calculations.CalculationResult)
	if len(r.Breakdown) != 8 || r.Breakdown[7].Phase != calculations.PhaseHold {
		t.Errorf("unexpected breakdown: %+v", r.Breakdown)
	}

	_, err = handler(context.Background(), map[string]interface{}{
		"mode":                "lumpsum",
		"amount":              5000.0,
		"annual_rate_percent": 12.0,
		"invest_years":        0.0,
		"hold_years":          3.0,
	})
	if !errors.Is(err, calculations.ErrDegenerateInput) {
		t.Errorf("expected ErrDegenerateInput, got %v", err)
	}
	if ErrorKind(err) != "degenerate" {
		t.Errorf("expected degenerate kind, got %s", ErrorKind(err))
	}
}

func TestTaxCalculatorHandler(t *testing.T) {
	handler := TaxCalculatorHandler(testDeps(t))

	tests := []struct {
		name    string
		params  map[string]interface{}
		wantTax float64
		wantErr bool
	}{
		{
			name:    "equity long-term",
			params:  map[string]interface{}{"gain": 200000.0, "fund_type": "equity", "holding_period_months": 36.0},
			wantTax: 9375,
		},
		{
			name:    "equity short-term",
			params:  map[string]interface{}{"gain": 50000.0, "fund_type": "equity", "holding_period_months": 6.0},
			wantTax: 10000,
		},
		{
			name:    "debt 30%",
			params:  map[string]interface{}{"gain": 100000.0, "fund_type": "debt", "slab_rate_percent": 30.0},
			wantTax: 30000,
		},
		{
			name:    "negative gain",
			params:  map[string]interface{}{"gain": -5000.0, "fund_type": "debt", "slab_rate_percent": 20.0},
			wantTax: 0,
		},
		{
			name:    "equity without holding period",
			params:  map[string]interface{}{"gain": 1000.0, "fund_type": "equity"},
			wantErr: true,
		},
		{
			name:    "unknown fund type",
			params:  map[string]interface{}{"gain": 1000.0, "fund_type": "gold"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := handler(context.Background(), tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("handler error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := out.(*calculations.TaxResult).TaxAmount; got != tt.wantTax {
				t.Errorf("expected tax %f, got %f", tt.wantTax, got)
			}
		})
	}
}

func TestCompareInvestmentsHandler(t *testing.T) {
	handler := CompareInvestmentsHandler(testDeps(t))

	out, err := handler(context.Background(), map[string]interface{}{
		"a": map[string]interface{}{
			"label":               "SIP",
			"mode":                "sip",
			"amount":              5000.0,
			"annual_rate_percent": 12.0,
			"years":               10.0,
			"calculate_tax":       true,
		},
		"b": map[string]interface{}{
			"label":               "Lumpsum",
			"mode":                "lumpsum",
			"amount":              600000.0,
			"annual_rate_percent": 12.0,
			"years":               10.0,
			"calculate_tax":       true,
		},
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	resp := out.(*ComparisonResponse)
	if resp.A.Strategy != calculations.ModeSIP || resp.B.Strategy != calculations.ModeLumpsum {
		t.Errorf("unexpected strategies: %s / %s", resp.A.Strategy, resp.B.Strategy)
	}
	// при одинаковой вложенной сумме Lumpsum растет дольше
	if resp.BetterOption != "Lumpsum" {
		t.Errorf("expected Lumpsum to be better, got %q", resp.BetterOption)
	}
	if resp.Difference >= 0 {
		t.Errorf("expected negative difference, got %f", resp.Difference)
	}

	_, err = handler(context.Background(), map[string]interface{}{"a": map[string]interface{}{}})
	if !errors.Is(err, validators.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRequiredReturnHandler(t *testing.T) {
	handler := RequiredReturnHandler(testDeps(t))

	out, err := handler(context.Background(), map[string]interface{}{
		"principal":     100000.0,
		"target_amount": 200000.0,
		"years":         6.0,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got := out.(*calculations.RequiredReturn).RequiredReturnPercentage; got != 12.25 {
		t.Errorf("expected 12.25, got %f", got)
	}

	_, err = handler(context.Background(), map[string]interface{}{
		"principal":     100000.0,
		"target_amount": 50000.0,
		"years":         6.0,
	})
	if !errors.Is(err, calculations.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestHandlerErrorMessages(t *testing.T) {
	deps := testDeps(t)

	tests := []struct {
		name       string
		handler    ToolHandler
		params     map[string]interface{}
		wantPrefix string
		wantErr    error
	}{
		{
			name:       "validation",
			handler:    SIPCalculatorHandler(deps),
			params:     map[string]interface{}{"monthly_amount": 1000.0, "annual_rate_percent": 99.0, "years": 10.0},
			wantPrefix: "неверные параметры: ошибка валидации: annual_rate_percent: ",
			wantErr:    validators.ErrValidation,
		},
		{
			name:       "missing parameter",
			handler:    LumpsumCalculatorHandler(deps),
			params:     map[string]interface{}{"annual_rate_percent": 12.0, "years": 10.0},
			wantPrefix: "неверные параметры: ошибка валидации: неверный параметр: principal",
			wantErr:    validators.ErrValidation,
		},
		{
			name:    "degenerate",
			handler: PhasedCalculatorHandler(deps),
			params: map[string]interface{}{
				"mode": "sip", "amount": 1000.0, "annual_rate_percent": 12.0, "invest_years": 0.0, "hold_years": 2.0,
			},
			wantPrefix: "неверные параметры: calculations: вырожденные входные данные: ",
			wantErr:    calculations.ErrDegenerateInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.handler(context.Background(), tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.HasPrefix(err.Error(), tt.wantPrefix) {
				t.Errorf("unexpected message %q, want prefix %q", err.Error(), tt.wantPrefix)
			}
		})
	}
}
