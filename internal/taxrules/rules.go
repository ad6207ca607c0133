// Package taxrules хранит налоговые правила для прироста капитала по паевым
// фондам. Правила - это политика конкретного финансового года, а не
// константы алгоритма, поэтому они загружаются из YAML и версионируются.
package taxrules

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRules возвращается, если набор правил не проходит проверку
var ErrInvalidRules = errors.New("taxrules: invalid rules")

// Rules содержит налоговые правила одного финансового года
type Rules struct {
	FiscalYear  string      `yaml:"fiscal_year" json:"fiscal_year"`
	Description string      `yaml:"description" json:"description,omitempty"`
	Equity      EquityRules `yaml:"equity" json:"equity"`
	Debt        DebtRules   `yaml:"debt" json:"debt"`
}

// EquityRules - правила для equity-фондов (LTCG/STCG)
type EquityRules struct {
	LongTermThresholdMonths int     `yaml:"long_term_threshold_months" json:"long_term_threshold_months"`
	LTCGExemption           float64 `yaml:"ltcg_exemption" json:"ltcg_exemption"`
	LTCGRatePercent         float64 `yaml:"ltcg_rate_percent" json:"ltcg_rate_percent"`
	STCGRatePercent         float64 `yaml:"stcg_rate_percent" json:"stcg_rate_percent"`
}

// DebtRules - правила для debt-фондов: прирост облагается по ставке слэба инвестора
type DebtRules struct {
	SlabRatesPercent []float64    `yaml:"slab_rates_percent" json:"slab_rates_percent"`
	IncomeSlabs      []IncomeSlab `yaml:"income_slabs" json:"income_slabs"`
}

// IncomeSlab - граница подоходного слэба. Upper == 0 означает отсутствие верхней границы.
type IncomeSlab struct {
	Upper       float64 `yaml:"upper" json:"upper,omitempty"`
	RatePercent float64 `yaml:"rate_percent" json:"rate_percent"`
}

// IsLongTerm сообщает, считается ли срок владения долгосрочным
func (e EquityRules) IsLongTerm(holdingPeriodMonths int) bool {
	return holdingPeriodMonths > e.LongTermThresholdMonths
}

// HasSlab проверяет, что ставка входит в перечень допустимых слэбов
func (d DebtRules) HasSlab(ratePercent float64) bool {
	for _, r := range d.SlabRatesPercent {
		if r == ratePercent {
			return true
		}
	}
	return false
}

// SlabForIncome возвращает ставку слэба для годового дохода инвестора
func (d DebtRules) SlabForIncome(income float64) (float64, error) {
	if income < 0 || math.IsNaN(income) {
		return 0, fmt.Errorf("taxrules: income must be non-negative, got %v", income)
	}
	for _, s := range d.IncomeSlabs {
		if s.Upper == 0 || income <= s.Upper {
			return s.RatePercent, nil
		}
	}
	return 0, fmt.Errorf("taxrules: no income slab covers %v", income)
}

// Validate проверяет согласованность правил
func (r *Rules) Validate() error {
	if r.FiscalYear == "" {
		return fmt.Errorf("%w: fiscal_year is required", ErrInvalidRules)
	}
	e := r.Equity
	if e.LongTermThresholdMonths < 0 {
		return fmt.Errorf("%w: %s: long_term_threshold_months must be ≥ 0", ErrInvalidRules, r.FiscalYear)
	}
	if e.LTCGExemption < 0 {
		return fmt.Errorf("%w: %s: ltcg_exemption must be ≥ 0", ErrInvalidRules, r.FiscalYear)
	}
	if !validRate(e.LTCGRatePercent) || !validRate(e.STCGRatePercent) {
		return fmt.Errorf("%w: %s: equity rates must be in [0; 100]", ErrInvalidRules, r.FiscalYear)
	}
	if len(r.Debt.SlabRatesPercent) == 0 {
		return fmt.Errorf("%w: %s: slab_rates_percent is empty", ErrInvalidRules, r.FiscalYear)
	}
	for _, rate := range r.Debt.SlabRatesPercent {
		if !validRate(rate) {
			return fmt.Errorf("%w: %s: slab rate %v out of [0; 100]", ErrInvalidRules, r.FiscalYear, rate)
		}
	}

	prev := 0.0
	for i, s := range r.Debt.IncomeSlabs {
		if !validRate(s.RatePercent) {
			return fmt.Errorf("%w: %s: income slab %d rate out of [0; 100]", ErrInvalidRules, r.FiscalYear, i)
		}
		if s.Upper == 0 {
			if i != len(r.Debt.IncomeSlabs)-1 {
				return fmt.Errorf("%w: %s: only the last income slab may be unbounded", ErrInvalidRules, r.FiscalYear)
			}
			continue
		}
		if s.Upper <= prev {
			return fmt.Errorf("%w: %s: income slabs must be ascending", ErrInvalidRules, r.FiscalYear)
		}
		prev = s.Upper
	}
	return nil
}

func validRate(p float64) bool {
	return p >= 0 && p <= 100
}
