package validators

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/calculations"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/config"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/taxrules"
	"github.com/cloud-ru/mcp-mutualfund-go/pkg/utils"
)

// ErrValidation оборачивает все ошибки проверки входных данных
var ErrValidation = errors.New("ошибка валидации")

// ValidateNumber проверяет, что число конечно и лежит в допустимом диапазоне
func ValidateNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%w: %s: значение не является конечным числом", ErrValidation, name)
	}
	if value < minInclusive {
		return fmt.Errorf("%w: %s: значение должно быть ≥ %.0f", ErrValidation, name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%w: %s: значение слишком велико (>%.0f)", ErrValidation, name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%w: %s: значение должно быть в диапазоне [%d; %d]", ErrValidation, name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckSIPAmount проверяет ежемесячный взнос SIP
func CheckSIPAmount(cfg *config.Config, amount float64) error {
	return ValidateNumber("monthly_amount", amount, cfg.MinSIPAmount, cfg.MaxAmount)
}

// CheckPrincipal проверяет разовую сумму Lumpsum
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidateNumber("principal", principal, cfg.MinLumpsumAmount, cfg.MaxAmount)
}

// CheckAmount проверяет сумму в зависимости от режима
func CheckAmount(cfg *config.Config, mode calculations.Mode, amount float64) error {
	if mode == calculations.ModeLumpsum {
		return CheckPrincipal(cfg, amount)
	}
	return CheckSIPAmount(cfg, amount)
}

// CheckRate проверяет ожидаемую годовую доходность
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidateNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckYears проверяет срок инвестирования в годах
func CheckYears(cfg *config.Config, years int) error {
	return ValidateIntRange("years", years, cfg.MinYears, cfg.MaxYears)
}

// CheckPhaseYears проверяет длительности фаз фазового расчета.
// invest_years == 0 пропускается: такой ввод отклоняет сам калькулятор как вырожденный.
func CheckPhaseYears(cfg *config.Config, investYears, holdYears int) error {
	if err := ValidateIntRange("invest_years", investYears, 0, cfg.MaxPhaseYears); err != nil {
		return err
	}
	return ValidateIntRange("hold_years", holdYears, 0, cfg.MaxPhaseYears)
}

// CheckHoldingMonths проверяет срок владения в месяцах
func CheckHoldingMonths(cfg *config.Config, months int) error {
	return ValidateIntRange("holding_period_months", months, 0, cfg.MaxHoldingMonths)
}

// CheckMode проверяет режим инвестирования
func CheckMode(mode calculations.Mode) error {
	switch mode {
	case calculations.ModeSIP, calculations.ModeLumpsum:
		return nil
	}
	return fmt.Errorf("%w: mode: ожидается %q или %q", ErrValidation, calculations.ModeSIP, calculations.ModeLumpsum)
}

// CheckFundType проверяет тип фонда
func CheckFundType(fundType calculations.FundType) error {
	switch fundType {
	case calculations.FundEquity, calculations.FundDebt:
		return nil
	}
	return fmt.Errorf("%w: fund_type: ожидается %q или %q", ErrValidation, calculations.FundEquity, calculations.FundDebt)
}

// CheckSlab проверяет, что ставка слэба есть в действующих правилах
func CheckSlab(rules *taxrules.Rules, slabRatePercent float64) error {
	if !rules.Debt.HasSlab(slabRatePercent) {
		return fmt.Errorf("%w: slab_rate_percent: допустимые значения %v", ErrValidation, rules.Debt.SlabRatesPercent)
	}
	return nil
}

// CheckTaxOptions проверяет налоговый блок запроса
func CheckTaxOptions(rules *taxrules.Rules, opts *calculations.TaxOptions) error {
	if opts == nil {
		return nil
	}
	if err := CheckFundType(opts.FundType); err != nil {
		return err
	}
	if opts.FundType == calculations.FundDebt {
		return CheckSlab(rules, opts.SlabRatePercent)
	}
	return nil
}
