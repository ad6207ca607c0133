package tools

import (
	"fmt"
	"math"
	"time"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/calculations"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/validators"
)

// DateLayout - формат start_date
const DateLayout = "2006-01-02"

// Params - параметры вызова инструмента (декодированный JSON-объект)
type Params = map[string]interface{}

func invalidParam(name string) error {
	return fmt.Errorf("%w: неверный параметр: %s", validators.ErrValidation, name)
}

func floatParam(params Params, name string) (float64, error) {
	switch v := params[name].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, invalidParam(name)
	}
}

func optionalFloatParam(params Params, name string, def float64) (float64, error) {
	if _, ok := params[name]; !ok {
		return def, nil
	}
	return floatParam(params, name)
}

// intParam принимает целые значения, в том числе пришедшие из JSON как float64
func intParam(params Params, name string) (int, error) {
	switch v := params[name].(type) {
	case int:
		return v, nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return 0, invalidParam(name)
		}
		return int(v), nil
	default:
		return 0, invalidParam(name)
	}
}

func optionalIntParam(params Params, name string, def int) (int, error) {
	if _, ok := params[name]; !ok {
		return def, nil
	}
	return intParam(params, name)
}

func optionalStringParam(params Params, name, def string) (string, error) {
	raw, ok := params[name]
	if !ok {
		return def, nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", invalidParam(name)
	}
	return v, nil
}

func optionalBoolParam(params Params, name string, def bool) (bool, error) {
	raw, ok := params[name]
	if !ok {
		return def, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, invalidParam(name)
	}
	return v, nil
}

func objectParam(params Params, name string) (Params, error) {
	v, ok := params[name].(map[string]interface{})
	if !ok {
		return nil, invalidParam(name)
	}
	return v, nil
}

func startDateParam(params Params) (*time.Time, error) {
	s, err := optionalStringParam(params, "start_date", "")
	if err != nil || s == "" {
		return nil, err
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, invalidParam("start_date")
	}
	return &d, nil
}

// taxOptionsParam читает налоговый блок: calculate_tax, fund_type,
// slab_rate_percent, holding_period_months. Без calculate_tax налог не считается.
func taxOptionsParam(params Params) (*calculations.TaxOptions, error) {
	enabled, err := optionalBoolParam(params, "calculate_tax", false)
	if err != nil || !enabled {
		return nil, err
	}

	fundType, err := optionalStringParam(params, "fund_type", string(calculations.FundEquity))
	if err != nil {
		return nil, err
	}
	slab, err := optionalFloatParam(params, "slab_rate_percent", 30)
	if err != nil {
		return nil, err
	}
	holding, err := optionalIntParam(params, "holding_period_months", 0)
	if err != nil {
		return nil, err
	}

	return &calculations.TaxOptions{
		FundType:            calculations.FundType(fundType),
		SlabRatePercent:     slab,
		HoldingPeriodMonths: holding,
	}, nil
}
