package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/calculations"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/config"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/metrics"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/taxrules"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/validators"
)

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Deps - общие зависимости обработчиков
type Deps struct {
	Config *config.Config
	Rules  *taxrules.Rules
	Tracer trace.Tracer
	Logger *slog.Logger
}

// Descriptions - краткие описания инструментов
var Descriptions = map[string]string{
	"sip_calculator":      "Maturity of a monthly SIP with optional tax impact",
	"lumpsum_calculator":  "Maturity of a one-time investment with optional tax impact",
	"phased_calculator":   "Invest for N years, then hold without new contributions",
	"tax_calculator":      "Equity (LTCG/STCG) or debt (slab) tax on a capital gain",
	"compare_investments": "Side-by-side comparison of two calculation requests",
	"required_return":     "Annual return needed to grow a principal to a target",
}

// Registry возвращает все обработчики по именам
func Registry(deps Deps) map[string]ToolHandler {
	return map[string]ToolHandler{
		"sip_calculator":      SIPCalculatorHandler(deps),
		"lumpsum_calculator":  LumpsumCalculatorHandler(deps),
		"phased_calculator":   PhasedCalculatorHandler(deps),
		"tax_calculator":      TaxCalculatorHandler(deps),
		"compare_investments": CompareInvestmentsHandler(deps),
		"required_return":     RequiredReturnHandler(deps),
	}
}

// Names возвращает отсортированные имена инструментов
func Names() []string {
	names := make([]string, 0, len(Descriptions))
	for name := range Descriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrorKind классифицирует ошибку обработчика: validation, degenerate или calculation
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, calculations.ErrDegenerateInput):
		return "degenerate"
	case errors.Is(err, validators.ErrValidation), errors.Is(err, calculations.ErrInvalidParameter):
		return "validation"
	default:
		return "calculation"
	}
}

type runFunc func(ctx context.Context, span trace.Span, params Params) (interface{}, error)

// instrumented оборачивает расчет спаном, метриками и логированием ошибок
func instrumented(deps Deps, toolName string, run runFunc) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, span := deps.Tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		result, err := run(ctx, span, params)
		if err != nil {
			kind := ErrorKind(err)

			span.RecordError(err)
			span.SetStatus(codes.Error, kind)
			span.SetAttributes(attribute.String("error", kind+"_error"))
			metrics.ToolCalls.WithLabelValues(toolName, kind+"_error").Inc()
			metrics.CalculationErrors.WithLabelValues(toolName, kind).Inc()
			metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()

			if deps.Logger != nil {
				deps.Logger.WarnContext(ctx, "tool call failed", "tool", toolName, "error_type", kind, "err", err)
			}

			if kind == "calculation" {
				return nil, fmt.Errorf("ошибка при выполнении расчета: %w", err)
			}
			return nil, fmt.Errorf("неверные параметры: %w", err)
		}

		span.SetAttributes(attribute.Bool("success", true))
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
		metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()

		return result, nil
	}
}

// SIPCalculatorHandler обрабатывает запрос на расчет SIP
func SIPCalculatorHandler(deps Deps) ToolHandler {
	return instrumented(deps, "sip_calculator", func(ctx context.Context, span trace.Span, params Params) (interface{}, error) {
		amount, err := floatParam(params, "monthly_amount")
		if err != nil {
			return nil, err
		}
		return simpleCalculation(deps, span, params, calculations.ModeSIP, amount)
	})
}

// LumpsumCalculatorHandler обрабатывает запрос на расчет разового вложения
func LumpsumCalculatorHandler(deps Deps) ToolHandler {
	return instrumented(deps, "lumpsum_calculator", func(ctx context.Context, span trace.Span, params Params) (interface{}, error) {
		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, err
		}
		return simpleCalculation(deps, span, params, calculations.ModeLumpsum, principal)
	})
}

func simpleCalculation(deps Deps, span trace.Span, params Params, mode calculations.Mode, amount float64) (interface{}, error) {
	annualRatePercent, err := floatParam(params, "annual_rate_percent")
	if err != nil {
		return nil, err
	}
	years, err := intParam(params, "years")
	if err != nil {
		return nil, err
	}
	startDate, err := startDateParam(params)
	if err != nil {
		return nil, err
	}
	taxOpts, err := taxOptionsParam(params)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("mode", string(mode)),
		attribute.Float64("amount", amount),
		attribute.Float64("annual_rate_percent", annualRatePercent),
		attribute.Int("years", years),
		attribute.Bool("calculate_tax", taxOpts != nil),
	)

	if err := validators.CheckAmount(deps.Config, mode, amount); err != nil {
		return nil, err
	}
	if err := validators.CheckRate(deps.Config, annualRatePercent); err != nil {
		return nil, err
	}
	if err := validators.CheckYears(deps.Config, years); err != nil {
		return nil, err
	}
	if err := validators.CheckTaxOptions(deps.Rules, taxOpts); err != nil {
		return nil, err
	}

	ip := calculations.InvestmentParameters{
		Amount:            amount,
		AnnualRatePercent: annualRatePercent,
		Years:             years,
		StartDate:         startDate,
	}

	var result *calculations.CalculationResult
	if mode == calculations.ModeLumpsum {
		result, err = calculations.ComputeLumpsum(ip)
	} else {
		result, err = calculations.ComputeSIP(ip)
	}
	if err != nil {
		return nil, err
	}

	if err := applyTax(deps, span, result, taxOpts); err != nil {
		return nil, err
	}
	return result, nil
}

// PhasedCalculatorHandler обрабатывает запрос "инвестирование, затем удержание"
func PhasedCalculatorHandler(deps Deps) ToolHandler {
	return instrumented(deps, "phased_calculator", func(ctx context.Context, span trace.Span, params Params) (interface{}, error) {
		pp, taxOpts, err := phasedParams(deps, params)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.String("mode", string(pp.Mode)),
			attribute.Float64("amount", pp.Amount),
			attribute.Float64("annual_rate_percent", pp.AnnualRatePercent),
			attribute.Int("invest_years", pp.InvestYears),
			attribute.Int("hold_years", pp.HoldYears),
			attribute.Bool("calculate_tax", taxOpts != nil),
		)

		result, err := calculations.ComputePhased(pp)
		if err != nil {
			return nil, err
		}

		if err := applyTax(deps, span, result, taxOpts); err != nil {
			return nil, err
		}
		return result, nil
	})
}

// phasedParams извлекает и проверяет параметры фазового расчета.
// Вместо invest_years допускается years (для простых запросов в сравнении).
func phasedParams(deps Deps, params Params) (calculations.PhasedParameters, *calculations.TaxOptions, error) {
	var pp calculations.PhasedParameters

	mode, err := optionalStringParam(params, "mode", "")
	if err != nil {
		return pp, nil, err
	}
	pp.Mode = calculations.Mode(mode)
	if err := validators.CheckMode(pp.Mode); err != nil {
		return pp, nil, err
	}

	if pp.Amount, err = floatParam(params, "amount"); err != nil {
		return pp, nil, err
	}
	if pp.AnnualRatePercent, err = floatParam(params, "annual_rate_percent"); err != nil {
		return pp, nil, err
	}

	if _, ok := params["invest_years"]; ok {
		pp.InvestYears, err = intParam(params, "invest_years")
	} else {
		pp.InvestYears, err = intParam(params, "years")
	}
	if err != nil {
		return pp, nil, err
	}
	if pp.HoldYears, err = optionalIntParam(params, "hold_years", 0); err != nil {
		return pp, nil, err
	}
	if pp.StartDate, err = startDateParam(params); err != nil {
		return pp, nil, err
	}

	taxOpts, err := taxOptionsParam(params)
	if err != nil {
		return pp, nil, err
	}

	if err := validators.CheckAmount(deps.Config, pp.Mode, pp.Amount); err != nil {
		return pp, nil, err
	}
	if err := validators.CheckRate(deps.Config, pp.AnnualRatePercent); err != nil {
		return pp, nil, err
	}
	if err := validators.CheckPhaseYears(deps.Config, pp.InvestYears, pp.HoldYears); err != nil {
		return pp, nil, err
	}
	if err := validators.CheckTaxOptions(deps.Rules, taxOpts); err != nil {
		return pp, nil, err
	}

	return pp, taxOpts, nil
}

func applyTax(deps Deps, span trace.Span, result *calculations.CalculationResult, opts *calculations.TaxOptions) error {
	if opts == nil {
		return nil
	}

	tax, err := calculations.TaxProjection(deps.Rules, result, *opts)
	if err != nil {
		return err
	}
	result.Tax = tax

	metrics.TaxComputations.WithLabelValues(string(tax.FundType), string(tax.Classification)).Inc()
	span.SetAttributes(
		attribute.String("tax_classification", string(tax.Classification)),
		attribute.Float64("tax_amount", tax.TaxAmount),
	)
	return nil
}

// TaxCalculatorHandler обрабатывает запрос на расчет налога с прироста
func TaxCalculatorHandler(deps Deps) ToolHandler {
	return instrumented(deps, "tax_calculator", func(ctx context.Context, span trace.Span, params Params) (interface{}, error) {
		gain, err := floatParam(params, "gain")
		if err != nil {
			return nil, err
		}
		fundType, err := optionalStringParam(params, "fund_type", "")
		if err != nil {
			return nil, err
		}
		preTaxMaturity, err := optionalFloatParam(params, "pre_tax_maturity", 0)
		if err != nil {
			return nil, err
		}

		in := calculations.TaxInput{
			Gain:           gain,
			FundType:       calculations.FundType(fundType),
			PreTaxMaturity: preTaxMaturity,
		}

		if err := validators.ValidateNumber("gain", gain, -math.MaxFloat64, math.MaxFloat64); err != nil {
			return nil, err
		}
		if err := validators.ValidateNumber("pre_tax_maturity", preTaxMaturity, 0, math.MaxFloat64); err != nil {
			return nil, err
		}
		if err := validators.CheckFundType(in.FundType); err != nil {
			return nil, err
		}

		if in.FundType == calculations.FundEquity {
			if in.HoldingPeriodMonths, err = intParam(params, "holding_period_months"); err != nil {
				return nil, err
			}
			if err := validators.CheckHoldingMonths(deps.Config, in.HoldingPeriodMonths); err != nil {
				return nil, err
			}
		} else {
			if in.SlabRatePercent, err = floatParam(params, "slab_rate_percent"); err != nil {
				return nil, err
			}
			if err := validators.CheckSlab(deps.Rules, in.SlabRatePercent); err != nil {
				return nil, err
			}
		}

		span.SetAttributes(
			attribute.Float64("gain", gain),
			attribute.String("fund_type", fundType),
			attribute.Int("holding_period_months", in.HoldingPeriodMonths),
			attribute.Float64("slab_rate_percent", in.SlabRatePercent),
		)

		result, err := calculations.ComputeTax(deps.Rules, in)
		if err != nil {
			return nil, err
		}

		metrics.TaxComputations.WithLabelValues(string(result.FundType), string(result.Classification)).Inc()
		span.SetAttributes(attribute.Float64("tax_amount", result.TaxAmount))

		return result, nil
	})
}

// ComparisonResponse дополняет сравнение разницей итогов и лучшим вариантом
type ComparisonResponse struct {
	*calculations.ComparisonResult
	Difference   float64 `json:"difference"`
	BetterOption string  `json:"better_option"`
}

// CompareInvestmentsHandler обрабатывает запрос на сравнение двух расчетов
func CompareInvestmentsHandler(deps Deps) ToolHandler {
	return instrumented(deps, "compare_investments", func(ctx context.Context, span trace.Span, params Params) (interface{}, error) {
		a, err := comparisonRequest(deps, params, "a")
		if err != nil {
			return nil, err
		}
		b, err := comparisonRequest(deps, params, "b")
		if err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.String("a.mode", string(a.Params.Mode)),
			attribute.String("b.mode", string(b.Params.Mode)),
		)

		result, err := calculations.Compare(deps.Rules, a, b)
		if err != nil {
			return nil, err
		}

		resp := &ComparisonResponse{
			ComparisonResult: result,
			Difference:       result.Difference(),
			BetterOption:     result.Better(),
		}
		span.SetAttributes(
			attribute.Float64("difference", resp.Difference),
			attribute.String("better_option", resp.BetterOption),
		)

		return resp, nil
	})
}

func comparisonRequest(deps Deps, params Params, name string) (calculations.Request, error) {
	obj, err := objectParam(params, name)
	if err != nil {
		return calculations.Request{}, err
	}

	label, err := optionalStringParam(obj, "label", "")
	if err != nil {
		return calculations.Request{}, err
	}
	pp, taxOpts, err := phasedParams(deps, obj)
	if err != nil {
		return calculations.Request{}, fmt.Errorf("%s: %w", name, err)
	}

	return calculations.Request{Label: label, Params: pp, Tax: taxOpts}, nil
}

// RequiredReturnHandler обрабатывает запрос на расчет требуемой доходности
func RequiredReturnHandler(deps Deps) ToolHandler {
	return instrumented(deps, "required_return", func(ctx context.Context, span trace.Span, params Params) (interface{}, error) {
		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, err
		}
		target, err := floatParam(params, "target_amount")
		if err != nil {
			return nil, err
		}
		years, err := intParam(params, "years")
		if err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Float64("target_amount", target),
			attribute.Int("years", years),
		)

		if err := validators.CheckPrincipal(deps.Config, principal); err != nil {
			return nil, err
		}
		if err := validators.ValidateNumber("target_amount", target, 0, math.MaxFloat64); err != nil {
			return nil, err
		}
		if err := validators.CheckYears(deps.Config, years); err != nil {
			return nil, err
		}

		result, err := calculations.RequiredAnnualReturn(principal, target, years)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(attribute.Float64("required_return_percentage", result.RequiredReturnPercentage))
		return result, nil
	})
}
