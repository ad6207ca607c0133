package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/taxrules"
	"github.com/cloud-ru/mcp-mutualfund-go/pkg/utils"
)

// Request - полностью заданный запрос на расчет одной стратегии.
// Tax == nil отключает налоговый расчет.
type Request struct {
	Label  string           `json:"label,omitempty"`
	Params PhasedParameters `json:"params"`
	Tax    *TaxOptions      `json:"tax,omitempty"`
}

// Outcome - результат одного запроса, помеченный стратегией
type Outcome struct {
	Label    string `json:"label"`
	Strategy Mode   `json:"strategy"`
	CalculationResult
}

// EffectiveMaturity возвращает итог после налога, если налог считался
func (o Outcome) EffectiveMaturity() float64 {
	if o.Tax != nil {
		return o.Tax.PostTaxMaturity
	}
	return o.Projection.FinalValue
}

// ComparisonResult - два независимых результата рядом друг с другом
type ComparisonResult struct {
	A Outcome `json:"a"`
	B Outcome `json:"b"`
}

// BothTaxed сообщает, считался ли налог для обеих сторон
func (c *ComparisonResult) BothTaxed() bool {
	return c.A.Tax != nil && c.B.Tax != nil
}

// Difference возвращает разницу итогов A - B. Итоги после налога сравниваются,
// только если налог считался для обеих сторон, иначе сравниваются итоги до налога.
func (c *ComparisonResult) Difference() float64 {
	if c.BothTaxed() {
		return utils.Round2(c.A.EffectiveMaturity() - c.B.EffectiveMaturity())
	}
	return utils.Round2(c.A.Projection.FinalValue - c.B.Projection.FinalValue)
}

// Better возвращает метку стратегии с большим итогом или "equal"
func (c *ComparisonResult) Better() string {
	switch d := c.Difference(); {
	case d > 0:
		return c.A.Label
	case d < 0:
		return c.B.Label
	default:
		return "equal"
	}
}

// Compare выполняет два запроса независимо друг от друга
func Compare(rules *taxrules.Rules, a, b Request) (*ComparisonResult, error) {
	outA, err := Run(rules, a)
	if err != nil {
		return nil, fmt.Errorf("запрос a: %w", err)
	}
	outB, err := Run(rules, b)
	if err != nil {
		return nil, fmt.Errorf("запрос b: %w", err)
	}

	if outA.Label == outB.Label {
		outA.Label += " (A)"
		outB.Label += " (B)"
	}

	return &ComparisonResult{A: *outA, B: *outB}, nil
}

// CompareStrategies сравнивает SIP и Lumpsum при одинаковых ставке и сроке
func CompareStrategies(rules *taxrules.Rules, monthlySIP, lumpsum, annualRatePercent float64, years int,
	tax *TaxOptions) (*ComparisonResult, error) {

	sip := Request{
		Label: "SIP",
		Params: PhasedParameters{
			Mode: ModeSIP, Amount: monthlySIP, AnnualRatePercent: annualRatePercent, InvestYears: years,
		},
		Tax: tax,
	}
	ls := Request{
		Label: "Lumpsum",
		Params: PhasedParameters{
			Mode: ModeLumpsum, Amount: lumpsum, AnnualRatePercent: annualRatePercent, InvestYears: years,
		},
		Tax: tax,
	}

	return Compare(rules, sip, ls)
}

// Run выполняет один запрос: рост, разбивка и, при необходимости, налог
func Run(rules *taxrules.Rules, req Request) (*Outcome, error) {
	result, err := ComputePhased(req.Params)
	if err != nil {
		return nil, err
	}

	if req.Tax != nil {
		tax, err := TaxProjection(rules, result, *req.Tax)
		if err != nil {
			return nil, err
		}
		result.Tax = tax
	}

	label := req.Label
	if label == "" {
		label = defaultLabel(req.Params.Mode)
	}

	return &Outcome{
		Label:             label,
		Strategy:          req.Params.Mode,
		CalculationResult: *result,
	}, nil
}

func defaultLabel(m Mode) string {
	if m == ModeLumpsum {
		return "Lumpsum"
	}
	return "SIP"
}
