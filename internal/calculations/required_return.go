package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-mutualfund-go/pkg/utils"
)

// RequiredReturn - годовая доходность, необходимая для достижения цели
type RequiredReturn struct {
	Principal                float64 `json:"principal"`
	TargetAmount             float64 `json:"target_amount"`
	Years                    int     `json:"years"`
	RequiredReturnPercentage float64 `json:"required_return_percentage"`
}

// RequiredAnnualReturn рассчитывает r = (FV/PV)^(1/n) - 1 в процентах
func RequiredAnnualReturn(principal, targetAmount float64, years int) (*RequiredReturn, error) {
	if !utils.AllFinite(principal, targetAmount) {
		return nil, fmt.Errorf("%w: суммы должны быть конечными", ErrInvalidParameter)
	}
	if principal <= 0 || years <= 0 {
		return nil, fmt.Errorf("%w: сумма и срок должны быть положительными", ErrInvalidParameter)
	}
	if targetAmount <= principal {
		return nil, fmt.Errorf("%w: целевая сумма должна превышать вложенную", ErrInvalidParameter)
	}

	rate := (math.Pow(targetAmount/principal, 1.0/float64(years)) - 1.0) * 100

	return &RequiredReturn{
		Principal:                utils.Round2(principal),
		TargetAmount:             utils.Round2(targetAmount),
		Years:                    years,
		RequiredReturnPercentage: utils.Round2(rate),
	}, nil
}
