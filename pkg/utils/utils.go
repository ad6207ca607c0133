// Package utils содержит общие числовые помощники и форматирование сумм в рупиях
package utils

import "math"

// Round2 округляет сумму до пайсы (2 знака), половина - от нуля
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite сообщает, что значение не NaN и не ±Inf
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// AllFinite проверяет IsFinite для каждого значения
func AllFinite(values ...float64) bool {
	for _, v := range values {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// Percentage возвращает part / whole * 100 с округлением до 2 знаков.
// При whole ≤ 0 возвращает 0.
func Percentage(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return Round2(part / whole * 100)
}
