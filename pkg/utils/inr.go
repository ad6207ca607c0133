package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	thousand = 1_000
	lakh     = 1_00_000
	crore    = 1_00_00_000
)

// FormatINR форматирует сумму в рупиях с индийской группировкой разрядов:
// 2323390.76 -> "₹23,23,390.76", 100000 -> "₹1,00,000"
func FormatINR(amount float64) string {
	if !IsFinite(amount) {
		return "₹" + strconv.FormatFloat(amount, 'f', -1, 64)
	}

	// знак берется после округления
	amount = Round2(amount)
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := math.Trunc(amount)
	cents := int64(math.Round((amount - whole) * 100))

	digits := groupIndian(strconv.FormatFloat(whole, 'f', 0, 64))
	if cents > 0 {
		return fmt.Sprintf("%s₹%s.%02d", sign, digits, cents)
	}
	return fmt.Sprintf("%s₹%s", sign, digits)
}

// IndianLabel возвращает краткую подпись суммы: "2 Cr", "23.2 L", "1.5K", "999".
// Знак суммы игнорируется.
func IndianLabel(amount float64) string {
	n := math.Trunc(math.Abs(amount))

	switch {
	case n >= crore:
		return compact(n/crore) + " Cr"
	case n >= lakh:
		return compact(n/lakh) + " L"
	case n >= thousand:
		return compact(n/thousand) + "K"
	default:
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
}

// FormatINRWithLabel объединяет FormatINR и IndianLabel: "₹1,00,000 (1 L)"
func FormatINRWithLabel(amount float64) string {
	return fmt.Sprintf("%s (%s)", FormatINR(amount), IndianLabel(amount))
}

func compact(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// groupIndian расставляет запятые: последние три цифры, затем группы по две
func groupIndian(s string) string {
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(append(groups, tail), ",")
}
