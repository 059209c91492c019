package forms

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrInvalidNumber is returned by ParseNumberStrict.
var ErrInvalidNumber = errors.New("invalid number")

const (
	brazilianCurrencySymbol = "R$"
	usCurrencySymbol        = "$"
)

// ParseNumberStrict parses s as a finite decimal number. Surrounding
// whitespace is ignored.
func ParseNumberStrict(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidNumber)
	}

	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	return n, nil
}

// ParseNumber is the permissive form of ParseNumberStrict: anything that
// does not parse yields 0.
func ParseNumber(s string) float64 {
	n, err := ParseNumberStrict(s)
	if err != nil {
		return 0
	}

	return n
}

// NumberToString formats n with the fewest digits that parse back to n.
func NumberToString(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// ConvertBrazilianCurrencyToNumber parses amounts such as "R$ 1.000,50",
// where "." groups thousands and "," separates decimals. Invalid input
// yields 0.
func ConvertBrazilianCurrencyToNumber(s string) float64 {
	amount := stripCurrency(s, brazilianCurrencySymbol)
	amount = strings.ReplaceAll(amount, ".", "")
	amount = strings.ReplaceAll(amount, ",", ".")

	return ParseNumber(amount)
}

// ConvertUSCurrencyToNumber parses amounts such as "$1,000.50". Invalid
// input yields 0.
func ConvertUSCurrencyToNumber(s string) float64 {
	amount := stripCurrency(s, usCurrencySymbol)
	amount = strings.ReplaceAll(amount, ",", "")

	return ParseNumber(amount)
}

// FormatBrazilianCurrency formats n as "R$ 1.000,50".
func FormatBrazilianCurrency(n float64) string {
	return brazilianCurrencySymbol + " " + formatAmount(language.BrazilianPortuguese, n)
}

// FormatUSCurrency formats n as "$1,000.50".
func FormatUSCurrency(n float64) string {
	if n < 0 {
		return "-" + usCurrencySymbol + formatAmount(language.AmericanEnglish, -n)
	}

	return usCurrencySymbol + formatAmount(language.AmericanEnglish, n)
}

func formatAmount(tag language.Tag, n float64) string {
	return message.NewPrinter(tag).Sprint(number.Decimal(n, number.Scale(2)))
}

// stripCurrency drops the symbol and every kind of space, including the
// no-break spaces locale formatters emit.
func stripCurrency(s, symbol string) string {
	s = strings.Replace(s, symbol, "", 1)

	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0', '\u202f':
			return -1
		default:
			return r
		}
	}, s)
}
