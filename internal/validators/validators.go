// Package validators приводит текст полей ввода к числам и проверяет результат.
package validators

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotANumber = errors.New("not a number")

// ParseNumber - приведение строки к числу: пробелы по краям отбрасываются, пустая строка - 0,
// поддерживаются десятичная и экспоненциальная запись, префиксы 0x/0o/0b и Infinity.
func ParseNumber(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, nil
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xXoObB", rune(s[1])) {
		if strings.ContainsRune(s, '_') {
			return 0, ErrNotANumber
		}
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, ErrNotANumber
		}
		return float64(v), nil
	}
	for _, r := range s {
		// ParseFloat понимает inf/nan, подчёркивания и hex-float - всё это здесь не число
		if !strings.ContainsRune("0123456789.eE+-", r) {
			return 0, ErrNotANumber
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	return v, nil
}

// ParseAmount - сумма перевода; результат должен быть конечным числом
func ParseAmount(input string) (decimal.Decimal, error) {
	v, err := ParseNumber(input)
	if err != nil {
		return decimal.Zero, err
	}
	if math.IsInf(v, 0) {
		return decimal.Zero, ErrNotANumber
	}
	return decimal.NewFromFloat(v), nil
}

// ParseLoanAmount - сумма кредита, округлённая вниз до целого
func ParseLoanAmount(input string) (decimal.Decimal, error) {
	amount, err := ParseAmount(input)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Floor(), nil
}

// CanonicalPin - пин-код в каноническом виде для сравнения с сохранённым хэшем.
// ok=false, если значение не может совпасть ни с одним целым пин-кодом.
func CanonicalPin(input string) (string, bool) {
	v, err := ParseNumber(input)
	if err != nil || math.IsInf(v, 0) || v != math.Trunc(v) {
		return "", false
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return "", false
	}
	return strconv.FormatInt(int64(v), 10), true
}
