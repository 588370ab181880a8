package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidMovement = errors.New("invalid movement")

// Movement - запись движения по счёту: положительная сумма - поступление, отрицательная - списание.
// Нулевое Date означает, что дата не была задана (самый старый формат данных).
type Movement struct {
	Amount decimal.Decimal
	Date   time.Time
}

// NewMovement - движение с текущей меткой времени
func NewMovement(amount decimal.Decimal, at time.Time) Movement {
	return Movement{Amount: amount, Date: at.UTC()}
}

// HasDate - задана ли дата движения
func (m Movement) HasDate() bool {
	return !m.Date.IsZero()
}

// DateOr - дата движения либо подставленное значение, если дата отсутствует
func (m Movement) DateOr(fallback time.Time) time.Time {
	if m.HasDate() {
		return m.Date
	}
	return fallback
}

// IsDeposit - поступление строго больше нуля, ноль считается списанием
func (m Movement) IsDeposit() bool {
	return m.Amount.IsPositive()
}

// UnmarshalJSON принимает как голое число (200), так и пару [200, "2019-11-18T21:31:17.178Z"]
func (m *Movement) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidMovement
	}
	if data[0] != '[' {
		amount, err := parseAmount(data)
		if err != nil {
			return err
		}
		*m = Movement{Amount: amount}
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMovement, err)
	}
	if len(pair) == 0 || len(pair) > 2 {
		return fmt.Errorf("%w: expected [amount] or [amount, date], got %d items", ErrInvalidMovement, len(pair))
	}
	amount, err := parseAmount(pair[0])
	if err != nil {
		return err
	}
	result := Movement{Amount: amount}
	if len(pair) == 2 {
		var raw string
		if err := json.Unmarshal(pair[1], &raw); err != nil {
			return fmt.Errorf("%w: date must be a string: %v", ErrInvalidMovement, err)
		}
		date, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidMovement, err)
		}
		result.Date = date.UTC()
	}
	*m = result
	return nil
}

// MarshalJSON пишет движение в той же форме, в которой оно было прочитано
func (m Movement) MarshalJSON() ([]byte, error) {
	amount := json.Number(m.Amount.String())
	if !m.HasDate() {
		return json.Marshal(amount)
	}
	return json.Marshal([]interface{}{amount, m.Date.UTC().Format(time.RFC3339Nano)})
}

func parseAmount(raw []byte) (decimal.Decimal, error) {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(raw); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidMovement, err)
	}
	return amount, nil
}
