package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "EUR"
	DefaultLocale   = "en-US"
)

// Account - модель счёта из хранилища
type Account struct {
	ID           string
	Owner        string
	Username     string
	Movements    []Movement
	InterestRate decimal.Decimal
	PinHash      string
	// Balance - кэш последнего расчёта, перед выдачей всегда пересчитывается по Movements
	Balance  decimal.Decimal
	Currency string
	Locale   string
}

// FirstName - первое слово имени владельца (для приветствия)
func (a *Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CurrencyOrDefault - код валюты счёта, для старых записей без валюты - EUR
func (a *Account) CurrencyOrDefault() string {
	if a.Currency == "" {
		return DefaultCurrency
	}
	return a.Currency
}

// LocaleOrDefault - локаль счёта, для старых записей без локали - en-US
func (a *Account) LocaleOrDefault() string {
	if a.Locale == "" {
		return DefaultLocale
	}
	return a.Locale
}

// Clone - глубокая копия, чтобы вызывающий код не мог менять внутреннее состояние хранилища
func (a *Account) Clone() *Account {
	cp := *a
	cp.Movements = make([]Movement, len(a.Movements))
	copy(cp.Movements, a.Movements)
	return &cp
}

// Posting - движение, которое нужно добавить к счёту с заданным username
type Posting struct {
	Username string
	Movement Movement
}
