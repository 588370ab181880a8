package models

import "github.com/shopspring/decimal"

// Типы движений для отображения
const (
	MovementDeposit    = "deposit"
	MovementWithdrawal = "withdrawal"
)

// MovementView - запись движения, готовая к отображению.
// Список идёт в порядке обработки, клиент выводит его новыми сверху (вставкой в начало).
type MovementView struct {
	Index       int             `json:"index"`
	Type        string          `json:"type"`
	DateLabel   string          `json:"date"`
	AmountLabel string          `json:"amount_label"`
	Amount      decimal.Decimal `json:"amount"`
}

// View - модель представления счёта
type View struct {
	Welcome      string          `json:"welcome"`
	PanelVisible bool            `json:"panel_visible"`
	Date         string          `json:"date,omitempty"`
	Sorted       bool            `json:"sorted"`
	Currency     string          `json:"currency,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	BalanceLabel string          `json:"balance_label,omitempty"`
	Deposits     decimal.Decimal `json:"in"`
	Withdrawals  decimal.Decimal `json:"out"`
	Interest     decimal.Decimal `json:"interest"`
	Movements    []MovementView  `json:"movements"`
}
