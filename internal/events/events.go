// Package events публикует события по счетам (перевод, кредит, закрытие) во внешнюю шину.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Типы событий, они же ключи маршрутизации
const (
	TypeTransfer = "ledger.transfer"
	TypeLoan     = "ledger.loan"
	TypeClose    = "ledger.close"
)

// Event - событие по счёту
type Event struct {
	Type         string          `json:"type"`
	Username     string          `json:"username"`
	Counterparty string          `json:"counterparty,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	At           time.Time       `json:"at"`
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher - получатель событий по счетам
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher - публикация отключена
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
