// Package formatter превращает движения счёта в записи для отображения:
// тип движения, относительная или локализованная дата и сумма в валюте счёта.
package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/denmor86/ya-bankist/internal/ledger"
	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	LabelToday     = "today"
	LabelYesterday = "yesterday"
	// RelativeDays - до скольких дней включительно дата выводится как "N days ago"
	RelativeDays = 7

	// StampLayout - формат текущей даты и времени в шапке после входа
	StampLayout = "02/01/2006, 15:04"

	day = 24 * time.Hour
)

// Formatter - форматирование в контексте локали и валюты счёта и текущего момента
type Formatter struct {
	Tag      language.Tag
	Currency currency.Unit
	Now      time.Time

	printer *message.Printer
	scale   int
}

// New - создание форматтера. Неизвестная локаль заменяется на en-US, неизвестная валюта - на EUR.
func New(locale string, cur string, now time.Time) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	unit, err := currency.ParseISO(cur)
	if err != nil {
		unit = currency.EUR
	}
	scale, _ := currency.Standard.Rounding(unit)
	return &Formatter{
		Tag:      tag,
		Currency: unit,
		Now:      now,
		printer:  message.NewPrinter(tag),
		scale:    scale,
	}
}

// ForAccount - форматтер с локалью и валютой счёта
func ForAccount(acc *models.Account, now time.Time) *Formatter {
	return New(acc.LocaleOrDefault(), acc.CurrencyOrDefault(), now)
}

// Format - записи для отображения в порядке обработки; Index начинается с 1.
// Движения без даты считаются совершёнными сейчас.
func (f *Formatter) Format(movements []models.Movement, sorted bool) []models.MovementView {
	ordered := ledger.Order(movements, sorted)
	views := make([]models.MovementView, 0, len(ordered))
	for i, m := range ordered {
		views = append(views, models.MovementView{
			Index:       i + 1,
			Type:        MovementType(m),
			DateLabel:   f.DateLabel(m.DateOr(f.Now)),
			AmountLabel: f.AmountLabel(m.Amount),
			Amount:      m.Amount.Round(int32(f.scale)),
		})
	}
	return views
}

// MovementType - deposit для сумм больше нуля, иначе withdrawal (ноль - тоже withdrawal)
func MovementType(m models.Movement) string {
	if m.IsDeposit() {
		return models.MovementDeposit
	}
	return models.MovementWithdrawal
}

// DaysPassed - число дней между Now и датой: модуль разницы, округлённый до ближайшего целого
func (f *Formatter) DaysPassed(date time.Time) int {
	diff := f.Now.Sub(date)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Round(float64(diff) / float64(day)))
}

// DateLabel - today / yesterday / N days ago, дальше - дата в формате локали
func (f *Formatter) DateLabel(date time.Time) string {
	days := f.DaysPassed(date)
	switch {
	case days == 0:
		return LabelToday
	case days == 1:
		return LabelYesterday
	case days <= RelativeDays:
		return fmt.Sprintf("%d days ago", days)
	}
	return date.In(f.Now.Location()).Format(f.dateLayout())
}

// AmountLabel - сумма с разделителями локали, округлённая по правилам валюты, и код валюты
func (f *Formatter) AmountLabel(amount decimal.Decimal) string {
	return fmt.Sprintf("%s %s", f.Number(amount), f.Currency)
}

// Number - сумма с разделителями локали без кода валюты
func (f *Formatter) Number(amount decimal.Decimal) string {
	value := amount.Round(int32(f.scale)).InexactFloat64()
	return f.printer.Sprint(number.Decimal(value, number.Scale(f.scale)))
}

// StampLabel - дата и время для шапки
func (f *Formatter) StampLabel() string {
	return f.Now.Format(StampLayout)
}

func (f *Formatter) dateLayout() string {
	base, _ := f.Tag.Base()
	region, _ := f.Tag.Region()
	switch {
	case base.String() == "en" && region.String() == "US":
		return "01/02/2006"
	case base.String() == "de":
		return "02.01.2006"
	default:
		return "02/01/2006"
	}
}
