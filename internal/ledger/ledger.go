// Package ledger содержит расчёты по списку движений счёта: баланс, итоги и начисляемые проценты.
// Все суммы накапливаются в decimal без округления, округление - только при отображении.
package ledger

import (
	"sort"

	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// InterestThreshold - минимальный процент по одному поступлению, который учитывается в итоге
	InterestThreshold = decimal.NewFromInt(1)
	// LoanDepositShare - доля запрошенного кредита, которую должно покрывать хотя бы одно поступление
	LoanDepositShare = decimal.New(1, -1)

	hundred = decimal.NewFromInt(100)
)

// Summary - итоги по счёту
type Summary struct {
	Balance     decimal.Decimal
	Deposits    decimal.Decimal
	Withdrawals decimal.Decimal
	Interest    decimal.Decimal
}

// Balance - сумма всех движений, для пустого списка 0
func Balance(movements []models.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Amount)
	}
	return total
}

// TotalDeposits - сумма поступлений (строго больше нуля)
func TotalDeposits(movements []models.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.Amount.IsPositive() {
			total = total.Add(m.Amount)
		}
	}
	return total
}

// TotalWithdrawals - сумма модулей списаний (строго меньше нуля)
func TotalWithdrawals(movements []models.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.Amount.IsNegative() {
			total = total.Add(m.Amount.Abs())
		}
	}
	return total
}

// QualifyingInterest - проценты считаются по каждому поступлению отдельно (amount * rate / 100),
// вклад меньше InterestThreshold отбрасывается, даже если в сумме проценты превысили бы порог.
func QualifyingInterest(movements []models.Movement, rate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if !m.Amount.IsPositive() {
			continue
		}
		interest := m.Amount.Mul(rate).Div(hundred)
		if interest.GreaterThanOrEqual(InterestThreshold) {
			total = total.Add(interest)
		}
	}
	return total
}

// Summarize - все итоги за один вызов
func Summarize(movements []models.Movement, rate decimal.Decimal) Summary {
	return Summary{
		Balance:     Balance(movements),
		Deposits:    TotalDeposits(movements),
		Withdrawals: TotalWithdrawals(movements),
		Interest:    QualifyingInterest(movements, rate),
	}
}

// HasQualifyingDeposit - есть ли движение не меньше LoanDepositShare от суммы кредита
func HasQualifyingDeposit(movements []models.Movement, loan decimal.Decimal) bool {
	required := loan.Mul(LoanDepositShare)
	for _, m := range movements {
		if m.Amount.GreaterThanOrEqual(required) {
			return true
		}
	}
	return false
}

// Order - порядок обработки движений: как есть, либо копия, отсортированная по возрастанию суммы.
// Сортировка устойчивая, исходный срез не меняется.
func Order(movements []models.Movement, sorted bool) []models.Movement {
	out := make([]models.Movement, len(movements))
	copy(out, movements)
	if sorted {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount.LessThan(out[j].Amount)
		})
	}
	return out
}
