package ledger

import (
	"testing"
	"time"

	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func movements(amounts ...string) []models.Movement {
	out := make([]models.Movement, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, models.Movement{Amount: decimal.RequireFromString(a)})
	}
	return out
}

func amounts(list []models.Movement) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, m.Amount.String())
	}
	return out
}

func TestSummarize(t *testing.T) {
	testCases := []struct {
		Name     string
		Moves    []models.Movement
		Rate     string
		Expected Summary
	}{
		{
			Name:  "Empty ledger #1",
			Moves: nil,
			Rate:  "1.2",
			Expected: Summary{
				Balance:     decimal.Zero,
				Deposits:    decimal.Zero,
				Withdrawals: decimal.Zero,
				Interest:    decimal.Zero,
			},
		},
		{
			Name:  "Jonas movements #2",
			Moves: movements("200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300"),
			Rate:  "1.2",
			Expected: Summary{
				Balance:     decimal.RequireFromString("25952.59"),
				Deposits:    decimal.RequireFromString("27035.2"),
				Withdrawals: decimal.RequireFromString("1082.61"),
				// 2.4 + 5.46276 + 300 + 15.6, вклад 79.97 (0.95964) отброшен
				Interest: decimal.RequireFromString("323.46276"),
			},
		},
		{
			Name:  "Single small deposit is ignored #3",
			Moves: movements("50"),
			Rate:  "1.2",
			Expected: Summary{
				Balance:     decimal.NewFromInt(50),
				Deposits:    decimal.NewFromInt(50),
				Withdrawals: decimal.Zero,
				Interest:    decimal.Zero,
			},
		},
		{
			Name:  "Single big deposit counts #4",
			Moves: movements("5000"),
			Rate:  "1.2",
			Expected: Summary{
				Balance:     decimal.NewFromInt(5000),
				Deposits:    decimal.NewFromInt(5000),
				Withdrawals: decimal.Zero,
				Interest:    decimal.NewFromInt(60),
			},
		},
		{
			Name:  "Zero movement is neither deposit nor withdrawal #5",
			Moves: movements("0", "-10"),
			Rate:  "1",
			Expected: Summary{
				Balance:     decimal.NewFromInt(-10),
				Deposits:    decimal.Zero,
				Withdrawals: decimal.NewFromInt(10),
				Interest:    decimal.Zero,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got := Summarize(tc.Moves, decimal.RequireFromString(tc.Rate))
			if !got.Balance.Equal(tc.Expected.Balance) {
				t.Errorf("Expected balance: '%v', got: '%v'", tc.Expected.Balance, got.Balance)
			}
			if !got.Deposits.Equal(tc.Expected.Deposits) {
				t.Errorf("Expected deposits: '%v', got: '%v'", tc.Expected.Deposits, got.Deposits)
			}
			if !got.Withdrawals.Equal(tc.Expected.Withdrawals) {
				t.Errorf("Expected withdrawals: '%v', got: '%v'", tc.Expected.Withdrawals, got.Withdrawals)
			}
			if !got.Interest.Equal(tc.Expected.Interest) {
				t.Errorf("Expected interest: '%v', got: '%v'", tc.Expected.Interest, got.Interest)
			}
		})
	}
}

func TestBalanceEqualsDepositsMinusWithdrawals(t *testing.T) {
	lists := [][]models.Movement{
		nil,
		movements("1"),
		movements("-1"),
		movements("0.1", "0.2", "-0.3"),
		movements("5000", "3400", "-150", "-790", "-3210", "-1000", "8500", "-30"),
		movements("200", "-200", "340", "-300", "-20", "50", "400", "-460"),
	}
	for i, list := range lists {
		diff := TotalDeposits(list).Sub(TotalWithdrawals(list))
		if !Balance(list).Equal(diff) {
			t.Errorf("list #%d: balance %v != deposits - withdrawals %v", i, Balance(list), diff)
		}
	}
}

func TestQualifyingInterestRounding(t *testing.T) {
	got := QualifyingInterest(movements("50"), decimal.RequireFromString("1.2"))
	if got.StringFixed(2) != "0.00" {
		t.Errorf("Expected '0.00', got: '%s'", got.StringFixed(2))
	}
	got = QualifyingInterest(movements("5000"), decimal.RequireFromString("1.2"))
	if got.StringFixed(2) != "60.00" {
		t.Errorf("Expected '60.00', got: '%s'", got.StringFixed(2))
	}
	// каждое поступление даёт 0.9, в сумме 1.8 - всё равно ноль
	got = QualifyingInterest(movements("90", "90"), decimal.NewFromInt(1))
	if !got.IsZero() {
		t.Errorf("Expected zero interest, got: '%v'", got)
	}
	// ровно на пороге учитывается
	got = QualifyingInterest(movements("100"), decimal.NewFromInt(1))
	if !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected interest 1, got: '%v'", got)
	}
}

func TestHasQualifyingDeposit(t *testing.T) {
	moves := movements("200", "450", "-400")
	if !HasQualifyingDeposit(moves, decimal.NewFromInt(1500)) {
		t.Errorf("Expected 450 to cover a loan of 1500")
	}
	if !HasQualifyingDeposit(moves, decimal.NewFromInt(3000)) {
		t.Errorf("Expected 450 to cover a loan of 3000")
	}
	if HasQualifyingDeposit(moves, decimal.NewFromInt(5000)) {
		t.Errorf("Expected no deposit to cover a loan of 5000")
	}
	if HasQualifyingDeposit(moves, decimal.NewFromInt(4501)) {
		t.Errorf("Expected 450 not to cover a loan of 4501")
	}
	if !HasQualifyingDeposit(moves, decimal.NewFromInt(4500)) {
		t.Errorf("Expected 450 to cover a loan of 4500 exactly")
	}
}

func TestOrder(t *testing.T) {
	date := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	moves := movements("200", "-50", "30", "-50", "200")
	moves[1].Date = date
	moves[3].Date = date.Add(time.Hour)

	natural := Order(moves, false)
	if diff := cmp.Diff(amounts(moves), amounts(natural)); diff != "" {
		t.Errorf("natural order mismatch:\n %s", diff)
	}

	sorted := Order(moves, true)
	if diff := cmp.Diff([]string{"-50", "-50", "30", "200", "200"}, amounts(sorted)); diff != "" {
		t.Errorf("sorted order mismatch:\n %s", diff)
	}
	// устойчивость: из двух -50 первым идёт тот, что был раньше в списке
	if !sorted[0].Date.Equal(date) || !sorted[1].Date.Equal(date.Add(time.Hour)) {
		t.Errorf("Expected stable sort, got dates %v, %v", sorted[0].Date, sorted[1].Date)
	}
	// исходный список не изменился
	if diff := cmp.Diff([]string{"200", "-50", "30", "-50", "200"}, amounts(moves)); diff != "" {
		t.Errorf("source movements were reordered:\n %s", diff)
	}
}
