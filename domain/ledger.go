package domain

import "github.com/shopspring/decimal"

// minimumInterest is the smallest per-deposit interest credit that counts
// towards TotalInterest.
var minimumInterest = decimal.NewFromInt(1)

// Balance is the sum of all movements. It is recomputed on every call.
func (a *Account) Balance() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range a.Movements {
		sum = sum.Add(m.Amount)
	}
	return sum
}

func (a *Account) TotalIncome() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range a.Movements {
		if m.Amount.IsPositive() {
			sum = sum.Add(m.Amount)
		}
	}
	return sum
}

// TotalExpense is the absolute value of the sum of all negative movements.
func (a *Account) TotalExpense() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range a.Movements {
		if m.Amount.IsNegative() {
			sum = sum.Add(m.Amount)
		}
	}
	return sum.Abs()
}

// TotalInterest sums deposit*rate/100 over deposits whose interest reaches
// minimumInterest. Zero when no deposit qualifies.
func (a *Account) TotalInterest() decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	sum := decimal.Zero
	for _, m := range a.Movements {
		if !m.IsDeposit() {
			continue
		}
		interest := m.Amount.Mul(a.InterestRate).Div(hundred)
		if interest.GreaterThanOrEqual(minimumInterest) {
			sum = sum.Add(interest)
		}
	}
	return sum
}

func (a *Account) HasDepositAtLeast(amount decimal.Decimal) bool {
	for _, m := range a.Movements {
		if m.Amount.GreaterThanOrEqual(amount) {
			return true
		}
	}
	return false
}

func (a *Account) LargestDeposit() decimal.Decimal {
	largest := decimal.Zero
	for _, m := range a.Movements {
		if m.Amount.GreaterThan(largest) {
			largest = m.Amount
		}
	}
	return largest
}
