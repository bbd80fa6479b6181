package services

import (
	"fmt"

	"vacancy-reporter/models"
)

// CurrencyTable maps HH currency codes to their rouble conversion rate.
// The reference currency (RUR) has rate 1. The table is built explicitly
// and passed into the aggregator/formatter/query engine instead of living
// as package state.
type CurrencyTable map[string]float64

// DefaultCurrencyTable returns the fixed ten-currency conversion table.
func DefaultCurrencyTable() CurrencyTable {
	return CurrencyTable{
		"AZN": 35.68,
		"BYR": 23.91,
		"EUR": 59.90,
		"GEL": 21.74,
		"KGS": 0.76,
		"KZT": 0.13,
		"RUR": 1,
		"UAH": 1.64,
		"USD": 60.66,
		"UZS": 0.0055,
	}
}

// Rate returns the rouble rate for a currency code. An unknown code is a
// hard error, never a silent default.
func (t CurrencyTable) Rate(code string) (float64, error) {
	rate, ok := t[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownCurrency, code)
	}
	return rate, nil
}

// NormalizedSalary converts a salary range to a single rouble figure:
// the floored midpoint of the bounds times the currency rate, floored.
func (t CurrencyTable) NormalizedSalary(s models.Salary) (int, error) {
	rate, err := t.Rate(s.Currency)
	if err != nil {
		return 0, err
	}
	return int(float64((s.From+s.To)/2) * rate), nil
}
