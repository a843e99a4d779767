package wallet

import "fmt"

// Balance is a raw wallet balance as supplied by an external source.
// Items are immutable per refresh.
type Balance struct {
	Category string  `mapstructure:"category" json:"category"`
	Symbol   string  `mapstructure:"symbol" json:"symbol"`
	Amount   float64 `mapstructure:"amount" json:"amount"`
}

// RankedBalance pairs a Balance with its derived display values. It is
// recomputed whenever the balance list or the price catalog changes and
// is never stored independently.
type RankedBalance struct {
	Balance

	// USDValue is Amount multiplied by the catalog price of Symbol.
	// Only meaningful when Priced is true.
	USDValue float64 `json:"usd_value"`

	// Priced is false when the catalog has no entry for Symbol. Unpriced
	// rows are shown without a USD value and excluded from totals.
	Priced bool `json:"priced"`

	// FormattedAmount is Amount fixed to two fractional digits.
	FormattedAmount string `json:"formatted_amount"`
}

// FormatAmount renders a balance amount for display.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
