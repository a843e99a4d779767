package wallet

import "sort"

// PriceFunc resolves a symbol to its current price. The second return
// value is false when the symbol has no price.
type PriceFunc func(symbol string) (float64, bool)

// Ranker filters and orders wallet balances for display.
type Ranker struct {
	table PriorityTable
}

// NewRanker creates a ranker over the given priority table.
func NewRanker(table PriorityTable) *Ranker {
	if table == nil {
		table = DefaultPriorityTable()
	}
	return &Ranker{table: table}
}

// Rank returns the displayable balances in display order.
//
// A balance is kept iff its category is ranked and its amount is
// positive; everything else is dropped entirely, not rendered as zero.
// Retained balances are ordered by category priority descending; equal
// priorities keep their relative input order. The input slice is not
// mutated.
func (r *Ranker) Rank(balances []Balance, priceOf PriceFunc) []RankedBalance {
	kept := make([]Balance, 0, len(balances))
	for _, b := range balances {
		if r.table.Priority(b.Category) > Unranked && b.Amount > 0 {
			kept = append(kept, b)
		}
	}

	// Stable sort: ties must preserve input order.
	sort.SliceStable(kept, func(i, j int) bool {
		return r.table.Priority(kept[i].Category) > r.table.Priority(kept[j].Category)
	})

	ranked := make([]RankedBalance, 0, len(kept))
	for _, b := range kept {
		rb := RankedBalance{
			Balance:         b,
			FormattedAmount: FormatAmount(b.Amount),
		}
		if priceOf != nil {
			if price, ok := priceOf(b.Symbol); ok {
				rb.USDValue = price * b.Amount
				rb.Priced = true
			}
		}
		ranked = append(ranked, rb)
	}
	return ranked
}

// TotalUSD sums the USD values of priced balances. Unpriced rows do not
// contribute.
func TotalUSD(ranked []RankedBalance) float64 {
	var total float64
	for _, rb := range ranked {
		if rb.Priced {
			total += rb.USDValue
		}
	}
	return total
}
