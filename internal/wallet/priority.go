package wallet

// Unranked is returned for categories missing from the priority table.
// Balances in an unranked category are never displayed.
const Unranked = -99

// PriorityTable maps a balance category (blockchain name) to its display
// rank. Higher ranks sort first. The table is loaded once and immutable
// for the process lifetime.
type PriorityTable map[string]int

// DefaultPriorityTable returns the built-in display ranking.
func DefaultPriorityTable() PriorityTable {
	return PriorityTable{
		"Osmosis":  100,
		"Ethereum": 50,
		"Arbitrum": 30,
		"Zilliqa":  20,
		"Neo":      20,
	}
}

// Priority returns the rank for a category, or Unranked when the
// category is not in the table. Unknown input is a normal case, not an
// error.
func (t PriorityTable) Priority(category string) int {
	if rank, ok := t[category]; ok {
		return rank
	}
	return Unranked
}
