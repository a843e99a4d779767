package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPriorityTable(t *testing.T) {
	table := DefaultPriorityTable()

	assert.Equal(t, 100, table.Priority("Osmosis"))
	assert.Equal(t, 50, table.Priority("Ethereum"))
	assert.Equal(t, 20, table.Priority("Neo"))
	assert.Equal(t, Unranked, table.Priority("Dogechain"))
	assert.Equal(t, Unranked, table.Priority(""))
}

func TestRankFiltersUnrankedAndZeroAmounts(t *testing.T) {
	ranker := NewRanker(PriorityTable{
		"Ethereum": 50,
		"Osmosis":  100,
	})

	balances := []Balance{
		{Category: "Ethereum", Symbol: "ETH", Amount: 1},
		{Category: "Unknown", Symbol: "XYZ", Amount: 5},
		{Category: "Osmosis", Symbol: "OSMO", Amount: 0},
	}

	ranked := ranker.Rank(balances, nil)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Ethereum", ranked[0].Category)
	assert.Equal(t, 1.0, ranked[0].Amount)
}

func TestRankOrderingIsStableOnTies(t *testing.T) {
	ranker := NewRanker(PriorityTable{
		"Neo":      20,
		"Zilliqa":  20,
		"Ethereum": 50,
	})

	balances := []Balance{
		{Category: "Neo", Symbol: "NEO", Amount: 1},
		{Category: "Zilliqa", Symbol: "ZIL", Amount: 1},
		{Category: "Ethereum", Symbol: "ETH", Amount: 1},
	}

	ranked := ranker.Rank(balances, nil)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Ethereum", ranked[0].Category)
	assert.Equal(t, "Neo", ranked[1].Category)
	assert.Equal(t, "Zilliqa", ranked[2].Category)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	ranker := NewRanker(nil)

	balances := []Balance{
		{Category: "Neo", Symbol: "NEO", Amount: 1},
		{Category: "Osmosis", Symbol: "OSMO", Amount: 2},
	}

	_ = ranker.Rank(balances, nil)
	assert.Equal(t, "Neo", balances[0].Category)
	assert.Equal(t, "Osmosis", balances[1].Category)
}

func TestRankProjection(t *testing.T) {
	ranker := NewRanker(nil)
	prices := map[string]float64{"ETH": 3000}
	priceOf := func(symbol string) (float64, bool) {
		p, ok := prices[symbol]
		return p, ok
	}

	balances := []Balance{
		{Category: "Ethereum", Symbol: "ETH", Amount: 1.5},
		{Category: "Osmosis", Symbol: "OSMO", Amount: 10},
	}

	ranked := ranker.Rank(balances, priceOf)
	require.Len(t, ranked, 2)

	// Osmosis outranks Ethereum.
	osmo, eth := ranked[0], ranked[1]

	assert.False(t, osmo.Priced, "missing price must be marked, not zeroed")
	assert.Equal(t, "10.00", osmo.FormattedAmount)

	assert.True(t, eth.Priced)
	assert.Equal(t, 4500.0, eth.USDValue)
	assert.Equal(t, "1.50", eth.FormattedAmount)

	assert.Equal(t, 4500.0, TotalUSD(ranked), "unpriced rows must not affect the total")
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider([]Balance{{Category: "Neo", Symbol: "NEO", Amount: 3}}, zap.NewNop())

	got := p.Balances()
	require.Len(t, got, 1)

	// Mutating the returned slice must not leak back in.
	got[0].Amount = 99
	assert.Equal(t, 3.0, p.Balances()[0].Amount)
}
