package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rovshanmuradov/swap-terminal/internal/wallet"
)

func sampleRanked() []wallet.RankedBalance {
	return []wallet.RankedBalance{
		{
			Balance:         wallet.Balance{Category: "Osmosis", Symbol: "OSMO", Amount: 1250.5},
			USDValue:        812.83,
			Priced:          true,
			FormattedAmount: "1250.50",
		},
		{
			Balance:         wallet.Balance{Category: "Ethereum", Symbol: "ETH", Amount: 2.75},
			USDValue:        8250,
			Priced:          true,
			FormattedAmount: "2.75",
		},
		{
			Balance:         wallet.Balance{Category: "Neo", Symbol: "NEO", Amount: 80},
			Priced:          false,
			FormattedAmount: "80.00",
		},
	}
}

func TestExportCSV(t *testing.T) {
	exporter := NewBalanceExporter(zaptest.NewLogger(t))
	dir := t.TempDir()

	path, err := exporter.Export(sampleRanked(), Options{
		Format:    FormatCSV,
		OutputDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, csvHeaders(), records[0])
	assert.Equal(t, []string{"Osmosis", "OSMO", "1250.50", "812.83", "true"}, records[1])

	// Unpriced rows keep an empty USD column.
	assert.Equal(t, []string{"Neo", "NEO", "80.00", "", "false"}, records[3])
}

func TestExportCSVOnlyPriced(t *testing.T) {
	exporter := NewBalanceExporter(zaptest.NewLogger(t))

	path, err := exporter.Export(sampleRanked(), Options{
		Format:     FormatCSV,
		OutputDir:  t.TempDir(),
		OnlyPriced: true,
	})
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3) // header + 2 priced rows
}

func TestExportJSON(t *testing.T) {
	exporter := NewBalanceExporter(zaptest.NewLogger(t))

	path, err := exporter.Export(sampleRanked(), Options{
		Format:    FormatJSON,
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var payload struct {
		Count    int                    `json:"count"`
		TotalUSD float64                `json:"total_usd"`
		Balances []wallet.RankedBalance `json:"balances"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, 3, payload.Count)
	assert.InDelta(t, 9062.83, payload.TotalUSD, 0.001)
	require.Len(t, payload.Balances, 3)
	assert.Equal(t, "OSMO", payload.Balances[0].Symbol)
}

func TestExportEmpty(t *testing.T) {
	exporter := NewBalanceExporter(zaptest.NewLogger(t))

	_, err := exporter.Export(nil, Options{
		Format:    FormatCSV,
		OutputDir: t.TempDir(),
	})
	assert.Error(t, err)
}

func TestExportUnsupportedFormat(t *testing.T) {
	exporter := NewBalanceExporter(zaptest.NewLogger(t))

	_, err := exporter.Export(sampleRanked(), Options{
		Format:    Format("xml"),
		OutputDir: t.TempDir(),
	})
	assert.Error(t, err)
}
