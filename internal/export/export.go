package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/swap-terminal/internal/wallet"
)

// Format represents the export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Options configures the export behavior
type Options struct {
	Format    Format
	OutputDir string

	// OnlyPriced drops rows the catalog could not value.
	OnlyPriced bool
}

// BalanceExporter writes ranked balance snapshots to disk
type BalanceExporter struct {
	logger *zap.Logger
}

// NewBalanceExporter creates a new balance exporter
func NewBalanceExporter(logger *zap.Logger) *BalanceExporter {
	return &BalanceExporter{
		logger: logger.Named("export"),
	}
}

// Export writes the ranked balance list in the requested format and
// returns the output path.
func (be *BalanceExporter) Export(ranked []wallet.RankedBalance, options Options) (string, error) {
	filtered := be.filter(ranked, options)
	if len(filtered) == 0 {
		return "", fmt.Errorf("no balances match the export criteria")
	}

	outputDir := options.OutputDir
	if outputDir == "" {
		outputDir = "exports"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("balances_%s.%s",
		time.Now().Format("20060102_150405"), options.Format)
	outputPath := filepath.Join(outputDir, filename)

	var err error
	switch options.Format {
	case FormatCSV:
		err = be.exportToCSV(filtered, outputPath)
	case FormatJSON:
		err = be.exportToJSON(filtered, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}
	if err != nil {
		return "", err
	}

	be.logger.Info("Balances exported",
		zap.String("file", outputPath),
		zap.Int("count", len(filtered)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

func (be *BalanceExporter) filter(ranked []wallet.RankedBalance, options Options) []wallet.RankedBalance {
	if !options.OnlyPriced {
		return ranked
	}

	var filtered []wallet.RankedBalance
	for _, row := range ranked {
		if row.Priced {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func csvHeaders() []string {
	return []string{"category", "symbol", "amount", "usd_value", "priced"}
}

func csvRow(row wallet.RankedBalance) []string {
	usd := ""
	if row.Priced {
		usd = strconv.FormatFloat(row.USDValue, 'f', 2, 64)
	}
	return []string{
		row.Category,
		row.Symbol,
		row.FormattedAmount,
		usd,
		strconv.FormatBool(row.Priced),
	}
}

func (be *BalanceExporter) exportToCSV(ranked []wallet.RankedBalance, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range ranked {
		if err := writer.Write(csvRow(row)); err != nil {
			return fmt.Errorf("failed to write balance row: %w", err)
		}
	}
	return nil
}

func (be *BalanceExporter) exportToJSON(ranked []wallet.RankedBalance, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := struct {
		ExportTime time.Time              `json:"export_time"`
		Count      int                    `json:"count"`
		TotalUSD   float64                `json:"total_usd"`
		Balances   []wallet.RankedBalance `json:"balances"`
	}{
		ExportTime: time.Now(),
		Count:      len(ranked),
		TotalUSD:   wallet.TotalUSD(ranked),
		Balances:   ranked,
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
