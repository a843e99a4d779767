package ui

import (
	"go.uber.org/zap"

	"github.com/rovshanmuradov/swap-terminal/internal/events"
	"github.com/rovshanmuradov/swap-terminal/internal/export"
	"github.com/rovshanmuradov/swap-terminal/internal/logger"
	"github.com/rovshanmuradov/swap-terminal/internal/pricing"
	"github.com/rovshanmuradov/swap-terminal/internal/swap"
	"github.com/rovshanmuradov/swap-terminal/internal/wallet"
)

// Services gives screens access to the application core. Screens are
// consumers and intent producers only; all swap state lives in the
// engine.
type Services struct {
	Engine    *swap.Engine
	Prices    *pricing.Service
	Ranker    *wallet.Ranker
	Balances  wallet.Provider
	Events    *events.Bus
	Exporter  *export.BalanceExporter
	LogBuffer *logger.Buffer
	Logger    *zap.Logger
}
