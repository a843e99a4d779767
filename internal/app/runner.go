package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/swap-terminal/internal/config"
	"github.com/rovshanmuradov/swap-terminal/internal/events"
	"github.com/rovshanmuradov/swap-terminal/internal/export"
	"github.com/rovshanmuradov/swap-terminal/internal/license"
	"github.com/rovshanmuradov/swap-terminal/internal/logger"
	"github.com/rovshanmuradov/swap-terminal/internal/pricing"
	"github.com/rovshanmuradov/swap-terminal/internal/swap"
	"github.com/rovshanmuradov/swap-terminal/internal/ui"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/router"
	"github.com/rovshanmuradov/swap-terminal/internal/ui/screen"
	"github.com/rovshanmuradov/swap-terminal/internal/wallet"
)

// Runner assembles the terminal's services and drives the TUI until the
// user quits or a signal arrives.
type Runner struct {
	cfg    *config.Config
	logger *zap.Logger
	logBuf *logger.Buffer
}

// NewRunner creates a runner over a loaded configuration
func NewRunner(cfg *config.Config, log *zap.Logger, logBuf *logger.Buffer) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: log,
		logBuf: logBuf,
	}
}

// Run wires services together and blocks until shutdown.
func (r *Runner) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gate := license.NewGate(r.cfg.KeygenAccount, r.cfg.KeygenProduct, r.cfg.KeygenToken, r.logger)
	if err := gate.Check(ctx, r.cfg.License); err != nil {
		return fmt.Errorf("license validation failed: %w", err)
	}

	bus := events.NewBus(r.logger, 256)

	// Surface settlement confirmations to whichever screen is active.
	bus.SubscribeFunc(events.SwapCompleted, func(_ context.Context, ev events.Event) error {
		completed, ok := ev.(events.SwapCompletedEvent)
		if !ok {
			return nil
		}
		if completed.Err != nil {
			ui.PublishError(completed.Err, "Swap")
		} else {
			ui.PublishSuccess(completed.Message, "Swap")
		}
		return nil
	})

	settler := swap.NewSimulatedSettler(
		time.Duration(r.cfg.SettleDelay)*time.Millisecond, r.logger)
	engine := swap.NewEngine(settler, bus, r.logger)

	source := pricing.NewSource(r.cfg.PriceFeedURL, r.logger)
	prices := pricing.NewService(source,
		time.Duration(r.cfg.PriceDelay)*time.Millisecond,
		r.logger,
		func(catalog *pricing.Catalog) {
			engine.SetCatalog(catalog)
			ui.PublishCatalog(catalog)
			_ = bus.Publish(events.CatalogRefreshedEvent{
				BaseEvent: events.NewBase(events.CatalogRefreshed),
				Symbols:   catalog.Len(),
			})
		})

	balances := r.cfg.Balances
	if len(balances) == 0 {
		balances = defaultBalances()
	}

	services := &ui.Services{
		Engine:    engine,
		Prices:    prices,
		Ranker:    wallet.NewRanker(r.cfg.PriorityTable()),
		Balances:  wallet.NewStaticProvider(balances, r.logger),
		Events:    bus,
		Exporter:  export.NewBalanceExporter(r.logger),
		LogBuffer: r.logBuf,
		Logger:    r.logger,
	}

	model := newAppModel(router.New(screen.NewMainMenuScreen(services)), services)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := prices.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		defer prices.Stop()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	runErr := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := bus.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("Event bus shutdown incomplete", zap.Error(err))
	}

	return runErr
}

// defaultBalances mirrors the demo wallet used when the configuration
// supplies none. Symbols follow the price feed's currency codes.
func defaultBalances() []wallet.Balance {
	return []wallet.Balance{
		{Category: "Osmosis", Symbol: "OSMO", Amount: 1250.5},
		{Category: "Ethereum", Symbol: "ETH", Amount: 2.75},
		{Category: "Arbitrum", Symbol: "USDC", Amount: 5000},
		{Category: "Zilliqa", Symbol: "ZIL", Amount: 42000},
		{Category: "Neo", Symbol: "NEO", Amount: 80},
		{Category: "Fantom", Symbol: "FTM", Amount: 310},
	}
}
