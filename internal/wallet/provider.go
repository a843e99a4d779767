package wallet

import "go.uber.org/zap"

// Provider supplies the raw balances for the current session.
type Provider interface {
	Balances() []Balance
}

// StaticProvider serves a fixed balance list loaded at startup, which is
// all a single in-memory session needs.
type StaticProvider struct {
	balances []Balance
	logger   *zap.Logger
}

// NewStaticProvider creates a provider over a fixed balance list.
func NewStaticProvider(balances []Balance, logger *zap.Logger) *StaticProvider {
	logger.Debug("Static balance provider created",
		zap.Int("balances", len(balances)))
	return &StaticProvider{balances: balances, logger: logger}
}

// Balances returns a copy of the configured balances.
func (p *StaticProvider) Balances() []Balance {
	out := make([]Balance, len(p.balances))
	copy(out, p.balances)
	return out
}
