package pricing

// Token is one entry of the price feed: a tradable asset identified by
// its symbol and its current price. Tokens are immutable per fetch
// cycle.
type Token struct {
	Symbol string
	Price  float64
}

// Catalog is an immutable price snapshot, symbol to price. A fresh feed
// delivery replaces the whole catalog; there is no incremental update.
type Catalog struct {
	tokens  map[string]Token
	symbols []string
}

// BuildCatalog creates a catalog from a feed payload. Duplicate symbols
// resolve last-write-wins on price while the symbol list keeps the first
// occurrence position, so the feed's display order is preserved.
func BuildCatalog(tokens []Token) *Catalog {
	c := &Catalog{
		tokens:  make(map[string]Token, len(tokens)),
		symbols: make([]string, 0, len(tokens)),
	}
	for _, tok := range tokens {
		if _, seen := c.tokens[tok.Symbol]; !seen {
			c.symbols = append(c.symbols, tok.Symbol)
		}
		c.tokens[tok.Symbol] = tok
	}
	return c
}

// Lookup returns the price for a symbol. The second return value is
// false for unknown symbols; callers must treat that as "cannot
// compute", never as a zero price.
func (c *Catalog) Lookup(symbol string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	tok, ok := c.tokens[symbol]
	if !ok {
		return 0, false
	}
	return tok.Price, true
}

// Symbols returns the known symbols in feed order.
func (c *Catalog) Symbols() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// Len returns the number of distinct symbols.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tokens)
}
