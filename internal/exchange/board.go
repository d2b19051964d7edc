package exchange

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// FailedMessage is what the board shows after a failed refresh.
const FailedMessage = "Failed to fetch exchange rate"

// Quote is a priced conversion.
type Quote struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
	Converted decimal.Decimal `json:"converted"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

// NewQuote prices amount of from in to. Converted is rounded to 2 places.
func NewQuote(table RateTable, from, to string, amount decimal.Decimal) (Quote, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	r, err := table.Rate(from, to)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		From:      from,
		To:        to,
		Rate:      r,
		Amount:    amount,
		Converted: amount.Mul(r).Round(2),
		UpdatedAt: table.UpdatedAt,
	}, nil
}

// RateSource supplies rate tables. *Client implements it.
type RateSource interface {
	Latest(ctx context.Context) (RateTable, error)
}

// BoardState is a copy of what the board currently displays.
type BoardState struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Quote  *Quote          `json:"quote,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Board is the converter widget: a pair, an amount and the last good quote.
// A failed refresh keeps the previous quote and records FailedMessage.
type Board struct {
	mu     sync.Mutex
	source RateSource
	from   string
	to     string
	amount decimal.Decimal
	quote  *Quote
	err    string
}

// NewBoard creates a board for the given pair and amount.
func NewBoard(source RateSource, from, to string, amount decimal.Decimal) *Board {
	return &Board{
		source: source,
		from:   strings.ToUpper(from),
		to:     strings.ToUpper(to),
		amount: amount,
	}
}

// Refresh fetches a fresh table and reprices the pair.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	from, to, amount := b.from, b.to, b.amount
	b.mu.Unlock()

	q, err := b.price(ctx, from, to, amount)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.err = FailedMessage
		return err
	}
	// The pair may have changed while fetching; only accept a matching quote.
	if b.from == from && b.to == to {
		q.Amount = b.amount
		q.Converted = b.amount.Mul(q.Rate).Round(2)
		b.quote = &q
		b.err = ""
	}
	return nil
}

func (b *Board) price(ctx context.Context, from, to string, amount decimal.Decimal) (Quote, error) {
	table, err := b.source.Latest(ctx)
	if err != nil {
		return Quote{}, err
	}
	return NewQuote(table, from, to, amount)
}

// Swap exchanges the pair. A held quote is inverted so the display stays
// consistent until the next refresh.
func (b *Board) Swap() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.from, b.to = b.to, b.from
	if b.quote == nil || b.quote.Rate.IsZero() {
		b.quote = nil
		return
	}
	inv := decimal.NewFromInt(1).Div(b.quote.Rate)
	b.quote = &Quote{
		From:      b.from,
		To:        b.to,
		Rate:      inv,
		Amount:    b.amount,
		Converted: b.amount.Mul(inv).Round(2),
		UpdatedAt: b.quote.UpdatedAt,
	}
}

// SetPair changes the currencies and drops the held quote.
func (b *Board) SetPair(from, to string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.from, b.to = strings.ToUpper(from), strings.ToUpper(to)
	b.quote = nil
}

// SetAmount reprices the held quote without fetching.
func (b *Board) SetAmount(amount decimal.Decimal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.amount = amount
	if b.quote != nil {
		b.quote.Amount = amount
		b.quote.Converted = amount.Mul(b.quote.Rate).Round(2)
	}
}

// State returns a copy of the board.
func (b *Board) State() BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()
	st := BoardState{From: b.from, To: b.to, Amount: b.amount, Error: b.err}
	if b.quote != nil {
		q := *b.quote
		st.Quote = &q
	}
	return st
}
