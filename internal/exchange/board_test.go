package exchange

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	table RateTable
	err   error
}

func (s *stubSource) Latest(context.Context) (RateTable, error) {
	return s.table, s.err
}

func stubTable() RateTable {
	return RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"CNY": decimal.RequireFromString("7.25"),
			"EUR": decimal.RequireFromString("0.8"),
		},
	}
}

func TestBoard_Refresh(t *testing.T) {
	src := &stubSource{table: stubTable()}
	b := NewBoard(src, "usd", "cny", decimal.NewFromInt(3))

	require.NoError(t, b.Refresh(context.Background()))
	st := b.State()
	require.NotNil(t, st.Quote)
	assert.True(t, st.Quote.Converted.Equal(decimal.RequireFromString("21.75")))
	assert.Empty(t, st.Error)
}

func TestBoard_FailureKeepsPreviousQuote(t *testing.T) {
	src := &stubSource{table: stubTable()}
	b := NewBoard(src, "USD", "EUR", decimal.NewFromInt(10))
	require.NoError(t, b.Refresh(context.Background()))
	before := b.State().Quote

	src.err = errors.New("network down")
	assert.Error(t, b.Refresh(context.Background()))

	st := b.State()
	assert.Equal(t, FailedMessage, st.Error)
	require.NotNil(t, st.Quote)
	assert.True(t, before.Rate.Equal(st.Quote.Rate))
	assert.True(t, before.Converted.Equal(st.Quote.Converted))

	src.err = nil
	require.NoError(t, b.Refresh(context.Background()))
	assert.Empty(t, b.State().Error)
}

func TestBoard_FailureWithoutQuote(t *testing.T) {
	b := NewBoard(&stubSource{err: errors.New("boom")}, "USD", "EUR", decimal.NewFromInt(1))
	assert.Error(t, b.Refresh(context.Background()))

	st := b.State()
	assert.Nil(t, st.Quote)
	assert.Equal(t, FailedMessage, st.Error)
}

func TestBoard_SwapAndAmount(t *testing.T) {
	b := NewBoard(&stubSource{table: stubTable()}, "USD", "EUR", decimal.NewFromInt(10))
	require.NoError(t, b.Refresh(context.Background()))

	b.Swap()
	st := b.State()
	assert.Equal(t, "EUR", st.From)
	assert.Equal(t, "USD", st.To)
	assert.True(t, st.Quote.Rate.Equal(decimal.RequireFromString("1.25")), "got %s", st.Quote.Rate)
	assert.True(t, st.Quote.Converted.Equal(decimal.RequireFromString("12.5")))

	b.SetAmount(decimal.NewFromInt(4))
	assert.True(t, b.State().Quote.Converted.Equal(decimal.NewFromInt(5)))
}

func TestBoard_SetPairDropsQuote(t *testing.T) {
	b := NewBoard(&stubSource{table: stubTable()}, "USD", "EUR", decimal.NewFromInt(1))
	require.NoError(t, b.Refresh(context.Background()))

	b.SetPair("EUR", "CNY")
	assert.Nil(t, b.State().Quote)

	require.NoError(t, b.Refresh(context.Background()))
	assert.True(t, b.State().Quote.Rate.Equal(decimal.RequireFromString("9.0625")))
}
