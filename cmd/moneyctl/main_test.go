package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HeyDYF/Money-Manager/internal/config"
	"github.com/HeyDYF/Money-Manager/internal/exchange"
	"github.com/HeyDYF/Money-Manager/internal/logger"
	"github.com/HeyDYF/Money-Manager/internal/storage"
)

func init() {
	logger.Set(zap.NewNop().Sugar())
}

type stubRates struct {
	table exchange.RateTable
	err   error
}

func (s stubRates) Latest(context.Context) (exchange.RateTable, error) {
	return s.table, s.err
}

func newTestCLI(store storage.Store) *cli {
	return &cli{
		cfg:   &config.Config{DefaultCurrency: "CNY", StoreDriver: config.StoreMemory},
		store: store,
		rates: stubRates{table: exchange.RateTable{
			Base:      "USD",
			UpdatedAt: "Mon, 01 Jan 2024 00:00:01 +0000",
			Rates: map[string]decimal.Decimal{
				"USD": decimal.NewFromInt(1),
				"EUR": decimal.RequireFromString("0.5"),
			},
		}},
	}
}

func execute(t *testing.T, app *cli, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, app *cli, args ...string) string {
	t.Helper()
	out, err := execute(t, app, args...)
	require.NoError(t, err, "moneyctl %s\n%s", strings.Join(args, " "), out)
	return out
}

func TestLedgerCommands(t *testing.T) {
	store := storage.NewMemoryStore(nil)
	app := newTestCLI(store)

	out := mustExecute(t, app, "init", "1000", "usd")
	assert.Contains(t, out, "$1,000.00 (USD - $)")

	out = mustExecute(t, app, "tx", "add", "--name", "Coffee", "--amount", "5", "--category", "Restaurants")
	assert.Contains(t, out, "Balance: $995.00")
	assert.Contains(t, out, "Achievement unlocked: First Step")

	state := app.manager.State()
	require.Len(t, state.Transactions, 1)
	id := state.Transactions[0].ID

	out = mustExecute(t, app, "tx", "update", id, "--amount", "8")
	assert.Contains(t, out, "Balance: $992.00")
	updated := app.manager.State().Transactions[0]
	assert.Equal(t, "Coffee", updated.Name, "unset flags keep their values")
	assert.Equal(t, "Restaurants", string(updated.Category))

	out = mustExecute(t, app, "tx", "list")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "-$8.00")
	assert.Contains(t, out, "page 1/1, 1 transactions")

	out = mustExecute(t, app, "tx", "delete", id)
	assert.Contains(t, out, "Balance: $1,000.00")

	out = mustExecute(t, app, "balance")
	assert.Contains(t, out, "$1,000.00 (USD - $), 0 transactions")

	out = mustExecute(t, app, "achievements")
	assert.Contains(t, out, "[x] First Step")
	assert.Contains(t, out, "[ ] Saver")
}

func TestTxErrors(t *testing.T) {
	app := newTestCLI(storage.NewMemoryStore(nil))

	_, err := execute(t, app, "tx", "add", "--name", "x")
	assert.Error(t, err, "amount is required")

	_, err = execute(t, app, "tx", "add", "--name", "x", "--amount", "1", "--type", "transfer")
	assert.Error(t, err)

	_, err = execute(t, app, "tx", "add", "--name", "x", "--amount", "1", "--date", "someday")
	assert.Error(t, err)

	_, err = execute(t, app, "tx", "delete", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transaction not found")

	_, err = execute(t, app, "init", "lots", "USD")
	assert.Error(t, err)

	assert.Empty(t, app.manager.State().Transactions)
}

func TestExportImport(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			src := newTestCLI(storage.NewMemoryStore(nil))
			mustExecute(t, src, "init", "250.75", "EUR")
			mustExecute(t, src, "tx", "add", "--name", "TV", "--amount", "1200", "--category", "Shopping", "--date", "2024-05-01")

			path := filepath.Join(t.TempDir(), "ledger."+format)
			mustExecute(t, src, "export", "--output", path)
			want := src.manager.State()

			dst := newTestCLI(storage.NewMemoryStore(nil))
			out := mustExecute(t, dst, "import", path)
			assert.Contains(t, out, "Imported 1 transactions")

			got := dst.manager.State()
			assert.True(t, want.Balance.Equal(got.Balance), "balance %s vs %s", want.Balance, got.Balance)
			assert.Equal(t, want.Currency, got.Currency)
			assert.Equal(t, want.Achievements, got.Achievements)
			require.Len(t, got.Transactions, 1)
			assert.Equal(t, want.Transactions[0].ID, got.Transactions[0].ID)
			assert.True(t, want.Transactions[0].Amount.Equal(got.Transactions[0].Amount))
			assert.True(t, want.Transactions[0].Date.Equal(got.Transactions[0].Date))
		})
	}
}

func TestExportStdout(t *testing.T) {
	app := newTestCLI(storage.NewMemoryStore(nil))
	mustExecute(t, app, "init", "10", "JPY")

	out := mustExecute(t, app, "export", "--format", "yaml")
	assert.Contains(t, out, "currency: JPY")

	_, err := execute(t, app, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestImportRejectsBadFiles(t *testing.T) {
	app := newTestCLI(storage.NewMemoryStore(nil))
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"balance":`), 0o600))
	_, err := execute(t, app, "import", broken)
	assert.Error(t, err)

	noCurrency := filepath.Join(dir, "nocurrency.json")
	require.NoError(t, os.WriteFile(noCurrency, []byte(`{"balance":"5","currency":""}`), 0o600))
	_, err = execute(t, app, "import", noCurrency)
	assert.Error(t, err)

	_, err = execute(t, app, "import", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestRates(t *testing.T) {
	app := newTestCLI(storage.NewMemoryStore(nil))

	out := mustExecute(t, app, "rates", "USD", "EUR", "100")
	assert.Contains(t, out, "$100.00 = €50.00")

	out = mustExecute(t, app, "rates", "usd", "eur", "--swap")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "rate 2.000000")

	app.rates = stubRates{err: errors.New("connection refused")}
	_, err := execute(t, app, "rates", "USD", "EUR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), exchange.FailedMessage)
}

func TestReport(t *testing.T) {
	app := newTestCLI(storage.NewMemoryStore(nil))
	mustExecute(t, app, "init", "0", "USD")
	today := time.Now().UTC().Format(time.DateOnly)
	mustExecute(t, app, "tx", "add", "--name", "Salary", "--amount", "100", "--type", "income", "--date", today)
	mustExecute(t, app, "tx", "add", "--name", "Lunch", "--amount", "12", "--date", today)

	out := mustExecute(t, app, "report", "--plain", "--range", "week")
	assert.Contains(t, out, "# Ledger report")
	assert.Contains(t, out, "| Net | $88.00 |")
	assert.Contains(t, out, "| Other | $12.00 |")
	assert.Contains(t, out, "| "+today+" | $100.00 | $12.00 |")

	out = mustExecute(t, app, "report")
	assert.Contains(t, out, "Ledger report")

	_, err := execute(t, app, "report", "--range", "decade")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = parseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	_, err = parseDate("29/02/2024")
	assert.Error(t, err)
}
