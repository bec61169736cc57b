package gasreport

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/fundme/ui"
)

type fixedQuote float64

func (q fixedQuote) Quote(ctx context.Context, symbol, currency string) (float64, error) {
	return float64(q), nil
}

type fixedGwei float64

func (g fixedGwei) RecommendedGasPrice(ctx context.Context) (float64, error) {
	return float64(g), nil
}

func TestMethodStats(t *testing.T) {
	s := MethodStats{GasUsed: []uint64{30, 10, 21}}
	assert.Equal(t, uint64(10), s.Min())
	assert.Equal(t, uint64(30), s.Max())
	assert.Equal(t, uint64(20), s.Avg())
	assert.Equal(t, 3, s.Calls())

	empty := MethodStats{}
	assert.Zero(t, empty.Min())
	assert.Zero(t, empty.Avg())
}

func TestDisabledReporterDropsRecords(t *testing.T) {
	r := NewReporter(Options{})
	r.Record("FundMe", "fund", 100)
	assert.Empty(t, r.Stats())

	var nilReporter *Reporter
	assert.False(t, nilReporter.Enabled())
	nilReporter.Record("FundMe", "fund", 100)
}

func TestReportWithFiatCost(t *testing.T) {
	r := NewReporter(Options{
		Enabled: true,
		// 10 gwei, ETH at 2000 USD
		GasPrice: ExplorerGasPrice{Oracle: fixedGwei(10)},
		Quotes:   fixedQuote(2000),
	})
	r.Record("FundMe", DeploymentMethod, 1_000_000)
	r.Record("FundMe", "fund", 90_000)
	r.Record("FundMe", "fund", 50_000)
	r.Record("MockV3Aggregator", DeploymentMethod, 500_000)

	report := r.Build(context.Background())
	assert.Equal(t, "USD (avg)", report.Headers[6])
	require.Len(t, report.Rows, 3)
	assert.Equal(t, []string{"FundMe", "deployment", "1,000,000", "1,000,000", "1,000,000", "1", "20.00"}, report.Rows[0])
	assert.Equal(t, []string{"FundMe", "fund", "50,000", "90,000", "70,000", "2", "1.40"}, report.Rows[1])
	assert.Equal(t, "MockV3Aggregator", report.Rows[2][0])
}

func TestReportWithoutPricing(t *testing.T) {
	r := NewReporter(Options{
		Enabled:  true,
		GasPrice: GasPriceFunc(func(ctx context.Context) (*big.Int, error) { return nil, errors.New("down") }),
		Quotes:   fixedQuote(2000),
	})
	r.Record("FundMe", "withdraw", 40_000)

	u := ui.NewRecordingUI()
	require.NoError(t, r.Render(context.Background(), u))
	assert.True(t, u.HasMessage("FundMe | withdraw | 40,000 | 40,000 | 40,000 | 1 | "))
}

func TestRenderToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gas-report.txt")
	r := NewReporter(Options{Enabled: true, OutputFile: out})
	r.Record("FundMe", "cheaperWithdraw", 35_123)

	u := ui.NewRecordingUI()
	require.NoError(t, r.Render(context.Background(), u))
	assert.Empty(t, u.Entries())

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "cheaperWithdraw")
	assert.Contains(t, string(content), "35,123")
}

func TestCoinMarketCapQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cryptocurrency/quotes/latest", r.URL.Path)
		assert.Equal(t, "KEY", r.Header.Get("X-CMC_PRO_API_KEY"))
		assert.Equal(t, "ETH", r.URL.Query().Get("symbol"))
		assert.Equal(t, "EUR", r.URL.Query().Get("convert"))
		fmt.Fprint(w, `{"status":{"error_code":0},"data":{"ETH":{"symbol":"ETH","quote":{"EUR":{"price":1850.5}}}}}`)
	}))
	defer srv.Close()

	cmc := NewCoinMarketCap("KEY")
	cmc.BaseURL = srv.URL
	price, err := cmc.Quote(context.Background(), "eth", "eur")
	require.NoError(t, err)
	assert.Equal(t, 1850.5, price)
}

func TestCoinMarketCapError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":{"error_code":1001,"error_message":"This API Key is invalid."}}`)
	}))
	defer srv.Close()

	cmc := NewCoinMarketCap("bad")
	cmc.BaseURL = srv.URL
	_, err := cmc.Quote(context.Background(), "ETH", "USD")
	assert.ErrorContains(t, err, "API Key is invalid")
}
