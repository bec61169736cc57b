package gasreport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const CoinMarketCapAPI = "https://pro-api.coinmarketcap.com"

// QuoteSource prices one unit of a token in a fiat currency.
type QuoteSource interface {
	Quote(ctx context.Context, symbol, currency string) (float64, error)
}

type CoinMarketCap struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewCoinMarketCap(apiKey string) *CoinMarketCap {
	return &CoinMarketCap{
		BaseURL: CoinMarketCapAPI,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type cmcQuoteResponse struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Data map[string]struct {
		Symbol string `json:"symbol"`
		Quote  map[string]struct {
			Price float64 `json:"price"`
		} `json:"quote"`
	} `json:"data"`
}

func (c *CoinMarketCap) Quote(ctx context.Context, symbol, currency string) (float64, error) {
	symbol = strings.ToUpper(symbol)
	currency = strings.ToUpper(currency)
	params := url.Values{
		"symbol":  {symbol},
		"convert": {currency},
	}
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/v1/cryptocurrency/quotes/latest?%s", c.BaseURL, params.Encode()),
		nil,
	)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-CMC_PRO_API_KEY", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	result := cmcQuoteResponse{}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("couldn't unmarshal coinmarketcap answer %s, err: %w", string(body), err)
	}
	if result.Status.ErrorCode != 0 {
		return 0, fmt.Errorf("coinmarketcap error %d: %s", result.Status.ErrorCode, result.Status.ErrorMessage)
	}
	token, found := result.Data[symbol]
	if !found {
		return 0, fmt.Errorf("coinmarketcap has no quote for %s", symbol)
	}
	quote, found := token.Quote[currency]
	if !found {
		return 0, fmt.Errorf("coinmarketcap has no %s price for %s", currency, symbol)
	}
	return quote.Price, nil
}
