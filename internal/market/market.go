// Package market fetches currency rates and stock prices for the dashboard
// view. Failures degrade to null values instead of failing the whole view.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"golang.org/x/sync/errgroup"
)

// CurrencyRate is one currency quote against RUB. Rate is nil when the quote
// could not be obtained.
type CurrencyRate struct {
	Currency string   `json:"currency"`
	Rate     *float64 `json:"rate"`
}

// StockPrice is one stock quote. Price is nil when the quote could not be
// obtained.
type StockPrice struct {
	Stock string   `json:"stock"`
	Price *float64 `json:"price"`
}

// Quotes bundles the market data attached to the dashboard view.
type Quotes struct {
	CurrencyRates []CurrencyRate `json:"currency_rates"`
	StockPrices   []StockPrice   `json:"stock_prices"`
}

// Client fetches quotes from the Central Bank of Russia daily rates feed and
// a stock price endpoint.
type Client struct {
	cbrURL    string
	stocksURL string
	client    *http.Client
}

// NewClient creates a market data client. stocksURL may be empty, in which
// case stock prices are always nil.
func NewClient(cbrURL, stocksURL string) *Client {
	return &Client{
		cbrURL:    cbrURL,
		stocksURL: stocksURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves currency rates and stock prices concurrently. It never
// returns an error: every requested code and ticker is present in the result,
// with a nil value where the lookup failed.
func (c *Client) Fetch(ctx context.Context, currencies, stocks []string) Quotes {
	quotes := Quotes{
		CurrencyRates: make([]CurrencyRate, 0, len(currencies)),
		StockPrices:   make([]StockPrice, 0, len(stocks)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		quotes.CurrencyRates = c.currencyRates(gctx, currencies)
		return nil
	})
	g.Go(func() error {
		quotes.StockPrices = c.stockPrices(gctx, stocks)
		return nil
	})
	_ = g.Wait()

	return quotes
}

func (c *Client) currencyRates(ctx context.Context, currencies []string) []CurrencyRate {
	rates := make([]CurrencyRate, 0, len(currencies))
	if len(currencies) == 0 {
		return rates
	}

	table, err := c.fetchDailyRates(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Currency rates unavailable", "error", err)
		table = nil
	}
	for _, code := range currencies {
		rate := CurrencyRate{Currency: code}
		if v, ok := table[code]; ok {
			rate.Rate = &v
		}
		rates = append(rates, rate)
	}
	return rates
}

// fetchDailyRates downloads and parses the CBR XML_daily feed into a
// char-code to per-unit rate table.
func (c *Client) fetchDailyRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cbrURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch daily rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return ParseDailyRates(body)
}

// ParseDailyRates extracts per-unit rates from a CBR XML_daily document. The
// feed uses a comma decimal separator and quotes some currencies per 10 or
// 100 units, normalized here through Nominal.
func ParseDailyRates(raw []byte) (map[string]float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("parse XML: %w", err)
	}

	valutes := doc.FindElements("//Valute")
	if len(valutes) == 0 {
		return nil, fmt.Errorf("no currency data found in XML")
	}

	table := make(map[string]float64, len(valutes))
	for _, v := range valutes {
		code := v.FindElement("./CharCode")
		value := v.FindElement("./Value")
		if code == nil || value == nil {
			continue
		}
		rate, err := strconv.ParseFloat(strings.ReplaceAll(value.Text(), ",", "."), 64)
		if err != nil {
			continue
		}
		nominal := 1.0
		if n := v.FindElement("./Nominal"); n != nil {
			if parsed, err := strconv.ParseFloat(n.Text(), 64); err == nil && parsed > 0 {
				nominal = parsed
			}
		}
		table[code.Text()] = rate / nominal
	}
	return table, nil
}

func (c *Client) stockPrices(ctx context.Context, stocks []string) []StockPrice {
	prices := make([]StockPrice, 0, len(stocks))
	if len(stocks) == 0 {
		return prices
	}

	var table map[string]float64
	if c.stocksURL != "" {
		var err error
		table, err = c.fetchStockPrices(ctx)
		if err != nil {
			slog.WarnContext(ctx, "Stock prices unavailable", "error", err)
		}
	}
	for _, ticker := range stocks {
		price := StockPrice{Stock: ticker}
		if v, ok := table[ticker]; ok {
			price.Price = &v
		}
		prices = append(prices, price)
	}
	return prices
}

// fetchStockPrices downloads a ticker-to-price JSON object from the
// configured endpoint.
func (c *Client) fetchStockPrices(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.stocksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stock prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var table map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return table, nil
}
