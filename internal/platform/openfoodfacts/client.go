package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkazanov/nutrilog/internal/config"
	"github.com/mkazanov/nutrilog/internal/domain"
	"github.com/mkazanov/nutrilog/internal/platform/logger"
	"github.com/mkazanov/nutrilog/internal/service/resolution"
)

// userAgent identifies this client to the upstream database, as its API
// guidelines request.
const userAgent = "nutrilog/1.0"

// Ensure Client implements the retriever consumed by the resolution service
var _ resolution.CandidateRetriever = (*Client)(nil)

// Client queries the Open Food Facts HTTP API.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Open Food Facts client from configuration.
// If log is nil, a default logger will be used.
func NewClient(cfg config.NutritionConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL:  cfg.BaseURL,
		pageSize: cfg.SearchPageSize,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: log.With(slog.String("component", "openfoodfacts_client")),
	}
}

// Search queries the database by free text and returns up to limit raw
// records. A non-positive limit falls back to the configured page size.
// Failures of any kind return an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) []domain.RawRecord {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if limit <= 0 {
		limit = c.pageSize
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, params.Encode())

	var resp searchResponse
	if !c.getJSON(ctx, log, endpoint, &resp) {
		return nil
	}

	records := make([]domain.RawRecord, 0, len(resp.Products))
	for i := range resp.Products {
		if rec := resp.Products[i].toRawRecord(); rec != nil {
			records = append(records, *rec)
		}
	}

	log.Debug("external search completed",
		slog.Int("products", len(resp.Products)),
		slog.Int("usable", len(records)))
	return records
}

// LookupBarcode fetches the single product registered under the barcode.
// Returns nil when the barcode is unknown or the lookup fails; the caller
// falls back to text search.
func (c *Client) LookupBarcode(ctx context.Context, code string) *domain.RawRecord {
	log := logger.FromContextOrDefault(ctx, c.logger)

	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(code))

	var resp productResponse
	if !c.getJSON(ctx, log, endpoint, &resp) {
		return nil
	}

	if resp.Status != 1 || resp.Product == nil {
		log.Debug("barcode not found in external database")
		return nil
	}

	return resp.Product.toRawRecord()
}

// getJSON performs a GET and decodes the body into out. Returns false on any
// failure; the external database is best-effort and failures are only logged.
func (c *Client) getJSON(ctx context.Context, log *slog.Logger, endpoint string, out any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("failed to build external request", slog.String("error", err.Error()))
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("external request failed", slog.String("error", err.Error()))
		return false
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error("failed to close response body", slog.String("error", err.Error()))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		log.Warn("external request returned non-OK status",
			slog.Int("status", resp.StatusCode))
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn("failed to decode external response", slog.String("error", err.Error()))
		return false
	}

	return true
}
