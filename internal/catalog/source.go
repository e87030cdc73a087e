package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/emycrochet/storefront-api/internal/config"
	"github.com/emycrochet/storefront-api/internal/domain"
)

// Source reads the externally hosted tab-separated catalog. Every call
// fetches fresh; there is no caching layer, the sheet is the source of
// truth for the duration of a single request.
type Source struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSource creates a catalog source for the configured sheet URL
func NewSource(cfg config.CatalogConfig, logger *zap.Logger) *Source {
	return &Source{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

var lineSplit = regexp.MustCompile(`\r?\n`)

// Fetch downloads and parses the catalog into a snapshot. Any transport
// or format failure is returned as-is so the caller can fail closed.
func (s *Source) Fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	products, err := parseTSV(string(body))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("catalog fetched", zap.Int("products", len(products)))
	return NewSnapshot(products), nil
}

// parseTSV parses the sheet export. Columns are addressed by header name,
// case-insensitively; "category" and "categories" are interchangeable.
// Only id, name and price are required for pricing.
func parseTSV(text string) ([]*domain.Product, error) {
	lines := lineSplit.Split(strings.TrimSpace(text), -1)
	if len(lines) < 2 {
		return nil, fmt.Errorf("catalog has no data rows")
	}

	headers := strings.Split(lines[0], "\t")
	col := make(map[string]int, len(headers))
	for i, h := range headers {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["id"]; !ok {
		return nil, fmt.Errorf("catalog is missing the id column")
	}
	if _, ok := col["price"]; !ok {
		return nil, fmt.Errorf("catalog is missing the price column")
	}

	catCol, hasCatCol := col["category"]
	if !hasCatCol {
		catCol, hasCatCol = col["categories"]
	}
	_, hasActiveCol := col["active"]

	products := make([]*domain.Product, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cols := strings.Split(line, "\t")
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(cols) {
				return ""
			}
			return strings.TrimSpace(cols[i])
		}

		id := get("id")
		if id == "" {
			continue
		}

		p := &domain.Product{
			ID:          id,
			Name:        get("name"),
			Description: get("description"),
			Size:        get("size"),
			Option:      get("option"),
			Price:       parsePrice(get("price")),
			Images:      splitList(get("images"), "|"),
			DelayMin:    get("delay_min"),
			DelayMax:    get("delay_max"),
			Featured:    toBoolean(get("featured")),
		}

		// Sheets without an active column list orderable products only.
		if hasActiveCol {
			p.Active = toBoolean(get("active"))
		} else {
			p.Active = true
		}

		if hasCatCol && catCol < len(cols) {
			p.Categories = splitList(strings.TrimSpace(cols[catCol]), "|,")
		}

		products = append(products, p)
	}

	return products, nil
}

// parsePrice accepts comma decimal separators ("12,50"). Unparseable
// prices become zero and the resolver rejects the entry.
func parsePrice(raw string) decimal.Decimal {
	raw = strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}

func splitList(raw, seps string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toBoolean(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
