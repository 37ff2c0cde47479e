// Package edgar talks to SEC EDGAR: the ticker directory, the submissions
// index, the companyfacts API and the filing archive.
//
// This package uses the following external libraries:
//   - github.com/go-resty/resty/v2: HTTP client for all SEC endpoints
//   - golang.org/x/time/rate: process-wide request spacing
//   - github.com/alphadose/haxmap: concurrent ticker directory
//   - github.com/goccy/go-json, github.com/tidwall/gjson: typed JSON parsing
package edgar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"shariah_screener/pkg/core/logging"
	"shariah_screener/pkg/models"
)

const (
	defaultUserAgent  = "ShariahScreener/1.0 (compliance@example.com)"
	companyTickersURL = "https://www.sec.gov/files/company_tickers.json"
	submissionsAPIURL = "https://data.sec.gov/submissions/CIK%s.json"
	companyFactsURL   = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"
	filingBaseURL     = "https://www.sec.gov/Archives/edgar/data/%s/%s/%s"
)

var (
	// ErrUnexpectedStatus is returned when SEC answers with a non-200 status
	// other than 404.
	ErrUnexpectedStatus = errors.New("unexpected status code from SEC")

	// errNotFound marks a 404; callers turn it into an absent result.
	errNotFound = errors.New("resource not found")
)

// Config holds the endpoints and politeness settings of a Client. Zero values
// fall back to the public SEC endpoints.
type Config struct {
	UserAgent        string
	MinInterval      time.Duration
	Timeout          time.Duration
	TickersURL       string
	SubmissionsURL   string // printf pattern taking the padded CIK
	CompanyFactsURL  string // printf pattern taking the padded CIK
	FilingURL        string // printf pattern taking CIK, accession, document
	DocumentCacheDir string
	DirectoryTTL     time.Duration
}

// Client fetches EDGAR resources. All requests share the package throttle.
type Client struct {
	http      *resty.Client
	cfg       Config
	directory *Directory
	docCache  *DocumentCache
	logger    zerolog.Logger
}

// NewClient builds a client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.TickersURL == "" {
		cfg.TickersURL = companyTickersURL
	}
	if cfg.SubmissionsURL == "" {
		cfg.SubmissionsURL = submissionsAPIURL
	}
	if cfg.CompanyFactsURL == "" {
		cfg.CompanyFactsURL = companyFactsURL
	}
	if cfg.FilingURL == "" {
		cfg.FilingURL = filingBaseURL
	}
	if cfg.MinInterval > 0 {
		SetMinInterval(cfg.MinInterval)
	}

	c := &Client{
		http: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("User-Agent", cfg.UserAgent).
			SetHeader("Accept", "application/json, text/html"),
		cfg:    cfg,
		logger: logging.For("edgar"),
	}
	if cfg.DocumentCacheDir != "" {
		cache, err := NewDocumentCache(cfg.DocumentCacheDir)
		if err != nil {
			c.logger.Warn().Err(err).Str("dir", cfg.DocumentCacheDir).Msg("document cache disabled")
		}
		c.docCache = cache
	}
	c.directory = NewDirectory(func(ctx context.Context) ([]byte, error) {
		return c.fetchURL(ctx, cfg.TickersURL)
	}, cfg.DirectoryTTL)
	return c
}

// LookupCIK resolves a ticker to its padded CIK. An unknown ticker is
// reported as ok == false with a nil error.
func (c *Client) LookupCIK(ctx context.Context, ticker string) (string, bool, error) {
	return c.directory.Lookup(ctx, ticker)
}

// LatestAnnualFiling returns the reference to the company's latest annual
// report, or nil when the company has none.
func (c *Client) LatestAnnualFiling(ctx context.Context, cik string) (*models.FilingReference, error) {
	cik = padCIK(cik)
	body, err := c.fetchURL(ctx, fmt.Sprintf(c.cfg.SubmissionsURL, cik))
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	index, err := ParseSubmissions(body)
	if err != nil {
		return nil, err
	}
	return SelectAnnualFiling(cik, index.Filings.Recent, c.cfg.FilingURL), nil
}

// CompanyFacts fetches the structured facts collection, or nil when SEC has
// no XBRL data for the company.
func (c *Client) CompanyFacts(ctx context.Context, cik string) (*CompanyFacts, error) {
	body, err := c.fetchURL(ctx, fmt.Sprintf(c.cfg.CompanyFactsURL, padCIK(cik)))
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company facts: %w", err)
	}
	return ParseCompanyFacts(body)
}

// FetchDocument downloads the filing's primary document. The disk cache is
// consulted first when configured.
func (c *Client) FetchDocument(ctx context.Context, ref *models.FilingReference) (string, error) {
	if ref == nil || ref.DocumentURL == "" {
		return "", fmt.Errorf("filing reference has no document URL")
	}
	if c.docCache != nil {
		if html := c.docCache.Get(ref.CIK, ref.AccessionID); html != "" {
			return html, nil
		}
	}

	body, err := c.fetchURL(ctx, ref.DocumentURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch filing document: %w", err)
	}

	html := string(body)
	if c.docCache != nil {
		if err := c.docCache.Set(ref.CIK, ref.AccessionID, html); err != nil {
			c.logger.Warn().Err(err).Str("accession", ref.AccessionID).Msg("document cache write failed")
		}
	}
	return html, nil
}

func (c *Client) fetchURL(ctx context.Context, url string) ([]byte, error) {
	if err := waitTurn(ctx); err != nil {
		return nil, err
	}

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errNotFound
	default:
		return nil, fmt.Errorf("%w: HTTP %d for %s", ErrUnexpectedStatus, resp.StatusCode(), url)
	}

	c.logger.Debug().Str("url", url).Int("bytes", len(resp.Body())).Msg("fetched")
	return resp.Body(), nil
}

func padCIK(cik string) string {
	cik = strings.TrimLeft(strings.TrimSpace(cik), "0")
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}
