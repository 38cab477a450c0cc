package client

import (
	"context"
	"fmt"
	"time"

	"storefront/app/internal/config"
	"storefront/app/internal/domain"
	"storefront/app/internal/mirror"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type CatalogSource interface {
	Fetch(ctx context.Context) (domain.Catalog, error)
}

type httpSource struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	mirrors    mirror.Supplier
	timeout    time.Duration
}

// NewHTTPSource fetches the catalog document from the configured mirrors
func NewHTTPSource(cfg config.CatalogConfig, mirrors mirror.Supplier) CatalogSource {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "application/json")

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &httpSource{
		rl:         rl,
		httpClient: client,
		mirrors:    mirrors,
		timeout:    time.Duration(cfg.Timeout) * time.Second,
	}
}

// NewSource picks the file source when a path is configured and the HTTP
// source otherwise
func NewSource(cfg config.CatalogConfig) CatalogSource {
	if cfg.Path != "" {
		log.Infof("📄 Loading catalog from file %s", cfg.Path)
		return NewFileSource(cfg.Path)
	}
	return NewHTTPSource(cfg, mirror.NewSupplier(cfg.URLs))
}

// Fetch tries each mirror once, starting from the supplier's current
// position, and returns the first catalog that downloads and parses
func (s *httpSource) Fetch(ctx context.Context) (domain.Catalog, error) {
	attempts := s.mirrors.Len()
	if attempts == 0 {
		return nil, fmt.Errorf("no catalog mirrors configured")
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		url := s.mirrors.Get()

		catalog, err := s.fetchFrom(ctx, url)
		if err == nil {
			log.Debugf("Fetched catalog from %s", url)
			return catalog, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}

		log.Warnf("⚠️ Catalog mirror %s failed: %v", url, err)
		lastErr = err
	}

	return nil, fmt.Errorf("all %d catalog mirrors failed: %w", attempts, lastErr)
}

func (s *httpSource) fetchFrom(ctx context.Context, url string) (domain.Catalog, error) {
	s.rl.Take()

	reqCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.httpClient.R().
		SetContext(reqCtx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return ParseCatalog([]byte(resp.String()))
}
