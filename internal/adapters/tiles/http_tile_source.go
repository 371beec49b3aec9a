package tiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// HTTPTileSource fetches raster tiles from an endpoint addressed by a
// {z}/{x}/{y} URL template, e.g. "https://tile.openstreetmap.org/{z}/{x}/{y}.png".
type HTTPTileSource struct {
	session     *http.Client
	urlTemplate string
	userAgent   string
}

func NewHTTPTileSource(urlTemplate, userAgent string) (*HTTPTileSource, error) {
	for _, ph := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(urlTemplate, ph) {
			return nil, fmt.Errorf("tile source: url template missing %s placeholder", ph)
		}
	}

	return &HTTPTileSource{
		session:     &http.Client{Timeout: 15 * time.Second},
		urlTemplate: urlTemplate,
		userAgent:   userAgent,
	}, nil
}

func (t *HTTPTileSource) tileURL(z, x, y int) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(z),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	)
	return r.Replace(t.urlTemplate)
}

// FetchTile downloads one tile image, retrying transient failures.
func (t *HTTPTileSource) FetchTile(ctx context.Context, z, x, y int) ([]byte, error) {
	url := t.tileURL(z, x, y)

	resp, err := t.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		if t.userAgent != "" {
			req.Header.Set("User-Agent", t.userAgent)
		}
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch tile %d/%d/%d: %w", z, x, y, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch tile %d/%d/%d: read body: %w", z, x, y, err)
	}

	return data, nil
}

func (t *HTTPTileSource) do(req *http.Request) (*http.Response, error) {
	resp, err := t.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx
// responses) with exponential backoff while respecting context
// cancellation.
func (t *HTTPTileSource) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := t.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
