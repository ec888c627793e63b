package terrain

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

// tileClient fetches raster tiles from a z/x/y template URL with bounded
// retries. It is shared by the elevation and landcover adapters.
type tileClient struct {
	session     *http.Client
	urlTemplate string // contains {z}, {x}, {y} placeholders
	apiKey      string // appended as ?key= when non-empty
}

func newTileClient(urlTemplate, apiKey string) (*tileClient, error) {
	if !strings.Contains(urlTemplate, "{z}") ||
		!strings.Contains(urlTemplate, "{x}") ||
		!strings.Contains(urlTemplate, "{y}") {
		return nil, fmt.Errorf("tile url template %q must contain {z}, {x} and {y}", urlTemplate)
	}

	return &tileClient{
		session:     &http.Client{Timeout: 10 * time.Second},
		urlTemplate: urlTemplate,
		apiKey:      apiKey,
	}, nil
}

func (c *tileClient) tileURL(t TileCoord) string {
	url := strings.NewReplacer(
		"{z}", strconv.Itoa(t.Z),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
	).Replace(c.urlTemplate)

	if c.apiKey != "" {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + "key=" + c.apiKey
	}
	return url
}

func (c *tileClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// fetchTile retrieves the raw tile bytes, retrying transient failures
// (network errors, 429 and 5xx responses) with exponential backoff while
// respecting context cancellation.
func (c *tileClient) fetchTile(ctx context.Context, t TileCoord) ([]byte, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	url := c.tileURL(t)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create tile request: %w", err)
		}
		req.Header.Set("Accept", "image/png")

		resp, err := c.do(req)
		if err == nil {
			data, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return nil, fmt.Errorf("read tile %s: %w", t.Key(), readErr)
			}
			return data, nil
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
