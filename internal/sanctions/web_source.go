package sanctions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kyc-screening/internal/models"

	"github.com/goware/breaker"
	logadapter "github.com/goware/logadapter-zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultWebTimeout  = 30 * time.Second
	defaultWebBackoff  = 2 * time.Second
	defaultWebMaxTries = 5
)

type webSource struct {
	url      string
	client   *http.Client
	backoff  time.Duration
	maxTries int
}

// WebOption настраивает веб-источник
type WebOption func(*webSource)

// WithHTTPClient задает HTTP клиент
func WithHTTPClient(client *http.Client) WebOption {
	return func(w *webSource) { w.client = client }
}

// WithRetry задает начальную задержку и число попыток circuit breaker
func WithRetry(backoff time.Duration, maxTries int) WebOption {
	return func(w *webSource) {
		w.backoff = backoff
		w.maxTries = maxTries
	}
}

// NewWebSource создает источник, загружающий список по HTTP
func NewWebSource(url string, opts ...WebOption) Source {
	w := &webSource{
		url:      url,
		client:   &http.Client{Timeout: defaultWebTimeout},
		backoff:  defaultWebBackoff,
		maxTries: defaultWebMaxTries,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *webSource) Name() string {
	return "web:" + w.url
}

func (w *webSource) Fetch(ctx context.Context) ([]models.Sanction, error) {
	br := breaker.New(logadapter.LogAdapter(log.Logger), w.backoff, 2, w.maxTries)

	var (
		data        []byte
		contentType string
	)
	err := br.Do(ctx, func() error {
		var err error
		data, contentType, err = w.get(ctx)
		if err != nil {
			log.Warn().Err(err).Str("url", w.url).Msg("sanctions fetch failed")
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sanctions from %s: %w", w.url, err)
	}

	format := DetectFormat(w.url, data)
	if strings.Contains(contentType, "csv") {
		format = FormatCSV
	} else if strings.Contains(contentType, "json") {
		format = FormatJSON
	}
	return Decode(format, data)
}

func (w *webSource) get(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return nil, "", err
	}

	res, err := w.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", err
	}
	return buf, res.Header.Get("Content-Type"), nil
}
