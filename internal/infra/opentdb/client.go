// Package opentdb fetches multiple-choice questions from the Open Trivia
// Database (https://opentdb.com).
package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"trivia-quiz/internal/domain"
)

// DefaultBaseURL is the public OpenTDB endpoint.
const DefaultBaseURL = "https://opentdb.com"

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RPS        float64 // <= 0 disables client-side throttling
	Burst      int
	Category   string // numeric OpenTDB category id
	Difficulty string // easy, medium or hard
}

// Client implements trivia.Provider over HTTP.
type Client struct {
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	category   string
	difficulty string
	log        zerolog.Logger
}

func New(opts Options, log zerolog.Logger) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		category:   opts.Category,
		difficulty: opts.Difficulty,
		log:        log.With().Str("provider", "opentdb").Logger(),
	}
}

// Fetch issues one GET for count multiple-choice questions.
func (c *Client) Fetch(ctx context.Context, count int) (domain.RawBatch, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.RawBatch{}, fmt.Errorf("throttle: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(count), nil)
	if err != nil {
		return domain.RawBatch{}, err
	}
	req.Header.Set("Accept", "application/json")

	t0 := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("opentdb_request_failed")
		return domain.RawBatch{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RawBatch{}, fmt.Errorf("read body: %w", err)
	}
	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("body_len", len(body)).
		Dur("latency", time.Since(t0)).
		Msg("opentdb_response")

	var batch domain.RawBatch
	decodeErr := json.Unmarshal(body, &batch)

	if resp.StatusCode != http.StatusOK {
		// OpenTDB answers 429 with a response_code body when rate limited.
		if decodeErr == nil && batch.ResponseCode != 0 {
			return batch, nil
		}
		return domain.RawBatch{}, fmt.Errorf("http %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return domain.RawBatch{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, decodeErr)
	}
	return batch, nil
}

func (c *Client) endpoint(count int) string {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(count))
	q.Set("type", "multiple")
	if c.category != "" {
		q.Set("category", c.category)
	}
	if c.difficulty != "" {
		q.Set("difficulty", c.difficulty)
	}
	return c.baseURL + "/api.php?" + q.Encode()
}
