// Package enrichment fetches the cosmetic image and name attached to a roll.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gacha/service"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	maxAttempts     = 3
	initialInterval = 100 * time.Millisecond
	maxBodyBytes    = 64 << 10
)

var _ service.Enricher = (*Client)(nil)

// Client talks to the image and word services over HTTP
type Client struct {
	httpClient *http.Client
	imageURL   string
	wordURL    string
}

// NewClient creates an enrichment client. Deadlines come from the caller's
// context, so httpClient may be http.DefaultClient.
func NewClient(imageURL, wordURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		imageURL:   imageURL,
		wordURL:    strings.TrimRight(wordURL, "/"),
	}
}

type imageResponse struct {
	URL string `json:"url"`
}

// FetchDisplayImage returns a random image URL
func (c *Client) FetchDisplayImage(ctx context.Context) (string, error) {
	var resp imageResponse
	if err := c.getJSON(ctx, c.imageURL, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("%w: image service returned no url", service.ErrEnrichmentUnavailable)
	}
	return resp.URL, nil
}

// FetchDisplayName returns an upper-cased "ADJECTIVE NOUN" name.
// Both words are fetched concurrently.
func (c *Client) FetchDisplayName(ctx context.Context) (string, error) {
	var adjective, noun string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		word, err := c.fetchWord(gctx, "adjective")
		adjective = word
		return err
	})
	g.Go(func() error {
		word, err := c.fetchWord(gctx, "noun")
		noun = word
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	return strings.ToUpper(adjective + " " + noun), nil
}

func (c *Client) fetchWord(ctx context.Context, kind string) (string, error) {
	var words []string
	if err := c.getJSON(ctx, c.wordURL+"/random/"+kind, &words); err != nil {
		return "", err
	}
	if len(words) == 0 || strings.TrimSpace(words[0]) == "" {
		return "", fmt.Errorf("%w: word service returned no %s", service.ErrEnrichmentUnavailable, kind)
	}
	return strings.TrimSpace(words[0]), nil
}

// getJSON retries transport errors and 5xx responses with exponential backoff
// until the context expires. Other failures are returned immediately.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialInterval
	retry := backoff.WithContext(backoff.WithMaxRetries(policy, maxAttempts-1), ctx)

	operation := func() error {
		return c.getOnce(ctx, url, out)
	}
	notify := func(err error, wait time.Duration) {
		log.WithFields(log.Fields{
			"url":   url,
			"wait":  wait,
			"error": err,
		}).Debug("Retrying enrichment request")
	}

	if err := backoff.RetryNotify(operation, retry, notify); err != nil {
		return fmt.Errorf("%w: %v", service.ErrEnrichmentUnavailable, err)
	}
	return nil
}

func (c *Client) getOnce(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
