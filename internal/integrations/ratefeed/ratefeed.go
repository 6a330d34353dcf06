package ratefeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/advisory-service/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// ErrNoRate is returned when the feed has no usable rate element
var ErrNoRate = errors.New("no rate found in feed")

// ErrNotConfigured is returned when RATE_FEED_URL is empty
var ErrNotConfigured = errors.New("rate feed not configured")

// Client reads a published reference rate from an XML feed
type Client struct {
	url    string
	path   etree.Path
	margin float64
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new feed client. The rate is the first element
// matched by cfg.RateFeedPath.
func NewClient(cfg *config.Config, log *logrus.Logger) (*Client, error) {
	path, err := etree.CompilePath(cfg.RateFeedPath)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_FEED_PATH %q: %w", cfg.RateFeedPath, err)
	}
	return &Client{
		url:    cfg.RateFeedURL,
		path:   path,
		margin: cfg.RateFeedMargin,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}, nil
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("Rate feed response: %s", string(body))

	return body, nil
}

func (c *Client) parse(raw []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	el := doc.FindElementPath(c.path)
	if el == nil {
		return 0, ErrNoRate
	}

	text := strings.ReplaceAll(strings.TrimSpace(el.Text()), ",", ".")
	rate, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrNoRate, el.Text())
	}
	return rate, nil
}

// Rate returns the latest published rate plus the configured margin, in percent
func (c *Client) Rate(ctx context.Context) (float64, error) {
	if c.url == "" {
		return 0, ErrNotConfigured
	}
	body, err := c.fetch(ctx)
	if err != nil {
		return 0, err
	}

	rate, err := c.parse(body)
	if err != nil {
		return 0, err
	}
	rate += c.margin

	c.log.Infof("Retrieved reference rate: %.2f%% (including %.2f%% margin)", rate, c.margin)
	return rate, nil
}
