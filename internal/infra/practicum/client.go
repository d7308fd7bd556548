// Package practicum talks to the homework review API.
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"homework_status_bot/internal/domain/homework"
)

// DefaultEndpoint is the production homework statuses endpoint.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const (
	defaultTimeout  = 10 * time.Second
	maxBodySnippet  = 512
	maxResponseSize = 4 << 20
)

// Client issues one GET per poll cycle. It never retries.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Endpoint returns the URL the client polls.
func (c *Client) Endpoint() string { return c.endpoint }

// Fetch requests status changes since cursor and returns the decoded JSON body.
func (c *Client) Fetch(ctx context.Context, cursor int64) (any, error) {
	params := url.Values{"from_date": {strconv.FormatInt(cursor, 10)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build homework statuses request")
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{"endpoint": c.endpoint, "from_date": cursor}).Debug("Requesting homework statuses")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &homework.TransportError{Endpoint: c.endpoint, Params: params, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &homework.TransportError{Endpoint: c.endpoint, Params: params, Err: errors.Wrap(err, "read response body")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &homework.RemoteStatusError{
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
			Body:       snippet(body),
			Params:     params,
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &homework.DecodeError{Body: snippet(body), Err: err}
	}
	if dec.More() {
		return nil, &homework.DecodeError{Body: snippet(body), Err: errors.New("unexpected data after JSON value")}
	}
	return raw, nil
}

func snippet(body []byte) string {
	if len(body) <= maxBodySnippet {
		return string(body)
	}
	return string(body[:maxBodySnippet]) + "..."
}
