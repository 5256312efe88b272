// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"homework_status_bot/internal/domain/failure"
)

const op = "practicum.FetchStatuses"

// Client queries the homework review API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *logrus.Entry
	now        func() time.Time
}

func NewClient(httpClient *http.Client, endpoint, token string, logger *logrus.Entry) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		token:      token,
		logger:     logger,
		now:        time.Now,
	}
}

// FetchStatuses requests homework statuses changed since fromDate (unix seconds)
// and returns the decoded JSON body. Numbers are decoded as json.Number.
// A non-positive fromDate is replaced by the current time.
func (c *Client) FetchStatuses(ctx context.Context, fromDate int64) (any, error) {
	if fromDate <= 0 {
		fromDate = c.now().Unix()
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	logCtx := c.logger.WithField("from_date", fromDate)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logCtx.WithError(err).Error("API endpoint is unreachable")
		return nil, failure.Wrap(failure.KindConnectionFailure, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logCtx.WithField("status_code", resp.StatusCode).Error("API endpoint returned unexpected status")
		return nil, &failure.Error{
			Kind:       failure.KindUnexpectedStatusCode,
			Op:         op,
			StatusCode: resp.StatusCode,
			Msg:        fmt.Sprintf("endpoint %s returned %d", c.endpoint, resp.StatusCode),
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		logCtx.WithError(err).Error("API response is not valid JSON")
		return nil, failure.Wrap(failure.KindMalformedPayload, op, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		logCtx.WithError(err).Error("API response has trailing data")
		return nil, failure.Wrap(failure.KindMalformedPayload, op, err)
	}

	logCtx.Info("API request completed")
	return payload, nil
}
