// Package analyticsclient содержит HTTP-клиент внешнего сервиса
// аналитики, отдающего тренды выручки по выполненным заявкам.
package analyticsclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт новый клиент сервиса аналитики.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// RevenueTrend запрашивает помесячный тренд выручки за последние months месяцев.
func (c *Client) RevenueTrend(ctx context.Context, months int) (*RevenueTrendResponse, error) {
	query := url.Values{}
	query.Set("months", strconv.Itoa(months))

	req, err := c.newRequest(ctx, "/v1/revenue-trend", query)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var trendResp RevenueTrendResponse
	if err := json.NewDecoder(resp.Body).Decode(&trendResp); err != nil {
		return nil, err
	}
	return &trendResp, nil
}
