// Package client talks to the staybook API on behalf of a signed-in guest.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"staybook/model"
)

// APIError is a non-2xx answer; Message is the server's "message" field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("staybook: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Token: token, HTTP: http.DefaultClient}
}

// ListingPage is what GET /listings/:id returns for a guest.
type ListingPage struct {
	Listing       model.PublicListing       `json:"listing"`
	Category      *model.Category           `json:"category,omitempty"`
	Reservations  []model.PublicReservation `json:"reservations"`
	DisabledDates []string                  `json:"disabled_dates"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	res := model.LoginUserResponse{}
	err := c.do(ctx, http.MethodPost, "/login", model.LoginUserReq{Email: email, Password: password}, &res)
	if err != nil {
		return "", err
	}

	c.Token = res.Token
	return res.Token, nil
}

func (c *Client) FetchListing(ctx context.Context, id string) (ListingPage, error) {
	page := ListingPage{}
	err := c.do(ctx, http.MethodGet, "/listings/"+id, nil, &page)
	return page, err
}

func (c *Client) CreateReservation(ctx context.Context, r model.SubmitReservation) (model.Reservation, error) {
	created := model.Reservation{}
	err := c.do(ctx, http.MethodPost, "/reservations", r, &created)
	return created, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		var msg struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(res.Body).Decode(&msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
