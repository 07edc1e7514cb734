// Package client is the typed consumer of the authoritative store's REST
// contract. It owns transport only; all status interpretation happens in the
// packages that read its results.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parkhub/internal/stats"
)

// ErrReservationEnded is returned when the store rejects cancelling a
// reservation whose end time has already passed.
var ErrReservationEnded = errors.New("reservation already ended")

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken replaces the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// apiError carries the store's status code so call sites can map
// endpoint-specific conflicts onto their own sentinels.
type apiError struct {
	code int
	msg  string
}

func (e *apiError) Error() string { return e.msg }

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			if eb.Error != "" {
				msg = eb.Error
			} else if eb.Message != "" {
				msg = eb.Message
			}
		}
		return &apiError{code: resp.StatusCode, msg: fmt.Sprintf("%s %s: %s", method, path, msg)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token and installs it on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

// Slots lists active slots, optionally filtered by zone and type.
func (c *Client) Slots(ctx context.Context, zone, slotType string) ([]Slot, error) {
	qs := url.Values{}
	if zone != "" {
		qs.Set("zone", zone)
	}
	if slotType != "" {
		qs.Set("type", slotType)
	}
	qs.Set("status", "active")

	var out []Slot
	if err := c.do(ctx, http.MethodGet, "/api/slots?"+qs.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveReservations fetches the caller's reservations the store still
// considers active.
func (c *Client) ActiveReservations(ctx context.Context) ([]Reservation, error) {
	var out []Reservation
	if err := c.do(ctx, http.MethodGet, "/api/reservations?mine=1&status=active", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reservations fetches the caller's full reservation history, newest first
// per the store's ordering contract.
func (c *Client) Reservations(ctx context.Context) ([]Reservation, error) {
	var out []Reservation
	if err := c.do(ctx, http.MethodGet, "/api/reservations?mine=1", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createReservationRequest struct {
	SlotID    string `json:"slotId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CreateReservation books a slot for an interval. Overlap and ownership are
// validated by the store.
func (c *Client) CreateReservation(ctx context.Context, slotID, startTime, endTime string) (*Reservation, error) {
	var out Reservation
	req := createReservationRequest{SlotID: slotID, StartTime: startTime, EndTime: endTime}
	if err := c.do(ctx, http.MethodPost, "/api/reservations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelReservation cancels a reservation. The store rejects cancellation of
// already-ended reservations regardless of any client-side expiry hint;
// that rejection surfaces as ErrReservationEnded. Conflicts on other
// endpoints (slot overlap on create) keep their own meaning.
func (c *Client) CancelReservation(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/api/reservations/"+url.PathEscape(id), nil, nil)
	var ae *apiError
	if errors.As(err, &ae) && ae.code == http.StatusConflict {
		return fmt.Errorf("%w: %s", ErrReservationEnded, ae.msg)
	}
	return err
}

// AdminStats fetches the pre-aggregated dashboard payload.
func (c *Client) AdminStats(ctx context.Context) (*stats.Payload, error) {
	var out stats.Payload
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
