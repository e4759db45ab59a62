package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) NewGame(ctx context.Context, playerName string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games", map[string]any{
		"player_name": playerName,
	}, &out)
	return out, err
}

func (c *Client) State(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, c.gamePath(gameID, "/state"), nil, &out)
	return out, err
}

func (c *Client) Assets(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, c.gamePath(gameID, "/assets"), nil, &out)
	return out, err
}

func (c *Client) History(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, c.gamePath(gameID, "/history"), nil, &out)
	return out, err
}

func (c *Client) Log(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, c.gamePath(gameID, "/log"), nil, &out)
	return out, err
}

func (c *Client) Events(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, c.gamePath(gameID, "/events"), nil, &out)
	return out, err
}

func (c *Client) CareerLadder(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, c.gamePath(gameID, "/career"), nil, &out)
	return out, err
}

func (c *Client) Advance(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/advance"), nil, &out)
	return out, err
}

func (c *Client) PlaceOrder(ctx context.Context, gameID, assetID, side string, qty float64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/orders"), map[string]any{
		"asset_id": assetID,
		"side":     side,
		"quantity": qty,
	}, &out)
	return out, err
}

func (c *Client) UpgradeCareer(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/career/upgrade"), nil, &out)
	return out, err
}

// ResolveEvent resolves a pending event; pass choice < 0 when the event
// has no choices.
func (c *Client) ResolveEvent(ctx context.Context, gameID, eventID string, choice int) (map[string]any, error) {
	body := map[string]any{}
	if choice >= 0 {
		body["choice"] = choice
	}
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/events/"+url.PathEscape(eventID)+"/resolve"), body, &out)
	return out, err
}

func (c *Client) Wallet(ctx context.Context, gameID, op string, amount float64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/wallet"), map[string]any{
		"op":     op,
		"amount": amount,
	}, &out)
	return out, err
}

func (c *Client) Reset(ctx context.Context, gameID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, c.gamePath(gameID, "/reset"), nil, &out)
	return out, err
}

func (c *Client) gamePath(gameID, suffix string) string {
	return "/v1/games/" + url.PathEscape(gameID) + suffix
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
