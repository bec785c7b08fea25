package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// 決済プロセッサ側のサーバーレス関数を呼ぶだけのクライアント。
// 課金の計算はすべて向こう側。こちらは結果（status/URL）を受け取るだけ。
type Client struct {
	baseURL string
	http    *http.Client
}

// DI
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// check_subscription の応答
type SubscriptionResult struct {
	Subscribed bool   `json:"subscribed"`
	Status     string `json:"status"`
	Tier       string `json:"subscription_tier"`
}

// create_checkout / create_portal の応答
type RedirectResult struct {
	URL string `json:"url"`
}

func (c *Client) CheckSubscription(ctx context.Context, restaurantID string) (SubscriptionResult, error) {
	var out SubscriptionResult
	err := c.post(ctx, "check_subscription", map[string]string{"restaurant_id": restaurantID}, &out)
	if err != nil {
		return SubscriptionResult{}, err
	}
	return out, nil
}

func (c *Client) CreateCheckout(ctx context.Context, restaurantID string, tier string) (RedirectResult, error) {
	var out RedirectResult
	err := c.post(ctx, "create_checkout", map[string]string{
		"restaurant_id": restaurantID,
		"tier":          tier,
	}, &out)
	if err != nil {
		return RedirectResult{}, err
	}
	return out, nil
}

func (c *Client) CreatePortal(ctx context.Context, restaurantID string) (RedirectResult, error) {
	var out RedirectResult
	err := c.post(ctx, "create_portal", map[string]string{"restaurant_id": restaurantID}, &out)
	if err != nil {
		return RedirectResult{}, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, fn string, body interface{}, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+fn, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("billing function %s: status %d", fn, res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
