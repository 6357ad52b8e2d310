// Package meta is a thin client for the Facebook Graph API surface the
// webhook adapter needs: Messenger sends, image attachments, comment
// replies and profile lookups. Page access tokens are passed per call
// because every tenant connects its own page.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://graph.facebook.com/v18.0"

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// UserProfile is the subset of profile fields the platform stores.
type UserProfile struct {
	Name       string `json:"name"`
	ProfilePic string `json:"profile_pic"`
}

// GetUserProfile fetches the display name of a platform user.
func (c *Client) GetUserProfile(ctx context.Context, accessToken, userID string) (*UserProfile, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=name,profile_pic&access_token=%s",
		c.BaseURL, url.PathEscape(userID), url.QueryEscape(accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graph api error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var profile UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &profile, nil
}

// SendMessage delivers a text message to a Messenger recipient.
func (c *Client) SendMessage(ctx context.Context, accessToken, recipientID, text string) error {
	payload := map[string]any{
		"recipient":    map[string]string{"id": recipientID},
		"message":      map[string]string{"text": text},
		"access_token": accessToken,
	}
	return c.post(ctx, c.BaseURL+"/me/messages", payload)
}

// SendImage delivers one image attachment to a Messenger recipient.
func (c *Client) SendImage(ctx context.Context, accessToken, recipientID, imageURL string) error {
	payload := map[string]any{
		"recipient": map[string]string{"id": recipientID},
		"message": map[string]any{
			"attachment": map[string]any{
				"type": "image",
				"payload": map[string]any{
					"url":         imageURL,
					"is_reusable": true,
				},
			},
		},
		"access_token": accessToken,
	}
	return c.post(ctx, c.BaseURL+"/me/messages", payload)
}

// ReplyToComment posts a public reply under a page post comment.
func (c *Client) ReplyToComment(ctx context.Context, accessToken, commentID, message string) error {
	payload := map[string]any{
		"message":      message,
		"access_token": accessToken,
	}
	return c.post(ctx, fmt.Sprintf("%s/%s/comments", c.BaseURL, url.PathEscape(commentID)), payload)
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("graph api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graph api error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
