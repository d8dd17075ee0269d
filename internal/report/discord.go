package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Discord posts messages to a Discord webhook. A nil *Discord is a valid
// no-op sender, which is how an unset webhook URL disables delivery.
type Discord struct {
	Webhook string
	Client  *http.Client
}

func NewDiscord(webhook string) *Discord {
	if webhook == "" {
		return nil
	}
	return &Discord{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type discordPayload struct {
	Content string `json:"content"`
}

func (d *Discord) Send(ctx context.Context, text string) error {
	if d == nil || d.Webhook == "" {
		return nil
	}
	body, _ := json.Marshal(discordPayload{Content: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.Webhook, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return errors.New("discord webhook non-2xx: " + resp.Status)
	}
	return nil
}
