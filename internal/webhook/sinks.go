package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// postJSON delivers the rendered body verbatim: the template author
// controls the surrounding JSON structure, the engine only escaped the
// substituted values.
func (d *Dispatcher) postJSON(ctx context.Context, cfg Config, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Target, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.opts.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned %s", resp.Status)
	}
	return nil
}

type telegramMessage struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
	DisableNotification   bool   `json:"disable_notification"`
	ParseMode             string `json:"parse_mode,omitempty"`
}

// postTelegram sends the rendered text through the bot API. The bot token
// is decrypted here, used for this one request, and dropped.
func (d *Dispatcher) postTelegram(ctx context.Context, cfg Config, text string) error {
	chatID, err := strconv.ParseInt(strings.TrimSpace(cfg.Target), 10, 64)
	if err != nil {
		return fmt.Errorf("malformed chat id %q", cfg.Target)
	}
	token, err := d.opts.Secrets.Decrypt(cfg.Telegram.BotToken, "webhook", "bot_token")
	if err != nil {
		return fmt.Errorf("bot token: %w", err)
	}

	msg := telegramMessage{
		ChatID:                chatID,
		Text:                  text,
		DisableWebPagePreview: cfg.Telegram.DisableLinkPreview,
		DisableNotification:   cfg.Telegram.DisableNotification,
		ParseMode:             cfg.Telegram.ParseMode,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimSuffix(d.opts.TelegramAPIBase, "/"), token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.opts.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("bot API returned %s", resp.Status)
	}
	return nil
}
