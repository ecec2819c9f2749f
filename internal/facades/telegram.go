package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/eleontev/flower-shop-api/internal/logger"
)

// ErrTelegramNotConfigured is returned when the bot token or chat id is
// missing from configuration.
var ErrTelegramNotConfigured = errors.New("telegram bot is not configured")

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramFacade sends messages to a fixed chat via the Telegram Bot API.
// One facade is created per bot (contact form and orders use different
// bots in production).
type TelegramFacade struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

type TelegramOption func(*TelegramFacade)

// WithBaseURL overrides the Bot API endpoint. Used by tests.
func WithBaseURL(url string) TelegramOption {
	return func(f *TelegramFacade) { f.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) TelegramOption {
	return func(f *TelegramFacade) { f.client = client }
}

// NewTelegramFacade creates a facade for one bot and chat.
func NewTelegramFacade(botToken, chatID string, opts ...TelegramOption) *TelegramFacade {
	f := &TelegramFacade{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  defaultTelegramBaseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

// Send delivers text to the configured chat and returns the Telegram
// message id. One synchronous call, no retry.
func (f *TelegramFacade) Send(ctx context.Context, text string) (int64, error) {
	if f.botToken == "" || f.chatID == "" {
		return 0, ErrTelegramNotConfigured
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: f.chatID, Text: text})
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", f.baseURL, f.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("telegram request failed", "error", err)
		return 0, err
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode telegram response: %w", err)
	}
	if !result.OK {
		logger.Log.Errorw("telegram rejected message", "status", resp.StatusCode, "description", result.Description)
		return 0, fmt.Errorf("telegram API error: %s", result.Description)
	}

	return result.Result.MessageID, nil
}
