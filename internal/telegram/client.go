// Package telegram sends an optional run summary via the Telegram Bot API
// after the report artifact has been written. The summary covers the latest
// trend reading, its delta against the previously published report, and the
// lens status. Delivery uses retries with a linear backoff; a failed
// notification never fails the run.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
)

// Client handles Telegram notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendRunSummary sends the post-run summary. previous may be nil on the
// first run; the trend delta is then omitted.
func (c *Client) SendRunSummary(current, previous *models.Report) error {
	message := formatRunSummary(current, previous)

	msg := tgbotapi.NewMessage(c.chatID, message)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatRunSummary renders the MarkdownV2 summary message.
func formatRunSummary(current, previous *models.Report) string {
	message := "*AI Jobs Pulse refreshed*\n\n"
	message += fmt.Sprintf("📅 Updated: %s\n", escapeMarkdownV2(current.LastUpdated))

	trend := current.Charts.AIMentionsTrend
	if n := len(trend.Values); n > 0 {
		latest := fmt.Sprintf("%.2f%%", trend.Values[n-1])
		message += fmt.Sprintf("📈 Latest AI share \\(%s\\): *%s*",
			escapeMarkdownV2(trend.Labels[n-1]), escapeMarkdownV2(latest))

		if delta, ok := trendDelta(current, previous); ok {
			message += fmt.Sprintf(" \\(%s vs previous run\\)", escapeMarkdownV2(formatDelta(delta)))
		}
		message += "\n"
	}

	outside := current.Charts.AIOutsideITShare
	if len(outside.Values) == 2 {
		message += fmt.Sprintf("🧭 Outside IT/CS: %s\n",
			escapeMarkdownV2(fmt.Sprintf("%.0f%%", outside.Values[0])))
	}

	if lenses := current.MarketLenses; lenses != nil {
		message += fmt.Sprintf("🔍 Lenses: Adzuna %s, O\\*NET %s\n",
			lensStatus(lenses.AdzunaUSSnapshot != nil && lenses.AdzunaUSSnapshot.Enabled),
			lensStatus(lenses.OnetHotTechnologies != nil && lenses.OnetHotTechnologies.Enabled))
	}

	return message
}

// trendDelta compares the latest trend value of both reports on matching
// month labels.
func trendDelta(current, previous *models.Report) (float64, bool) {
	if previous == nil {
		return 0, false
	}
	cur := current.Charts.AIMentionsTrend
	prev := previous.Charts.AIMentionsTrend
	if len(cur.Values) == 0 || len(prev.Values) == 0 {
		return 0, false
	}
	return cur.Values[len(cur.Values)-1] - prev.Values[len(prev.Values)-1], true
}

func formatDelta(delta float64) string {
	if delta >= 0 {
		return fmt.Sprintf("+%.2f pts", delta)
	}
	return fmt.Sprintf("%.2f pts", delta)
}

func lensStatus(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
