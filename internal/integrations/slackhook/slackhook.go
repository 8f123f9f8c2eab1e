package slackhook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// MaxFieldLen caps free-text field values in notifications; longer text is
// cut and suffixed with an ellipsis.
const MaxFieldLen = 200

type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type Attachment struct {
	Color  string  `json:"color"`
	Fields []Field `json:"fields"`
}

type Message struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

type Notifier struct {
	l           *slog.Logger
	restyClient *resty.Client
	webhookURL  string
}

func NewNotifier(webhookURL string) *Notifier {
	client := resty.New()
	client.SetRetryCount(0)
	client.SetTimeout(5 * time.Second)
	return &Notifier{
		l:           slog.With(slog.String("component", "slack-notifier")),
		restyClient: client,
		webhookURL:  webhookURL,
	}
}

func (n *Notifier) log() *slog.Logger {
	if n.l != nil {
		return n.l
	}
	return slog.With(slog.String("component", "slack-notifier"))
}

// Post sends a message to the configured webhook. An unset webhook URL is
// not an error: the notification is skipped with a debug log.
func (n *Notifier) Post(ctx context.Context, msg *Message) error {
	if n.webhookURL == "" {
		n.log().Debug("webhook url not configured, skipping notification")
		return nil
	}

	resp, err := n.restyClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(n.webhookURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook post: status %d", resp.StatusCode())
	}

	n.log().Info("team notified")
	return nil
}

// Ping posts a minimal message to verify the webhook is reachable.
func (n *Notifier) Ping(ctx context.Context) error {
	if n.webhookURL == "" {
		return fmt.Errorf("webhook url is not configured")
	}
	return n.Post(ctx, &Message{Text: "opsd integration check"})
}

// Truncate cuts s to MaxFieldLen runes and appends "..." when it was longer.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxFieldLen {
		return s
	}
	return string(r[:MaxFieldLen]) + "..."
}
