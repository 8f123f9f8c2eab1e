package mailer

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/supermega/opsd/config"
	"github.com/supermega/opsd/internal/metrics"
	"gopkg.in/gomail.v2"
)

type Sender interface {
	Send(to, subject, body, contentType string) error
	Check() error
}

type sender struct {
	l              *slog.Logger
	dialer         *gomail.Dialer
	senderAddress  string
	senderName     string
	retryCount     int
	retryBackoffMs int
}

// logSender is the degraded transport used when no SMTP host is configured:
// deliveries are logged, never dispatched.
type logSender struct {
	l *slog.Logger
}

func NewSender(cfg *config.Config) Sender {
	l := slog.With(slog.String("component", "mailer"))

	if !cfg.HasMailConfigured() {
		l.Warn("smtp host not configured, mail delivery is log-only")
		return &logSender{l: l}
	}

	l.Info("initializing mail sender",
		slog.String("host", cfg.Mail.Host),
		slog.Int("port", cfg.Mail.Port),
		slog.String("user", cfg.Mail.User),
	)
	d := gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password)

	retryCount := cfg.Mail.RetryCount
	if retryCount <= 0 {
		retryCount = 3
	}
	retryBackoffMs := cfg.Mail.RetryBackoffMs
	if retryBackoffMs <= 0 {
		retryBackoffMs = 100
	}

	return &sender{
		l:              l,
		dialer:         d,
		senderAddress:  cfg.Mail.SenderAddress,
		senderName:     cfg.Mail.SenderName,
		retryCount:     retryCount,
		retryBackoffMs: retryBackoffMs,
	}
}

func (s *sender) Send(to, subject, body, contentType string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.senderAddress, s.senderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody(contentType, body)

	var lastErr error
	backoffMs := s.retryBackoffMs

	for attempt := 0; attempt <= s.retryCount; attempt++ {
		err := s.dialer.DialAndSend(msg)
		if err == nil {
			s.l.Info("mail sent",
				slog.String("to", to),
				slog.String("subject", subject),
				slog.Int("attempt", attempt+1),
			)
			metrics.MailSendSuccess.WithLabelValues(s.dialer.Host).Inc()
			return nil
		}

		lastErr = err
		if attempt < s.retryCount {
			s.l.Warn("mail send attempt failed, retrying",
				slog.Int("attempt", attempt+1),
				slog.Int("backoff-ms", backoffMs),
				slog.Any("err", err),
			)
			time.Sleep(time.Duration(backoffMs) * time.Millisecond)
			backoffMs = int(math.Min(float64(backoffMs)*2, 32000))
		}
	}

	metrics.MailSendFailure.WithLabelValues(s.dialer.Host).Inc()
	return fmt.Errorf("send mail to %s after %d attempts: %w", to, s.retryCount+1, lastErr)
}

func (s *sender) Check() error {
	closer, err := s.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp dial %s:%d: %w", s.dialer.Host, s.dialer.Port, err)
	}
	return closer.Close()
}

func (s *logSender) Send(to, subject, _, _ string) error {
	s.l.Info("mail delivery (log-only)",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}

func (s *logSender) Check() error {
	return nil
}
