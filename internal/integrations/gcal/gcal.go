package gcal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/supermega/opsd/config"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const organizerEmail = "contact@supermega.dev"

type EventResult struct {
	EventID  string
	MeetLink string
}

type Client struct {
	l   *slog.Logger
	cfg config.GoogleConfig
}

func NewClient(cfg config.GoogleConfig) *Client {
	return &Client{
		l:   slog.With(slog.String("component", "calendar-client")),
		cfg: cfg,
	}
}

func (c *Client) log() *slog.Logger {
	if c.l != nil {
		return c.l
	}
	return slog.With(slog.String("component", "calendar-client"))
}

func (c *Client) newService(ctx context.Context) (*gcalendar.Service, error) {
	if c.cfg.SheetsCredentials == "" {
		return nil, fmt.Errorf("google service-account credentials are not configured")
	}
	svc, err := gcalendar.NewService(ctx,
		option.WithCredentialsJSON([]byte(c.cfg.SheetsCredentials)),
		option.WithScopes(gcalendar.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init calendar client: %w", err)
	}
	return svc, nil
}

// CreateStrategyCall inserts a next-day event with a conferencing request
// and both participants as attendees.
func (c *Client) CreateStrategyCall(ctx context.Context, name, email string, durationMin int) (*EventResult, error) {
	svc, err := c.newService(ctx)
	if err != nil {
		return nil, err
	}

	if durationMin <= 0 {
		durationMin = 30
	}
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(time.Duration(durationMin) * time.Minute)

	event := &gcalendar.Event{
		Summary:     fmt.Sprintf("Super Mega Strategy Call - %s", name),
		Description: "Strategy consultation for AI agent implementation",
		Start: &gcalendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: c.cfg.Timezone,
		},
		End: &gcalendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.cfg.Timezone,
		},
		Attendees: []*gcalendar.EventAttendee{
			{Email: email},
			{Email: organizerEmail},
		},
		ConferenceData: &gcalendar.ConferenceData{
			CreateRequest: &gcalendar.CreateConferenceRequest{
				RequestId: uuid.NewString(),
			},
		},
	}

	created, err := svc.Events.Insert(c.cfg.CalendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("insert calendar event: %w", err)
	}

	res := &EventResult{EventID: created.Id}
	if created.ConferenceData != nil && len(created.ConferenceData.EntryPoints) > 0 {
		res.MeetLink = created.ConferenceData.EntryPoints[0].Uri
	} else {
		res.MeetLink = created.HangoutLink
	}

	c.log().Info("calendar event created",
		slog.String("event-id", res.EventID),
		slog.String("attendee", email),
	)
	return res, nil
}

// Ping verifies credentials by fetching the target calendar's metadata.
func (c *Client) Ping(ctx context.Context) error {
	svc, err := c.newService(ctx)
	if err != nil {
		return err
	}
	if _, err := svc.Calendars.Get(c.cfg.CalendarID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("get calendar %s: %w", c.cfg.CalendarID, err)
	}
	return nil
}
