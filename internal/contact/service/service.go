package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supermega/opsd/internal/contact/model"
	"github.com/supermega/opsd/internal/integrations/gcal"
	"github.com/supermega/opsd/internal/integrations/mailer"
	"github.com/supermega/opsd/internal/integrations/slackhook"
	"github.com/supermega/opsd/internal/metrics"
)

// ErrValidation marks submissions rejected before any effect is scheduled.
var ErrValidation = errors.New("validation failed")

// EffectQueue schedules fire-and-forget effects. Satisfied by
// jobq.JobQueue; fakes substitute it in tests.
type EffectQueue interface {
	Submit(name string, run func(ctx context.Context) error) error
}

// SheetAppender persists a submission row.
type SheetAppender interface {
	AppendRow(ctx context.Context, header []string, row []any) error
}

// TeamNotifier posts the team webhook message.
type TeamNotifier interface {
	Post(ctx context.Context, msg *slackhook.Message) error
}

// CalendarClient creates the strategy-call event.
type CalendarClient interface {
	CreateStrategyCall(ctx context.Context, name, email string, durationMin int) (*gcal.EventResult, error)
}

type Service interface {
	SubmitContact(ctx context.Context, form *model.ContactForm) (*model.Submission, error)
	CreateCalendarEvent(ctx context.Context, req *model.CalendarEventRequest) (*gcal.EventResult, error)
}

type Opts struct {
	Queue      EffectQueue
	Sheets     SheetAppender
	Mail       mailer.Sender
	Notifier   TeamNotifier
	Calendar   CalendarClient
	BookingURL string
}

type contactSvc struct {
	l    *slog.Logger
	opts *Opts
}

var _ Service = &contactSvc{}

func NewContactService(opts *Opts) Service {
	return &contactSvc{
		l:    slog.With("component", "contact-service"),
		opts: opts,
	}
}

func (s *contactSvc) log() *slog.Logger {
	if s.l != nil {
		return s.l
	}
	return slog.With("component", "contact-service")
}

// SubmitContact validates the form, builds the submission, and schedules
// the background effects. It returns as soon as the effects are queued;
// their outcomes are visible only through the outcome sink.
func (s *contactSvc) SubmitContact(_ context.Context, form *model.ContactForm) (*model.Submission, error) {
	if err := validate(form); err != nil {
		metrics.ContactRejections.Inc()
		return nil, err
	}

	source := form.Source
	if source == "" {
		source = model.DefaultSource
	}
	sub := &model.Submission{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		Name:         form.Name,
		Email:        form.Email,
		Company:      form.Company,
		Plan:         form.Plan,
		UseCase:      form.UseCase,
		Message:      form.Message,
		ScheduleCall: form.ScheduleCall,
		Source:       source,
		Status:       "new",
	}

	s.scheduleEffects(sub)
	metrics.ContactSubmissions.Inc()

	s.log().Info("contact form accepted",
		slog.String("contact-id", sub.ID),
		slog.String("email", sub.Email),
		slog.Bool("schedule-call", sub.ScheduleCall),
	)
	return sub, nil
}

func (s *contactSvc) scheduleEffects(sub *model.Submission) {
	// a rejected submit is already recorded by the queue; nothing to do here
	_ = s.opts.Queue.Submit("sheets-append", func(ctx context.Context) error {
		return s.opts.Sheets.AppendRow(ctx, model.SheetHeader(), sub.SheetRow())
	})

	_ = s.opts.Queue.Submit("confirmation-email", func(_ context.Context) error {
		body, err := mailer.RenderConfirmation(sub.Name)
		if err != nil {
			return err
		}
		return s.opts.Mail.Send(sub.Email, mailer.ConfirmationSubject, body, "text/html")
	})

	_ = s.opts.Queue.Submit("team-notify", func(ctx context.Context) error {
		return s.opts.Notifier.Post(ctx, TeamMessage(sub))
	})

	if sub.ScheduleCall {
		_ = s.opts.Queue.Submit("calendar-link-email", func(_ context.Context) error {
			body, err := mailer.RenderCalendarLink(sub.Name, s.opts.BookingURL)
			if err != nil {
				return err
			}
			return s.opts.Mail.Send(sub.Email, mailer.CalendarLinkSubject, body, "text/plain")
		})
	}
}

func (s *contactSvc) CreateCalendarEvent(ctx context.Context, req *model.CalendarEventRequest) (*gcal.EventResult, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return s.opts.Calendar.CreateStrategyCall(ctx, req.Name, req.Email, req.Duration)
}

func validate(form *model.ContactForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return nil
}

// TeamMessage builds the field-by-field webhook summary for a submission.
func TeamMessage(sub *model.Submission) *slackhook.Message {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	scheduleCall := "No"
	if sub.ScheduleCall {
		scheduleCall = "Yes"
	}
	return &slackhook.Message{
		Text: "🚀 New Super Mega Contact!",
		Attachments: []slackhook.Attachment{
			{
				Color: "#8B5CF6",
				Fields: []slackhook.Field{
					{Title: "Name", Value: sub.Name, Short: true},
					{Title: "Email", Value: sub.Email, Short: true},
					{Title: "Company", Value: orNA(sub.Company), Short: true},
					{Title: "Plan", Value: orNA(sub.Plan), Short: true},
					{Title: "Use Case", Value: orNA(sub.UseCase), Short: true},
					{Title: "Schedule Call", Value: scheduleCall, Short: true},
					{Title: "Message", Value: slackhook.Truncate(sub.Message), Short: false},
				},
			},
		},
	}
}
