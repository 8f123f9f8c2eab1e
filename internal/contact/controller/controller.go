package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/supermega/opsd/internal/auth"
	"github.com/supermega/opsd/internal/contact/model"
	"github.com/supermega/opsd/internal/contact/service"
	"github.com/supermega/opsd/internal/httputils"
	"github.com/supermega/opsd/internal/metrics"
	"github.com/supermega/opsd/internal/version"
)

type ContactController struct {
	l        *slog.Logger
	service  service.Service
	verifier auth.Verifier
}

func NewContactController(s service.Service, verifier auth.Verifier) *ContactController {
	return &ContactController{
		l:        slog.With("component", "contact-controller"),
		service:  s,
		verifier: verifier,
	}
}

func (c *ContactController) log() *slog.Logger {
	if c.l != nil {
		return c.l
	}
	return slog.With("component", "contact-controller")
}

func (c *ContactController) ContactHandler(w http.ResponseWriter, r *http.Request) {
	var form model.ContactForm
	if err := httputils.ReadJSON(r, &form); err != nil {
		httputils.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sub, err := c.service.SubmitContact(r.Context(), &form)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			httputils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.log().Error("contact submission failed", slog.Any("err", err))
		httputils.WriteError(w, http.StatusInternalServerError, "error processing contact form")
		return
	}

	httputils.WriteJSON(w, http.StatusOK, &model.ContactResponse{
		Success:   true,
		Message:   "Contact form submitted successfully",
		ContactID: sub.ID,
	})
}

func (c *ContactController) GoogleAuthHandler(w http.ResponseWriter, r *http.Request) {
	var req model.GoogleAuthRequest
	if err := httputils.ReadJSON(r, &req); err != nil {
		httputils.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Credential == "" {
		httputils.WriteError(w, http.StatusBadRequest, "credential is required")
		return
	}
	if c.verifier == nil {
		httputils.WriteError(w, http.StatusServiceUnavailable, "google sign-in is not configured")
		return
	}

	profile, err := c.verifier.Verify(r.Context(), req.Credential)
	if err != nil {
		metrics.AuthVerifications.WithLabelValues("failure").Inc()
		c.log().Warn("token verification failed", slog.Any("err", err))
		httputils.WriteError(w, http.StatusUnauthorized, "invalid google token")
		return
	}
	metrics.AuthVerifications.WithLabelValues("success").Inc()

	httputils.WriteJSON(w, http.StatusOK, &model.GoogleAuthResponse{
		Success:      true,
		User:         profile,
		SessionToken: uuid.NewString(),
	})
}

func (c *ContactController) CalendarEventHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CalendarEventRequest
	if err := httputils.ReadJSON(r, &req); err != nil {
		httputils.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	res, err := c.service.CreateCalendarEvent(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			httputils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.log().Error("calendar event creation failed", slog.Any("err", err))
		httputils.WriteError(w, http.StatusInternalServerError, "error creating calendar event")
		return
	}

	httputils.WriteJSON(w, http.StatusOK, &model.CalendarEventResponse{
		Success:  true,
		EventID:  res.EventID,
		MeetLink: res.MeetLink,
	})
}

func (c *ContactController) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	httputils.WriteJSON(w, http.StatusOK, &model.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   version.Version,
	})
}
