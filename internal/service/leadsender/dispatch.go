package leadsender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"LeadDesk/entity"
	"LeadDesk/internal/lib/sl"
)

type leadPayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	TenantId  string `json:"tenant_id,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Dispatch sends the lead to the webhook in the background and schedules
// the WhatsApp redirect after the configured delay. Webhook failure is
// logged and otherwise invisible: the visitor is redirected either way.
func (s *Service) Dispatch(ctx context.Context, sessionID string, lead entity.Lead) {
	go func() {
		if err := s.SendLead(lead); err != nil {
			s.log.With(
				sl.Err(err),
				slog.String("session_id", sessionID),
			).Error("lead webhook dispatch")
		}
	}()

	link := lead.DeepLink(s.recipient)
	if s.sched == nil || s.sink == nil {
		s.log.With(slog.String("session_id", sessionID)).Warn("redirect wiring missing, skipping redirect")
		return
	}
	s.sched.Schedule(sessionID, s.redirectDelay, func() {
		s.sink.RedirectReady(sessionID, link)
	})
}

// SendLead posts the lead record to the webhook endpoint. Non-2xx
// replies count as failure.
func (s *Service) SendLead(lead entity.Lead) error {
	defer func() {
		if r := recover(); r != nil {
			s.log.With(slog.Any("panic", r)).Error("send lead")
		}
	}()

	if s.webhookUrl == "" {
		return fmt.Errorf("lead webhook url not configured")
	}

	createdAt := lead.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	body := leadPayload{
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Message:   lead.Message,
		Source:    lead.Source,
		TenantId:  s.tenantId,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		s.log.With(sl.Err(err)).Error("marshal lead body")
		return err
	}

	req, err := http.NewRequest("POST", s.webhookUrl, bytes.NewReader(bodyBytes))
	if err != nil {
		s.log.With(sl.Err(err)).Error("create POST request")
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.With(sl.Err(err)).Error("send POST HTTP")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("lead webhook responded with %d", resp.StatusCode)
	}

	s.log.With(
		slog.String("name", lead.Name),
		slog.String("source", lead.Source),
	).Info("lead sent")
	return nil
}
