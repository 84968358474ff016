package crm

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

type leadRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

type leadResponse struct {
	Id string `json:"id"`
}

// SendLead creates the lead in the CRM and returns the CRM record id.
func (s *Service) SendLead(ctx context.Context, lead entity.Lead) (string, error) {
	createdAt := lead.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	body := leadRequest{
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Message:   lead.Message,
		Source:    lead.Source,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal lead: %w", err)
	}

	url := fmt.Sprintf("%s/leads", s.baseUrl)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.With(sl.Err(err)).Error("send lead to CRM")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("crm responded with %d", resp.StatusCode)
	}

	var result leadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Some CRMs reply with an empty body on accept.
		result.Id = ""
	}

	s.log.With(
		slog.String("name", lead.Name),
		slog.String("crm_id", result.Id),
	).Info("lead forwarded to CRM")

	return result.Id, nil
}
