package property

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"LeadDesk/internal/config"
	"LeadDesk/internal/lib/sl"
)

// Service is the data-access client for the automation backend. Every
// call POSTs a fixed JSON envelope {action, tenant_id, payload} to the
// webhook endpoint and decodes the reply against an explicit schema.
// A reply that does not match the schema is an error, never a silent
// default.
type Service struct {
	baseUrl  string
	tenantId string
	client   *http.Client
	log      *slog.Logger
}

func NewService(conf *config.Config, logger *slog.Logger) *Service {
	if conf.Automation.BaseURL == "" {
		return nil
	}
	return &Service{
		baseUrl:  conf.Automation.BaseURL,
		tenantId: conf.Automation.TenantId,
		client:   &http.Client{Timeout: 15 * time.Second},
		log:      logger.With(sl.Module("property service")),
	}
}

type envelope struct {
	Action   string `json:"action"`
	TenantId string `json:"tenant_id"`
	Payload  any    `json:"payload,omitempty"`
}

type replyEnvelope struct {
	Success *bool           `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// call POSTs an envelope and returns the raw data field of a successful
// reply. Shape mismatches fail closed.
func (s *Service) call(ctx context.Context, action string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(envelope{
		Action:   action,
		TenantId: s.tenantId,
		Payload:  payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	url := fmt.Sprintf("%s/webhook/properties", s.baseUrl)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.With(sl.Err(err), slog.String("action", action)).Error("automation webhook call")
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("automation webhook responded with %d: %s", resp.StatusCode, truncate(raw))
	}

	var reply replyEnvelope
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("non-JSON reply to %q: %s", action, truncate(raw))
	}
	if reply.Success == nil {
		return nil, fmt.Errorf("malformed reply to %q: missing success flag", action)
	}
	if !*reply.Success {
		return nil, fmt.Errorf("automation backend rejected %q: %s", action, reply.Error)
	}
	if len(reply.Data) == 0 {
		return nil, fmt.Errorf("malformed reply to %q: missing data", action)
	}

	return reply.Data, nil
}

func truncate(raw []byte) string {
	const max = 200
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
