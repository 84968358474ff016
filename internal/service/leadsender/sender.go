package leadsender

import (
	"log/slog"
	"net/http"
	"time"

	"LeadDesk/internal/config"
	"LeadDesk/internal/lib/sl"
)

// Scheduler defers a task tied to a session.
type Scheduler interface {
	Schedule(sessionID string, d time.Duration, fn func())
}

// RedirectSink receives the deep-link redirect event once the
// post-submission delay elapses.
type RedirectSink interface {
	RedirectReady(sessionID, url string)
}

// Service delivers completed leads. The webhook call and the redirect
// are two independent tasks joined only by the lead value: the redirect
// never waits on, or learns about, the webhook outcome.
type Service struct {
	webhookUrl    string
	tenantId      string
	recipient     string
	redirectDelay time.Duration
	client        *http.Client
	sched         Scheduler
	sink          RedirectSink
	log           *slog.Logger
}

func NewService(conf *config.Config, logger *slog.Logger) *Service {
	return &Service{
		webhookUrl:    conf.LeadWebhook.URL,
		tenantId:      conf.LeadWebhook.TenantId,
		recipient:     conf.WhatsApp.Recipient,
		redirectDelay: conf.Chat.RedirectDelay,
		client:        &http.Client{Timeout: 10 * time.Second},
		log:           logger.With(sl.Module("lead sender service")),
	}
}

// SetScheduler sets the session task scheduler used for the redirect delay.
func (s *Service) SetScheduler(sched Scheduler) {
	s.sched = sched
}

// SetRedirectSink sets the sink for redirect events.
func (s *Service) SetRedirectSink(sink RedirectSink) {
	s.sink = sink
}
