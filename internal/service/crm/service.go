package crm

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"LeadDesk/internal/config"
	"LeadDesk/internal/lib/sl"
)

// Service forwards lead records to the third-party CRM API. The CRM
// authenticates with OAuth2 client credentials; the token source caches
// and refreshes tokens on its own.
type Service struct {
	baseUrl string
	client  *http.Client
	log     *slog.Logger
}

func NewService(conf *config.Config, logger *slog.Logger) *Service {
	if !conf.CRM.Enabled {
		return nil
	}

	creds := clientcredentials.Config{
		ClientID:     conf.CRM.ClientId,
		ClientSecret: conf.CRM.ClientSecret,
		TokenURL:     conf.CRM.TokenURL,
	}

	client := creds.Client(context.Background())
	client.Timeout = 15 * time.Second

	return &Service{
		baseUrl: conf.CRM.BaseURL,
		client:  client,
		log:     logger.With(sl.Module("crm service")),
	}
}
