package sheets

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"LeadDesk/entity"
	"LeadDesk/internal/config"
	"LeadDesk/internal/lib/sl"
)

// Service appends leads to a Google Sheet as a best-effort backup log.
type Service struct {
	srv           *sheets.Service
	spreadsheetId string
	appendRange   string
	log           *slog.Logger
}

func NewService(conf *config.Config, logger *slog.Logger) *Service {
	if !conf.Sheets.Enabled {
		return nil
	}
	log := logger.With(sl.Module("sheets service"))

	creds, err := os.ReadFile(conf.Sheets.CredentialsFile)
	if err != nil {
		log.With(sl.Err(err)).Error("read sheets credentials")
		return nil
	}

	jwt, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		log.With(sl.Err(err)).Error("parse sheets credentials")
		return nil
	}

	srv, err := sheets.NewService(context.Background(), option.WithHTTPClient(jwt.Client(context.Background())))
	if err != nil {
		log.With(sl.Err(err)).Error("create sheets client")
		return nil
	}

	return &Service{
		srv:           srv,
		spreadsheetId: conf.Sheets.SpreadsheetId,
		appendRange:   conf.Sheets.Range,
		log:           log,
	}
}

// AppendLead appends one row with the lead's fields.
func (s *Service) AppendLead(ctx context.Context, lead entity.Lead) error {
	createdAt := lead.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			createdAt.Format(time.RFC3339),
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Message,
			lead.Source,
		}},
	}

	_, err := s.srv.Spreadsheets.Values.
		Append(s.spreadsheetId, s.appendRange, values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		s.log.With(sl.Err(err)).Error("append lead row")
		return err
	}

	s.log.With(slog.String("name", lead.Name)).Debug("lead row appended")
	return nil
}
