package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"LeadDesk/entity"
	"LeadDesk/internal/lib/sl"
)

// RelayLead validates a lead submitted through the site form and
// forwards it to the CRM. Unlike the chat widget's dispatcher, failure
// here is surfaced to the caller so the admin UI can show it.
func (c *Core) RelayLead(ctx context.Context, lead entity.Lead) (string, error) {
	if err := c.validate.Struct(lead); err != nil {
		return "", fmt.Errorf("invalid lead: %w", err)
	}

	if lead.Source == "" {
		lead.Source = c.conf.LeadWebhook.Source
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}

	if c.repo != nil {
		if err := c.repo.SaveLead(ctx, lead); err != nil {
			c.log.With(sl.Err(err)).Error("archive relayed lead")
		}
	}

	var crmId string
	if c.crm != nil {
		id, err := c.crm.SendLead(ctx, lead)
		if err != nil {
			return "", fmt.Errorf("crm relay: %w", err)
		}
		crmId = id
	} else if c.leadSender != nil {
		// Without a CRM, the automation webhook is the destination.
		if err := c.leadSender.SendLead(lead); err != nil {
			return "", fmt.Errorf("webhook relay: %w", err)
		}
	}

	go func() {
		if c.notifier != nil {
			if err := c.notifier.NotifyLead(lead); err != nil {
				c.log.With(sl.Err(err)).Error("notify relayed lead")
			}
		}
		if c.sheets != nil {
			if err := c.sheets.AppendLead(context.Background(), lead); err != nil {
				c.log.With(sl.Err(err)).Error("log relayed lead to sheet")
			}
		}
	}()

	c.log.With(
		slog.String("name", lead.Name),
		slog.String("source", lead.Source),
	).Info("lead relayed")
	return crmId, nil
}

// ListLeads returns the most recent archived leads.
func (c *Core) ListLeads(ctx context.Context, limit int) ([]entity.Lead, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("lead archive not available")
	}
	return c.repo.ListLeads(ctx, limit)
}
