package lead

import (
	"context"

	"LeadDesk/entity"
)

type Core interface {
	RelayLead(ctx context.Context, lead entity.Lead) (string, error)
	ListLeads(ctx context.Context, limit int) ([]entity.Lead, error)
}
