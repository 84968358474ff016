package property

import (
	"context"

	"LeadDesk/entity"
)

type Core interface {
	ListProperties(ctx context.Context, page, perPage int, filter entity.PropertyFilter) (*entity.PropertyPage, error)
	GetProperty(ctx context.Context, id int64) (*entity.Property, error)
	CreateProperty(ctx context.Context, prop *entity.Property) (int64, error)
	UpdateProperty(ctx context.Context, prop *entity.Property) error
	DeleteProperty(ctx context.Context, id int64) error
}
