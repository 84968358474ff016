package core

import (
	"context"
	"fmt"

	"LeadDesk/entity"
)

// ListProperties proxies a filtered listing page from the automation backend.
func (c *Core) ListProperties(ctx context.Context, page, perPage int, filter entity.PropertyFilter) (*entity.PropertyPage, error) {
	if c.properties == nil {
		return nil, fmt.Errorf("property service not available")
	}
	return c.properties.List(ctx, page, perPage, filter)
}

// GetProperty fetches a single listing.
func (c *Core) GetProperty(ctx context.Context, id int64) (*entity.Property, error) {
	if c.properties == nil {
		return nil, fmt.Errorf("property service not available")
	}
	return c.properties.Get(ctx, id)
}

// CreateProperty validates and registers a new listing.
func (c *Core) CreateProperty(ctx context.Context, prop *entity.Property) (int64, error) {
	if c.properties == nil {
		return 0, fmt.Errorf("property service not available")
	}
	if err := c.validate.Struct(prop); err != nil {
		return 0, fmt.Errorf("invalid property: %w", err)
	}
	return c.properties.Create(ctx, prop)
}

// UpdateProperty validates and overwrites a listing.
func (c *Core) UpdateProperty(ctx context.Context, prop *entity.Property) error {
	if c.properties == nil {
		return fmt.Errorf("property service not available")
	}
	if err := c.validate.Struct(prop); err != nil {
		return fmt.Errorf("invalid property: %w", err)
	}
	return c.properties.Update(ctx, prop)
}

// DeleteProperty removes a listing.
func (c *Core) DeleteProperty(ctx context.Context, id int64) error {
	if c.properties == nil {
		return fmt.Errorf("property service not available")
	}
	return c.properties.Delete(ctx, id)
}
