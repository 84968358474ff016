package property

import (
	"context"
	"encoding/json"
	"fmt"

	"LeadDesk/entity"
)

type listPayload struct {
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
	Filters entity.PropertyFilter `json:"filters"`
}

type listData struct {
	Items   []entity.Property `json:"items"`
	Total   *int              `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

// List fetches one page of listings, optionally filtered by city/type.
func (s *Service) List(ctx context.Context, page, perPage int, filter entity.PropertyFilter) (*entity.PropertyPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 12
	}

	data, err := s.call(ctx, "list", listPayload{Page: page, PerPage: perPage, Filters: filter})
	if err != nil {
		return nil, err
	}

	var parsed listData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode list data: %w", err)
	}
	if parsed.Items == nil || parsed.Total == nil {
		return nil, fmt.Errorf("malformed list data: missing items or total")
	}

	return &entity.PropertyPage{
		Items:   parsed.Items,
		Total:   *parsed.Total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

type getPayload struct {
	Id   int64  `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// Get fetches a single listing by id. A missing property surfaces as
// the backend's rejection error, never as a nil result.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Property, error) {
	data, err := s.call(ctx, "get", getPayload{Id: id})
	if err != nil {
		return nil, err
	}
	return decodeProperty(data)
}

type createData struct {
	Id *int64 `json:"id"`
}

// Create registers a new listing and returns its id.
func (s *Service) Create(ctx context.Context, prop *entity.Property) (int64, error) {
	data, err := s.call(ctx, "create", prop)
	if err != nil {
		return 0, err
	}

	var parsed createData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return 0, fmt.Errorf("decode create data: %w", err)
	}
	if parsed.Id == nil {
		return 0, fmt.Errorf("malformed create data: missing id")
	}
	return *parsed.Id, nil
}

// Update overwrites a listing.
func (s *Service) Update(ctx context.Context, prop *entity.Property) error {
	_, err := s.call(ctx, "update", prop)
	return err
}

// Delete removes a listing by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := s.call(ctx, "delete", getPayload{Id: id})
	return err
}

func decodeProperty(data json.RawMessage) (*entity.Property, error) {
	var prop entity.Property
	if err := json.Unmarshal(data, &prop); err != nil {
		return nil, fmt.Errorf("decode property: %w", err)
	}
	if prop.Slug == "" || prop.Title == "" {
		return nil, fmt.Errorf("malformed property data: missing slug or title")
	}
	return &prop, nil
}
