package entity

import "time"

// Property is a real-estate listing served by the automation backend.
type Property struct {
	ID          int64     `json:"id" bson:"id"`
	Slug        string    `json:"slug" bson:"slug" validate:"required"`
	Title       string    `json:"title" bson:"title" validate:"required"`
	Description string    `json:"description" bson:"description"`
	City        string    `json:"city" bson:"city"`
	Type        string    `json:"type" bson:"type"`
	Price       float64   `json:"price" bson:"price"`
	Bedrooms    int       `json:"bedrooms" bson:"bedrooms"`
	Suites      int       `json:"suites" bson:"suites"`
	Parking     int       `json:"parking" bson:"parking"`
	Area        float64   `json:"area" bson:"area"`
	CoverImage  string    `json:"cover_image" bson:"cover_image"`
	Gallery     []string  `json:"gallery" bson:"gallery"`
	VideoURL    string    `json:"video_url" bson:"video_url"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// PropertyFilter narrows a listing query.
type PropertyFilter struct {
	City string `json:"city,omitempty"`
	Type string `json:"type,omitempty"`
}

// PropertyPage is one page of a filtered listing.
type PropertyPage struct {
	Items   []Property `json:"items"`
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}
