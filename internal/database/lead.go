package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"LeadDesk/entity"
)

// SaveLead archives a captured lead.
func (m *MongoDB) SaveLead(ctx context.Context, lead entity.Lead) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(leadsCollection)
	_, err = collection.InsertOne(ctx, lead)
	return err
}

// ListLeads returns the most recent leads, newest first.
func (m *MongoDB) ListLeads(ctx context.Context, limit int) ([]entity.Lead, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}

	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(leadsCollection)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []entity.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}
