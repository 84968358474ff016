package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"LeadDesk/entity"
)

// SaveChatMessage archives a transcript entry.
func (m *MongoDB) SaveChatMessage(ctx context.Context, msg entity.ChatMessage) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(transcriptsCollection)
	_, err = collection.InsertOne(ctx, msg)
	return err
}

// UpdateChatMessageStatus records a delivery-status advance.
func (m *MongoDB) UpdateChatMessageStatus(ctx context.Context, sessionID, messageID, status string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(transcriptsCollection)
	filter := bson.D{{Key: "session_id", Value: sessionID}, {Key: "id", Value: messageID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "delivery_status", Value: status}}}}

	_, err = collection.UpdateOne(ctx, filter, update)
	return err
}

// GetTranscript returns a session's archived messages in creation order.
func (m *MongoDB) GetTranscript(ctx context.Context, sessionID string) ([]entity.ChatMessage, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(transcriptsCollection)
	filter := bson.D{{Key: "session_id", Value: sessionID}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []entity.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
