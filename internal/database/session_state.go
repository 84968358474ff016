package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"LeadDesk/chat"
)

// SaveSessionState persists a session's state by session_id.
func (m *MongoDB) SaveSessionState(ctx context.Context, state *chat.SessionState) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	state.UpdatedAt = time.Now()

	filter := bson.D{{Key: "session_id", Value: state.SessionID}}
	update := bson.D{{Key: "$set", Value: state}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// LoadSessionState retrieves a session's state by session_id.
func (m *MongoDB) LoadSessionState(ctx context.Context, sessionID string) (*chat.SessionState, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "session_id", Value: sessionID}}

	var state chat.SessionState
	err = collection.FindOne(ctx, filter).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &state, nil
}

// DeleteSessionState removes a session's state by session_id.
func (m *MongoDB) DeleteSessionState(ctx context.Context, sessionID string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "session_id", Value: sessionID}}

	_, err = collection.DeleteOne(ctx, filter)
	return err
}

// ListIdleSessions returns session ids with no activity since olderThan.
func (m *MongoDB) ListIdleSessions(ctx context.Context, olderThan time.Time) ([]string, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "updated_at", Value: bson.D{{Key: "$lt", Value: olderThan}}}}
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var state chat.SessionState
		if err := cursor.Decode(&state); err != nil {
			return nil, err
		}
		ids = append(ids, state.SessionID)
	}
	return ids, cursor.Err()
}
