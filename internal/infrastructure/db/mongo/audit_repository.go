package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

const collectionAuthEvents = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// Insert persists an auth event to the auth_events audit collection.
func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEvent) error {
	doc := bson.M{
		"session_user_id": e.SessionUserID,
		"kind":            e.Kind,
		"at":              e.At.UTC(),
		"recorded_at":     time.Now().UTC(),
	}
	if e.EmployeeID != "" {
		doc["employee_id"] = e.EmployeeID
	}

	if _, err := r.db.Collection(collectionAuthEvents).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
