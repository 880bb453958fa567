package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

const collectionEmployees = "employees"

// EmployeeRepository implements ports.EmployeeRepository using MongoDB.
type EmployeeRepository struct {
	col *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(collectionEmployees)}
}

type mongoEmployee struct {
	ID          string `bson:"_id"`
	DisplayName string `bson:"display_name"`
	PINHash     string `bson:"pin_hash"`
	Role        string `bson:"role"`
	Active      bool   `bson:"active"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

// Create inserts an employee. A unique index on display_name makes a
// duplicate name surface as domain.ErrEmployeeExists.
func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEmployee{
		ID:          e.ID,
		DisplayName: e.DisplayName,
		PINHash:     e.PINHash,
		Role:        e.Role,
		Active:      e.Active,
		CreatedAt:   e.CreatedAt.Unix(),
		UpdatedAt:   e.UpdatedAt.Unix(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEmployee
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}

	return &domain.Employee{
		ID:          me.ID,
		DisplayName: me.DisplayName,
		PINHash:     me.PINHash,
		Role:        me.Role,
		Active:      me.Active,
		CreatedAt:   unixToTime(me.CreatedAt),
		UpdatedAt:   unixToTime(me.UpdatedAt),
	}, nil
}

// Deactivate flips the active flag off. The document is kept so historical
// references (bindings, appointments) stay intact.
func (r *EmployeeRepository) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC().Unix()}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("deactivate employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// EnsureIndexes creates the unique display_name index.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "display_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
