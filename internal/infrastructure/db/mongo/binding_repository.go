package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
)

const collectionBindings = "identity_bindings"

// BindingRepository implements ports.BindingRepository using MongoDB. The
// session user id doubles as the document _id, so uniqueness is enforced by
// the collection itself with no extra index.
type BindingRepository struct {
	col *mongo.Collection
}

func NewBindingRepository(db *mongo.Database) *BindingRepository {
	return &BindingRepository{col: db.Collection(collectionBindings)}
}

type mongoBinding struct {
	SessionUserID string `bson:"_id"`
	EmployeeID    string `bson:"employee_id"`
	CreatedAt     int64  `bson:"created_at"`
}

// InsertIfAbsent creates the link. A duplicate-key rejection means a link
// already exists: that is the idempotence case, reported as (false, nil),
// never as an error. Concurrent binds from different devices racing on the
// same id are settled the same way by the server's uniqueness check.
func (r *BindingRepository) InsertIfAbsent(ctx context.Context, b *domain.IdentityBinding) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBinding{
		SessionUserID: b.SessionUserID,
		EmployeeID:    b.EmployeeID,
		CreatedAt:     b.CreatedAt.Unix(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		if isUnauthorized(err) {
			return false, domain.ErrBindingDenied
		}
		return false, fmt.Errorf("insert binding: %w", err)
	}
	return true, nil
}

func (r *BindingRepository) Find(ctx context.Context, sessionUserID string) (*domain.IdentityBinding, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBinding
	if err := r.col.FindOne(ctx, bson.M{"_id": sessionUserID}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBindingNotFound
		}
		if isUnauthorized(err) {
			return nil, domain.ErrBindingDenied
		}
		return nil, fmt.Errorf("find binding: %w", err)
	}

	return &domain.IdentityBinding{
		SessionUserID: mb.SessionUserID,
		EmployeeID:    mb.EmployeeID,
		CreatedAt:     unixToTime(mb.CreatedAt),
	}, nil
}

// isUnauthorized recognizes the server's permission rejection (code 13).
func isUnauthorized(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 13
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == 13 {
				return true
			}
		}
	}
	return false
}
