package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/domain"
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

const collectionCustomers = "customers"

// CustomerRepository implements ports.CustomerRepository using MongoDB.
type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{col: db.Collection(collectionCustomers)}
}

type mongoCustomer struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Phone     string `bson:"phone,omitempty"`
	Email     string `bson:"email,omitempty"`
	Notes     string `bson:"notes,omitempty"`
	CreatedBy string `bson:"created_by"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCustomer{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Notes:     c.Notes,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCustomer
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return toCustomer(&mc), nil
}

// List returns a page of customers. Search is a case-insensitive name prefix
// match, which is what the terminal's search-as-you-type box sends.
func (r *CustomerRepository) List(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": "^" + regexp.QuoteMeta(filter.Search), "$options": "i"}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []*domain.Customer
	for cursor.Next(ctx) {
		var mc mongoCustomer
		if err := cursor.Decode(&mc); err != nil {
			return nil, 0, fmt.Errorf("decode customer: %w", err)
		}
		customers = append(customers, toCustomer(&mc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	return customers, total, nil
}

// EnsureIndexes creates the name index used by prefix search.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	return err
}

func toCustomer(mc *mongoCustomer) *domain.Customer {
	return &domain.Customer{
		ID:        mc.ID,
		Name:      mc.Name,
		Phone:     mc.Phone,
		Email:     mc.Email,
		Notes:     mc.Notes,
		CreatedBy: mc.CreatedBy,
		CreatedAt: unixToTime(mc.CreatedAt),
	}
}
