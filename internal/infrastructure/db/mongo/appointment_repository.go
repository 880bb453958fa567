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
	"github.com/MarkRamington/silvanum-ink-terminal/internal/core/ports"
)

const collectionAppointments = "appointment_sessions"

// AppointmentRepository implements ports.AppointmentRepository using MongoDB.
type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

type mongoAppointment struct {
	ID          string    `bson:"_id"`
	CustomerID  string    `bson:"customer_id"`
	EmployeeID  string    `bson:"employee_id"`
	ScheduledAt time.Time `bson:"scheduled_at"`
	DurationMin int       `bson:"duration_min"`
	ServiceDesc string    `bson:"service_desc,omitempty"`
	Notes       string    `bson:"notes,omitempty"`
	CreatedAt   int64     `bson:"created_at"`
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.AppointmentSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAppointment{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		EmployeeID:  a.EmployeeID,
		ScheduledAt: a.ScheduledAt.UTC(),
		DurationMin: a.DurationMin,
		ServiceDesc: a.ServiceDesc,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.AppointmentSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAppointment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return toAppointment(&ma), nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter ports.ListAppointmentsFilter) ([]*domain.AppointmentSession, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.EmployeeID != "" {
		query["employee_id"] = filter.EmployeeID
	}
	if !filter.Day.IsZero() {
		dayStart := filter.Day.UTC().Truncate(24 * time.Hour)
		query["scheduled_at"] = bson.M{"$gte": dayStart, "$lt": dayStart.Add(24 * time.Hour)}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []*domain.AppointmentSession
	for cursor.Next(ctx) {
		var ma mongoAppointment
		if err := cursor.Decode(&ma); err != nil {
			return nil, 0, fmt.Errorf("decode appointment: %w", err)
		}
		appts = append(appts, toAppointment(&ma))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	return appts, total, nil
}

// EnsureIndexes creates the indexes backing day and employee filters.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "scheduled_at", Value: 1}}},
		{Keys: bson.D{{Key: "employee_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toAppointment(ma *mongoAppointment) *domain.AppointmentSession {
	return &domain.AppointmentSession{
		ID:          ma.ID,
		CustomerID:  ma.CustomerID,
		EmployeeID:  ma.EmployeeID,
		ScheduledAt: ma.ScheduledAt.UTC(),
		DurationMin: ma.DurationMin,
		ServiceDesc: ma.ServiceDesc,
		Notes:       ma.Notes,
		CreatedAt:   unixToTime(ma.CreatedAt),
	}
}
