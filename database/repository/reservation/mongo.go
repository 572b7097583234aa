package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dinevoice/database"
	"dinevoice/models"
	"dinevoice/services/slots"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	slotIndexName = "unique_slot"
	idIndexName   = "unique_id"
)

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	return &mongoReservationRepo{
		coll: database.Database().Collection("reservations"),
	}
}

// EnsureIndexes creates the unique indexes that serialize conflicting inserts.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(idIndexName),
		},
		// One booking per date and start time.
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(slotIndexName),
		},
	}

	coll := database.Database().Collection("reservations")
	if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}

func (r *mongoReservationRepo) CreateBooking(ctx context.Context, draft models.BookingDraft) (*models.ConfirmedBooking, error) {
	booking, err := prepare(draft, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return nil, classifyInsertError(err)
	}
	return booking, nil
}

func classifyInsertError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	if strings.Contains(err.Error(), idIndexName) {
		return ErrDuplicateBooking
	}
	return ErrSlotConflict
}

func (r *mongoReservationRepo) QueryAvailability(ctx context.Context, date, openTime, closeTime string, durationMinutes int) (*models.SlotGrid, error) {
	existing, err := r.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return slots.Compute(date, openTime, closeTime, durationMinutes, existing)
}

func (r *mongoReservationRepo) GetByID(ctx context.Context, id string) (*models.ConfirmedBooking, error) {
	var booking models.ConfirmedBooking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *mongoReservationRepo) ListByDate(ctx context.Context, date string) ([]models.ConfirmedBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"date": date, "status": models.StatusConfirmed}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.ConfirmedBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
