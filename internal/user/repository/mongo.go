package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AlibekovAA/event-registration/internal/common/db"
	"github.com/AlibekovAA/event-registration/internal/user/domain"
)

const usersCollection = "users"

type registrationDocument struct {
	EventName    string    `bson:"event_name"`
	RegisteredAt time.Time `bson:"registered_at"`
}

type userDocument struct {
	ID            string                 `bson:"_id"`
	Name          string                 `bson:"name"`
	Email         string                 `bson:"email"`
	PasswordHash  string                 `bson:"password_hash"`
	Registrations []registrationDocument `bson:"registrations"`
	CreatedAt     time.Time              `bson:"created_at"`
	UpdatedAt     time.Time              `bson:"updated_at"`
}

func toDocument(user domain.User) userDocument {
	regs := make([]registrationDocument, 0, len(user.Registrations))
	for _, r := range user.Registrations {
		regs = append(regs, registrationDocument{EventName: r.EventName, RegisteredAt: r.RegisteredAt})
	}
	updatedAt := user.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = user.CreatedAt
	}
	return userDocument{
		ID:            string(user.ID),
		Name:          user.Name,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		Registrations: regs,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (d userDocument) registrations() []domain.Registration {
	regs := make([]domain.Registration, 0, len(d.Registrations))
	for _, r := range d.Registrations {
		regs = append(regs, domain.Registration{EventName: r.EventName, RegisteredAt: r.RegisteredAt.UTC()})
	}
	return regs
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:            domain.ID(d.ID),
		Name:          d.Name,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		Registrations: d.registrations(),
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

// MongoRepository stores each user as one document with its registrations
// embedded.
type MongoRepository struct {
	users *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{users: database.Collection(usersCollection)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.users.InsertOne(ctx, toDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			db.MeasureQueryDuration("create_user", usersCollection, start)
			return ErrEmailAlreadyExists
		}
		return db.HandleExecError(err, "create_user", usersCollection, start)
	}
	db.MeasureQueryDuration("create_user", usersCollection, start)
	return nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, "find_user_by_email", bson.M{"email": email})
}

func (r *MongoRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findOne(ctx, "find_user_by_id", bson.M{"_id": string(id)})
}

func (r *MongoRepository) findOne(ctx context.Context, operation string, filter bson.M) (domain.User, error) {
	start := time.Now()
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			db.MeasureQueryDuration(operation, usersCollection, start)
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, db.HandleExecError(err, operation, usersCollection, start)
	}
	db.MeasureQueryDuration(operation, usersCollection, start)
	return doc.toDomain(), nil
}

// AppendRegistration pushes reg only when no embedded registration carries
// the same event name. The filter and the push run as one document update.
func (r *MongoRepository) AppendRegistration(ctx context.Context, id domain.ID, reg domain.Registration) ([]domain.Registration, error) {
	start := time.Now()

	filter := bson.M{
		"_id":                      string(id),
		"registrations.event_name": bson.M{"$ne": reg.EventName},
	}
	update := bson.M{
		"$push": bson.M{"registrations": registrationDocument{EventName: reg.EventName, RegisteredAt: reg.RegisteredAt}},
		"$set":  bson.M{"updated_at": reg.RegisteredAt},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := r.users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		db.MeasureQueryDuration("append_registration", usersCollection, start)
		return doc.registrations(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, db.HandleExecError(err, "append_registration", usersCollection, start)
	}

	count, err := r.users.CountDocuments(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return nil, db.HandleExecError(err, "append_registration", usersCollection, start)
	}
	db.MeasureQueryDuration("append_registration", usersCollection, start)
	if count == 0 {
		return nil, ErrUserNotFound
	}
	return nil, ErrAlreadyRegistered
}

func (r *MongoRepository) ListSummaries(ctx context.Context) ([]domain.Summary, error) {
	start := time.Now()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"password_hash": 0})

	cursor, err := r.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, db.HandleExecError(err, "list_user_summaries", usersCollection, start)
	}
	defer cursor.Close(ctx)

	summaries := make([]domain.Summary, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user summary: %w", err)
		}
		summaries = append(summaries, domain.Summary{
			Name:          doc.Name,
			Email:         doc.Email,
			Registrations: doc.registrations(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration error: %w", err)
	}

	db.MeasureQueryDuration("list_user_summaries", usersCollection, start)
	return summaries, nil
}
