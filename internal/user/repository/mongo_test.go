package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/AlibekovAA/event-registration/internal/user/domain"
)

func mockUserDocument(regs ...bson.D) bson.D {
	arr := bson.A{}
	for _, r := range regs {
		arr = append(arr, r)
	}
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: "u1"},
		{Key: "name", Value: "Alice"},
		{Key: "email", Value: "alice@x.com"},
		{Key: "password_hash", Value: "hash"},
		{Key: "registrations", Value: arr},
		{Key: "created_at", Value: created},
		{Key: "updated_at", Value: created},
	}
}

func TestMongoRepository_AppendRegistration(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	registeredAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	reg := domain.Registration{EventName: "conf2024", RegisteredAt: registeredAt}
	ns := mtest.TestDb + "." + usersCollection

	mt.Run("appends when absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{
			Key: "value",
			Value: mockUserDocument(bson.D{
				{Key: "event_name", Value: "conf2024"},
				{Key: "registered_at", Value: registeredAt},
			}),
		}))

		regs, err := NewMongoRepository(mt.DB).AppendRegistration(context.Background(), "u1", reg)
		if err != nil {
			mt.Fatalf("expected no error, got %v", err)
		}
		if len(regs) != 1 || regs[0].EventName != "conf2024" || !regs[0].RegisteredAt.Equal(registeredAt) {
			mt.Errorf("unexpected registrations: %+v", regs)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "findAndModify" {
			mt.Fatalf("expected a single findAndModify, got %+v", started)
		}
		ne, ok := started.Command.Lookup("query", "registrations.event_name", "$ne").StringValueOK()
		if !ok || ne != "conf2024" {
			mt.Errorf("expected the update to be conditional on the event being absent, got %v", started.Command)
		}
	})

	mt.Run("already registered", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)

		_, err := NewMongoRepository(mt.DB).AppendRegistration(context.Background(), "u1", reg)
		if !errors.Is(err, ErrAlreadyRegistered) {
			mt.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	mt.Run("missing user", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)

		_, err := NewMongoRepository(mt.DB).AppendRegistration(context.Background(), "missing", reg)
		if !errors.Is(err, ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		_, err := NewMongoRepository(mt.DB).AppendRegistration(context.Background(), "u1", reg)
		if err == nil || errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrAlreadyRegistered) {
			mt.Fatalf("expected a store error, got %v", err)
		}
	})
}

func TestMongoRepository_CreateDuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: users_email_key",
		}))

		err := NewMongoRepository(mt.DB).Create(context.Background(), domain.User{
			ID:        "u2",
			Name:      "Alice",
			Email:     "alice@x.com",
			CreatedAt: time.Now(),
		})
		if !errors.Is(err, ErrEmailAlreadyExists) {
			mt.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestMongoRepository_FindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := mtest.TestDb + "." + usersCollection

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, mockUserDocument()))

		user, err := NewMongoRepository(mt.DB).FindByEmail(context.Background(), "alice@x.com")
		if err != nil {
			mt.Fatalf("expected no error, got %v", err)
		}
		if user.ID != "u1" || user.PasswordHash != "hash" {
			mt.Errorf("unexpected user: %+v", user)
		}
		if user.Registrations == nil {
			mt.Error("expected non-nil registrations")
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		if _, err := NewMongoRepository(mt.DB).FindByEmail(context.Background(), "none@x.com"); !errors.Is(err, ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
