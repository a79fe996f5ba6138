package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"advisor-api/internal/domain/user"
	advisor_errors "advisor-api/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const usersCollection = "users"

type userDocument struct {
	ID           bson.ObjectID `bson:"_id"`
	FullName     string        `bson:"fullName"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"passwordHash"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

func (d userDocument) toEntity() user.User {
	return user.User{
		ID:           d.ID.Hex(),
		FullName:     d.FullName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

type MongoUserRepository struct {
	client *mongo.Client
	users  *mongo.Collection
}

func NewMongoUserRepository(client *mongo.Client, database string) UserRepository {
	return &MongoUserRepository{
		client: client,
		users:  client.Database(database).Collection(usersCollection),
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, u *user.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	doc := userDocument{
		ID:           bson.NewObjectID(),
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		return insertError(err)
	}

	u.ID = doc.ID.Hex()
	return nil
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		return user.User{}, findError(err)
	}
	return doc.toEntity(), nil
}

// EnsureSchema creates the unique index on email. Creating an index that
// already exists with the same options is a no-op in MongoDB.
func (r *MongoUserRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_users_email"),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// insertError maps a unique index violation on email to ErrAlreadyExists.
func insertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return advisor_errors.ErrAlreadyExists
	}
	return fmt.Errorf("insert user: %w", err)
}

func findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return advisor_errors.ErrNotFound
	}
	return fmt.Errorf("get user by email: %w", err)
}
