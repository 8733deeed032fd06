package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/domain/models"
)

// UserRepository defines account and login-event storage operations.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, username, email string, profile models.Profile) error
	ListUsernames(ctx context.Context) ([]string, error)
	RecordLogin(ctx context.Context, event models.LoginEvent) error
	LoginHistory(ctx context.Context, username string, limit int64) ([]models.LoginEvent, error)
}

// MongoUserRepository implements UserRepository on the "users" and
// "login_events" collections.
type MongoUserRepository struct {
	users  *mongo.Collection
	logins *mongo.Collection
	logger *zap.Logger
}

// NewUserRepository builds the user repository.
func NewUserRepository(client *Client, logger *zap.Logger) *MongoUserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoUserRepository{
		users:  client.Database().Collection("users"),
		logins: client.Database().Collection("login_events"),
		logger: logger,
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, user models.User) error {
	err := r.users.FindOne(ctx, bson.M{"username": user.Username}).Err()
	if err == nil {
		return models.ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("check username %s: %w", user.Username, err)
	}

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user %s: %w", user.Username, err)
	}

	r.logger.Info("user created", zap.String("username", user.Username))
	return nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}
	return &user, nil
}

func (r *MongoUserRepository) UpdateProfile(ctx context.Context, username, email string, profile models.Profile) error {
	update := bson.M{"$set": bson.M{
		"profile.full_name":      profile.FullName,
		"profile.city":           profile.City,
		"profile.area":           profile.Area,
		"profile.age":            profile.Age,
		"profile.phone":          profile.Phone,
		"profile.occupation":     profile.Occupation,
		"profile.household_size": profile.HouseholdSize,
		"email":                  email,
		"updated_at":             time.Now(),
	}}

	res, err := r.users.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return fmt.Errorf("update profile for %s: %w", username, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) ListUsernames(ctx context.Context) ([]string, error) {
	values, err := r.users.Distinct(ctx, "username", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}

	names := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}
	return names, nil
}

func (r *MongoUserRepository) RecordLogin(ctx context.Context, event models.LoginEvent) error {
	if _, err := r.logins.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("record login for %s: %w", event.Username, err)
	}
	return nil
}

func (r *MongoUserRepository) LoginHistory(ctx context.Context, username string, limit int64) ([]models.LoginEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "login_time", Value: -1}}).SetLimit(limit)

	cursor, err := r.logins.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("load login history for %s: %w", username, err)
	}
	defer cursor.Close(ctx)

	events := make([]models.LoginEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode login history for %s: %w", username, err)
	}
	return events, nil
}
