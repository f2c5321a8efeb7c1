package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("not found")

type MongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{col: db.Collection("users")}
}

type userDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	GoogleID    string             `bson:"googleId"`
	DisplayName string             `bson:"displayName"`
	Email       string             `bson:"email"`
	IsAdmin     bool               `bson:"isAdmin"`
}

func (d userDoc) record() *usecase.UserRecord {
	return &usecase.UserRecord{
		ID:          d.ID.Hex(),
		GoogleID:    d.GoogleID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		IsAdmin:     d.IsAdmin,
	}
}

func (r *MongoUserRepo) FindByGoogleID(ctx context.Context, googleID string) (*usecase.UserRecord, error) {
	var d userDoc
	err := r.col.FindOne(ctx, bson.D{{Key: "googleId", Value: googleID}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by google id: %w", err)
	}
	return d.record(), nil
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*usecase.UserRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var d userDoc
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return d.record(), nil
}

func (r *MongoUserRepo) Create(ctx context.Context, u *usecase.UserRecord) error {
	doc := userDoc{
		GoogleID:    u.GoogleID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id.Hex()
	}
	return nil
}

var _ usecase.UserRepo = (*MongoUserRepo)(nil)
