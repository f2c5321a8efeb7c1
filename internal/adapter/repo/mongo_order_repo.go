package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoOrderRepo struct {
	col *mongo.Collection
}

func NewMongoOrderRepo(db *mongo.Database) *MongoOrderRepo {
	return &MongoOrderRepo{col: db.Collection("orders")}
}

type orderDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	UserEmail   string             `bson:"userEmail"`
	ProductName string             `bson:"productName"`
	Amount      int64              `bson:"amount"`
	Date        time.Time          `bson:"date"`
}

func (r *MongoOrderRepo) Create(ctx context.Context, o *usecase.OrderRecord) error {
	doc := orderDoc{
		UserID:      o.UserID,
		UserEmail:   o.UserEmail,
		ProductName: o.ProductName,
		Amount:      o.Amount,
		Date:        o.Date,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = id.Hex()
	}
	return nil
}

func (r *MongoOrderRepo) ListNewestFirst(ctx context.Context) ([]usecase.OrderRecord, error) {
	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cur.Close(ctx)

	var out []usecase.OrderRecord
	for cur.Next(ctx) {
		var d orderDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		out = append(out, usecase.OrderRecord{
			ID:          d.ID.Hex(),
			UserID:      d.UserID,
			UserEmail:   d.UserEmail,
			ProductName: d.ProductName,
			Amount:      d.Amount,
			Date:        d.Date,
		})
	}
	return out, cur.Err()
}

var _ usecase.OrderRepo = (*MongoOrderRepo)(nil)
