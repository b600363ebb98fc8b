package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

type MongoContactRequestRepo struct {
	collection *mongo.Collection
}

func NewMongoContactRequestRepo(db *mongo.Database) *MongoContactRequestRepo {
	return &MongoContactRequestRepo{collection: db.Collection(contactRequestsCollection)}
}

func (r *MongoContactRequestRepo) Create(ctx context.Context, request *models.ContactRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	_, err := r.collection.InsertOne(ctx, request)
	return err
}

func (r *MongoContactRequestRepo) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	return err
}

func (r *MongoContactRequestRepo) List(ctx context.Context, page models.Page) ([]*models.ContactRequest, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, pageOptions("createdAt", page))
	if err != nil {
		return nil, 0, err
	}
	requests := []*models.ContactRequest{}
	err = cursor.All(ctx, &requests)
	return requests, total, err
}
