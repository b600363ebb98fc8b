package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rpupo63/artist-portfolio-backend/models"
)

type MongoArtistRepo struct {
	collection *mongo.Collection
}

func NewMongoArtistRepo(db *mongo.Database) *MongoArtistRepo {
	return &MongoArtistRepo{collection: db.Collection(artistsCollection)}
}

func (r *MongoArtistRepo) Create(ctx context.Context, artist *models.Artist) error {
	if artist.ID == "" {
		artist.ID = uuid.NewString()
	}
	_, err := r.collection.InsertOne(ctx, artist)
	return err
}

func (r *MongoArtistRepo) FindActiveByID(ctx context.Context, id string) (*models.Artist, error) {
	var artist models.Artist
	err := r.collection.FindOne(ctx, activeFilter(bson.M{"_id": id})).Decode(&artist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *MongoArtistRepo) FindByIDs(ctx context.Context, ids []string) ([]*models.Artist, error) {
	artists := []*models.Artist{}
	if len(ids) == 0 {
		return artists, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	err = cursor.All(ctx, &artists)
	return artists, err
}

func (r *MongoArtistRepo) ListActive(ctx context.Context, page models.Page) ([]*models.Artist, int64, error) {
	filter := activeFilter(nil)
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter, pageOptions("createdAt", page))
	if err != nil {
		return nil, 0, err
	}
	artists := []*models.Artist{}
	err = cursor.All(ctx, &artists)
	return artists, total, err
}

func (r *MongoArtistRepo) SearchActive(ctx context.Context, term string, limit int) ([]*models.Artist, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, activeFilter(bson.M{"name": containsRegex(term)}), opts)
	if err != nil {
		return nil, err
	}
	artists := []*models.Artist{}
	err = cursor.All(ctx, &artists)
	return artists, err
}

func (r *MongoArtistRepo) Update(ctx context.Context, artist *models.Artist) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		activeFilter(bson.M{"_id": artist.ID}),
		bson.M{"$set": bson.M{
			"name":      artist.Name,
			"photoUrl":  artist.PhotoURL,
			"smartLink": artist.SmartLink,
			"updatedAt": artist.UpdatedAt,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Deactivate uses find-and-modify so two concurrent deletes cannot both match.
func (r *MongoArtistRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	err := r.collection.FindOneAndUpdate(ctx,
		activeFilter(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}
