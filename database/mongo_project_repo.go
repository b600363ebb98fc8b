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

type MongoProjectRepo struct {
	collection *mongo.Collection
}

func NewMongoProjectRepo(db *mongo.Database) *MongoProjectRepo {
	return &MongoProjectRepo{collection: db.Collection(projectsCollection)}
}

func projectFilter(filter models.ProjectFilter) bson.M {
	extra := bson.M{}
	if filter.Category != "" {
		extra["category"] = filter.Category
	}
	if filter.ArtistID != "" {
		extra["artist"] = filter.ArtistID
	}
	return activeFilter(extra)
}

func (r *MongoProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	_, err := r.collection.InsertOne(ctx, project)
	return err
}

func (r *MongoProjectRepo) FindActiveByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, activeFilter(bson.M{"_id": id})).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *MongoProjectRepo) ListActive(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]*models.Project, int64, error) {
	query := projectFilter(filter)
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	projects, err := r.find(ctx, query, pageOptions("datetime", page))
	return projects, total, err
}

func (r *MongoProjectRepo) FindActive(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	return r.find(ctx, projectFilter(filter), options.Find().SetSort(bson.D{{Key: "datetime", Value: -1}}))
}

// SearchActive matches title, description or any element of tags.
func (r *MongoProjectRepo) SearchActive(ctx context.Context, term string, limit int) ([]*models.Project, error) {
	pattern := containsRegex(term)
	query := activeFilter(bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
		bson.M{"tags": pattern},
	}})
	opts := options.Find().
		SetSort(bson.D{{Key: "datetime", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, query, opts)
}

func (r *MongoProjectRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*models.Project, error) {
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	projects := []*models.Project{}
	err = cursor.All(ctx, &projects)
	return projects, err
}

func (r *MongoProjectRepo) Update(ctx context.Context, project *models.Project) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		activeFilter(bson.M{"_id": project.ID}),
		bson.M{"$set": bson.M{
			"title":       project.Title,
			"description": project.Description,
			"coverPhoto":  project.CoverPhoto,
			"datetime":    project.Datetime,
			"category":    project.Category,
			"tags":        project.Tags,
			"image_urls":  project.ImageURLs,
			"artist":      project.ArtistID,
			"status":      project.Status,
			"updatedAt":   project.UpdatedAt,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoProjectRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	err := r.collection.FindOneAndUpdate(ctx,
		activeFilter(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}
