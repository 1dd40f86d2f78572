package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saathi/internal/domain"
	"saathi/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaterialCollection holds generated quizzes, notes, roadmaps and analyses.
const MaterialCollection = "study_materials"

const maxMaterialPage = 100

type materialDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Kind      string    `bson:"kind"`
	Title     string    `bson:"title"`
	Input     string    `bson:"input,omitempty"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d *materialDocument) toDomain() *domain.StudyMaterial {
	return &domain.StudyMaterial{
		ID:        d.ID,
		UserID:    d.UserID,
		Kind:      domain.MaterialKind(d.Kind),
		Title:     d.Title,
		Input:     d.Input,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

type mongoMaterialRepository struct {
	coll *mongo.Collection
}

// NewMongoMaterialRepository stores study materials in db.
func NewMongoMaterialRepository(db *mongo.Database) domain.MaterialRepository {
	return &mongoMaterialRepository{coll: db.Collection(MaterialCollection)}
}

// EnsureMaterialIndexes creates the per-user listing index.
func EnsureMaterialIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(MaterialCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create material index: %w", err)
	}
	return nil
}

func (r *mongoMaterialRepository) Save(ctx context.Context, m *domain.StudyMaterial) error {
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	doc := materialDocument{
		ID:        m.ID,
		UserID:    m.UserID,
		Kind:      string(m.Kind),
		Title:     m.Title,
		Input:     m.Input,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to save study material: %w", err)
	}
	return nil
}

// ListByUser returns one page of materials, newest first. An empty kind
// lists all kinds; limit is capped at 100.
func (r *mongoMaterialRepository) ListByUser(ctx context.Context, userID string, kind domain.MaterialKind, limit, offset int64) ([]domain.StudyMaterial, error) {
	if limit <= 0 || limit > maxMaterialPage {
		limit = maxMaterialPage
	}
	filter := bson.M{"user_id": userID}
	if kind != "" {
		filter["kind"] = string(kind)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	if offset > 0 {
		opts.SetSkip(offset)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list study materials: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []materialDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode study materials: %w", err)
	}

	out := make([]domain.StudyMaterial, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

// GetByID returns (nil, nil) when the material does not exist or belongs to
// another user.
func (r *mongoMaterialRepository) GetByID(ctx context.Context, userID, id string) (*domain.StudyMaterial, error) {
	var doc materialDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get study material: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *mongoMaterialRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete study material: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFoundError("Study material not found")
	}
	return nil
}
