package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"leadforge/internal/model"
)

// SubmissionRepo handles MongoDB operations for completed assessments
type SubmissionRepo interface {
	Create(ctx context.Context, sub *model.QuizSubmission) (string, error)
	GetByID(ctx context.Context, id string) (*model.QuizSubmission, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("quiz_submissions"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.QuizSubmission) (string, error) {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	sub.ID = oid.Hex()
	return sub.ID, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.QuizSubmission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// ids are only ever minted by Create, a malformed one cannot exist
		return nil, nil
	}

	var sub model.QuizSubmission
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sub.ID = id
	return &sub, nil
}
