package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leadforge/internal/model"
)

// LeadRepo handles MongoDB operations for leads
type LeadRepo interface {
	Create(ctx context.Context, lead *model.Lead) (string, error)
	GetByID(ctx context.Context, id string) (*model.Lead, error)
	ListByBusiness(ctx context.Context, businessName string, limit int) ([]*model.Lead, error)
	UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error
	CountByBusiness(ctx context.Context, businessName string) (int64, error)
}

type leadRepo struct {
	collection *mongo.Collection
}

// NewLeadRepo creates a new lead repository
func NewLeadRepo(db *mongo.Database) LeadRepo {
	return &leadRepo{
		collection: db.Collection("leads"),
	}
}

func (r *leadRepo) Create(ctx context.Context, lead *model.Lead) (string, error) {
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	if lead.Status == "" {
		lead.Status = model.LeadNew
	}

	result, err := r.collection.InsertOne(ctx, lead)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	lead.ID = oid.Hex()
	return lead.ID, nil
}

func (r *leadRepo) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var lead model.Lead
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lead.ID = id
	return &lead, nil
}

func (r *leadRepo) ListByBusiness(ctx context.Context, businessName string, limit int) ([]*model.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"businessName": businessName}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	leads := []*model.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *leadRepo) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountByBusiness counts leads that carry a known urgency
func (r *leadRepo) CountByBusiness(ctx context.Context, businessName string) (int64, error) {
	known := bson.M{"$in": []model.LeadUrgency{model.LeadUrgencyHigh, model.LeadUrgencyMedium, model.LeadUrgencyLow}}
	return r.collection.CountDocuments(ctx, bson.M{"businessName": businessName, "urgency": known})
}
