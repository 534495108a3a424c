package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
	"github.com/dhanu2426/corporate-banking-system/internal/core/ports"
)

const collectionCreditRequests = "credit_requests"

type CreditRepository struct {
	col *mongo.Collection
}

func NewCreditRepository(db *mongo.Database) *CreditRepository {
	return &CreditRepository{col: db.Collection(collectionCreditRequests)}
}

type mongoCreditRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ClientID      string             `bson:"client_id"`
	SubmittedBy   string             `bson:"submitted_by"`
	RequestAmount float64            `bson:"request_amount"`
	TenureMonths  int                `bson:"tenure_months"`
	Purpose       string             `bson:"purpose"`
	Status        string             `bson:"status"`
	Remarks       string             `bson:"remarks"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func toMongoCreditRequest(cr *domain.CreditRequest) mongoCreditRequest {
	return mongoCreditRequest{
		ClientID:      cr.ClientID,
		SubmittedBy:   cr.SubmittedBy,
		RequestAmount: cr.RequestAmount,
		TenureMonths:  cr.TenureMonths,
		Purpose:       cr.Purpose,
		Status:        string(cr.Status),
		Remarks:       cr.Remarks,
		CreatedAt:     cr.CreatedAt.UTC(),
	}
}

func (m mongoCreditRequest) toDomain() *domain.CreditRequest {
	return &domain.CreditRequest{
		ID:            m.ID.Hex(),
		ClientID:      m.ClientID,
		SubmittedBy:   m.SubmittedBy,
		RequestAmount: m.RequestAmount,
		TenureMonths:  m.TenureMonths,
		Purpose:       m.Purpose,
		Status:        domain.CreditStatus(m.Status),
		Remarks:       m.Remarks,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

// creditFilter translates a CreditFilter into a Mongo query. Empty fields
// are not constrained.
func creditFilter(f ports.CreditFilter) bson.M {
	filter := bson.M{}
	if f.SubmittedBy != "" {
		filter["submitted_by"] = f.SubmittedBy
	}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	return filter
}

func (r *CreditRepository) Create(ctx context.Context, cr *domain.CreditRequest) (*domain.CreditRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoCreditRequest(cr)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert credit request: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CreditRepository) FindByID(ctx context.Context, id string) (*domain.CreditRequest, error) {
	oid, err := parseID(id, domain.ErrCreditRequestNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCreditRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCreditRequestNotFound
		}
		return nil, fmt.Errorf("find credit request: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns matching requests, oldest first.
func (r *CreditRepository) List(ctx context.Context, f ports.CreditFilter) ([]*domain.CreditRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, creditFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("list credit requests: %w", err)
	}
	var docs []mongoCreditRequest
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode credit requests: %w", err)
	}

	out := make([]*domain.CreditRequest, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CreditRepository) Save(ctx context.Context, cr *domain.CreditRequest) error {
	oid, err := parseID(cr.ID, domain.ErrCreditRequestNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoCreditRequest(cr)
	doc.ID = oid
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("save credit request: %w", err)
	}
	return nil
}

func (r *CreditRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id, domain.ErrCreditRequestNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete credit request: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCreditRequestNotFound
	}
	return nil
}

// EnsureIndexes creates the filter indexes on the credit_requests collection.
func (r *CreditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "submitted_by", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
