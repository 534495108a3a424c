package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhanu2426/corporate-banking-system/internal/core/domain"
)

const collectionCreditAudit = "credit_request_audit"

// AuditRepository persists credit decisions to an append-only collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionCreditAudit)}
}

type mongoStatusChange struct {
	RequestID  string    `bson:"request_id"`
	From       string    `bson:"from"`
	To         string    `bson:"to"`
	Remarks    string    `bson:"remarks"`
	ReviewerID string    `bson:"reviewer_id"`
	ChangedAt  time.Time `bson:"changed_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Record appends one status change.
func (r *AuditRepository) Record(ctx context.Context, change domain.StatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoStatusChange{
		RequestID:  change.RequestID,
		From:       string(change.From),
		To:         string(change.To),
		Remarks:    change.Remarks,
		ReviewerID: change.ReviewerID,
		ChangedAt:  change.ChangedAt.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert status change: %w", err)
	}
	return nil
}

// ListByRequest returns the changes of one request, oldest first.
func (r *AuditRepository) ListByRequest(ctx context.Context, requestID string) ([]domain.StatusChange, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "changed_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"request_id": requestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list status changes: %w", err)
	}
	var docs []mongoStatusChange
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode status changes: %w", err)
	}

	out := make([]domain.StatusChange, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.StatusChange{
			RequestID:  d.RequestID,
			From:       domain.CreditStatus(d.From),
			To:         domain.CreditStatus(d.To),
			Remarks:    d.Remarks,
			ReviewerID: d.ReviewerID,
			ChangedAt:  d.ChangedAt.UTC(),
		})
	}
	return out, nil
}

func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "request_id", Value: 1}, {Key: "changed_at", Value: 1}},
	})
	return err
}
