package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/traveldesk/travel-requests/internal/core/domain"
)

const statusEventsCollection = "status_events"

type statusEventDoc struct {
	RequestID  int64     `bson:"request_id"`
	FromStatus string    `bson:"from_status"`
	ToStatus   string    `bson:"to_status"`
	ChangedBy  int64     `bson:"changed_by"`
	ChangedAt  time.Time `bson:"changed_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// StatusEventRepository keeps the travel request status audit trail.
type StatusEventRepository struct {
	col *mongo.Collection
}

func NewStatusEventRepository(db *mongo.Database) *StatusEventRepository {
	return &StatusEventRepository{col: db.Collection(statusEventsCollection)}
}

func (r *StatusEventRepository) Insert(ctx context.Context, change *domain.StatusChange) error {
	doc := statusEventDoc{
		RequestID:  change.RequestID,
		FromStatus: string(change.From),
		ToStatus:   string(change.To),
		ChangedBy:  change.ChangedBy,
		ChangedAt:  change.ChangedAt.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert status event: %w", err)
	}
	return nil
}

// ListByRequest returns the changes of one request, oldest first.
func (r *StatusEventRepository) ListByRequest(ctx context.Context, requestID int64) ([]domain.StatusChange, error) {
	opts := options.Find().SetSort(bson.D{{Key: "changed_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"request_id": requestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []statusEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode status events: %w", err)
	}

	out := make([]domain.StatusChange, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.StatusChange{
			RequestID: d.RequestID,
			From:      domain.TravelStatus(d.FromStatus),
			To:        domain.TravelStatus(d.ToStatus),
			ChangedBy: d.ChangedBy,
			ChangedAt: d.ChangedAt,
		})
	}
	return out, nil
}

// EnsureIndexes creates the lookup index on the status_events collection.
func (r *StatusEventRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_id", Value: 1}, {Key: "changed_at", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
