package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
)

const bugsCollection = "bugs"

type BugRepository struct {
	col *mongo.Collection
	db  *mongo.Database
}

func NewBugRepository(db *mongo.Database) *BugRepository {
	return &BugRepository{col: db.Collection(bugsCollection), db: db}
}

type mongoBug struct {
	ID             int64      `bson:"_id"`
	Name           string     `bson:"name"`
	Description    string     `bson:"description"`
	ReportedByID   int64      `bson:"reported_by_id"`
	Status         string     `bson:"status"`
	AssignedToID   *int64     `bson:"assigned_to_id,omitempty"`
	ReportedAt     time.Time  `bson:"reported_at"`
	AssignedAt     *time.Time `bson:"assigned_at,omitempty"`
	LastModifiedAt time.Time  `bson:"last_modified_at"`
	IsModifiable   bool       `bson:"is_modifiable"`
	Version        int64      `bson:"version"`
}

func toMongoBug(b *domain.Bug) mongoBug {
	return mongoBug{
		ID:             b.ID,
		Name:           b.Name,
		Description:    b.Description,
		ReportedByID:   b.ReportedByID,
		Status:         string(b.Status),
		AssignedToID:   b.AssignedToID,
		ReportedAt:     b.ReportedAt,
		AssignedAt:     b.AssignedAt,
		LastModifiedAt: b.LastModifiedAt,
		IsModifiable:   b.IsModifiable,
		Version:        b.Version,
	}
}

func (m mongoBug) toDomain() *domain.Bug {
	return &domain.Bug{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		ReportedByID:   m.ReportedByID,
		Status:         domain.BugStatus(m.Status),
		AssignedToID:   m.AssignedToID,
		ReportedAt:     m.ReportedAt.UTC(),
		AssignedAt:     utcPtr(m.AssignedAt),
		LastModifiedAt: m.LastModifiedAt.UTC(),
		IsModifiable:   m.IsModifiable,
		Version:        m.Version,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (r *BugRepository) FindByID(ctx context.Context, id int64) (*domain.Bug, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoBug
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBugNotFound
		}
		return nil, fmt.Errorf("find bug: %w", err)
	}
	return m.toDomain(), nil
}

func (r *BugRepository) List(ctx context.Context) ([]*domain.Bug, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Bug
	for cur.Next(ctx) {
		var m mongoBug
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode bug: %w", err)
		}
		out = append(out, m.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}
	return out, nil
}

func (r *BugRepository) Create(ctx context.Context, b *domain.Bug) (*domain.Bug, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, bugsCollection)
	if err != nil {
		return nil, err
	}

	doc := toMongoBug(b)
	doc.ID = id
	doc.Version = 1

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert bug: %w", err)
	}
	return doc.toDomain(), nil
}

// Update persists b only when the stored version still matches b.Version; the
// version is part of the filter, so a stale write can never clobber a newer
// one. The caller distinguishes conflict from deletion by re-checking
// existence.
func (r *BugRepository) Update(ctx context.Context, b *domain.Bug) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoBug(b)
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": b.ID, "version": b.Version},
		bson.M{
			"$set": bson.M{
				"name":             doc.Name,
				"description":      doc.Description,
				"reported_by_id":   doc.ReportedByID,
				"status":           doc.Status,
				"assigned_to_id":   doc.AssignedToID,
				"reported_at":      doc.ReportedAt,
				"assigned_at":      doc.AssignedAt,
				"last_modified_at": doc.LastModifiedAt,
				"is_modifiable":    doc.IsModifiable,
			},
			"$inc": bson.M{"version": int64(1)},
		},
	)
	if err != nil {
		return fmt.Errorf("update bug: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *BugRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete bug: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBugNotFound
	}
	return nil
}

func (r *BugRepository) CountByEmployee(ctx context.Context, employeeID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"reported_by_id": employeeID},
		bson.M{"assigned_to_id": employeeID},
	}})
	if err != nil {
		return 0, fmt.Errorf("count bugs by employee: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the indexes the bug queries rely on.
func (r *BugRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reported_by_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
