package formula

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formulabase/formulactl/internal/lg"
	"github.com/formulabase/formulactl/internal/mongodb"
)

var (
	// ErrNotFound is returned when no formula matches the given ID.
	ErrNotFound = errors.New("formula not found")

	// ErrDuplicate is returned when a formula_id already exists.
	ErrDuplicate = errors.New("formula already exists")
)

// Repository handles all catalog operations against one collection.
type Repository struct {
	coll    *mongo.Collection
	breaker *mongodb.Breaker
	log     lg.Logger
}

// NewRepository wraps the given collection. logger may be nil.
func NewRepository(coll *mongo.Collection, logger lg.Logger) *Repository {
	if logger == nil {
		logger = lg.Discard
	}
	return &Repository{
		coll:    coll,
		breaker: mongodb.NewBreaker("formula-repository"),
		log:     logger,
	}
}

// execute funnels a round-trip through the circuit breaker.
func execute[T any](b *mongodb.Breaker, fn func() (T, error)) (T, error) {
	res, err := b.Execute(func() (any, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// EnsureIndexes creates the unique formula_id index, the text index used
// for search, and the category index.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "formula_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "tags", Value: "text"},
			},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create validates and inserts a new formula.
func (r *Repository) Create(ctx context.Context, f *Formula) error {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid formula: %w", err)
	}
	_, err := execute(r.breaker, func() (*mongo.InsertOneResult, error) {
		return r.coll.InsertOne(ctx, f)
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicate, f.FormulaID)
		}
		return fmt.Errorf("failed to insert formula %s: %w", f.FormulaID, err)
	}
	r.log.Debug("formula inserted", lg.String("formula_id", f.FormulaID))
	return nil
}

// GetByID retrieves one formula, or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, formulaID string) (*Formula, error) {
	f, err := execute(r.breaker, func() (*Formula, error) {
		var f Formula
		if err := r.coll.FindOne(ctx, idFilter(formulaID)).Decode(&f); err != nil {
			return nil, err
		}
		return &f, nil
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, formulaID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load formula %s: %w", formulaID, err)
	}
	return f, nil
}

// GetAll returns every formula, optionally filtered by category, sorted
// by formula_id.
func (r *Repository) GetAll(ctx context.Context, category string) ([]Formula, error) {
	opts := options.Find().SetSort(bson.D{{Key: "formula_id", Value: 1}})
	return r.find(ctx, categoryFilter(category), opts)
}

// Search matches against the text index over name, description, and tags.
func (r *Repository) Search(ctx context.Context, term string) ([]Formula, error) {
	return r.find(ctx, textFilter(term), nil)
}

// GetByTag returns every formula carrying the given tag.
func (r *Repository) GetByTag(ctx context.Context, tag string) ([]Formula, error) {
	return r.find(ctx, tagFilter(tag), nil)
}

func (r *Repository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Formula, error) {
	return execute(r.breaker, func() ([]Formula, error) {
		var cur *mongo.Cursor
		var err error
		if opts != nil {
			cur, err = r.coll.Find(ctx, filter, opts)
		} else {
			cur, err = r.coll.Find(ctx, filter)
		}
		if err != nil {
			return nil, fmt.Errorf("find failed: %w", err)
		}
		var formulas []Formula
		if err := cur.All(ctx, &formulas); err != nil {
			return nil, fmt.Errorf("failed to decode formulas: %w", err)
		}
		return formulas, nil
	})
}

// Update applies a $set of the given fields and bumps updated_at.
// Identifier fields in the map are ignored.
func (r *Repository) Update(ctx context.Context, formulaID string, fields bson.M) error {
	res, err := execute(r.breaker, func() (*mongo.UpdateResult, error) {
		return r.coll.UpdateOne(ctx, idFilter(formulaID), setUpdate(fields, time.Now().UTC()))
	})
	if err != nil {
		return fmt.Errorf("failed to update formula %s: %w", formulaID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, formulaID)
	}
	return nil
}

// AddTags adds tags to a formula without duplicating existing ones.
func (r *Repository) AddTags(ctx context.Context, formulaID string, tags []string) error {
	res, err := execute(r.breaker, func() (*mongo.UpdateResult, error) {
		return r.coll.UpdateOne(ctx, idFilter(formulaID), addTagsUpdate(tags, time.Now().UTC()))
	})
	if err != nil {
		return fmt.Errorf("failed to add tags to %s: %w", formulaID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, formulaID)
	}
	return nil
}

// RemoveTags removes the given tags from a formula.
func (r *Repository) RemoveTags(ctx context.Context, formulaID string, tags []string) error {
	res, err := execute(r.breaker, func() (*mongo.UpdateResult, error) {
		return r.coll.UpdateOne(ctx, idFilter(formulaID), removeTagsUpdate(tags, time.Now().UTC()))
	})
	if err != nil {
		return fmt.Errorf("failed to remove tags from %s: %w", formulaID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, formulaID)
	}
	return nil
}

// Delete removes one formula, or returns ErrNotFound.
func (r *Repository) Delete(ctx context.Context, formulaID string) error {
	res, err := execute(r.breaker, func() (*mongo.DeleteResult, error) {
		return r.coll.DeleteOne(ctx, idFilter(formulaID))
	})
	if err != nil {
		return fmt.Errorf("failed to delete formula %s: %w", formulaID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, formulaID)
	}
	return nil
}

// DeleteAll wipes the collection and returns the number of removed documents.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := execute(r.breaker, func() (*mongo.DeleteResult, error) {
		return r.coll.DeleteMany(ctx, bson.M{})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear formulas: %w", err)
	}
	return res.DeletedCount, nil
}

// Count counts formulas, optionally by category.
func (r *Repository) Count(ctx context.Context, category string) (int64, error) {
	n, err := execute(r.breaker, func() (int64, error) {
		return r.coll.CountDocuments(ctx, categoryFilter(category))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count formulas: %w", err)
	}
	return n, nil
}

// Categories returns the distinct category names.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

// Tags returns the distinct tags across the catalog.
func (r *Repository) Tags(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "tags")
}

func (r *Repository) distinct(ctx context.Context, field string) ([]string, error) {
	values, err := execute(r.breaker, func() ([]any, error) {
		return r.coll.Distinct(ctx, field, bson.M{})
	})
	if err != nil {
		return nil, fmt.Errorf("distinct %s failed: %w", field, err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}
