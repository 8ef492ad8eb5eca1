package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"countries/internal/country/models"
	"countries/pkg/platform/sentinel"
)

// fieldNameCI holds the normalized name. It carries the unique index.
const fieldNameCI = "name_ci"

// MongoStore keeps one document per country. Documents are the flattened
// record plus name_ci.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongo wraps a collection. Nested documents decode as maps so extra
// attributes round-trip to JSON unchanged.
func NewMongo(db *mongo.Database, collection string) *MongoStore {
	opts := options.Collection().SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	return &MongoStore{coll: db.Collection(collection, opts)}
}

// EnsureIndexes backfills name_ci on documents written without it, then
// creates the unique normalized-name index. The index is partial so
// documents that still lack a usable name cannot collide on a null key.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if _, err := s.backfillNameCI(ctx); err != nil {
		return err
	}
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: fieldNameCI, Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_name_ci").
			SetPartialFilterExpression(bson.M{fieldNameCI: bson.M{"$exists": true}}),
	})
	if err != nil {
		return fmt.Errorf("create name_ci index: %w", translateMongo(err))
	}
	return nil
}

// backfillNameCI sets name_ci on every document that has a string name but
// no normalized key, e.g. collections seeded by other tools.
func (s *MongoStore) backfillNameCI(ctx context.Context) (int, error) {
	filter := bson.M{fieldNameCI: bson.M{"$exists": false}}
	cur, err := s.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{models.FieldName: 1}))
	if err != nil {
		return 0, fmt.Errorf("find documents without name_ci: %w", translateMongo(err))
	}
	defer cur.Close(ctx)

	var updated int
	for cur.Next(ctx) {
		var doc struct {
			ID   any `bson:"_id"`
			Name any `bson:"name"`
		}
		if err := cur.Decode(&doc); err != nil {
			return updated, fmt.Errorf("decode document: %w", err)
		}
		name, ok := doc.Name.(string)
		if !ok || models.NormalizeName(name) == "" {
			continue
		}
		_, err := s.coll.UpdateByID(ctx, doc.ID, bson.M{"$set": bson.M{fieldNameCI: models.NormalizeName(name)}})
		if err != nil {
			return updated, fmt.Errorf("backfill name_ci: %w", translateMongo(err))
		}
		updated++
	}
	if err := cur.Err(); err != nil {
		return updated, fmt.Errorf("iterate documents without name_ci: %w", translateMongo(err))
	}
	return updated, nil
}

// FindAll skips documents without a normalized name; they have no identity.
func (s *MongoStore) FindAll(ctx context.Context) ([]*models.Country, error) {
	return s.find(ctx, bson.M{fieldNameCI: bson.M{"$exists": true}}, options.Find().SetSort(bson.D{{Key: fieldNameCI, Value: 1}}))
}

func (s *MongoStore) SearchByPrefix(ctx context.Context, query string, limit int) ([]*models.Country, error) {
	prefix := models.NormalizeName(query)
	if prefix == "" {
		return []*models.Country{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	filter := bson.M{fieldNameCI: bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	opts := options.Find().SetSort(bson.D{{Key: fieldNameCI, Value: 1}}).SetLimit(int64(limit))
	return s.find(ctx, filter, opts)
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Country, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find countries: %w", translateMongo(err))
	}
	defer cur.Close(ctx)

	out := []*models.Country{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode country: %w", err)
		}
		c, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", translateMongo(err))
	}
	return out, nil
}

func (s *MongoStore) FindByName(ctx context.Context, name string) (*models.Country, error) {
	var doc bson.M
	err := s.coll.FindOne(ctx, bson.M{fieldNameCI: models.NormalizeName(name)}).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("find country by name: %w", translateMongo(err))
	}
	return fromDocument(doc)
}

func (s *MongoStore) UpdateFields(ctx context.Context, name string, update models.CountryUpdate) (*models.Country, error) {
	current, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	for k, v := range update.Fields() {
		set[k] = v
	}
	if update.Renames(current) {
		target := models.NormalizeName(*update.Name)
		n, err := s.coll.CountDocuments(ctx, bson.M{fieldNameCI: target})
		if err != nil {
			return nil, fmt.Errorf("check name availability: %w", translateMongo(err))
		}
		if n > 0 {
			return nil, sentinel.ErrConflict
		}
		set[fieldNameCI] = target
	}
	if len(set) == 0 {
		return current, nil
	}

	var doc bson.M
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{fieldNameCI: current.Key()},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("update country: %w", translateMongo(err))
	}
	return fromDocument(doc)
}

func (s *MongoStore) Insert(ctx context.Context, country *models.Country) error {
	if _, err := s.coll.InsertOne(ctx, toDocument(country)); err != nil {
		return fmt.Errorf("insert country: %w", translateMongo(err))
	}
	return nil
}

// Ping checks the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return translateMongo(err)
	}
	return nil
}

func toDocument(c *models.Country) bson.M {
	doc := bson.M{}
	for k, v := range c.ToMap() {
		doc[k] = v
	}
	doc[fieldNameCI] = c.Key()
	return doc
}

func fromDocument(doc bson.M) (*models.Country, error) {
	m := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "_id" || k == fieldNameCI {
			continue
		}
		m[k] = v
	}
	c, err := models.FromMap(m)
	if err != nil {
		return nil, fmt.Errorf("malformed country document: %w", err)
	}
	return c, nil
}

// translateMongo maps driver failures onto store sentinels.
func translateMongo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return sentinel.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return sentinel.ErrConflict
	// Server selection timeouts count as timeouts.
	case mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	default:
		return err
	}
}
