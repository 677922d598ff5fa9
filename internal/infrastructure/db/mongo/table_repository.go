package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mesapos/restaurant-pos/internal/core/domain"
)

const collectionTables = "tables"

type TableRepository struct {
	col *mongo.Collection
}

func NewTableRepository(db *mongo.Database) *TableRepository {
	return &TableRepository{col: db.Collection(collectionTables)}
}

func (r *TableRepository) Create(ctx context.Context, t *domain.Table) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTableExists
		}
		return err
	}
	return nil
}

func (r *TableRepository) FindByID(ctx context.Context, id string) (*domain.Table, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TableRepository) FindByNumber(ctx context.Context, number int) (*domain.Table, error) {
	return r.findOne(ctx, bson.M{"number": number})
}

func (r *TableRepository) findOne(ctx context.Context, filter bson.M) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Table
	if err := r.col.FindOne(ctx, filter).Decode(&t); err != nil {
		return nil, notFound(err, domain.ErrTableNotFound)
	}
	return &t, nil
}

func (r *TableRepository) List(ctx context.Context) ([]*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	tables := []*domain.Table{}
	if err := cur.All(ctx, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *TableRepository) SetQRCode(ctx context.Context, id, url string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"qr_code": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.col, id, domain.ErrTableNotFound)
}

// EnsureIndexes makes table numbers unique.
func (r *TableRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
