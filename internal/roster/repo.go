package roster

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "pegawai"

// MongoRepository persists roster entries in MongoDB.
type MongoRepository struct {
	col *mongo.Collection
}

// NewRepository creates a repo over the pegawai collection.
func NewRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection(collectionName)}
}

// EnsureNameIndex creates the unique index on name. The index is the safety
// net that makes duplicate rejection and seed guarding hold under concurrent
// writers.
func (r *MongoRepository) EnsureNameIndex(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Insert adds one employee, mapping a unique-index violation to ErrDuplicate.
func (r *MongoRepository) Insert(ctx context.Context, emp Employee) (Employee, error) {
	res, err := r.col.InsertOne(ctx, emp)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Employee{}, ErrDuplicate
		}
		return Employee{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		emp.ID = oid
	}
	return emp, nil
}

// InsertMany bulk-inserts employees, used by seeding.
func (r *MongoRepository) InsertMany(ctx context.Context, emps []Employee) error {
	docs := make([]interface{}, len(emps))
	for i, emp := range emps {
		docs[i] = emp
	}
	_, err := r.col.InsertMany(ctx, docs)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// List returns all employees sorted by name.
func (r *MongoRepository) List(ctx context.Context) ([]Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var emps []Employee
	if err := cursor.All(ctx, &emps); err != nil {
		return nil, err
	}
	return emps, nil
}

// Delete removes an employee by id and reports how many were deleted.
func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of roster entries.
func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
