package record

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "employee_records"

//go:generate mockgen -source=record_repo.go -destination=mock/record_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	FindAll(ctx context.Context, q ListQuery) ([]Record, int64, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type recordDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	HireDate       time.Time          `bson:"hireDate"`
	GrossSalary    float64            `bson:"grossSalary"`
	Years          int                `bson:"years"`
	Months         int                `bson:"months"`
	Days           int                `bson:"days"`
	UpliftedSalary float64            `bson:"upliftedSalary"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func toDocument(rec Record) recordDocument {
	doc := recordDocument{
		HireDate:       rec.HireDate,
		GrossSalary:    rec.GrossSalary.InexactFloat64(),
		Years:          rec.Years,
		Months:         rec.Months,
		Days:           rec.Days,
		UpliftedSalary: rec.UpliftedSalary.InexactFloat64(),
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(rec.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func (d recordDocument) toRecord() Record {
	return Record{
		ID:             d.ID.Hex(),
		HireDate:       d.HireDate.UTC(),
		GrossSalary:    decimal.NewFromFloat(d.GrossSalary).Round(2),
		Years:          d.Years,
		Months:         d.Months,
		Days:           d.Days,
		UpliftedSalary: decimal.NewFromFloat(d.UpliftedSalary).Round(2),
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the indexes backing the list filters and the default sort.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "hireDate", Value: 1}}},
		{Keys: bson.D{{Key: "grossSalary", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *mongoRepository) Create(ctx context.Context, rec *Record) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	oid := primitive.NewObjectID()

	rec.ID = oid.Hex()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, toDocument(*rec))
	return err
}

func mongoFilter(q ListQuery) bson.M {
	filter := bson.M{}

	salary := bson.M{}
	if q.SalaryMin != nil {
		salary["$gte"] = q.SalaryMin.InexactFloat64()
	}
	if q.SalaryMax != nil {
		salary["$lte"] = q.SalaryMax.InexactFloat64()
	}
	if len(salary) > 0 {
		filter["grossSalary"] = salary
	}

	hired := bson.M{}
	if q.HireDateFrom != nil {
		hired["$gte"] = *q.HireDateFrom
	}
	if q.HireDateTo != nil {
		hired["$lte"] = *q.HireDateTo
	}
	if len(hired) > 0 {
		filter["hireDate"] = hired
	}

	return filter
}

func (r *mongoRepository) FindAll(ctx context.Context, q ListQuery) ([]Record, int64, error) {
	filter := mongoFilter(q)

	dir := -1
	if q.SortOrder == SortAsc {
		dir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: q.SortBy.BSONField(), Value: dir}, {Key: "_id", Value: 1}}).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []recordDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	records := make([]Record, len(docs))
	for i, d := range docs {
		records[i] = d.toRecord()
	}
	return records, total, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var doc recordDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, err
	}

	rec := doc.toRecord()
	return &rec, nil
}

func (r *mongoRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
