package record

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqlRepository struct {
	db *gorm.DB
}

// NewSQLRepository stores records in the employee_records table. Ids are
// generated as ObjectID hex so they look the same on every driver.
func NewSQLRepository(db *gorm.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) Create(ctx context.Context, rec *Record) error {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if rec.ID == "" {
		rec.ID = primitive.NewObjectID().Hex()
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now

	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *sqlRepository) filtered(ctx context.Context, q ListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&Record{})
	if q.SalaryMin != nil {
		tx = tx.Where("gross_salary >= ?", *q.SalaryMin)
	}
	if q.SalaryMax != nil {
		tx = tx.Where("gross_salary <= ?", *q.SalaryMax)
	}
	if q.HireDateFrom != nil {
		tx = tx.Where("hire_date >= ?", *q.HireDateFrom)
	}
	if q.HireDateTo != nil {
		tx = tx.Where("hire_date <= ?", *q.HireDateTo)
	}
	return tx
}

func (r *sqlRepository) FindAll(ctx context.Context, q ListQuery) ([]Record, int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []Record
	err := r.filtered(ctx, q).
		Order(clause.OrderByColumn{Column: clause.Column{Name: q.SortBy.Column()}, Desc: q.SortOrder == SortDesc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(q.Skip()).
		Limit(q.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range records {
		normalize(&records[i])
	}
	return records, total, nil
}

func (r *sqlRepository) FindByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	normalize(&rec)
	return &rec, nil
}

func (r *sqlRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Record{})
	return res.RowsAffected, res.Error
}

// normalize brings values read back from any driver to UTC dates and two
// decimal places.
func normalize(rec *Record) {
	rec.HireDate = rec.HireDate.UTC()
	rec.GrossSalary = rec.GrossSalary.Round(2)
	rec.UpliftedSalary = rec.UpliftedSalary.Round(2)
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
}
