package purchase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PeriodTotals aggregates purchases in a date range, GST included.
type PeriodTotals struct {
	Total decimal.Decimal
	GST   decimal.Decimal
	Paid  decimal.Decimal
	Due   decimal.Decimal
}

//go:generate mockgen -source=purchase_repo.go -destination=mock/purchase_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *Purchase) error
	Update(ctx context.Context, p *Purchase) error
	FindByID(ctx context.Context, id string) (*Purchase, error)
	FindRange(ctx context.Context, start, end time.Time) ([]Purchase, error)
	RangeTotals(ctx context.Context, start, end time.Time) (PeriodTotals, error)
	Delete(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, c *Category) error
	FindCategoryByID(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, p *Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *Purchase) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Purchase, error) {
	var p Purchase
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindRange(ctx context.Context, start, end time.Time) ([]Purchase, error) {
	var rows []Purchase
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("date BETWEEN ? AND ?",
			start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) RangeTotals(ctx context.Context, start, end time.Time) (PeriodTotals, error) {
	var t PeriodTotals
	err := r.db.WithContext(ctx).
		Raw(`SELECT
			COALESCE(SUM(total_amount), 0) AS total,
			COALESCE(SUM(gst_amount), 0) AS gst,
			COALESCE(SUM(CASE WHEN status = ? THEN total_amount ELSE 0 END), 0) AS paid,
			COALESCE(SUM(CASE WHEN status IN (?, ?) THEN total_amount ELSE 0 END), 0) AS due
		FROM purchases
		WHERE date BETWEEN ? AND ?`,
			StatusPaid, StatusPending, StatusDue,
			start.Format("2006-01-02"), end.Format("2006-01-02"),
		).
		Scan(&t).Error
	return t, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Purchase{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateCategory(ctx context.Context, c *Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindCategoryByID(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	var rows []Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}
