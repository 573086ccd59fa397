package purchase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	purchaseerrors "github.com/haingladys/JSDC-Accounting/internal/purchase/errors"
	"github.com/haingladys/JSDC-Accounting/internal/summary"
)

//go:generate mockgen -source=purchase_service.go -destination=mock/purchase_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePurchaseRequest) (PurchaseResponse, error)
	Update(ctx context.Context, id string, req UpdatePurchaseRequest) (PurchaseResponse, error)
	GetReport(ctx context.Context, filter RangeFilterRequest) (PurchaseReportResponse, error)
	Delete(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error)
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreatePurchaseRequest) (PurchaseResponse, error) {
	p, err := s.buildRow(ctx, req.Date, req.CategoryID, req.TotalAmount, req.GSTAmount)
	if err != nil {
		return PurchaseResponse{}, err
	}

	p.Vendor = req.Vendor
	p.BillNo = req.BillNo
	p.PaymentMode = req.PaymentMode
	p.Status = req.Status
	if p.Status == "" {
		p.Status = StatusPaid
	}
	p.Description = req.Description

	if err := s.repo.Create(ctx, p); err != nil {
		return PurchaseResponse{}, mapWriteError(err)
	}

	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePurchaseRequest) (PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PurchaseResponse{}, purchaseerrors.ErrPurchaseNotFound
		}
		return PurchaseResponse{}, err
	}

	fresh, err := s.buildRow(ctx, req.Date, req.CategoryID, req.TotalAmount, req.GSTAmount)
	if err != nil {
		return PurchaseResponse{}, err
	}

	p.Date = fresh.Date
	p.CategoryID = fresh.CategoryID
	p.TotalAmount = fresh.TotalAmount
	p.GSTAmount = fresh.GSTAmount
	p.Vendor = req.Vendor
	p.BillNo = req.BillNo
	p.PaymentMode = req.PaymentMode
	p.Status = req.Status
	p.Description = req.Description
	p.Category = nil

	if err := s.repo.Update(ctx, p); err != nil {
		return PurchaseResponse{}, mapWriteError(err)
	}

	return mapToResponse(*p), nil
}

func (s *service) GetReport(ctx context.Context, filter RangeFilterRequest) (PurchaseReportResponse, error) {
	var start, end time.Time
	if filter.StartDate == "" && filter.EndDate == "" {
		start, end = summary.MonthBounds(s.now())
	} else {
		var err error
		start, err = parseDate(filter.StartDate)
		if err != nil {
			return PurchaseReportResponse{}, err
		}
		end, err = parseDate(filter.EndDate)
		if err != nil {
			return PurchaseReportResponse{}, err
		}
		if start.After(end) {
			return PurchaseReportResponse{}, purchaseerrors.ErrInvalidDateRange
		}
	}

	rows, err := s.repo.FindRange(ctx, start, end)
	if err != nil {
		return PurchaseReportResponse{}, err
	}

	totals, err := s.repo.RangeTotals(ctx, start, end)
	if err != nil {
		return PurchaseReportResponse{}, err
	}

	resp := PurchaseReportResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}
	for _, row := range rows {
		resp.Purchases = append(resp.Purchases, mapToResponse(row))
	}
	resp.Total, _ = totals.Total.Float64()
	resp.GSTTotal, _ = totals.GST.Float64()
	resp.Paid, _ = totals.Paid.Float64()
	resp.Due, _ = totals.Due.Float64()

	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return purchaseerrors.ErrPurchaseNotFound
		}
		return err
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error) {
	c := &Category{Name: req.Name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return CategoryResponse{}, mapWriteError(err)
	}
	return CategoryResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CategoryResponse, len(rows))
	for i, row := range rows {
		resp[i] = CategoryResponse{ID: row.ID.String(), Name: row.Name}
	}
	return resp, nil
}

func (s *service) buildRow(ctx context.Context, date, categoryID string, totalAmount, gstAmount float64) (*Purchase, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	catID, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, purchaseerrors.ErrCategoryNotFound
	}
	if _, err := s.repo.FindCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchaseerrors.ErrCategoryNotFound
		}
		return nil, err
	}

	total := decimal.NewFromFloat(totalAmount).Round(2)
	gst := decimal.NewFromFloat(gstAmount).Round(2)
	if total.IsNegative() || gst.IsNegative() {
		return nil, purchaseerrors.ErrInvalidAmount
	}

	return &Purchase{
		Date:        d,
		CategoryID:  catID,
		TotalAmount: total,
		GSTAmount:   gst,
	}, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, purchaseerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(p Purchase) PurchaseResponse {
	total, _ := p.TotalAmount.Float64()
	gst, _ := p.GSTAmount.Float64()

	resp := PurchaseResponse{
		ID:          p.ID.String(),
		Date:        p.Date.Format("2006-01-02"),
		Vendor:      p.Vendor,
		CategoryID:  p.CategoryID.String(),
		BillNo:      p.BillNo,
		TotalAmount: total,
		GSTAmount:   gst,
		PaymentMode: p.PaymentMode,
		Status:      p.Status,
		Description: p.Description,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
