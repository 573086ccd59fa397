package income

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	incomeerrors "github.com/haingladys/JSDC-Accounting/internal/income/errors"
)

//go:generate mockgen -source=income_service.go -destination=mock/income_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateIncomeRequest) (IncomeResponse, error)
	Update(ctx context.Context, id string, req UpdateIncomeRequest) (IncomeResponse, error)
	GetMonth(ctx context.Context, filter MonthFilterRequest) (IncomeReportResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateIncomeRequest) (IncomeResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return IncomeResponse{}, err
	}
	amount := decimal.NewFromFloat(req.Amount).Round(2)
	if amount.IsNegative() {
		return IncomeResponse{}, incomeerrors.ErrInvalidAmount
	}

	status := req.Status
	if status == "" {
		status = StatusReceived
	}

	in := &Income{
		Date:        date,
		Description: req.Description,
		Amount:      amount,
		PaymentMode: req.PaymentMode,
		Status:      status,
	}
	if err := s.repo.Create(ctx, in); err != nil {
		return IncomeResponse{}, err
	}

	return mapToResponse(*in), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateIncomeRequest) (IncomeResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return IncomeResponse{}, err
	}
	amount := decimal.NewFromFloat(req.Amount).Round(2)
	if amount.IsNegative() {
		return IncomeResponse{}, incomeerrors.ErrInvalidAmount
	}

	in, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return IncomeResponse{}, incomeerrors.ErrIncomeNotFound
		}
		return IncomeResponse{}, err
	}

	in.Date = date
	in.Description = req.Description
	in.Amount = amount
	in.PaymentMode = req.PaymentMode
	in.Status = req.Status

	if err := s.repo.Update(ctx, in); err != nil {
		return IncomeResponse{}, err
	}

	return mapToResponse(*in), nil
}

func (s *service) GetMonth(ctx context.Context, filter MonthFilterRequest) (IncomeReportResponse, error) {
	month, year := filter.Month, filter.Year
	if month == 0 && year == 0 {
		now := s.now()
		month, year = int(now.Month()), now.Year()
	}
	if month < 1 || month > 12 || year <= 0 {
		return IncomeReportResponse{}, incomeerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.FindByMonth(ctx, month, year)
	if err != nil {
		return IncomeReportResponse{}, err
	}

	totals, err := s.repo.MonthlyTotals(ctx, month, year)
	if err != nil {
		return IncomeReportResponse{}, err
	}

	resp := IncomeReportResponse{Month: month, Year: year}
	for _, row := range rows {
		resp.Incomes = append(resp.Incomes, mapToResponse(row))
	}
	resp.Total, _ = totals.Total.Float64()
	resp.Received, _ = totals.Received.Float64()
	resp.Pending, _ = totals.Pending.Float64()

	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return incomeerrors.ErrIncomeNotFound
		}
		return err
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, incomeerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(in Income) IncomeResponse {
	amount, _ := in.Amount.Float64()

	return IncomeResponse{
		ID:          in.ID.String(),
		Date:        in.Date.Format("2006-01-02"),
		Description: in.Description,
		Amount:      amount,
		PaymentMode: in.PaymentMode,
		Status:      in.Status,
	}
}
