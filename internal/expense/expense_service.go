package expense

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	expenseerrors "github.com/haingladys/JSDC-Accounting/internal/expense/errors"
	"github.com/haingladys/JSDC-Accounting/internal/shared/contextutil"
)

//go:generate mockgen -source=expense_service.go -destination=mock/expense_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	Update(ctx context.Context, id string, req UpdateExpenseRequest) (ExpenseResponse, error)
	GetByID(ctx context.Context, id string) (ExpenseResponse, error)
	GetAll(ctx context.Context, filter GetExpensesFilterRequest) (ExpenseListResponse, error)
	GetDeleted(ctx context.Context) ([]ExpenseResponse, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (ExpenseResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger *zap.Logger) Service {
	return &service{db: db, repo: repo, logger: logger}
}

func (s *service) Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return ExpenseResponse{}, err
	}
	amount := decimal.NewFromFloat(req.TotalAmount).Round(2)
	if amount.IsNegative() {
		return ExpenseResponse{}, expenseerrors.ErrInvalidAmount
	}

	e := &Expense{
		Date:          date,
		VoucherNo:     req.VoucherNo,
		Category:      req.Category,
		Description:   req.Description,
		TotalAmount:   amount,
		PaymentMethod: req.PaymentMethod,
		EmployeeName:  req.EmployeeName,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		payrollID, linkErr := s.resolvePayrollLink(ctx, qtx, req.PayrollID)
		if linkErr != nil {
			return linkErr
		}
		e.PayrollID = payrollID

		return qtx.Create(ctx, e)
	})
	if err != nil {
		return ExpenseResponse{}, err
	}

	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateExpenseRequest) (ExpenseResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return ExpenseResponse{}, err
	}
	amount := decimal.NewFromFloat(req.TotalAmount).Round(2)
	if amount.IsNegative() {
		return ExpenseResponse{}, expenseerrors.ErrInvalidAmount
	}

	var updated Expense

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		e, findErr := qtx.FindAnyByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return expenseerrors.ErrExpenseNotFound
			}
			return findErr
		}

		payrollID, linkErr := s.resolvePayrollLink(ctx, qtx, req.PayrollID)
		if linkErr != nil {
			return linkErr
		}

		e.Date = date
		e.VoucherNo = req.VoucherNo
		e.Category = req.Category
		e.Description = req.Description
		e.TotalAmount = amount
		e.PaymentMethod = req.PaymentMethod
		e.PayrollID = payrollID
		e.EmployeeName = req.EmployeeName

		// Editing a deleted record brings it back. The cascade tag is
		// cleared because the row no longer mirrors its payroll's state.
		if e.IsDeleted() {
			e.Fields.Restore()
			e.CascadePayrollID = nil
		}

		if saveErr := qtx.Update(ctx, e); saveErr != nil {
			return saveErr
		}

		updated = *e
		return nil
	})
	if err != nil {
		return ExpenseResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ExpenseResponse, error) {
	e, err := s.repo.FindAnyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenseResponse{}, expenseerrors.ErrExpenseNotFound
		}
		return ExpenseResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, filter GetExpensesFilterRequest) (ExpenseListResponse, error) {
	f, err := buildFilter(filter)
	if err != nil {
		return ExpenseListResponse{}, err
	}

	rows, err := s.repo.FindFiltered(ctx, f)
	if err != nil {
		return ExpenseListResponse{}, err
	}

	totals, err := s.repo.ActiveTotals(ctx, f)
	if err != nil {
		return ExpenseListResponse{}, err
	}

	total, _ := totals.Total.Float64()
	salary, _ := totals.Salary.Float64()
	other, _ := totals.Other.Float64()

	return ExpenseListResponse{
		Expenses:    mapToListResponse(rows),
		Total:       total,
		SalaryTotal: salary,
		OtherTotal:  other,
	}, nil
}

func (s *service) GetDeleted(ctx context.Context) ([]ExpenseResponse, error) {
	rows, err := s.repo.FindDeleted(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) SoftDelete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		e, err := qtx.FindAnyByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return expenseerrors.ErrExpenseNotFound
			}
			return err
		}
		if e.IsDeleted() {
			return expenseerrors.ErrExpenseAlreadyDeleted
		}

		e.Fields.SoftDelete(time.Now().UTC())
		return qtx.Update(ctx, e)
	})
}

func (s *service) Restore(ctx context.Context, id string) (ExpenseResponse, error) {
	var restored Expense

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		e, err := qtx.FindAnyByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return expenseerrors.ErrExpenseNotFound
			}
			return err
		}
		if !e.IsDeleted() {
			return expenseerrors.ErrExpenseNotDeleted
		}

		e.Fields.Restore()
		e.CascadePayrollID = nil
		if err := qtx.Update(ctx, e); err != nil {
			return err
		}

		restored = *e
		return nil
	})
	if err != nil {
		return ExpenseResponse{}, err
	}

	return mapToResponse(restored), nil
}

// resolvePayrollLink validates an optional payroll reference. A reference to
// a payroll that no longer exists, or that is soft-deleted, is dropped
// silently so manual expense entry never fails on stale links.
func (s *service) resolvePayrollLink(ctx context.Context, repo Repository, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	payrollID, err := uuid.Parse(*raw)
	if err != nil {
		return nil, nil
	}

	active, err := repo.PayrollIsActive(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	if !active {
		contextutil.GetLogger(ctx, s.logger).Warn("dropping stale payroll link on expense",
			zap.String("payroll_id", payrollID.String()))
		return nil, nil
	}

	return &payrollID, nil
}

func buildFilter(req GetExpensesFilterRequest) (Filter, error) {
	f := Filter{Category: req.Category}

	if req.StartDate != "" && req.EndDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return Filter{}, err
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return Filter{}, err
		}
		if start.After(end) {
			return Filter{}, expenseerrors.ErrInvalidDateRange
		}
		f.StartDate = &start
		f.EndDate = &end
	}

	return f, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, expenseerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(e Expense) ExpenseResponse {
	amount, _ := e.TotalAmount.Float64()

	resp := ExpenseResponse{
		ID:            e.ID.String(),
		Date:          e.Date.Format("2006-01-02"),
		VoucherNo:     e.VoucherNo,
		Category:      e.Category,
		Description:   e.Description,
		TotalAmount:   amount,
		PaymentMethod: e.PaymentMethod,
		EmployeeName:  e.EmployeeName,
		Deleted:       e.IsDeleted(),
	}

	if e.PayrollID != nil {
		v := e.PayrollID.String()
		resp.PayrollID = &v
	}
	if e.DeletedAt != nil {
		v := e.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &v
	}

	return resp
}

func mapToListResponse(rows []Expense) []ExpenseResponse {
	resp := make([]ExpenseResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp
}
