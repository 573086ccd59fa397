package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/haingladys/JSDC-Accounting/internal/events"
	"github.com/haingladys/JSDC-Accounting/internal/expense"
	"github.com/haingladys/JSDC-Accounting/internal/messaging/kafka"
	payrollerrors "github.com/haingladys/JSDC-Accounting/internal/payroll/errors"
	"github.com/haingladys/JSDC-Accounting/internal/shared/contextutil"
	"github.com/haingladys/JSDC-Accounting/internal/summary"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Save(ctx context.Context, req SavePayrollRequest) (SavePayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	GetPeriod(ctx context.Context, filter GetPeriodFilterRequest) (PeriodResponse, error)
	ListDeleted(ctx context.Context) ([]PayrollResponse, error)
	SoftDelete(ctx context.Context, id string) (CascadeResponse, error)
	Restore(ctx context.Context, id string) (CascadeResponse, error)
	RecreateExpenses(ctx context.Context, id string) (PayrollResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	expenses  expense.Repository
	summaries summary.Service
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	expenses expense.Repository,
	summaries summary.Service,
	outbox kafka.OutboxRepository,
	logger *zap.Logger,
) Service {
	return &service{
		db:        db,
		repo:      repo,
		expenses:  expenses,
		summaries: summaries,
		outbox:    outbox,
		logger:    logger,
		now:       time.Now,
	}
}

// Save is the single write path for payroll: worked days are recomputed from
// attendance, incentives validated, salary split derived and the generated
// expense rows replaced, all inside one transaction.
func (s *service) Save(ctx context.Context, req SavePayrollRequest) (SavePayrollResponse, error) {
	salaryDate, err := parseDate(req.SalaryDate)
	if err != nil {
		return SavePayrollResponse{}, err
	}

	month, year := int(salaryDate.Month()), salaryDate.Year()
	if req.Month != nil {
		month = *req.Month
	}
	if req.Year != nil {
		year = *req.Year
	}
	if month < 1 || month > 12 || year <= 0 {
		return SavePayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}

	basicPay := decimal.NewFromFloat(req.BasicPay).Round(2)
	incentive := decimal.NewFromFloat(req.IncentiveAmount).Round(2)
	if basicPay.IsNegative() || incentive.IsNegative() {
		return SavePayrollResponse{}, payrollerrors.ErrNegativePay
	}

	var (
		row     *Payroll
		created bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var findErr error
		row, created, findErr = s.findOrReviveRow(ctx, tx, qtx, req.EmployeeName, month, year)
		if findErr != nil {
			return findErr
		}

		workedDays := s.workedDaysOrZero(ctx, qtx, req.EmployeeName, month, year)

		if err := validateIncentives(incentive, workedDays); err != nil {
			return err
		}

		cashPct, bankPct, err := normalizeSplit(req.PaymentSplitType, decimal.NewFromFloat(req.CashPercentage), decimal.NewFromFloat(req.BankTransferPercentage))
		if err != nil {
			return err
		}

		netSalary := calculateNetSalary(basicPay, incentive)
		cashAmount, bankAmount := splitAmounts(netSalary, cashPct, bankPct)

		row.EmployeeName = req.EmployeeName
		row.BasicPay = basicPay
		row.IncentiveAmount = incentive
		row.NetSalary = netSalary
		row.WorkedDays = workedDays
		row.PaymentSplitType = req.PaymentSplitType
		row.CashPercentage = cashPct
		row.BankTransferPercentage = bankPct
		row.CashAmount = cashAmount
		row.BankTransferAmount = bankAmount
		row.SalaryDate = salaryDate
		row.Month = month
		row.Year = year
		row.IsPaid = req.IsPaid

		if created {
			if err := qtx.Create(ctx, row); err != nil {
				return mapWriteError(err)
			}
		} else {
			if err := qtx.Update(ctx, row); err != nil {
				return mapWriteError(err)
			}
		}

		// New payrolls with a payout get their ledger rows immediately;
		// rows that already generated expenses have them replaced so the
		// ledger always mirrors the latest split.
		if (created && netSalary.IsPositive()) || row.ExpensesCreated {
			if err := s.createExpenses(ctx, tx, qtx, row); err != nil {
				return err
			}
		}

		return s.emitEvent(ctx, tx, events.PayrollSaved, row)
	})
	if err != nil {
		return SavePayrollResponse{}, err
	}

	return SavePayrollResponse{
		PayrollResponse: mapToResponse(*row),
		Created:         created,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	row, err := s.repo.FindAnyByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapWriteError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) GetPeriod(ctx context.Context, filter GetPeriodFilterRequest) (PeriodResponse, error) {
	month, year := filter.Month, filter.Year
	if month == 0 && year == 0 {
		now := s.now()
		month, year = int(now.Month()), now.Year()
	}
	if month < 1 || month > 12 || year <= 0 {
		return PeriodResponse{}, payrollerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.ListActiveByPeriod(ctx, month, year)
	if err != nil {
		return PeriodResponse{}, err
	}

	resp := PeriodResponse{Month: month, Year: year}

	var basic, incentive, cash, bank, net decimal.Decimal
	for _, row := range rows {
		// Worked days are shown fresh from the ledger, not as persisted
		// at last save.
		row.WorkedDays = s.workedDaysOrZero(ctx, s.repo, row.EmployeeName, month, year)
		resp.Payrolls = append(resp.Payrolls, mapToResponse(row))

		basic = basic.Add(row.BasicPay)
		incentive = incentive.Add(row.IncentiveAmount)
		cash = cash.Add(row.CashAmount)
		bank = bank.Add(row.BankTransferAmount)
		net = net.Add(row.NetSalary)
	}

	resp.Totals.BasicPay, _ = basic.Float64()
	resp.Totals.IncentiveAmount, _ = incentive.Float64()
	resp.Totals.CashAmount, _ = cash.Float64()
	resp.Totals.BankTransferAmount, _ = bank.Float64()
	resp.Totals.NetSalary, _ = net.Float64()

	return resp, nil
}

func (s *service) ListDeleted(ctx context.Context) ([]PayrollResponse, error) {
	rows, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]PayrollResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func (s *service) SoftDelete(ctx context.Context, id string) (CascadeResponse, error) {
	var resp CascadeResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		row, err := qtx.FindAnyByID(ctx, id)
		if err != nil {
			return mapWriteError(err)
		}
		if row.IsDeleted() {
			return payrollerrors.ErrPayrollAlreadyDeleted
		}

		dates, err := qtx.ListAttendanceDates(ctx, row.ID)
		if err != nil {
			return err
		}

		deletedAt := s.now().UTC()
		counts, err := qtx.CascadeSoftDeleteChildren(ctx, row.ID, deletedAt)
		if err != nil {
			return err
		}

		row.IdentityFields.SoftDelete(deletedAt)
		if err := qtx.Update(ctx, row); err != nil {
			return mapWriteError(err)
		}

		if err := s.recalculateDates(ctx, tx, row.EmployeeName, dates, &row.ID); err != nil {
			return err
		}

		resp = CascadeResponse{
			ID:                 row.ID.String(),
			AttendanceAffected: counts.Attendance,
			ExpensesAffected:   counts.Expenses,
		}
		return s.emitEvent(ctx, tx, events.PayrollDeleted, row)
	})
	if err != nil {
		return CascadeResponse{}, err
	}

	return resp, nil
}

func (s *service) Restore(ctx context.Context, id string) (CascadeResponse, error) {
	var resp CascadeResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		row, err := qtx.FindAnyByID(ctx, id)
		if err != nil {
			return mapWriteError(err)
		}
		if !row.IsDeleted() {
			return payrollerrors.ErrPayrollNotDeleted
		}

		row.IdentityFields.Restore()
		if err := qtx.Update(ctx, row); err != nil {
			return mapWriteError(err)
		}

		counts, err := qtx.CascadeRestoreChildren(ctx, row.ID)
		if err != nil {
			return err
		}

		// If the restore brought no expense rows back, the disbursement
		// ledger is regenerated from payroll state.
		active, err := s.expenses.WithTx(tx).FindActiveByPayroll(ctx, row.ID)
		if err != nil {
			return err
		}
		if len(active) == 0 && row.NetSalary.IsPositive() {
			if err := s.createExpenses(ctx, tx, qtx, row); err != nil {
				return err
			}
		}

		dates, err := qtx.ListAttendanceDates(ctx, row.ID)
		if err != nil {
			return err
		}
		if err := s.recalculateDates(ctx, tx, row.EmployeeName, dates, &row.ID); err != nil {
			return err
		}

		resp = CascadeResponse{
			ID:                 row.ID.String(),
			AttendanceAffected: counts.Attendance,
			ExpensesAffected:   counts.Expenses,
		}
		return s.emitEvent(ctx, tx, events.PayrollRestored, row)
	})
	if err != nil {
		return CascadeResponse{}, err
	}

	return resp, nil
}

func (s *service) RecreateExpenses(ctx context.Context, id string) (PayrollResponse, error) {
	var row *Payroll

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		row, err = qtx.FindAnyByID(ctx, id)
		if err != nil {
			return mapWriteError(err)
		}
		if row.IsDeleted() {
			return payrollerrors.ErrPayrollDeleted
		}

		return s.createExpenses(ctx, tx, qtx, row)
	})
	if err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*row), nil
}

// findOrReviveRow resolves which payroll row a save targets. A soft-deleted
// row holding the (employee, month, year) key is fully restored, cascade
// included, before the update lands on it.
func (s *service) findOrReviveRow(
	ctx context.Context,
	tx *gorm.DB,
	qtx Repository,
	employee string,
	month, year int,
) (*Payroll, bool, error) {
	row, err := qtx.FindActiveByEmployeePeriod(ctx, employee, month, year)
	if err == nil {
		return row, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	row, err = qtx.FindDeletedByEmployeePeriod(ctx, employee, month, year)
	if err == nil {
		row.IdentityFields.Restore()
		if err := qtx.Update(ctx, row); err != nil {
			return nil, false, mapWriteError(err)
		}
		if _, err := qtx.CascadeRestoreChildren(ctx, row.ID); err != nil {
			return nil, false, err
		}

		dates, err := qtx.ListAttendanceDates(ctx, row.ID)
		if err != nil {
			return nil, false, err
		}
		if err := s.recalculateDates(ctx, tx, employee, dates, &row.ID); err != nil {
			return nil, false, err
		}
		return row, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	return &Payroll{}, true, nil
}

// workedDaysOrZero is the documented recovery point: a failure reading the
// attendance ledger logs and yields zero instead of blocking the save.
func (s *service) workedDaysOrZero(ctx context.Context, repo Repository, employee string, month, year int) decimal.Decimal {
	workedDays, err := repo.SumWorkedDays(ctx, employee, month, year)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("worked days unavailable, using zero",
			zap.String("employee_name", employee),
			zap.Int("month", month),
			zap.Int("year", year),
			zap.Error(err))
		return decimal.Zero
	}
	return workedDays
}

// createExpenses replaces the payroll's generated ledger rows wholesale:
// every expense referencing the payroll is hard-deleted, then a cash row
// and/or a bank row is written for the portions that are positive.
func (s *service) createExpenses(ctx context.Context, tx *gorm.DB, qtx Repository, p *Payroll) error {
	exTx := s.expenses.WithTx(tx)

	if err := exTx.DeleteByPayroll(ctx, p.ID); err != nil {
		return err
	}

	if p.CashAmount.IsPositive() {
		row := &expense.Expense{
			Date:          p.SalaryDate,
			Category:      expense.CategorySalary,
			TotalAmount:   p.CashAmount,
			PaymentMethod: expense.PaymentMethodCash,
			PayrollID:     &p.ID,
			EmployeeName:  &p.EmployeeName,
		}
		if err := exTx.Create(ctx, row); err != nil {
			return err
		}
	}

	if p.BankTransferAmount.IsPositive() {
		row := &expense.Expense{
			Date:          p.SalaryDate,
			Category:      expense.CategorySalary,
			TotalAmount:   p.BankTransferAmount,
			PaymentMethod: expense.PaymentMethodBankTransfer,
			PayrollID:     &p.ID,
			EmployeeName:  &p.EmployeeName,
		}
		if err := exTx.Create(ctx, row); err != nil {
			return err
		}
	}

	p.ExpensesCreated = true
	return qtx.Update(ctx, p)
}

func (s *service) recalculateDates(
	ctx context.Context,
	tx *gorm.DB,
	employee string,
	dates []time.Time,
	payrollID *uuid.UUID,
) error {
	seen := map[string]bool{}
	for _, d := range dates {
		weekStart, _ := summary.WeekBounds(d)
		monthStart, _ := summary.MonthBounds(d)
		key := weekStart.Format("2006-01-02") + "|" + monthStart.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true

		if err := s.summaries.RecalculateWindows(ctx, tx, employee, d, payrollID); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) emitEvent(ctx context.Context, tx *gorm.DB, eventType string, p *Payroll) error {
	netSalary, _ := p.NetSalary.Float64()

	payload, err := json.Marshal(events.PayrollLifecycleEvent{
		EventType:    eventType,
		PayrollID:    p.ID.String(),
		EmployeeName: p.EmployeeName,
		Month:        p.Month,
		Year:         p.Year,
		NetSalary:    netSalary,
		OccurredAt:   s.now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   p.ID.String(),
		EventType:     eventType,
		Topic:         events.PayrollLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(p Payroll) PayrollResponse {
	basicPay, _ := p.BasicPay.Float64()
	incentive, _ := p.IncentiveAmount.Float64()
	netSalary, _ := p.NetSalary.Float64()
	workedDays, _ := p.WorkedDays.Float64()
	cashPct, _ := p.CashPercentage.Float64()
	bankPct, _ := p.BankTransferPercentage.Float64()
	cashAmount, _ := p.CashAmount.Float64()
	bankAmount, _ := p.BankTransferAmount.Float64()

	resp := PayrollResponse{
		ID:                     p.ID.String(),
		EmployeeName:           p.EmployeeName,
		BasicPay:               basicPay,
		IncentiveAmount:        incentive,
		NetSalary:              netSalary,
		WorkedDays:             workedDays,
		PaymentSplitType:       p.PaymentSplitType,
		CashPercentage:         cashPct,
		BankTransferPercentage: bankPct,
		CashAmount:             cashAmount,
		BankTransferAmount:     bankAmount,
		SalaryDate:             p.SalaryDate.Format("2006-01-02"),
		Month:                  p.Month,
		Year:                   p.Year,
		IsPaid:                 p.IsPaid,
		ExpensesCreated:        p.ExpensesCreated,
		Deleted:                p.IsDeleted(),
	}
	if p.DeletedAt != nil {
		v := p.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &v
	}
	return resp
}
