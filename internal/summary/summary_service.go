package summary

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	summaryerrors "github.com/haingladys/JSDC-Accounting/internal/summary/errors"
)

//go:generate mockgen -source=summary_service.go -destination=mock/summary_service_mock.go -package=mock
type Service interface {
	GenerateForPeriod(ctx context.Context, req GenerateSummaryRequest) (SummaryResponse, bool, error)
	// RecalculateWindows recomputes the ISO week and calendar month summaries
	// containing date. Attendance and payroll write paths call it inside
	// their own transaction; tx may be nil for standalone recomputation.
	RecalculateWindows(ctx context.Context, tx *gorm.DB, employee string, date time.Time, payrollID *uuid.UUID) error
	GetForPeriod(ctx context.Context, filter GetSummaryFilterRequest) (SummaryResponse, error)
	TeamSummary(ctx context.Context, filter TeamSummaryFilterRequest) ([]SummaryResponse, error)
	RegenerateAll(ctx context.Context) (RegenerateAllResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time

	rebuild singleflight.Group
}

func NewService(db *gorm.DB, repo Repository, logger *zap.Logger) Service {
	return &service{
		db:     db,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *service) GenerateForPeriod(ctx context.Context, req GenerateSummaryRequest) (SummaryResponse, bool, error) {
	if !ValidPeriodType(req.PeriodType) {
		return SummaryResponse{}, false, summaryerrors.ErrInvalidPeriodType
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return SummaryResponse{}, false, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return SummaryResponse{}, false, err
	}
	if start.After(end) {
		return SummaryResponse{}, false, summaryerrors.ErrInvalidDateRange
	}

	var (
		row     *AttendanceSummary
		created bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genErr error
		row, created, genErr = s.generate(ctx, s.repo.WithTx(tx), req.EmployeeName, req.PeriodType, start, end, nil)
		return genErr
	})
	if err != nil {
		return SummaryResponse{}, false, err
	}

	return mapToResponse(*row), created, nil
}

func (s *service) RecalculateWindows(
	ctx context.Context,
	tx *gorm.DB,
	employee string,
	date time.Time,
	payrollID *uuid.UUID,
) error {
	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}

	weekStart, weekEnd := WeekBounds(date)
	if _, _, err := s.generate(ctx, repo, employee, PeriodWeekly, weekStart, weekEnd, payrollID); err != nil {
		return err
	}

	monthStart, monthEnd := MonthBounds(date)
	_, _, err := s.generate(ctx, repo, employee, PeriodMonthly, monthStart, monthEnd, payrollID)
	return err
}

func (s *service) GetForPeriod(ctx context.Context, filter GetSummaryFilterRequest) (SummaryResponse, error) {
	if filter.EmployeeName == "" {
		return SummaryResponse{}, summaryerrors.ErrEmployeeRequired
	}

	periodType := filter.PeriodType
	if periodType == "" {
		periodType = PeriodWeekly
	}
	if periodType != PeriodWeekly && periodType != PeriodMonthly {
		return SummaryResponse{}, summaryerrors.ErrInvalidPeriodType
	}

	reference := s.now()
	if filter.Reference != "" {
		parsed, err := parseDate(filter.Reference)
		if err != nil {
			return SummaryResponse{}, err
		}
		reference = parsed
	}

	var start, end time.Time
	if periodType == PeriodWeekly {
		start, end = WeekBounds(reference)
	} else {
		start, end = MonthBounds(reference)
	}

	existing, err := s.repo.FindActiveByIdentity(ctx, filter.EmployeeName, periodType, start, end)
	if err == nil {
		return mapToResponse(*existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SummaryResponse{}, err
	}

	var row *AttendanceSummary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genErr error
		row, _, genErr = s.generate(ctx, s.repo.WithTx(tx), filter.EmployeeName, periodType, start, end, nil)
		return genErr
	})
	if err != nil {
		return SummaryResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) TeamSummary(ctx context.Context, filter TeamSummaryFilterRequest) ([]SummaryResponse, error) {
	var start, end time.Time
	if filter.StartDate == "" && filter.EndDate == "" {
		start, end = MonthBounds(s.now())
	} else {
		var err error
		start, err = parseDate(filter.StartDate)
		if err != nil {
			return nil, err
		}
		end, err = parseDate(filter.EndDate)
		if err != nil {
			return nil, err
		}
		if start.After(end) {
			return nil, summaryerrors.ErrInvalidDateRange
		}
	}

	employees, err := s.repo.ActivePayrollEmployees(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]SummaryResponse, 0, len(employees))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, employee := range employees {
			row, _, genErr := s.generate(ctx, repo, employee, PeriodCustom, start, end, nil)
			if genErr != nil {
				return genErr
			}
			resp = append(resp, mapToResponse(*row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// RegenerateAll drops the whole cache and rebuilds it from attendance,
// walking every employee's date span week by week and month by month.
// Concurrent invocations collapse onto one rebuild.
func (s *service) RegenerateAll(ctx context.Context) (RegenerateAllResponse, error) {
	v, err, _ := s.rebuild.Do("regenerate-all", func() (interface{}, error) {
		return s.regenerateAll(ctx)
	})
	if err != nil {
		return RegenerateAllResponse{}, err
	}
	return v.(RegenerateAllResponse), nil
}

func (s *service) regenerateAll(ctx context.Context) (RegenerateAllResponse, error) {
	var resp RegenerateAllResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}

		spans, err := repo.EmployeeSpans(ctx)
		if err != nil {
			return err
		}

		for _, span := range spans {
			written, walkErr := s.rebuildSpan(ctx, repo, span)
			if walkErr != nil {
				return walkErr
			}
			resp.EmployeesProcessed++
			resp.SummariesWritten += written
		}
		return nil
	})
	if err != nil {
		return RegenerateAllResponse{}, err
	}

	s.logger.Info("attendance summary cache rebuilt",
		zap.Int("employees", resp.EmployeesProcessed),
		zap.Int("summaries", resp.SummariesWritten))

	return resp, nil
}

func (s *service) rebuildSpan(ctx context.Context, repo Repository, span EmployeeSpan) (int, error) {
	written := 0

	monday, _ := WeekBounds(span.MinDate)
	for !monday.After(span.MaxDate) {
		weekEnd := monday.AddDate(0, 0, 6)
		if _, _, err := s.generate(ctx, repo, span.EmployeeName, PeriodWeekly, monday, weekEnd, nil); err != nil {
			return written, err
		}
		written++
		monday = monday.AddDate(0, 0, 7)
	}

	monthStart, _ := MonthBounds(span.MinDate)
	for !monthStart.After(span.MaxDate) {
		_, monthEnd := MonthBounds(monthStart)
		if _, _, err := s.generate(ctx, repo, span.EmployeeName, PeriodMonthly, monthStart, monthEnd, nil); err != nil {
			return written, err
		}
		written++
		monthStart = monthStart.AddDate(0, 1, 0)
	}

	return written, nil
}

// generate is the single recomputation primitive: count active attendance
// in the window, derive full days exactly, upsert on the identity key.
func (s *service) generate(
	ctx context.Context,
	repo Repository,
	employee, periodType string,
	start, end time.Time,
	payrollID *uuid.UUID,
) (*AttendanceSummary, bool, error) {
	counts, err := repo.CountsForWindow(ctx, employee, start, end)
	if err != nil {
		return nil, false, err
	}

	created := false
	existing, err := repo.FindActiveByIdentity(ctx, employee, periodType, start, end)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		created = true
	}

	fullDays := decimal.NewFromInt(int64(counts.Present)).
		Add(decimal.NewFromInt(int64(counts.Half)).Mul(decimal.New(5, -1)))

	row := &AttendanceSummary{
		PayrollID:         payrollID,
		EmployeeName:      employee,
		PeriodType:        periodType,
		StartDate:         start,
		EndDate:           end,
		TotalDaysInPeriod: DaysInclusive(start, end),
		PresentDays:       counts.Present,
		HalfDays:          counts.Half,
		AbsentDays:        counts.Absent,
		FullDays:          fullDays,
		CalculatedAt:      s.now().UTC(),
	}
	if existing != nil {
		row.ID = existing.ID
		if payrollID == nil {
			row.PayrollID = existing.PayrollID
		}
	}

	if err := repo.Upsert(ctx, row); err != nil {
		return nil, false, err
	}

	return row, created, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, summaryerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(s AttendanceSummary) SummaryResponse {
	fullDays, _ := s.FullDays.Float64()

	return SummaryResponse{
		ID:                s.ID.String(),
		EmployeeName:      s.EmployeeName,
		PeriodType:        s.PeriodType,
		StartDate:         s.StartDate.Format("2006-01-02"),
		EndDate:           s.EndDate.Format("2006-01-02"),
		TotalDaysInPeriod: s.TotalDaysInPeriod,
		PresentDays:       s.PresentDays,
		HalfDays:          s.HalfDays,
		AbsentDays:        s.AbsentDays,
		FullDays:          fullDays,
		CalculatedAt:      s.CalculatedAt.Format(time.RFC3339),
	}
}
