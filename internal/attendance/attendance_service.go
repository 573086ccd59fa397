package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "github.com/haingladys/JSDC-Accounting/internal/attendance/errors"
	"github.com/haingladys/JSDC-Accounting/internal/summary"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, req UpsertAttendanceRequest) (UpsertAttendanceResponse, error)
	Edit(ctx context.Context, id string, req EditAttendanceRequest) (AttendanceResponse, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (AttendanceResponse, error)
	ListRange(ctx context.Context, filter ListAttendanceFilterRequest) ([]AttendanceResponse, error)
	ListDeleted(ctx context.Context) ([]AttendanceResponse, error)
	DeleteByEmployee(ctx context.Context, employee string) (BulkDeleteResponse, error)
	WeeklyOverview(ctx context.Context, filter WeeklyOverviewFilterRequest) (WeeklyOverviewResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	summaries summary.Service
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(db *gorm.DB, repo Repository, summaries summary.Service, logger *zap.Logger) Service {
	return &service{
		db:        db,
		repo:      repo,
		summaries: summaries,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) Upsert(ctx context.Context, req UpsertAttendanceRequest) (UpsertAttendanceResponse, error) {
	if !ValidStatus(req.Status) {
		return UpsertAttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return UpsertAttendanceResponse{}, err
	}

	var (
		row     *Attendance
		created bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		row, created, txErr = s.upsertTx(ctx, tx, req.EmployeeName, date, req.Status, req.Notes)
		return txErr
	})
	if err != nil {
		return UpsertAttendanceResponse{}, err
	}

	return UpsertAttendanceResponse{
		AttendanceResponse: mapToResponse(*row),
		Created:            created,
	}, nil
}

// upsertTx runs the lookup-resurrect-create sequence and the summary
// recomputation inside the caller's transaction.
func (s *service) upsertTx(
	ctx context.Context,
	tx *gorm.DB,
	employee string,
	date time.Time,
	status string,
	notes *string,
) (*Attendance, bool, error) {
	qtx := s.repo.WithTx(tx)

	ref, err := qtx.FindPayrollForEmployee(ctx, employee)
	if err != nil {
		return nil, false, err
	}
	if ref == nil {
		return nil, false, attendanceerrors.ErrPayrollNotFound
	}
	if ref.IsDeleted() {
		return nil, false, attendanceerrors.ErrPayrollDeleted
	}

	created := false
	row, err := qtx.FindActiveByPayrollDate(ctx, ref.ID, date)
	switch {
	case err == nil:
		row.Status = status
		row.Notes = notes
		if err := qtx.Update(ctx, row); err != nil {
			return nil, false, mapWriteError(err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		// A soft-deleted row at the same (payroll, date) is brought back
		// instead of creating a duplicate on the active-row key.
		row, err = qtx.FindDeletedByPayrollDate(ctx, ref.ID, date)
		switch {
		case err == nil:
			row.IdentityFields.Restore()
			row.CascadePayrollID = nil
			row.Status = status
			row.Notes = notes
			if err := qtx.Update(ctx, row); err != nil {
				return nil, false, mapWriteError(err)
			}

		case errors.Is(err, gorm.ErrRecordNotFound):
			row = &Attendance{
				PayrollID:    &ref.ID,
				EmployeeName: employee,
				Date:         date,
				Status:       status,
				Notes:        notes,
			}
			if err := qtx.Create(ctx, row); err != nil {
				return nil, false, mapWriteError(err)
			}
			created = true

		default:
			return nil, false, err
		}

	default:
		return nil, false, err
	}

	if err := s.summaries.RecalculateWindows(ctx, tx, employee, date, &ref.ID); err != nil {
		return nil, false, err
	}

	return row, created, nil
}

func (s *service) Edit(ctx context.Context, id string, req EditAttendanceRequest) (AttendanceResponse, error) {
	if !ValidStatus(req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return AttendanceResponse{}, err
	}

	var result *Attendance
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		row, findErr := qtx.FindAnyByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return findErr
		}

		if blockErr := s.requireActivePayroll(ctx, qtx, row); blockErr != nil {
			return blockErr
		}

		oldDate := row.Date

		if !sameDay(date, oldDate) {
			other, collErr := qtx.FindActiveByEmployeeDate(ctx, row.EmployeeName, date)
			if collErr != nil && !errors.Is(collErr, gorm.ErrRecordNotFound) {
				return collErr
			}
			if collErr == nil && other.ID != row.ID {
				// Two active rows for one employee and day are never allowed.
				// The colliding row absorbs the edit and the original goes away.
				other.Status = req.Status
				other.Notes = req.Notes
				if err := qtx.Update(ctx, other); err != nil {
					return mapWriteError(err)
				}

				row.IdentityFields.SoftDelete(s.now().UTC())
				if err := qtx.Update(ctx, row); err != nil {
					return mapWriteError(err)
				}

				result = other
				return s.recalculateBoth(ctx, tx, row.EmployeeName, oldDate, date, row.PayrollID)
			}
		}

		if row.IsDeleted() {
			row.IdentityFields.Restore()
			row.CascadePayrollID = nil
		}
		row.Date = date
		row.Status = req.Status
		row.Notes = req.Notes
		if err := qtx.Update(ctx, row); err != nil {
			return mapWriteError(err)
		}

		result = row
		return s.recalculateBoth(ctx, tx, row.EmployeeName, oldDate, date, row.PayrollID)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*result), nil
}

func (s *service) SoftDelete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		row, err := qtx.FindAnyByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return err
		}
		if row.IsDeleted() {
			return attendanceerrors.ErrAttendanceAlreadyDeleted
		}

		row.IdentityFields.SoftDelete(s.now().UTC())
		if err := qtx.Update(ctx, row); err != nil {
			return mapWriteError(err)
		}

		// The original date keys the recomputation so the summary drops
		// this row from its window.
		return s.summaries.RecalculateWindows(ctx, tx, row.EmployeeName, row.Date, row.PayrollID)
	})
}

func (s *service) Restore(ctx context.Context, id string) (AttendanceResponse, error) {
	var restored *Attendance

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		row, err := qtx.FindAnyByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return err
		}
		if !row.IsDeleted() {
			return attendanceerrors.ErrAttendanceNotDeleted
		}

		if blockErr := s.requireActivePayroll(ctx, qtx, row); blockErr != nil {
			return blockErr
		}

		row.IdentityFields.Restore()
		row.CascadePayrollID = nil
		if err := qtx.Update(ctx, row); err != nil {
			return mapWriteError(err)
		}

		restored = row
		return s.summaries.RecalculateWindows(ctx, tx, row.EmployeeName, row.Date, row.PayrollID)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*restored), nil
}

func (s *service) ListRange(ctx context.Context, filter ListAttendanceFilterRequest) ([]AttendanceResponse, error) {
	var start, end time.Time
	if filter.StartDate == "" && filter.EndDate == "" {
		start, end = summary.MonthBounds(s.now())
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
			return nil, attendanceerrors.ErrInvalidDateRange
		}
	}

	rows, err := s.repo.FindRange(ctx, Filter{
		StartDate:    start,
		EndDate:      end,
		EmployeeName: filter.EmployeeName,
	})
	if err != nil {
		return nil, err
	}

	return mapToListResponse(rows), nil
}

func (s *service) ListDeleted(ctx context.Context) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindDeleted(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) DeleteByEmployee(ctx context.Context, employee string) (BulkDeleteResponse, error) {
	resp := BulkDeleteResponse{EmployeeName: employee}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rows, err := qtx.FindActiveByEmployee(ctx, employee)
		if err != nil {
			return err
		}

		deletedAt := s.now().UTC()
		recalculated := map[string]bool{}

		for i := range rows {
			row := &rows[i]
			row.IdentityFields.SoftDelete(deletedAt)
			if err := qtx.Update(ctx, row); err != nil {
				return mapWriteError(err)
			}
			resp.Deleted++

			weekStart, _ := summary.WeekBounds(row.Date)
			monthStart, _ := summary.MonthBounds(row.Date)
			key := weekStart.Format("2006-01-02") + "|" + monthStart.Format("2006-01-02")
			if recalculated[key] {
				continue
			}
			recalculated[key] = true

			if err := s.summaries.RecalculateWindows(ctx, tx, employee, row.Date, row.PayrollID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return BulkDeleteResponse{}, err
	}

	return resp, nil
}

func (s *service) WeeklyOverview(ctx context.Context, filter WeeklyOverviewFilterRequest) (WeeklyOverviewResponse, error) {
	reference := s.now()
	if filter.Reference != "" {
		parsed, err := parseDate(filter.Reference)
		if err != nil {
			return WeeklyOverviewResponse{}, err
		}
		reference = parsed
	}

	weekStart, weekEnd := summary.WeekBounds(reference)

	employees, err := s.repo.ActivePayrollEmployees(ctx)
	if err != nil {
		return WeeklyOverviewResponse{}, err
	}

	rows, err := s.repo.FindRangeAllEmployees(ctx, weekStart, weekEnd)
	if err != nil {
		return WeeklyOverviewResponse{}, err
	}

	resp := WeeklyOverviewResponse{
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   weekEnd.Format("2006-01-02"),
	}
	for d := weekStart; !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
		resp.Days = append(resp.Days, d.Format("2006-01-02"))
	}

	byEmployee := map[string]map[string]string{}
	today := s.now().Format("2006-01-02")
	for _, row := range rows {
		day := row.Date.Format("2006-01-02")
		if byEmployee[row.EmployeeName] == nil {
			byEmployee[row.EmployeeName] = map[string]string{}
		}
		byEmployee[row.EmployeeName][day] = row.Status

		if day == today {
			switch row.Status {
			case StatusPresent:
				resp.TodayPresent++
			case StatusHalfDay:
				resp.TodayHalfDay++
			case StatusAbsent:
				resp.TodayAbsent++
			}
		}
	}

	for _, employee := range employees {
		statuses := byEmployee[employee]
		if statuses == nil {
			statuses = map[string]string{}
		}
		resp.Employees = append(resp.Employees, EmployeeWeekRow{
			EmployeeName: employee,
			Statuses:     statuses,
		})
	}

	return resp, nil
}

// requireActivePayroll blocks writes under a soft-deleted payroll and
// rejects rows whose employee has no payroll at all.
func (s *service) requireActivePayroll(ctx context.Context, repo Repository, row *Attendance) error {
	var (
		ref *PayrollRef
		err error
	)
	if row.PayrollID != nil {
		ref, err = repo.PayrollRefByID(ctx, *row.PayrollID)
	} else {
		ref, err = repo.FindPayrollForEmployee(ctx, row.EmployeeName)
	}
	if err != nil {
		return err
	}
	if ref == nil {
		return attendanceerrors.ErrPayrollNotFound
	}
	if ref.IsDeleted() {
		return attendanceerrors.ErrPayrollDeleted
	}
	return nil
}

func (s *service) recalculateBoth(
	ctx context.Context,
	tx *gorm.DB,
	employee string,
	oldDate, newDate time.Time,
	payrollID *uuid.UUID,
) error {
	if err := s.summaries.RecalculateWindows(ctx, tx, employee, oldDate, payrollID); err != nil {
		return err
	}
	if sameDay(oldDate, newDate) {
		return nil
	}
	return s.summaries.RecalculateWindows(ctx, tx, employee, newDate, payrollID)
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID.String(),
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		Status:       a.Status,
		Notes:        a.Notes,
		Deleted:      a.IsDeleted(),
	}
	if a.PayrollID != nil {
		v := a.PayrollID.String()
		resp.PayrollID = &v
	}
	if a.DeletedAt != nil {
		v := a.DeletedAt.Format(time.RFC3339)
		resp.DeletedAt = &v
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp
}
