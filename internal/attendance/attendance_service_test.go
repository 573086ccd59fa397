package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/haingladys/JSDC-Accounting/internal/attendance"
	attendanceerrors "github.com/haingladys/JSDC-Accounting/internal/attendance/errors"
	"github.com/haingladys/JSDC-Accounting/internal/shared/softdelete"
	"github.com/haingladys/JSDC-Accounting/internal/summary"
)

type fakeAttendanceRepository struct {
	createFn                 func(ctx context.Context, a *attendance.Attendance) error
	updateFn                 func(ctx context.Context, a *attendance.Attendance) error
	findAnyByIDFn            func(ctx context.Context, id string) (*attendance.Attendance, error)
	findActiveByPayrollFn    func(ctx context.Context, payrollID uuid.UUID, date time.Time) (*attendance.Attendance, error)
	findDeletedByPayrollFn   func(ctx context.Context, payrollID uuid.UUID, date time.Time) (*attendance.Attendance, error)
	findActiveByEmployeeDtFn func(ctx context.Context, employee string, date time.Time) (*attendance.Attendance, error)
	findActiveByEmployeeFn   func(ctx context.Context, employee string) ([]attendance.Attendance, error)
	findPayrollFn            func(ctx context.Context, employee string) (*attendance.PayrollRef, error)
	payrollRefByIDFn         func(ctx context.Context, payrollID uuid.UUID) (*attendance.PayrollRef, error)
	activeEmployeesFn        func(ctx context.Context) ([]string, error)
	findRangeAllFn           func(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error)

	createCount int
	updated     []*attendance.Attendance
}

func (f *fakeAttendanceRepository) WithTx(tx *gorm.DB) attendance.Repository { return f }

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	f.createCount++
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	f.updated = append(f.updated, a)
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindAnyByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	if f.findAnyByIDFn != nil {
		return f.findAnyByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindActiveByPayrollDate(ctx context.Context, payrollID uuid.UUID, date time.Time) (*attendance.Attendance, error) {
	if f.findActiveByPayrollFn != nil {
		return f.findActiveByPayrollFn(ctx, payrollID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindDeletedByPayrollDate(ctx context.Context, payrollID uuid.UUID, date time.Time) (*attendance.Attendance, error) {
	if f.findDeletedByPayrollFn != nil {
		return f.findDeletedByPayrollFn(ctx, payrollID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindActiveByEmployeeDate(ctx context.Context, employee string, date time.Time) (*attendance.Attendance, error) {
	if f.findActiveByEmployeeDtFn != nil {
		return f.findActiveByEmployeeDtFn(ctx, employee, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindActiveByEmployee(ctx context.Context, employee string) ([]attendance.Attendance, error) {
	if f.findActiveByEmployeeFn != nil {
		return f.findActiveByEmployeeFn(ctx, employee)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindRange(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepository) FindDeleted(ctx context.Context) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepository) FindRangeAllEmployees(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	if f.findRangeAllFn != nil {
		return f.findRangeAllFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindPayrollForEmployee(ctx context.Context, employee string) (*attendance.PayrollRef, error) {
	if f.findPayrollFn != nil {
		return f.findPayrollFn(ctx, employee)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) PayrollRefByID(ctx context.Context, payrollID uuid.UUID) (*attendance.PayrollRef, error) {
	if f.payrollRefByIDFn != nil {
		return f.payrollRefByIDFn(ctx, payrollID)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) ActivePayrollEmployees(ctx context.Context) ([]string, error) {
	if f.activeEmployeesFn != nil {
		return f.activeEmployeesFn(ctx)
	}
	return nil, nil
}

type fakeSummaryRecalculator struct {
	calls []time.Time
}

func (f *fakeSummaryRecalculator) GenerateForPeriod(ctx context.Context, req summary.GenerateSummaryRequest) (summary.SummaryResponse, bool, error) {
	return summary.SummaryResponse{}, false, nil
}

func (f *fakeSummaryRecalculator) RecalculateWindows(ctx context.Context, tx *gorm.DB, employee string, date time.Time, payrollID *uuid.UUID) error {
	f.calls = append(f.calls, date)
	return nil
}

func (f *fakeSummaryRecalculator) GetForPeriod(ctx context.Context, filter summary.GetSummaryFilterRequest) (summary.SummaryResponse, error) {
	return summary.SummaryResponse{}, nil
}

func (f *fakeSummaryRecalculator) TeamSummary(ctx context.Context, filter summary.TeamSummaryFilterRequest) ([]summary.SummaryResponse, error) {
	return nil, nil
}

func (f *fakeSummaryRecalculator) RegenerateAll(ctx context.Context) (summary.RegenerateAllResponse, error) {
	return summary.RegenerateAllResponse{}, nil
}

type attendanceServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *fakeAttendanceRepository
	summaries *fakeSummaryRecalculator
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	summaries := &fakeSummaryRecalculator{}
	svc := attendance.NewService(gormDB, repo, summaries, zap.NewNop())

	return &attendanceServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		summaries: summaries,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func activeRef() *attendance.PayrollRef {
	return &attendance.PayrollRef{
		ID:           uuid.New(),
		EmployeeName: "john doe",
		RecordState:  softdelete.StateActive,
	}
}

func TestAttendanceService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("no payroll rejects", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Upsert(ctx, attendance.UpsertAttendanceRequest{
			EmployeeName: "nobody",
			Date:         "2025-06-03",
			Status:       attendance.StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrPayrollNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("deleted payroll blocks", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findPayrollFn = func(ctx context.Context, employee string) (*attendance.PayrollRef, error) {
			return &attendance.PayrollRef{
				ID:           uuid.New(),
				EmployeeName: employee,
				RecordState:  softdelete.StateDeleted,
			}, nil
		}

		_, err := deps.service.Upsert(ctx, attendance.UpsertAttendanceRequest{
			EmployeeName: "john doe",
			Date:         "2025-06-03",
			Status:       attendance.StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrPayrollDeleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("creates when the day is empty", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		ref := activeRef()
		deps.repo.findPayrollFn = func(ctx context.Context, employee string) (*attendance.PayrollRef, error) {
			return ref, nil
		}
		rowID := uuid.New()
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			a.ID = rowID
			return nil
		}

		resp, err := deps.service.Upsert(ctx, attendance.UpsertAttendanceRequest{
			EmployeeName: "john doe",
			Date:         "2025-06-03",
			Status:       attendance.StatusPresent,
		})

		assert.NoError(t, err)
		assert.True(t, resp.Created)
		assert.Equal(t, rowID.String(), resp.ID)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Len(t, deps.summaries.calls, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second mark for the day updates in place", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		ref := activeRef()
		deps.repo.findPayrollFn = func(ctx context.Context, employee string) (*attendance.PayrollRef, error) {
			return ref, nil
		}
		existing := &attendance.Attendance{
			ID:           uuid.New(),
			PayrollID:    &ref.ID,
			EmployeeName: "john doe",
			Date:         time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC),
			Status:       attendance.StatusPresent,
		}
		deps.repo.findActiveByPayrollFn = func(ctx context.Context, payrollID uuid.UUID, date time.Time) (*attendance.Attendance, error) {
			return existing, nil
		}

		resp, err := deps.service.Upsert(ctx, attendance.UpsertAttendanceRequest{
			EmployeeName: "john doe",
			Date:         "2025-06-03",
			Status:       attendance.StatusHalfDay,
		})

		assert.NoError(t, err)
		assert.False(t, resp.Created)
		assert.Equal(t, existing.ID.String(), resp.ID)
		assert.Equal(t, attendance.StatusHalfDay, resp.Status)
		assert.Equal(t, 0, deps.repo.createCount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("resurrects a soft-deleted row instead of duplicating", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		ref := activeRef()
		deps.repo.findPayrollFn = func(ctx context.Context, employee string) (*attendance.PayrollRef, error) {
			return ref, nil
		}
		deletedAt := time.Now().UTC()
		deleted := &attendance.Attendance{
			ID:               uuid.New(),
			PayrollID:        &ref.ID,
			CascadePayrollID: &ref.ID,
			EmployeeName:     "john doe",
			Date:             time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC),
			Status:           attendance.StatusAbsent,
			IdentityFields: softdelete.IdentityFields{
				RecordState: softdelete.StateDeleted,
				DeletedAt:   &deletedAt,
			},
		}
		deps.repo.findDeletedByPayrollFn = func(ctx context.Context, payrollID uuid.UUID, date time.Time) (*attendance.Attendance, error) {
			return deleted, nil
		}

		resp, err := deps.service.Upsert(ctx, attendance.UpsertAttendanceRequest{
			EmployeeName: "john doe",
			Date:         "2025-06-03",
			Status:       attendance.StatusPresent,
		})

		assert.NoError(t, err)
		assert.False(t, resp.Created)
		assert.False(t, resp.Deleted)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Nil(t, deleted.CascadePayrollID)
		assert.Equal(t, 0, deps.repo.createCount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid status rejected before any lookup", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Upsert(ctx, attendance.UpsertAttendanceRequest{
			EmployeeName: "john doe",
			Date:         "2025-06-03",
			Status:       "late",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
	})
}

func TestAttendanceService_Edit_DateCollisionMerges(t *testing.T) {
	ctx := context.Background()
	deps := setupAttendanceServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	payrollID := uuid.New()
	original := &attendance.Attendance{
		ID:           uuid.New(),
		PayrollID:    &payrollID,
		EmployeeName: "john doe",
		Date:         time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		Status:       attendance.StatusPresent,
	}
	colliding := &attendance.Attendance{
		ID:           uuid.New(),
		PayrollID:    &payrollID,
		EmployeeName: "john doe",
		Date:         time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC),
		Status:       attendance.StatusAbsent,
	}

	deps.repo.findAnyByIDFn = func(ctx context.Context, id string) (*attendance.Attendance, error) {
		return original, nil
	}
	deps.repo.payrollRefByIDFn = func(ctx context.Context, id uuid.UUID) (*attendance.PayrollRef, error) {
		return &attendance.PayrollRef{ID: id, EmployeeName: "john doe", RecordState: softdelete.StateActive}, nil
	}
	deps.repo.findActiveByEmployeeDtFn = func(ctx context.Context, employee string, date time.Time) (*attendance.Attendance, error) {
		return colliding, nil
	}

	resp, err := deps.service.Edit(ctx, original.ID.String(), attendance.EditAttendanceRequest{
		Date:   "2025-06-03",
		Status: attendance.StatusHalfDay,
	})

	assert.NoError(t, err)
	// The colliding row absorbed the edit and the original went away.
	assert.Equal(t, colliding.ID.String(), resp.ID)
	assert.Equal(t, attendance.StatusHalfDay, resp.Status)
	assert.True(t, original.IsDeleted())
	// Both the old and the new date windows were recomputed.
	assert.Len(t, deps.summaries.calls, 2)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestAttendanceService_SoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("double delete conflicts", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deletedAt := time.Now().UTC()
		deps.repo.findAnyByIDFn = func(ctx context.Context, id string) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID: uuid.New(),
				IdentityFields: softdelete.IdentityFields{
					RecordState: softdelete.StateDeleted,
					DeletedAt:   &deletedAt,
				},
			}, nil
		}

		err := deps.service.SoftDelete(ctx, uuid.NewString())
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceAlreadyDeleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("delete recomputes the window", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		payrollID := uuid.New()
		row := &attendance.Attendance{
			ID:           uuid.New(),
			PayrollID:    &payrollID,
			EmployeeName: "john doe",
			Date:         time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC),
			Status:       attendance.StatusPresent,
		}
		deps.repo.findAnyByIDFn = func(ctx context.Context, id string) (*attendance.Attendance, error) {
			return row, nil
		}

		err := deps.service.SoftDelete(ctx, row.ID.String())

		assert.NoError(t, err)
		assert.True(t, row.IsDeleted())
		assert.Len(t, deps.summaries.calls, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("restore of active row conflicts", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findAnyByIDFn = func(ctx context.Context, id string) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: uuid.New()}, nil
		}

		_, err := deps.service.Restore(ctx, uuid.NewString())
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotDeleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("restore under a deleted payroll is blocked", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		payrollID := uuid.New()
		deletedAt := time.Now().UTC()
		deps.repo.findAnyByIDFn = func(ctx context.Context, id string) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:        uuid.New(),
				PayrollID: &payrollID,
				IdentityFields: softdelete.IdentityFields{
					RecordState: softdelete.StateDeleted,
					DeletedAt:   &deletedAt,
				},
			}, nil
		}
		deps.repo.payrollRefByIDFn = func(ctx context.Context, id uuid.UUID) (*attendance.PayrollRef, error) {
			return &attendance.PayrollRef{ID: id, RecordState: softdelete.StateDeleted}, nil
		}

		_, err := deps.service.Restore(ctx, uuid.NewString())
		assert.ErrorIs(t, err, attendanceerrors.ErrPayrollDeleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_DeleteByEmployee(t *testing.T) {
	ctx := context.Background()
	deps := setupAttendanceServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	payrollID := uuid.New()
	rows := []attendance.Attendance{
		{ID: uuid.New(), PayrollID: &payrollID, EmployeeName: "john doe", Date: time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), PayrollID: &payrollID, EmployeeName: "john doe", Date: time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), PayrollID: &payrollID, EmployeeName: "john doe", Date: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)},
	}
	deps.repo.findActiveByEmployeeFn = func(ctx context.Context, employee string) ([]attendance.Attendance, error) {
		return rows, nil
	}

	resp, err := deps.service.DeleteByEmployee(ctx, "john doe")

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.Deleted)
	assert.Len(t, deps.repo.updated, 3)
	// Two distinct week windows across the three rows.
	assert.Len(t, deps.summaries.calls, 2)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestAttendanceService_WeeklyOverview(t *testing.T) {
	ctx := context.Background()
	deps := setupAttendanceServiceTest(t)
	defer deps.db.Close()

	deps.repo.activeEmployeesFn = func(ctx context.Context) ([]string, error) {
		return []string{"alice", "bob"}, nil
	}
	deps.repo.findRangeAllFn = func(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
		assert.Equal(t, "2025-06-02", start.Format("2006-01-02"))
		assert.Equal(t, "2025-06-08", end.Format("2006-01-02"))
		return []attendance.Attendance{
			{EmployeeName: "alice", Date: time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
			{EmployeeName: "alice", Date: time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC), Status: attendance.StatusHalfDay},
		}, nil
	}

	resp, err := deps.service.WeeklyOverview(ctx, attendance.WeeklyOverviewFilterRequest{Reference: "2025-06-04"})

	assert.NoError(t, err)
	assert.Equal(t, "2025-06-02", resp.WeekStart)
	assert.Equal(t, "2025-06-08", resp.WeekEnd)
	assert.Len(t, resp.Days, 7)
	assert.Len(t, resp.Employees, 2)
	assert.Equal(t, attendance.StatusPresent, resp.Employees[0].Statuses["2025-06-03"])
	assert.Equal(t, attendance.StatusHalfDay, resp.Employees[0].Statuses["2025-06-04"])
	assert.Empty(t, resp.Employees[1].Statuses)
}
