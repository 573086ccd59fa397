package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/haingladys/JSDC-Accounting/internal/payroll"
	payrollerrors "github.com/haingladys/JSDC-Accounting/internal/payroll/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	saveFn             func(ctx context.Context, req payroll.SavePayrollRequest) (payroll.SavePayrollResponse, error)
	getByIDFn          func(ctx context.Context, id string) (payroll.PayrollResponse, error)
	getPeriodFn        func(ctx context.Context, filter payroll.GetPeriodFilterRequest) (payroll.PeriodResponse, error)
	listDeletedFn      func(ctx context.Context) ([]payroll.PayrollResponse, error)
	softDeleteFn       func(ctx context.Context, id string) (payroll.CascadeResponse, error)
	restoreFn          func(ctx context.Context, id string) (payroll.CascadeResponse, error)
	recreateExpensesFn func(ctx context.Context, id string) (payroll.PayrollResponse, error)
}

func (f *fakePayrollService) Save(ctx context.Context, req payroll.SavePayrollRequest) (payroll.SavePayrollResponse, error) {
	return f.saveFn(ctx, req)
}

func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePayrollService) GetPeriod(ctx context.Context, filter payroll.GetPeriodFilterRequest) (payroll.PeriodResponse, error) {
	return f.getPeriodFn(ctx, filter)
}

func (f *fakePayrollService) ListDeleted(ctx context.Context) ([]payroll.PayrollResponse, error) {
	return f.listDeletedFn(ctx)
}

func (f *fakePayrollService) SoftDelete(ctx context.Context, id string) (payroll.CascadeResponse, error) {
	return f.softDeleteFn(ctx, id)
}

func (f *fakePayrollService) Restore(ctx context.Context, id string) (payroll.CascadeResponse, error) {
	return f.restoreFn(ctx, id)
}

func (f *fakePayrollService) RecreateExpenses(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f.recreateExpensesFn(ctx, id)
}

func newTestContext(t *testing.T, method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestPayrollHandler_Save_Created(t *testing.T) {
	resp := payroll.SavePayrollResponse{
		PayrollResponse: payroll.PayrollResponse{
			ID:               uuid.NewString(),
			EmployeeName:     "john doe",
			BasicPay:         30000,
			NetSalary:        30000,
			PaymentSplitType: payroll.SplitFullCash,
			CashPercentage:   100,
			CashAmount:       30000,
			SalaryDate:       "2025-06-30",
			Month:            6,
			Year:             2025,
			ExpensesCreated:  true,
		},
		Created: true,
	}
	svc := &fakePayrollService{
		saveFn: func(ctx context.Context, req payroll.SavePayrollRequest) (payroll.SavePayrollResponse, error) {
			assert.Equal(t, "john doe", req.EmployeeName)
			assert.Equal(t, float64(30000), req.BasicPay)
			return resp, nil
		},
	}
	h := payroll.NewHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/payrolls", `{
		"employee_name": "john doe",
		"basic_pay": 30000,
		"salary_date": "2025-06-30",
		"payment_split_type": "full_cash"
	}`)

	h.Save(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var got payroll.SavePayrollResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.Created)
	assert.Equal(t, "john doe", got.EmployeeName)
}

func TestPayrollHandler_Save_UpdateReturnsOK(t *testing.T) {
	svc := &fakePayrollService{
		saveFn: func(ctx context.Context, req payroll.SavePayrollRequest) (payroll.SavePayrollResponse, error) {
			return payroll.SavePayrollResponse{Created: false}, nil
		},
	}
	h := payroll.NewHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/payrolls", `{
		"employee_name": "john doe",
		"basic_pay": 30000,
		"salary_date": "2025-06-30",
		"payment_split_type": "full_cash"
	}`)

	h.Save(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPayrollHandler_Save_CachesResultAndReleasesLock(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	resp := payroll.SavePayrollResponse{
		PayrollResponse: payroll.PayrollResponse{ID: uuid.NewString(), EmployeeName: "john doe"},
		Created:         true,
	}
	svc := &fakePayrollService{
		saveFn: func(ctx context.Context, req payroll.SavePayrollRequest) (payroll.SavePayrollResponse, error) {
			return resp, nil
		},
	}
	h := payroll.NewHandlerWithRedis(svc, rdb)

	payload, err := json.Marshal(resp)
	assert.NoError(t, err)
	redisMock.ExpectSet("idemp:/api/v1/payrolls:abc", payload, 24*time.Hour).SetVal("OK")
	redisMock.ExpectDel("idemp:/api/v1/payrolls:abc:lock").SetVal(1)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/payrolls", `{
		"employee_name": "john doe",
		"basic_pay": 30000,
		"salary_date": "2025-06-30",
		"payment_split_type": "full_cash"
	}`)
	c.Set("idempotency_cache_key", "idemp:/api/v1/payrolls:abc")
	c.Set("idempotency_lock_key", "idemp:/api/v1/payrolls:abc:lock")

	h.Save(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPayrollHandler_Save_InvalidBody(t *testing.T) {
	svc := &fakePayrollService{}
	h := payroll.NewHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/payrolls", `{"basic_pay": "oops"}`)

	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.NotNil(t, env.Error)
}

func TestPayrollHandler_Save_ServiceErrorMapped(t *testing.T) {
	svc := &fakePayrollService{
		saveFn: func(ctx context.Context, req payroll.SavePayrollRequest) (payroll.SavePayrollResponse, error) {
			return payroll.SavePayrollResponse{}, payrollerrors.ErrIncentiveRequiresAttendance
		},
	}
	h := payroll.NewHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/api/v1/payrolls", `{
		"employee_name": "john doe",
		"basic_pay": 30000,
		"incentive_amount": 2000,
		"salary_date": "2025-06-30",
		"payment_split_type": "full_cash"
	}`)

	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestPayrollHandler_Delete(t *testing.T) {
	payrollID := uuid.NewString()
	svc := &fakePayrollService{
		softDeleteFn: func(ctx context.Context, id string) (payroll.CascadeResponse, error) {
			assert.Equal(t, payrollID, id)
			return payroll.CascadeResponse{ID: id, AttendanceAffected: 4, ExpensesAffected: 2}, nil
		},
	}
	h := payroll.NewHandler(svc)

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/payrolls/"+payrollID, "")
	c.Params = gin.Params{{Key: "id", Value: payrollID}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var got payroll.CascadeResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, int64(4), got.AttendanceAffected)
	assert.Equal(t, int64(2), got.ExpensesAffected)
}

func TestPayrollHandler_Restore_Conflict(t *testing.T) {
	svc := &fakePayrollService{
		restoreFn: func(ctx context.Context, id string) (payroll.CascadeResponse, error) {
			return payroll.CascadeResponse{}, payrollerrors.ErrPayrollNotDeleted
		},
	}
	h := payroll.NewHandler(svc)

	payrollID := uuid.NewString()
	c, w := newTestContext(t, http.MethodPost, "/api/v1/payrolls/"+payrollID+"/restore", "")
	c.Params = gin.Params{{Key: "id", Value: payrollID}}

	h.Restore(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestPayrollHandler_GetById_NotFound(t *testing.T) {
	svc := &fakePayrollService{
		getByIDFn: func(ctx context.Context, id string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		},
	}
	h := payroll.NewHandler(svc)

	payrollID := uuid.NewString()
	c, w := newTestContext(t, http.MethodGet, "/api/v1/payrolls/"+payrollID, "")
	c.Params = gin.Params{{Key: "id", Value: payrollID}}

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
