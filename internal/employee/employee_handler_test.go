package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/djfabrix/vidiemme/internal/employee"
	employeeerrors "github.com/djfabrix/vidiemme/internal/employee/errors"
	"github.com/djfabrix/vidiemme/internal/shared/apperror"
	"github.com/djfabrix/vidiemme/internal/shared/pagination"
	"github.com/djfabrix/vidiemme/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fakeEmployeeService lets each test pin down exactly the calls it expects.
type fakeEmployeeService struct {
	createFn   func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn   func(ctx context.Context, page pagination.Window) ([]employee.EmployeeResponse, error)
	getFn      func(ctx context.Context, serial string) (employee.EmployeeResponse, error)
	getTasksFn func(ctx context.Context, serial string, page pagination.Window) ([]task.TaskResponse, error)
	updateFn   func(ctx context.Context, serial string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	validateFn func(ctx context.Context, serial string, hiringDate, dismissalDate *time.Time) (bool, error)
	deleteFn   func(ctx context.Context, serial string) (int64, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeEmployeeService) GetAll(ctx context.Context, page pagination.Window) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx, page)
}

func (f *fakeEmployeeService) GetBySerial(ctx context.Context, serial string) (employee.EmployeeResponse, error) {
	return f.getFn(ctx, serial)
}

func (f *fakeEmployeeService) GetTasks(ctx context.Context, serial string, page pagination.Window) ([]task.TaskResponse, error) {
	return f.getTasksFn(ctx, serial, page)
}

func (f *fakeEmployeeService) Update(ctx context.Context, serial string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, serial, req)
}

func (f *fakeEmployeeService) ValidateHiringDismissalDate(ctx context.Context, serial string, hiringDate, dismissalDate *time.Time) (bool, error) {
	return f.validateFn(ctx, serial, hiringDate, dismissalDate)
}

func (f *fakeEmployeeService) Delete(ctx context.Context, serial string) (int64, error) {
	return f.deleteFn(ctx, serial)
}

func setupEmployeeRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := employee.NewHandler(svc)
	r := gin.New()
	r.POST("/employees", h.Create)
	r.GET("/employees", h.GetAll)
	r.GET("/employees/:serial", h.GetBySerial)
	r.GET("/employees/:serial/tasks", h.GetTasks)
	r.PUT("/employees/:serial", h.Update)
	r.DELETE("/employees/:serial", h.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *struct {
		Count  int `json:"count"`
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{SerialNumber: req.SerialNumber, Name: req.Name, HiringDate: "2020-01-01"}, nil
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodPost, "/employees", gin.H{
			"serial_number": "00001",
			"name":          "Mario",
			"surname":       "Rossi",
			"email":         "mario.rossi@example.com",
			"role":          "developer",
			"hiring_date":   "2020-01-01",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
	})

	t.Run("binding failure is a 400 without reaching the service", func(t *testing.T) {
		called := false
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				called = true
				return employee.EmployeeResponse{}, nil
			},
		}
		r := setupEmployeeRouter(svc)

		// serial_number must be exactly five numeric characters
		w := doJSON(r, http.MethodPost, "/employees", gin.H{
			"serial_number": "123",
			"name":          "Mario",
			"surname":       "Rossi",
			"email":         "mario.rossi@example.com",
			"role":          "developer",
			"hiring_date":   "2020-01-01",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("duplicate serial is a 409", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrSerialAlreadyExists
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodPost, "/employees", gin.H{
			"serial_number": "00001",
			"name":          "Mario",
			"surname":       "Rossi",
			"email":         "mario.rossi@example.com",
			"role":          "developer",
			"hiring_date":   "2020-01-01",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, apperror.CodeConflict, env.Error.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("forwards offset and limit from the query", func(t *testing.T) {
		var got pagination.Window
		svc := &fakeEmployeeService{
			getAllFn: func(ctx context.Context, page pagination.Window) ([]employee.EmployeeResponse, error) {
				got = page
				return []employee.EmployeeResponse{{SerialNumber: "00021"}}, nil
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodGet, "/employees?offset=20&limit=10", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, pagination.Window{Offset: 20, Limit: 10}, got)
		env := decodeEnvelope(t, w)
		assert.Equal(t, 1, env.Meta.Count)
		assert.Equal(t, 20, env.Meta.Offset)
		assert.Equal(t, 10, env.Meta.Limit)
	})

	t.Run("garbage pagination values fall back to unset", func(t *testing.T) {
		var got pagination.Window
		svc := &fakeEmployeeService{
			getAllFn: func(ctx context.Context, page pagination.Window) ([]employee.EmployeeResponse, error) {
				got = page
				return nil, nil
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodGet, "/employees?offset=abc&limit=-3", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, pagination.Window{}, got)
	})
}

func TestEmployeeHandler_GetBySerial(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getFn: func(ctx context.Context, serial string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodGet, "/employees/99999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, apperror.CodeNotFound, env.Error.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("dates are validated before the update runs", func(t *testing.T) {
		updateCalled := false
		svc := &fakeEmployeeService{
			validateFn: func(ctx context.Context, serial string, hiringDate, dismissalDate *time.Time) (bool, error) {
				assert.Equal(t, "00001", serial)
				assert.NotNil(t, dismissalDate)
				assert.Nil(t, hiringDate)
				return false, nil
			},
			updateFn: func(ctx context.Context, serial string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				updateCalled = true
				return employee.EmployeeResponse{}, nil
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodPut, "/employees/00001", gin.H{
			"dismissal_date": "2019-01-01",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, updateCalled)
		env := decodeEnvelope(t, w)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("validation lookup miss maps to 404", func(t *testing.T) {
		svc := &fakeEmployeeService{
			validateFn: func(ctx context.Context, serial string, hiringDate, dismissalDate *time.Time) (bool, error) {
				return false, employeeerrors.ErrEmployeeNotFound
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodPut, "/employees/99999", gin.H{
			"hiring_date": "2020-01-01",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("valid partial update succeeds", func(t *testing.T) {
		svc := &fakeEmployeeService{
			validateFn: func(ctx context.Context, serial string, hiringDate, dismissalDate *time.Time) (bool, error) {
				return true, nil
			},
			updateFn: func(ctx context.Context, serial string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.NotNil(t, req.Name)
				assert.Equal(t, "Maria", *req.Name)
				assert.Nil(t, req.Email)
				return employee.EmployeeResponse{SerialNumber: serial, Name: *req.Name}, nil
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodPut, "/employees/00001", gin.H{"name": "Maria"})

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("active tasks block deletion with 409", func(t *testing.T) {
		svc := &fakeEmployeeService{
			deleteFn: func(ctx context.Context, serial string) (int64, error) {
				return 0, employeeerrors.ErrEmployeeHasActiveTasks
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodDelete, "/employees/00001", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, apperror.CodeConflict, env.Error.Code)
		assert.Equal(t, "Cannot delete an employee with associated active tasks", env.Error.Message)
	})

	t.Run("reports whether a row was deleted", func(t *testing.T) {
		svc := &fakeEmployeeService{
			deleteFn: func(ctx context.Context, serial string) (int64, error) {
				return 1, nil
			},
		}
		r := setupEmployeeRouter(svc)

		w := doJSON(r, http.MethodDelete, "/employees/00001", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		var data map[string]bool
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.True(t, data["deleted"])
	})
}
