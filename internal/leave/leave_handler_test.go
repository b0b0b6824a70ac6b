package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow/internal/domain"
	"dayflow/internal/leave"
	leaveerrors "dayflow/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn  func(ctx context.Context, actor domain.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	listFn    func(ctx context.Context, actor domain.Actor, q leave.ListQuery) ([]leave.LeaveResponse, error)
	getByIDFn func(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error)
	approveFn func(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error)
	rejectFn  func(ctx context.Context, actor domain.Actor, id, reason string) (leave.LeaveResponse, error)
	statsFn   func(ctx context.Context, actor domain.Actor) (leave.StatsResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, actor domain.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, actor, req)
}
func (f *fakeLeaveService) List(ctx context.Context, actor domain.Actor, q leave.ListQuery) ([]leave.LeaveResponse, error) {
	return f.listFn(ctx, actor, q)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, actor, id)
}
func (f *fakeLeaveService) Approve(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, actor, id)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actor domain.Actor, id, reason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, actor, id, reason)
}
func (f *fakeLeaveService) Stats(ctx context.Context, actor domain.Actor) (leave.StatsResponse, error) {
	return f.statsFn(ctx, actor)
}

func newTestContext(method, target, body string, actor domain.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id_validated", actor.UserID)
	c.Set("role", actor.Role)
	return c, w
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, actor domain.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeActor, actor)
				assert.Equal(t, leave.TypeAnnual, req.LeaveType)
				return leave.LeaveResponse{ID: "l-1", UserID: actor.UserID, Days: 6, Status: leave.StatusPending}, nil
			},
		}

		h := leave.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/leaves",
			`{"leave_type":"annual","start_date":"2030-01-15","end_date":"2030-01-20","reason":"Family"}`, employeeActor)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, 6, got.Days)
	})

	t.Run("invalid leave type", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newTestContext(http.MethodPost, "/leaves",
			`{"leave_type":"vacation","start_date":"2030-01-15","end_date":"2030-01-20"}`, employeeActor)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("insufficient balance carries details", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, actor domain.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInsufficientBalance.WithDetails(map[string]any{
					"leave_type": "annual", "available": 2, "requested": 6,
				})
			},
		}

		h := leave.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/leaves",
			`{"leave_type":"annual","start_date":"2030-01-15","end_date":"2030-01-20"}`, employeeActor)

		h.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INSUFFICIENT_BALANCE", env.Error.Code)
		assert.EqualValues(t, 2, env.Error.Details["available"])
		assert.EqualValues(t, 6, env.Error.Details["requested"])
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error) {
				assert.Equal(t, "l-1", id)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/leaves/l-1/approve", "", hrActor)
		c.Params = gin.Params{{Key: "id", Value: "l-1"}}

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("already approved", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actor domain.Actor, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}

		h := leave.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/leaves/l-1/approve", "", hrActor)
		c.Params = gin.Params{{Key: "id", Value: "l-1"}}

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_STATE", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	t.Run("reason required", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newTestContext(http.MethodPost, "/leaves/l-1/reject", `{}`, hrActor)
		c.Params = gin.Params{{Key: "id", Value: "l-1"}}

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, actor domain.Actor, id, reason string) (leave.LeaveResponse, error) {
				assert.Equal(t, "Busy season", reason)
				return leave.LeaveResponse{ID: id, Status: leave.StatusRejected, RejectionReason: &reason}, nil
			},
		}

		h := leave.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/leaves/l-1/reject", `{"rejection_reason":"Busy season"}`, hrActor)
		c.Params = gin.Params{{Key: "id", Value: "l-1"}}

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	svc := &fakeLeaveService{
		listFn: func(ctx context.Context, actor domain.Actor, q leave.ListQuery) ([]leave.LeaveResponse, error) {
			assert.Equal(t, leave.StatusPending, q.Status)
			return []leave.LeaveResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}

	h := leave.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/leaves?status=pending&page=2&page_size=2", "", hrActor)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w.Body.Bytes()).Data, &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestLeaveHandler_GetAll_OutOfRangePaging(t *testing.T) {
	svc := &fakeLeaveService{
		listFn: func(ctx context.Context, actor domain.Actor, q leave.ListQuery) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}
	h := leave.NewHandler(svc)

	t.Run("huge page", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/leaves?page=4611686018427387905&page_size=3", "", hrActor)

		assert.NotPanics(t, func() { h.GetAll(c) })

		assert.Equal(t, http.StatusOK, w.Code)
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w.Body.Bytes()).Data, &got))
		assert.Empty(t, got)
	})

	t.Run("page size capped", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/leaves?page=1&page_size=9223372036854775807", "", hrActor)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"pageSize":100`)
	})
}
