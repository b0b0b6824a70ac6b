package attendance_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow/internal/attendance"
	attendanceerrors "dayflow/internal/attendance/errors"
	attendanceMock "dayflow/internal/attendance/mock"
	"dayflow/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
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

func TestAttendanceHandler_CheckIn(t *testing.T) {
	t.Run("empty body is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := attendanceMock.NewMockService(ctrl)
		svc.EXPECT().CheckIn(gomock.Any(), employeeActor, attendance.CheckInRequest{}).
			Return(attendance.AttendanceResponse{ID: "a-1", Status: attendance.StatusLate}, nil)

		c, w := newTestContext(http.MethodPost, "/attendance/check-in", "", employeeActor)
		attendance.NewHandler(svc).CheckIn(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got attendance.AttendanceResponse
		assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w.Body.Bytes()).Data, &got))
		assert.Equal(t, attendance.StatusLate, got.Status)
	})

	t.Run("duplicate returns conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := attendanceMock.NewMockService(ctrl)
		svc.EXPECT().CheckIn(gomock.Any(), employeeActor, gomock.Any()).
			Return(attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn)

		c, w := newTestContext(http.MethodPost, "/attendance/check-in", `{"notes":"wfh"}`, employeeActor)
		attendance.NewHandler(svc).CheckIn(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestAttendanceHandler_CheckOut_NotCheckedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := attendanceMock.NewMockService(ctrl)
	svc.EXPECT().CheckOut(gomock.Any(), employeeActor, gomock.Any()).
		Return(attendance.AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn)

	c, w := newTestContext(http.MethodPost, "/attendance/check-out", "", employeeActor)
	attendance.NewHandler(svc).CheckOut(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATE", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
}

func TestAttendanceHandler_Today_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := attendanceMock.NewMockService(ctrl)
	svc.EXPECT().Today(gomock.Any(), employeeActor).Return(nil, nil)

	c, w := newTestContext(http.MethodGet, "/attendance/today", "", employeeActor)
	attendance.NewHandler(svc).Today(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, []string{"", "null"}, string(decodeEnvelope(t, w.Body.Bytes()).Data))
}

func TestAttendanceHandler_GetAll_Paginates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := attendanceMock.NewMockService(ctrl)
	svc.EXPECT().List(gomock.Any(), hrActor, attendance.ListQuery{Month: "2024-03"}).
		Return([]attendance.AttendanceResponse{{ID: "a-1"}, {ID: "a-2"}, {ID: "a-3"}}, nil)

	c, w := newTestContext(http.MethodGet, "/attendance?month=2024-03&page=2&page_size=2", "", hrActor)
	attendance.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got []attendance.AttendanceResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "a-3", got[0].ID)
	assert.EqualValues(t, 3, env.Meta.Total)
}

func TestAttendanceHandler_Manual_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := attendanceMock.NewMockService(ctrl)

	c, w := newTestContext(http.MethodPut, "/attendance/manual",
		`{"user_id":"not-a-uuid","date":"2024-03-01","status":"sleeping"}`, hrActor)
	attendance.NewHandler(svc).Manual(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
}
