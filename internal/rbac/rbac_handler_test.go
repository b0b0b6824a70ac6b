package rbac_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow/internal/domain"
	"dayflow/internal/rbac"
	rbacerrors "dayflow/internal/rbac/errors"
	rbacMock "dayflow/internal/rbac/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
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

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestRBACHandler_Assign(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := rbacMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().AssignRole(gomock.Any(), "hr-1", "u-2", domain.RoleHR).Return(nil)

		h := rbac.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/roles/u-2", strings.NewReader(`{"role":"hr"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "user_id", Value: "u-2"}}
		c.Set("user_id_validated", "hr-1")

		h.Assign(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got rbac.RoleResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "u-2", got.UserID)
		assert.Equal(t, domain.RoleHR, got.Role)
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := rbacMock.NewMockService(gomock.NewController(t))

		h := rbac.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/roles/u-2", strings.NewReader(`{"role":"admin"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "user_id", Value: "u-2"}}

		h.Assign(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("service error mapped", func(t *testing.T) {
		svc := rbacMock.NewMockService(gomock.NewController(t))
		svc.EXPECT().AssignRole(gomock.Any(), "hr-1", "hr-1", domain.RoleEmployee).Return(rbacerrors.ErrSelfDemotion)

		h := rbac.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/roles/hr-1", strings.NewReader(`{"role":"employee"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "user_id", Value: "hr-1"}}
		c.Set("user_id_validated", "hr-1")

		h.Assign(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestRBACHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := rbac.NewHandler(rbacMock.NewMockService(gomock.NewController(t)))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/roles/me", nil)
	c.Set("user_id_validated", "u-1")
	c.Set("role", domain.RoleEmployee)

	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got rbac.RoleResponse
	assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w.Body.Bytes()).Data, &got))
	assert.Equal(t, domain.RoleEmployee, got.Role)
}
