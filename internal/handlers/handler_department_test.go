package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/SscSPs/academic_docs_app/internal/core/services"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/SscSPs/academic_docs_app/internal/handlers"
	"github.com/SscSPs/academic_docs_app/internal/middleware"
	"github.com/SscSPs/academic_docs_app/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const departmentSecret = "department-secret-key-that-is-long-enough"

func newDepartmentRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewSeededStore()
	audit := services.NewAuditSink(store, nil, nil, services.AuditConfig{MaxAttempts: 1})
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(departmentSecret, testIssuer))
	handlers.RegisterDepartmentRoutes(v1, services.NewDepartmentDirectory(store, audit))
	return r, store
}

func sendDepartmentRequest(t *testing.T, r *gin.Engine, method, path string, role domain.Role, body any) (*httptest.ResponseRecorder, dto.Envelope) {
	t.Helper()
	token, err := generateTestToken(departmentSecret, "user-"+string(role), role, "")
	require.NoError(t, err)
	var raw []byte
	if body != nil {
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env dto.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestListDepartments_SeededDirectory(t *testing.T) {
	r, _ := newDepartmentRouter(t)

	w, env := sendDepartmentRequest(t, r, http.MethodGet, "/api/v1/departments", domain.RoleTeacher, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	list := env.Data.([]any)
	assert.Len(t, list, len(domain.DefaultDepartments()))
	assert.Equal(t, "ARCH", list[0].(map[string]any)["departmentID"])
}

func TestUpsertDepartment_AssignsHeadAndAudits(t *testing.T) {
	r, store := newDepartmentRouter(t)
	head := "head-se"

	w, env := sendDepartmentRequest(t, r, http.MethodPut, "/api/v1/departments/SE", domain.RoleAdmin,
		dto.UpsertDepartmentRequest{Name: "Software Engineering", HeadUserID: &head})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, head, env.Data.(map[string]any)["headUserID"])

	stored, err := store.FindDepartmentByID(t.Context(), "SE")
	require.NoError(t, err)
	require.NotNil(t, stored.HeadUserID)
	assert.Equal(t, head, *stored.HeadUserID)

	entries := store.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionDepartment, entries[0].Action)
	assert.Empty(t, entries[0].DocumentID)
	assert.Equal(t, domain.SeverityMedium, entries[0].Severity)
}

func TestUpsertDepartment_Rejections(t *testing.T) {
	r, store := newDepartmentRouter(t)

	w, _ := sendDepartmentRequest(t, r, http.MethodPut, "/api/v1/departments/SE", domain.RoleCollegeDean,
		dto.UpsertDepartmentRequest{Name: "Software Engineering"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = sendDepartmentRequest(t, r, http.MethodPut, "/api/v1/departments/se-1", domain.RoleAdmin,
		dto.UpsertDepartmentRequest{Name: "Lower case"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = sendDepartmentRequest(t, r, http.MethodPut, "/api/v1/departments/SE", domain.RoleAdmin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, store.AuditEntries())
}
