package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/SscSPs/academic_docs_app/internal/handlers"
	"github.com/SscSPs/academic_docs_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Record(ctx context.Context, entry domain.AuditLogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditSink) RecordWith(ctx context.Context, w portsrepo.AuditWriter, entry domain.AuditLogEntry) error {
	return m.Called(ctx, w, entry).Error(0)
}

func (m *MockAuditSink) List(ctx context.Context, actor domain.Actor, filter domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

var _ portssvc.AuditSinkSvc = (*MockAuditSink)(nil)

const auditSecret = "audit-secret-key-that-is-long-enough"

func newAuditRouter(sink *MockAuditSink) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(auditSecret, testIssuer))
	handlers.RegisterAuditRoutes(v1, sink)
	return r
}

func TestListAuditLogs_AdminWithFilters(t *testing.T) {
	sink := new(MockAuditSink)
	r := newAuditRouter(sink)
	token, err := generateTestToken(auditSecret, "root", domain.RoleAdmin, "")
	require.NoError(t, err)

	sink.On("List", mock.Anything, mock.MatchedBy(func(a domain.Actor) bool { return a.Role == domain.RoleAdmin }),
		mock.MatchedBy(func(f domain.AuditFilter) bool {
			return f.DocumentID == "doc-1" && f.Severity == domain.SeverityHigh && f.Limit == 10 && f.Since != nil
		})).
		Return([]domain.AuditLogEntry{{EntryID: "a1", DocumentID: "doc-1", Action: "approve", Severity: domain.SeverityHigh, CreatedAt: time.Now()}}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/audit-logs?document_id=doc-1&severity=high&limit=10&since=2025-01-01T00:00:00Z", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var env dto.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Len(t, env.Data.([]any), 1)
	sink.AssertExpectations(t)
}

func TestListAuditLogs_NonAdminForbidden(t *testing.T) {
	sink := new(MockAuditSink)
	r := newAuditRouter(sink)
	token, err := generateTestToken(auditSecret, "dean", domain.RoleCollegeDean, "")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	sink.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestListAuditLogs_BadSeverity(t *testing.T) {
	sink := new(MockAuditSink)
	r := newAuditRouter(sink)
	token, err := generateTestToken(auditSecret, "root", domain.RoleAdmin, "")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/audit-logs?severity=urgent", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
