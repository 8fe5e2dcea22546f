package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/SscSPs/academic_docs_app/internal/handlers"
	"github.com/SscSPs/academic_docs_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocumentByID(ctx context.Context, documentID string, actor domain.Actor) (*domain.Document, error) {
	args := m.Called(ctx, documentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) CreateDocument(ctx context.Context, actor domain.Actor, req dto.CreateDocumentRequest) (*domain.Document, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) UpdateStatus(ctx context.Context, w portsrepo.DocumentWriter, documentID string, fromVersion int64, status domain.DocumentStatus, reviewerID *string, at time.Time) (*domain.Document, error) {
	args := m.Called(ctx, w, documentID, fromVersion, status, reviewerID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Transition(ctx context.Context, documentID string, event domain.Event, actor domain.Actor, req dto.TransitionRequest) (*domain.TransitionOutcome, error) {
	args := m.Called(ctx, documentID, event, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionOutcome), args.Error(1)
}

func (m *MockWorkflowService) Comment(ctx context.Context, documentID string, actor domain.Actor, req dto.CreateCommentRequest) (*domain.ReviewComment, error) {
	args := m.Called(ctx, documentID, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewComment), args.Error(1)
}

func (m *MockWorkflowService) BulkTransition(ctx context.Context, event domain.Event, actor domain.Actor, req dto.BulkReviewRequest) ([]domain.BulkItemResult, error) {
	args := m.Called(ctx, event, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BulkItemResult), args.Error(1)
}

var _ portssvc.WorkflowSvcFacade = (*MockWorkflowService)(nil)

// --- Mock CommentLedger ---
type MockCommentLedger struct {
	mock.Mock
}

func (m *MockCommentLedger) Append(ctx context.Context, documentID, authorID, body string, kind domain.CommentKind) (*domain.ReviewComment, error) {
	args := m.Called(ctx, documentID, authorID, body, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewComment), args.Error(1)
}

func (m *MockCommentLedger) AppendWith(ctx context.Context, w portsrepo.CommentWriter, documentID, authorID, body string, kind domain.CommentKind) (*domain.ReviewComment, error) {
	args := m.Called(ctx, w, documentID, authorID, body, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewComment), args.Error(1)
}

func (m *MockCommentLedger) ListForDocument(ctx context.Context, documentID string) iter.Seq2[domain.ReviewComment, error] {
	args := m.Called(ctx, documentID)
	comments, _ := args.Get(0).([]domain.ReviewComment)
	failure := args.Error(1)
	return func(yield func(domain.ReviewComment, error) bool) {
		for _, c := range comments {
			if !yield(c, nil) {
				return
			}
		}
		if failure != nil {
			yield(domain.ReviewComment{}, failure)
		}
	}
}

func (m *MockCommentLedger) MarkRead(ctx context.Context, commentID string, reader domain.Actor) (*domain.ReviewComment, error) {
	args := m.Called(ctx, commentID, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewComment), args.Error(1)
}

var _ portssvc.CommentLedgerSvc = (*MockCommentLedger)(nil)

// --- Test Suite ---
type DocumentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockDocs     *MockDocumentService
	mockWorkflow *MockWorkflowService
	mockComments *MockCommentLedger
	jwtSecret    string
}

const testIssuer = "docs-test"

// generateTestToken creates a signed session token for the given identity.
func generateTestToken(secret, userID string, role domain.Role, department string) (string, error) {
	claims := middleware.Claims{
		Role:         string(role),
		DepartmentID: department,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (suite *DocumentHandlerTestSuite) token(userID string, role domain.Role, department string) string {
	signed, err := generateTestToken(suite.jwtSecret, userID, role, department)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *DocumentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret, testIssuer))

	suite.mockDocs = new(MockDocumentService)
	suite.mockWorkflow = new(MockWorkflowService)
	suite.mockComments = new(MockCommentLedger)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterDocumentRoutes(v1, suite.mockDocs, suite.mockWorkflow, suite.mockComments)
}

func (suite *DocumentHandlerTestSuite) TearDownTest() {
	suite.mockDocs.AssertExpectations(suite.T())
	suite.mockWorkflow.AssertExpectations(suite.T())
	suite.mockComments.AssertExpectations(suite.T())
}

func TestDocumentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentHandlerTestSuite))
}

func (suite *DocumentHandlerTestSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, dto.Envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var env dto.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func actorMatcher(id string, role domain.Role) any {
	return mock.MatchedBy(func(a domain.Actor) bool { return a.ID == id && a.Role == role })
}

func sampleDocument(status domain.DocumentStatus, version int64) *domain.Document {
	now := time.Now().UTC()
	return &domain.Document{
		DocumentID:   "doc-1",
		OwnerID:      "teacher-1",
		DepartmentID: "CS",
		Title:        "Syllabus",
		FilePath:     "files/syllabus.pdf",
		Status:       status,
		Version:      version,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

// --- Test Cases ---

func (suite *DocumentHandlerTestSuite) TestCreateDocument_Success() {
	token := suite.token("teacher-1", domain.RoleTeacher, "CS")
	req := dto.CreateDocumentRequest{Title: "Syllabus", FilePath: "files/syllabus.pdf"}
	suite.mockDocs.On("CreateDocument", mock.Anything, actorMatcher("teacher-1", domain.RoleTeacher), req).
		Return(sampleDocument(domain.StatusDraft, 0), nil).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/documents", token, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.True(env.Success)
	data := env.Data.(map[string]any)
	suite.Equal("doc-1", data["documentID"])
	suite.Equal("draft", data["status"])
}

func (suite *DocumentHandlerTestSuite) TestCreateDocument_MissingTitle() {
	token := suite.token("teacher-1", domain.RoleTeacher, "CS")

	w, env := suite.do(http.MethodPost, "/api/v1/documents", token, map[string]string{"filePath": "x.pdf"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(env.Success)
}

func (suite *DocumentHandlerTestSuite) TestCreateDocument_StudentForbidden() {
	token := suite.token("s1", domain.RoleStudent, "CS")
	req := dto.CreateDocumentRequest{Title: "Notes", FilePath: "n.pdf"}
	suite.mockDocs.On("CreateDocument", mock.Anything, actorMatcher("s1", domain.RoleStudent), req).
		Return(nil, fmt.Errorf("%w: students cannot upload documents", apperrors.ErrForbidden)).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/documents", token, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.False(env.Success)
}

func (suite *DocumentHandlerTestSuite) TestGetDocument_NotFound() {
	token := suite.token("teacher-1", domain.RoleTeacher, "CS")
	suite.mockDocs.On("GetDocumentByID", mock.Anything, "missing", actorMatcher("teacher-1", domain.RoleTeacher)).
		Return(nil, apperrors.ErrNotFound).Once()

	w, env := suite.do(http.MethodGet, "/api/v1/documents/missing", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.False(env.Success)
}

func (suite *DocumentHandlerTestSuite) TestTransition_ClaimSuccess() {
	token := suite.token("head-cs", domain.RoleDepartmentHead, "CS")
	version := int64(1)
	req := dto.TransitionRequest{Version: &version}
	claimed := sampleDocument(domain.StatusUnderReview, 2)
	reviewer := "head-cs"
	claimed.CurrentReviewerID = &reviewer

	suite.mockWorkflow.On("Transition", mock.Anything, "doc-1", domain.EventClaim,
		mock.MatchedBy(func(a domain.Actor) bool {
			return a.ID == "head-cs" && a.Role == domain.RoleDepartmentHead && a.DepartmentID == "CS"
		}), req).
		Return(&domain.TransitionOutcome{Document: *claimed}, nil).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/documents/doc-1/claim", token, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(env.Success)
	doc := env.Data.(map[string]any)["document"].(map[string]any)
	suite.Equal("under_review", doc["status"])
	suite.Equal("head-cs", doc["currentReviewerID"])
	suite.EqualValues(2, doc["version"])
}

func (suite *DocumentHandlerTestSuite) TestTransition_VersionConflict() {
	token := suite.token("head-cs2", domain.RoleDepartmentHead, "CS")
	version := int64(1)
	req := dto.TransitionRequest{Version: &version}
	suite.mockWorkflow.On("Transition", mock.Anything, "doc-1", domain.EventClaim, mock.Anything, req).
		Return(nil, fmt.Errorf("claim doc-1: %w", apperrors.ErrVersionConflict)).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/documents/doc-1/claim", token, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.False(env.Success)
	suite.Equal("this document was just updated by someone else - please refresh", env.Message)
}

func (suite *DocumentHandlerTestSuite) TestTransition_ErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("%w: a comment is required to reject", apperrors.ErrValidation), http.StatusUnprocessableEntity},
		{"invalid transition", fmt.Errorf("%w: approve from pending_approval", apperrors.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"internal", apperrors.NewAppError(500, "db down", nil), http.StatusInternalServerError},
	}
	token := suite.token("head-cs", domain.RoleDepartmentHead, "CS")
	version := int64(2)
	req := dto.TransitionRequest{Version: &version}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockWorkflow.On("Transition", mock.Anything, "doc-1", domain.EventReject, mock.Anything, req).
				Return(nil, tc.err).Once()

			w, env := suite.do(http.MethodPost, "/api/v1/documents/doc-1/reject", token, req)
			suite.Equal(tc.status, w.Code)
			suite.False(env.Success)
		})
	}
}

func (suite *DocumentHandlerTestSuite) TestTransition_MissingVersion() {
	token := suite.token("teacher-1", domain.RoleTeacher, "CS")

	w, _ := suite.do(http.MethodPost, "/api/v1/documents/doc-1/submit", token, map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DocumentHandlerTestSuite) TestTransition_DegradedIsStillSuccess() {
	token := suite.token("head-cs", domain.RoleDepartmentHead, "CS")
	version := int64(2)
	comment := "Looks good"
	req := dto.TransitionRequest{Version: &version, Comment: &comment}
	suite.mockWorkflow.On("Transition", mock.Anything, "doc-1", domain.EventApprove, mock.Anything, req).
		Return(&domain.TransitionOutcome{Document: *sampleDocument(domain.StatusApproved, 3), AuditDegraded: true}, nil).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/documents/doc-1/approve", token, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(env.Success)
}

func (suite *DocumentHandlerTestSuite) TestListComments_InOrder() {
	token := suite.token("teacher-1", domain.RoleTeacher, "CS")
	actor := actorMatcher("teacher-1", domain.RoleTeacher)
	suite.mockDocs.On("GetDocumentByID", mock.Anything, "doc-1", actor).Return(sampleDocument(domain.StatusRejected, 3), nil).Once()
	suite.mockComments.On("ListForDocument", mock.Anything, "doc-1").Return([]domain.ReviewComment{
		{CommentID: "c1", DocumentID: "doc-1", Body: "first", Kind: domain.CommentGeneral},
		{CommentID: "c2", DocumentID: "doc-1", Body: "Missing rubric", Kind: domain.CommentRejection},
	}, nil).Once()

	w, env := suite.do(http.MethodGet, "/api/v1/documents/doc-1/comments", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	list := env.Data.([]any)
	suite.Require().Len(list, 2)
	suite.Equal("c1", list[0].(map[string]any)["commentID"])
	suite.Equal("rejection", list[1].(map[string]any)["kind"])
}

func (suite *DocumentHandlerTestSuite) TestListComments_EmptyThread() {
	token := suite.token("teacher-1", domain.RoleTeacher, "CS")
	suite.mockDocs.On("GetDocumentByID", mock.Anything, "doc-1", mock.Anything).Return(sampleDocument(domain.StatusDraft, 0), nil).Once()
	suite.mockComments.On("ListForDocument", mock.Anything, "doc-1").Return([]domain.ReviewComment{}, nil).Once()

	w, _ := suite.do(http.MethodGet, "/api/v1/documents/doc-1/comments", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"data":[]`)
}

func (suite *DocumentHandlerTestSuite) TestListComments_ForbiddenDocument() {
	token := suite.token("s1", domain.RoleStudent, "CS")
	suite.mockDocs.On("GetDocumentByID", mock.Anything, "doc-1", mock.Anything).Return(nil, apperrors.ErrForbidden).Once()

	w, _ := suite.do(http.MethodGet, "/api/v1/documents/doc-1/comments", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *DocumentHandlerTestSuite) TestBulkReview_PerItemResults() {
	token := suite.token("head-cs", domain.RoleDepartmentHead, "CS")
	v2, v5 := int64(2), int64(5)
	req := dto.BulkReviewRequest{
		Event: "approve",
		Items: []dto.BulkReviewItem{{ID: "doc-1", Version: &v2}, {ID: "doc-2", Version: &v5}, {ID: "doc-3", Version: &v2}},
	}
	suite.mockWorkflow.On("BulkTransition", mock.Anything, domain.EventApprove, actorMatcher("head-cs", domain.RoleDepartmentHead), req).
		Return([]domain.BulkItemResult{
			{DocumentID: "doc-1", Outcome: &domain.TransitionOutcome{Document: *sampleDocument(domain.StatusApproved, 3)}},
			{DocumentID: "doc-2", Err: fmt.Errorf("%w: expected version 5, current is 6", apperrors.ErrVersionConflict)},
			{DocumentID: "doc-3", Err: fmt.Errorf("%w: department_head may not approve this document", apperrors.ErrForbidden)},
		}, nil).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/documents/bulk-review", token, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.True(env.Success)
	data := env.Data.(map[string]any)
	suite.EqualValues(1, data["processed"])
	suite.EqualValues(2, data["failed"])
	items := data["items"].([]any)
	suite.Require().Len(items, 3)
	first := items[0].(map[string]any)
	suite.Equal(true, first["success"])
	suite.Equal("approved", first["status"])
	suite.EqualValues(3, first["version"])
	suite.Contains(items[1].(map[string]any)["error"], "please refresh")
	suite.Equal("You do not have permission to perform this action", items[2].(map[string]any)["error"])
}

func (suite *DocumentHandlerTestSuite) TestBulkReview_RejectsBadRequests() {
	token := suite.token("head-cs", domain.RoleDepartmentHead, "CS")
	v := int64(1)
	cases := []struct {
		name string
		body any
	}{
		{"no items", map[string]any{"event": "approve", "items": []any{}}},
		{"claim is not a decision", dto.BulkReviewRequest{Event: "claim", Items: []dto.BulkReviewItem{{ID: "doc-1", Version: &v}}}},
		{"missing version", map[string]any{"event": "approve", "items": []any{map[string]any{"id": "doc-1"}}}},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			w, env := suite.do(http.MethodPost, "/api/v1/documents/bulk-review", token, tc.body)
			suite.Equal(http.StatusBadRequest, w.Code)
			suite.False(env.Success)
		})
	}
}

func (suite *DocumentHandlerTestSuite) TestBulkReview_RejectWithoutComment() {
	token := suite.token("dean-1", domain.RoleCollegeDean, "")
	v := int64(2)
	req := dto.BulkReviewRequest{Event: "reject", Items: []dto.BulkReviewItem{{ID: "doc-1", Version: &v}}}
	suite.mockWorkflow.On("BulkTransition", mock.Anything, domain.EventReject, mock.Anything, req).
		Return(nil, fmt.Errorf("%w: a rejection requires a comment", apperrors.ErrValidation)).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/documents/bulk-review", token, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(env.Message, "requires a comment")
}

func (suite *DocumentHandlerTestSuite) TestCreateComment_Success() {
	token := suite.token("head-cs", domain.RoleDepartmentHead, "CS")
	req := dto.CreateCommentRequest{Body: "Please add references"}
	suite.mockWorkflow.On("Comment", mock.Anything, "doc-1", actorMatcher("head-cs", domain.RoleDepartmentHead), req).
		Return(&domain.ReviewComment{CommentID: "c9", DocumentID: "doc-1", AuthorID: "head-cs", Body: req.Body, Kind: domain.CommentGeneral}, nil).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/documents/doc-1/comments", token, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("general", env.Data.(map[string]any)["kind"])
}

func (suite *DocumentHandlerTestSuite) TestMarkCommentRead() {
	token := suite.token("teacher-1", domain.RoleTeacher, "CS")
	readAt := time.Now().UTC()
	suite.mockComments.On("MarkRead", mock.Anything, "c1", actorMatcher("teacher-1", domain.RoleTeacher)).
		Return(&domain.ReviewComment{CommentID: "c1", IsRead: true, ReadAt: &readAt}, nil).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/comments/c1/read", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(true, env.Data.(map[string]any)["isRead"])
}

func (suite *DocumentHandlerTestSuite) TestRequiresToken() {
	w, env := suite.do(http.MethodGet, "/api/v1/documents/doc-1", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.False(env.Success)
}

func (suite *DocumentHandlerTestSuite) TestRejectsTokenFromOtherIssuer() {
	claims := middleware.Claims{
		Role: string(domain.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "root",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	w, _ := suite.do(http.MethodGet, "/api/v1/documents/doc-1", token, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}
