package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/core/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditEntries(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Test Suite ---
type AuditSinkTestSuite struct {
	suite.Suite
	mockRepo *MockAuditRepository
	alerter  *MockAlerter
	registry *prometheus.Registry
	sink     portssvc.AuditSinkSvc
}

func (suite *AuditSinkTestSuite) SetupTest() {
	suite.mockRepo = new(MockAuditRepository)
	suite.alerter = new(MockAlerter)
	suite.registry = prometheus.NewRegistry()
	suite.sink = services.NewAuditSink(suite.mockRepo, suite.alerter, services.NewMetrics(suite.registry),
		services.AuditConfig{MaxAttempts: 3, RetryBackoff: time.Millisecond})
}

func entryFor(action string) domain.AuditLogEntry {
	return domain.AuditLogEntry{ActorID: headCS.ID, DocumentID: "doc-1", Action: action, Severity: domain.SeverityMedium}
}

func (suite *AuditSinkTestSuite) TestRecord_RetriesThenSucceeds() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAuditEntry", ctx, mock.Anything).Return(assert.AnError).Twice()
	suite.mockRepo.On("SaveAuditEntry", ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.EntryID != "" && e.Action == "approve" && !e.CreatedAt.IsZero()
	})).Return(nil).Once()

	err := suite.sink.Record(ctx, entryFor("approve"))

	suite.NoError(err)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAuditEntry", 3)
	suite.alerter.AssertNotCalled(suite.T(), "Alert", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(float64(0), counterValue(suite.registry, "docflow_audit_write_failures_total"))
}

func (suite *AuditSinkTestSuite) TestRecord_ExhaustedRetriesAlert() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAuditEntry", ctx, mock.Anything).Return(assert.AnError)
	suite.alerter.On("Alert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	err := suite.sink.Record(ctx, entryFor("reject"))

	suite.ErrorIs(err, apperrors.ErrAuditWriteFailed)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAuditEntry", 3)
	suite.alerter.AssertExpectations(suite.T())
	suite.Equal(float64(1), counterValue(suite.registry, "docflow_audit_write_failures_total"))
}

func (suite *AuditSinkTestSuite) TestRecord_AlertFailureIsSwallowed() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAuditEntry", ctx, mock.Anything).Return(assert.AnError)
	suite.alerter.On("Alert", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	err := suite.sink.Record(ctx, entryFor("reject"))

	suite.ErrorIs(err, apperrors.ErrAuditWriteFailed)
}

func (suite *AuditSinkTestSuite) TestRecord_InvalidEntry() {
	err := suite.sink.Record(context.Background(), domain.AuditLogEntry{Action: "submit"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	bad := entryFor("submit")
	bad.Severity = "urgent"
	err = suite.sink.Record(context.Background(), bad)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAuditEntry", mock.Anything, mock.Anything)
}

func (suite *AuditSinkTestSuite) TestRecordWith_SingleAttempt() {
	ctx := context.Background()
	writer := new(MockAuditRepository)
	writer.On("SaveAuditEntry", ctx, mock.Anything).Return(assert.AnError).Once()

	err := suite.sink.RecordWith(ctx, writer, entryFor("claim"))

	suite.ErrorIs(err, apperrors.ErrAuditWriteFailed)
	writer.AssertNumberOfCalls(suite.T(), "SaveAuditEntry", 1)
	suite.alerter.AssertNotCalled(suite.T(), "Alert", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuditSinkTestSuite) TestList_AdminOnly() {
	_, err := suite.sink.List(context.Background(), dean, domain.AuditFilter{})
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AuditSinkTestSuite) TestList_ClampsLimit() {
	ctx := context.Background()
	suite.mockRepo.On("ListAuditEntries", ctx, domain.AuditFilter{Limit: domain.DefaultAuditLimit}).Return(nil, nil).Once()
	suite.mockRepo.On("ListAuditEntries", ctx, domain.AuditFilter{Action: "reject", Limit: domain.MaxAuditLimit}).
		Return([]domain.AuditLogEntry{entryFor("reject")}, nil).Once()

	entries, err := suite.sink.List(ctx, admin, domain.AuditFilter{})
	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)

	entries, err = suite.sink.List(ctx, admin, domain.AuditFilter{Action: "reject", Limit: 500})
	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditSinkTestSuite) TestList_RejectsBadWindow() {
	since := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	until := since.Add(-time.Hour)

	_, err := suite.sink.List(context.Background(), admin, domain.AuditFilter{Since: &since, Until: &until})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestAuditSinkTestSuite(t *testing.T) {
	suite.Run(t, new(AuditSinkTestSuite))
}
