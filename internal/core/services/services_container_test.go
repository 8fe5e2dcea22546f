package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/core/services"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/SscSPs/academic_docs_app/internal/platform/config"
	"github.com/SscSPs/academic_docs_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceContainer_WiresASubmittableWorkflow(t *testing.T) {
	store := memory.NewStore()
	head := "head-cs"
	store.SaveDepartment(domain.Department{DepartmentID: "CS", Name: "Computer Science", HeadUserID: &head})
	channel := &recordingChannel{}

	cfg := &config.Config{NotifyWorkers: 1, NotifyQueueSize: 8, NotifyMaxAttempts: 1, AuditMaxAttempts: 2}
	container := services.NewServiceContainer(cfg, store.Provider(), services.Adapters{
		Channels: []portssvc.NotificationChannel{channel},
		Alerter:  &MockAlerter{},
		Metrics:  services.NewMetrics(nil),
	})

	ctx := context.Background()
	teacher := domain.Actor{ID: "teacher-1", Role: domain.RoleTeacher, DepartmentID: "CS"}
	doc, err := container.Document.CreateDocument(ctx, teacher, dto.CreateDocumentRequest{Title: "Syllabus", FilePath: "s.pdf"})
	require.NoError(t, err)

	version := doc.Version
	outcome, err := container.Workflow.Transition(ctx, doc.DocumentID, domain.EventSubmit, teacher, dto.TransitionRequest{Version: &version})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, outcome.Document.Status)

	container.Notification.Close()
	delivered := channel.delivered()
	require.Len(t, delivered, 1)
	assert.Equal(t, head, delivered[0].RecipientID)

	admin := domain.Actor{ID: "root", Role: domain.RoleAdmin}
	entries, err := container.Audit.List(ctx, admin, domain.AuditFilter{DocumentID: doc.DocumentID})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	newHead := "head-cs-new"
	_, err = container.Department.Upsert(ctx, admin, "CS", dto.UpsertDepartmentRequest{Name: "Computer Science", HeadUserID: &newHead})
	require.NoError(t, err)
	depts, err := container.Department.List(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, newHead, *depts[0].HeadUserID)
}
