package services

import (
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/platform/config"
)

// Adapters groups the outbound integrations the services depend on.
type Adapters struct {
	Channels []portssvc.NotificationChannel
	Alerter  portssvc.OperatorAlerter
	Metrics  *Metrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The caller owns the returned container and must Close its notification service.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, adapters Adapters) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Leaves first: the engine coordinates everything below it
	container.Audit = NewAuditSink(repos.AuditRepo, adapters.Alerter, adapters.Metrics, AuditConfig{
		MaxAttempts:  cfg.AuditMaxAttempts,
		RetryBackoff: cfg.AuditRetryBackoff,
	})
	container.Notification = NewNotificationDispatcher(adapters.Channels, adapters.Metrics, DispatcherConfig{
		Workers:     cfg.NotifyWorkers,
		QueueSize:   cfg.NotifyQueueSize,
		MaxAttempts: cfg.NotifyMaxAttempts,
	})
	container.Document = NewDocumentStore(repos.DocumentRepo, WithDocumentAudit(container.Audit, repos.TxManager))
	container.Comment = NewCommentLedger(repos.CommentRepo, repos.DocumentRepo)
	container.Department = NewDepartmentDirectory(repos.DepartmentRepo, container.Audit)

	container.Workflow = NewWorkflowEngine(WorkflowDeps{
		DocumentRepo:   repos.DocumentRepo,
		DepartmentRepo: repos.DepartmentRepo,
		TxManager:      repos.TxManager,
		Documents:      container.Document,
		Comments:       container.Comment,
		Audit:          container.Audit,
		Notifier:       container.Notification,
		Metrics:        adapters.Metrics,
	})

	return container
}
