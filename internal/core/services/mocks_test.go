package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

// --- Mock NotificationSvc ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, recipientID, message, documentID string) {
	m.Called(ctx, recipientID, message, documentID)
}

func (m *MockNotifier) Close() {
	m.Called()
}

// --- Mock OperatorAlerter ---
type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) Alert(ctx context.Context, subject, body string) error {
	args := m.Called(ctx, subject, body)
	return args.Error(0)
}

// --- Mock NotificationChannel ---
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Name() string {
	return "mock"
}

func (m *MockChannel) Deliver(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// recordingChannel collects delivered notifications.
type recordingChannel struct {
	mu  sync.Mutex
	got []domain.Notification
}

func (r *recordingChannel) Name() string { return "recording" }

func (r *recordingChannel) Deliver(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return nil
}

func (r *recordingChannel) delivered() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.got...)
}

// counterValue sums every series of a counter family in reg.
func counterValue(reg *prometheus.Registry, name string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return -1
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
