package activation

import (
	"context"
	"sync"

	"github.com/soletra/backdrop-backend/internal/domain"
)

var _ presetLister = &presetListerMock{}

type presetListerMock struct {
	ListFunc func(ctx context.Context) ([]domain.BackgroundPreset, error)

	calls struct {
		List int
	}
	lock sync.Mutex
}

func (mock *presetListerMock) List(ctx context.Context) ([]domain.BackgroundPreset, error) {
	if mock.ListFunc == nil {
		panic("presetListerMock.ListFunc: method is nil but presetLister.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List++
	mock.lock.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *presetListerMock) ListCalls() int {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	return mock.calls.List
}

type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(html string) string { return html }

type sinkMock struct {
	lock    sync.Mutex
	records []domain.Telemetry
}

func (s *sinkMock) Record(_ context.Context, _ string, t domain.Telemetry) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.records = append(s.records, t)
}

func (s *sinkMock) Records() []domain.Telemetry {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.records
}
