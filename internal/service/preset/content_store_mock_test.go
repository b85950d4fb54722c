package preset

import (
	"context"
	"sync"

	"github.com/soletra/backdrop-backend/internal/adapter/contentstore"
)

var _ contentStore = &contentStoreMock{}

type contentStoreMock struct {
	ListFunc    func(ctx context.Context, pageSize int, cursor string) (*contentstore.Page, error)
	GetByIDFunc func(ctx context.Context, id string) (*contentstore.Record, error)
	CreateFunc  func(ctx context.Context, fields []contentstore.Field) error
	UpdateFunc  func(ctx context.Context, id string, fields []contentstore.Field) error
	DeleteFunc  func(ctx context.Context, id string) error

	calls struct {
		List []struct {
			PageSize int
			Cursor   string
		}
		Create []struct {
			Fields []contentstore.Field
		}
		Update []struct {
			ID     string
			Fields []contentstore.Field
		}
		Delete []struct {
			ID string
		}
	}
	lock sync.Mutex
}

func (mock *contentStoreMock) List(ctx context.Context, pageSize int, cursor string) (*contentstore.Page, error) {
	if mock.ListFunc == nil {
		panic("contentStoreMock.ListFunc: method is nil but contentStore.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct {
		PageSize int
		Cursor   string
	}{pageSize, cursor})
	mock.lock.Unlock()
	return mock.ListFunc(ctx, pageSize, cursor)
}

func (mock *contentStoreMock) ListCalls() []struct {
	PageSize int
	Cursor   string
} {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	return mock.calls.List
}

func (mock *contentStoreMock) GetByID(ctx context.Context, id string) (*contentstore.Record, error) {
	if mock.GetByIDFunc == nil {
		panic("contentStoreMock.GetByIDFunc: method is nil but contentStore.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *contentStoreMock) Create(ctx context.Context, fields []contentstore.Field) error {
	if mock.CreateFunc == nil {
		panic("contentStoreMock.CreateFunc: method is nil but contentStore.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Fields []contentstore.Field
	}{fields})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, fields)
}

func (mock *contentStoreMock) CreateCalls() []struct {
	Fields []contentstore.Field
} {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	return mock.calls.Create
}

func (mock *contentStoreMock) Update(ctx context.Context, id string, fields []contentstore.Field) error {
	if mock.UpdateFunc == nil {
		panic("contentStoreMock.UpdateFunc: method is nil but contentStore.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		ID     string
		Fields []contentstore.Field
	}{id, fields})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, id, fields)
}

func (mock *contentStoreMock) UpdateCalls() []struct {
	ID     string
	Fields []contentstore.Field
} {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	return mock.calls.Update
}

func (mock *contentStoreMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("contentStoreMock.DeleteFunc: method is nil but contentStore.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct {
		ID string
	}{id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *contentStoreMock) DeleteCalls() []struct {
	ID string
} {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	return mock.calls.Delete
}

// passthroughSanitizer leaves markup untouched so tests can assert on
// exact values.
type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(html string) string { return html }

// markingSanitizer tags its input so tests can verify the sanitizer ran.
type markingSanitizer struct{}

func (markingSanitizer) Sanitize(html string) string { return "SANITIZED:" + html }

// cacheInvalidatorMock counts invalidations.
type cacheInvalidatorMock struct {
	BustCacheFunc func(ctx context.Context) error

	mu    sync.Mutex
	busts int
}

func (mock *cacheInvalidatorMock) BustCache(ctx context.Context) error {
	mock.mu.Lock()
	mock.busts++
	mock.mu.Unlock()
	if mock.BustCacheFunc != nil {
		return mock.BustCacheFunc(ctx)
	}
	return nil
}

func (mock *cacheInvalidatorMock) BustCalls() int {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.busts
}
