package ctxutil

import (
	"context"
	"testing"
)

func TestWithSubject_And_SubjectFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithSubject(context.Background(), "admin")

	got, ok := SubjectFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid subject")
	}
	if got != "admin" {
		t.Fatalf("expected admin, got %s", got)
	}
}

func TestSubjectFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := SubjectFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestSubjectFromCtx_EmptySubject(t *testing.T) {
	t.Parallel()

	ctx := WithSubject(context.Background(), "")

	_, ok := SubjectFromCtx(ctx)
	if ok {
		t.Fatal("expected ok=false for empty subject")
	}
}

func TestSubjectFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("subject"), 42)

	got, ok := SubjectFromCtx(ctx)
	if ok {
		t.Fatal("expected ok=false for wrong type")
	}
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	got := RequestIDFromCtx(ctx)
	if got != "req-123" {
		t.Fatalf("expected req-123, got %s", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got := RequestIDFromCtx(context.Background())
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestRequestIDFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("request_id"), 12345)

	got := RequestIDFromCtx(ctx)
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
