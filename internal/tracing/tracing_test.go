package tracing

import (
	"context"
	"testing"
)

func TestInitTracerNoneExporter(t *testing.T) {
	ctx := context.Background()
	shutdown, err := InitTracer(ctx, Config{ServiceName: "test", TracesExport: "none"})
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
	}()

	spanCtx, span := StartSpan(ctx, "test.operation")
	if spanCtx == nil {
		t.Fatalf("StartSpan returned a nil context")
	}
	span.End()

	if GetTracer() == nil {
		t.Fatalf("GetTracer returned nil after init")
	}
}

func TestInitTracerRequiresServiceName(t *testing.T) {
	if _, err := InitTracer(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for missing service name")
	}
}
