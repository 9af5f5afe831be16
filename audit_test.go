package portalauth

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

type gateSink struct {
	gate chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{
		gate: make(chan struct{}),
	}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func TestAuditDispatcherDisabledIsNil(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, &countingSink{})
	if d != nil {
		t.Fatal("disabled audit config must not start a dispatcher")
	}

	// Nil dispatcher methods must be safe to call.
	d.Emit(context.Background(), AuditEvent{EventType: "login"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher must report zero drops")
	}
}

func TestAuditDispatcherDeliversEvents(t *testing.T) {
	sink := NewChannelSink(8)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8}, sink)
	defer d.Close()

	d.Emit(context.Background(), AuditEvent{EventType: "login", UserID: "u1", Success: true})

	select {
	case event := <-sink.Events():
		if event.EventType != "login" || event.UserID != "u1" || !event.Success {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}

func TestAuditDispatcherDropIfFull(t *testing.T) {
	sink := newGateSink()
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// First event occupies the worker, second fills the buffer, the rest drop.
	for i := 0; i < 6; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: "guard_business"})
	}

	deadline := time.Now().Add(2 * time.Second)
	for d.Dropped() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if d.Dropped() == 0 {
		t.Fatal("expected dropped events when buffer is full")
	}

	close(sink.gate)
	d.Close()
}

func TestAuditDispatcherDrainsOnClose(t *testing.T) {
	sink := &countingSink{}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 16}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: "logout"})
	}
	d.Close()

	if got := sink.Count(); got != 10 {
		t.Fatalf("expected 10 delivered events after close, got %d", got)
	}
}

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{EventType: "login", UserID: "u1", Success: true})
	sink.Emit(context.Background(), AuditEvent{EventType: "logout", UserID: "u1", Success: true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	var event AuditEvent
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if event.EventType != "login" || event.UserID != "u1" {
		t.Fatalf("unexpected event: %+v", event)
	}
}
