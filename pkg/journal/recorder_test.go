package journal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// blockingStore holds every Save until release is closed.
type blockingStore struct {
	*MemoryStore
	release chan struct{}
	once    sync.Once
}

func (s *blockingStore) Save(ctx context.Context, rec *Record) error {
	<-s.release
	return s.MemoryStore.Save(ctx, rec)
}

func (s *blockingStore) unblock() {
	s.once.Do(func() { close(s.release) })
}

type failingStore struct {
	*MemoryStore
}

func (failingStore) Save(ctx context.Context, rec *Record) error {
	return errors.New("disk full")
}

func TestRecorder_WritesAndDrainsOnClose(t *testing.T) {
	store := NewMemoryStore()
	rec := NewRecorder(store, 10, nil)

	for i := 0; i < 5; i++ {
		if !rec.Record(context.Background(), &Record{Operation: "chat", Status: "ok"}) {
			t.Fatalf("record %d rejected", i)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if n, _ := store.Count(context.Background()); n != 5 {
		t.Errorf("expected 5 records after drain, got %d", n)
	}
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	store := &blockingStore{MemoryStore: NewMemoryStore(), release: make(chan struct{})}
	rec := NewRecorder(store, 1, nil)
	defer func() {
		store.unblock()
		_ = rec.Close()
	}()

	// The worker takes the first record and blocks on it; the second fills
	// the buffer.
	rec.Record(context.Background(), &Record{Operation: "chat"})
	deadline := time.Now().Add(time.Second)
	for len(rec.records) != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !rec.Record(context.Background(), &Record{Operation: "chat"}) {
		t.Fatal("expected buffered record accepted")
	}

	if rec.Record(context.Background(), &Record{Operation: "chat"}) {
		t.Error("expected record dropped when buffer is full")
	}
}

func TestRecorder_AfterClose(t *testing.T) {
	rec := NewRecorder(NewMemoryStore(), 1, nil)
	_ = rec.Close()

	if rec.Record(context.Background(), &Record{Operation: "chat"}) {
		t.Error("expected record after close to be dropped")
	}
	if err := rec.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestRecorder_StoreErrorDoesNotStopWorker(t *testing.T) {
	rec := NewRecorder(failingStore{NewMemoryStore()}, 4, nil)

	rec.Record(context.Background(), &Record{Operation: "chat"})
	rec.Record(context.Background(), &Record{Operation: "chat"})

	done := make(chan struct{})
	go func() {
		_ = rec.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close() did not return after store errors")
	}
}
