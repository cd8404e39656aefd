package server

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/appengine-ltd/money-smartz/internal/storage/sqlite"
)

func (l *gameLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func TestGameLocksReleaseEntries(t *testing.T) {
	l := newGameLocks()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("g1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 20 {
		t.Fatalf("counter = %d, want 20", counter)
	}
	if n := l.size(); n != 0 {
		t.Fatalf("locks left = %d, want 0", n)
	}
}

func TestUnknownGameLeavesNoLock(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "locks.db"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	srv := New(store, nil)
	h := srv.Handler()

	for _, path := range []string{"/games/missing/advance", "/games/missing/commands"} {
		body := ""
		if path == "/games/missing/commands" {
			body = `{"command":"status"}`
		}
		ctx := do(t, h, fasthttp.MethodPost, path, body)
		if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
			t.Fatalf("%s status = %d", path, ctx.Response.StatusCode())
		}
	}
	if n := srv.locks.size(); n != 0 {
		t.Fatalf("locks left = %d, want 0", n)
	}
}
