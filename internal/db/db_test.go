package db

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Verify tables exist by counting rows in each one.
	tables := []string{
		"quote_requests", "brochure_requests", "warranty_claims",
		"events", "event_registrations", "reviews", "articles",
		"audit_entries", "notifications", "admin_users",
	}

	for _, table := range tables {
		var count int
		err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	var timeout int
	if err := d.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatal(err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", timeout)
	}

	var fk int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestOpenConcurrentWriters(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	const writers, perWriter = 16, 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := d.Exec(
					"INSERT INTO audit_entries (id, timestamp, actor, action, collection) VALUES (?, ?, ?, ?, ?)",
					fmt.Sprintf("a-%d-%d", w, i), time.Now().UTC(), "admin", "create", "quotes",
				)
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		t.Errorf("concurrent insert: %v", err)
	}
	var n int
	if err := d.QueryRow("SELECT COUNT(*) FROM audit_entries").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != writers*perWriter {
		t.Errorf("rows = %d, want %d", n, writers*perWriter)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestUpdateStatusAndDelete(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()
	ctx := context.Background()

	now := time.Now().UTC()
	_, err = d.ExecContext(ctx,
		`INSERT INTO brochure_requests (id, name, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		"b-1", "Jo", "jo@example.com", now, now,
	)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	prev, err := d.UpdateStatus(ctx, "brochure_requests", "b-1", "sent")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if prev != "pending" {
		t.Errorf("previous = %q, want pending", prev)
	}

	counts, err := d.CountByStatus(ctx, "brochure_requests")
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts["sent"] != 1 {
		t.Errorf("expected 1 sent, got %v", counts)
	}

	if _, err := d.UpdateStatus(ctx, "brochure_requests", "missing", "sent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := d.DeleteByID(ctx, "brochure_requests", "b-1"); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := d.DeleteByID(ctx, "brochure_requests", "b-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
