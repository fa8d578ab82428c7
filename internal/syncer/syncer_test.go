package syncer

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mclauncher/internal/models"
	"mclauncher/internal/progress"
)

func sha1Hex(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

/**
 * countingFetcher serves fixed content per URL and records calls
 * @description
 * - tracks the peak number of concurrent Fetch calls
 * - corrupt URLs serve bytes that do not match their task digest
 */
type countingFetcher struct {
	mu       sync.Mutex
	content  map[string][]byte
	calls    map[string]int
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	onFetch  func(url string)
}

func newCountingFetcher() *countingFetcher {
	return &countingFetcher{content: map[string][]byte{}, calls: map[string]int{}}
}

func (f *countingFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if cur <= p || f.peak.CompareAndSwap(p, cur) {
			break
		}
	}
	f.mu.Lock()
	f.calls[url]++
	data, ok := f.content[url]
	f.mu.Unlock()
	if f.onFetch != nil {
		f.onFetch(url)
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if !ok {
		return nil, -1, fmt.Errorf("%w: %s", models.ErrNotFound, url)
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (f *countingFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func makeTasks(t *testing.T, f *countingFetcher, dir string, n int) []models.Task {
	t.Helper()
	tasks := make([]models.Task, 0, n)
	for i := 0; i < n; i++ {
		data := []byte(fmt.Sprintf("object-%d", i))
		hash := sha1Hex(data)
		url := "https://objects.test/" + hash
		f.content[url] = data
		tasks = append(tasks, models.Task{
			Name: fmt.Sprintf("obj%d", i),
			Kind: models.KindAsset,
			URL:  url,
			Dest: filepath.Join(dir, hash[:2], hash),
			SHA1: hash,
			Size: int64(len(data)),
		})
	}
	return tasks
}

func TestSyncIdempotent(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	tasks := makeTasks(t, f, dir, 20)
	s := New(f, Options{Workers: 4})

	first := s.Sync(context.Background(), tasks, nil)
	if !first.Complete() || first.Succeeded != 20 || first.Skipped != 0 {
		t.Fatalf("first pass = %s", first.Summary())
	}

	before := f.total()
	second := s.Sync(context.Background(), tasks, nil)
	if f.total() != before {
		t.Fatalf("second pass fetched %d objects, want 0", f.total()-before)
	}
	if second.Skipped != 20 || second.Succeeded != 0 || !second.Complete() {
		t.Fatalf("second pass = %s", second.Summary())
	}
}

func TestSyncRefetchesOnlyCorrupt(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	tasks := makeTasks(t, f, dir, 10)
	s := New(f, Options{Workers: 3})
	if r := s.Sync(context.Background(), tasks, nil); !r.Complete() {
		t.Fatalf("initial sync: %s", r.Summary())
	}

	victim := tasks[4]
	data, _ := os.ReadFile(victim.Dest)
	data[0] ^= 0xff
	if err := os.WriteFile(victim.Dest, data, 0644); err != nil {
		t.Fatal(err)
	}

	before := f.total()
	r := s.Sync(context.Background(), tasks, nil)
	if got := f.total() - before; got != 1 {
		t.Fatalf("refetched %d objects, want exactly 1", got)
	}
	if r.Succeeded != 1 || r.Skipped != 9 || !r.Complete() {
		t.Fatalf("result = %s", r.Summary())
	}
}

func TestSyncPartialFailure(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	tasks := makeTasks(t, f, dir, 6)
	// serve the wrong bytes for one object
	f.content[tasks[2].URL] = []byte("tampered!")

	r := New(f, Options{Workers: 2}).Sync(context.Background(), tasks, nil)
	if r.Succeeded != 5 || r.Failed != 1 || r.Complete() {
		t.Fatalf("result = %s, want 5 succeeded 1 failed", r.Summary())
	}
	fails := r.Failures()
	if len(fails) != 1 || fails[0].Task.Name != tasks[2].Name {
		t.Fatalf("failures = %+v", fails)
	}
	if !errors.Is(fails[0].Err, models.ErrIntegrityMismatch) {
		t.Fatalf("failure error = %v, want ErrIntegrityMismatch", fails[0].Err)
	}
	if _, err := os.Stat(tasks[2].Dest); !os.IsNotExist(err) {
		t.Fatal("mismatched object must not be placed in the store")
	}
	entries, _ := os.ReadDir(filepath.Dir(tasks[2].Dest))
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("temporary file %s left behind", e.Name())
		}
	}
}

func TestSyncMissingRemote(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	tasks := makeTasks(t, f, dir, 3)
	delete(f.content, tasks[0].URL)

	r := New(f, Options{Workers: 2}).Sync(context.Background(), tasks, nil)
	if r.Failed != 1 || r.Succeeded != 2 {
		t.Fatalf("result = %s", r.Summary())
	}
	if !errors.Is(r.Failures()[0].Err, models.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", r.Failures()[0].Err)
	}
}

func TestSyncBoundedConcurrency(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	f.delay = 5 * time.Millisecond
	tasks := makeTasks(t, f, dir, 40)

	r := New(f, Options{Workers: 3}).Sync(context.Background(), tasks, nil)
	if !r.Complete() {
		t.Fatalf("result = %s", r.Summary())
	}
	if peak := f.peak.Load(); peak > 3 {
		t.Fatalf("peak concurrent fetches = %d, want <= 3", peak)
	}
}

func TestSyncDuplicateDestinations(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	tasks := makeTasks(t, f, dir, 2)
	tasks = append(tasks, tasks[0], tasks[1], tasks[0])

	r := New(f, Options{Workers: 4}).Sync(context.Background(), tasks, nil)
	if r.Total() != 2 || f.total() != 2 {
		t.Fatalf("total = %d fetches = %d, want 2 and 2", r.Total(), f.total())
	}
}

func TestSyncCancellation(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	tasks := makeTasks(t, f, dir, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.onFetch = func(string) { cancel() }

	r := New(f, Options{Workers: 1}).Sync(ctx, tasks, nil)
	if !r.Cancelled || r.Complete() {
		t.Fatalf("result = %s, want cancelled", r.Summary())
	}
	if got := f.total(); got != 1 {
		t.Fatalf("fetches after cancellation = %d, want 1", got)
	}
	if r.Succeeded+r.Failed != 10 {
		t.Fatalf("every item must end terminal, got %s", r.Summary())
	}
	for _, it := range r.Items {
		if !it.State.Terminal() {
			t.Fatalf("item %s left in state %s", it.Task.Name, it.State)
		}
	}
}

func TestSyncProgress(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	tasks := makeTasks(t, f, dir, 25)

	var mu sync.Mutex
	var percents []int
	rep := progress.Func(func(_ string, p int) {
		mu.Lock()
		percents = append(percents, p)
		mu.Unlock()
	})
	r := New(f, Options{Workers: 4, ProgressEvery: 5}).Sync(context.Background(), tasks, rep)
	if !r.Complete() {
		t.Fatal(r.Summary())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(percents) == 0 || percents[len(percents)-1] != 100 {
		t.Fatalf("progress = %v, want final 100", percents)
	}
	// start, present, 5 coalesced completions, final
	if len(percents) > 8 {
		t.Fatalf("progress not coalesced: %d updates", len(percents))
	}
	last := 0
	for _, p := range percents {
		if p < last || p > 100 {
			t.Fatalf("progress not monotonic in [0,100]: %v", percents)
		}
		last = p
	}
}

func TestSyncEmpty(t *testing.T) {
	r := New(newCountingFetcher(), Options{}).Sync(context.Background(), nil, nil)
	if !r.Complete() || r.Total() != 0 {
		t.Fatalf("empty sync = %s", r.Summary())
	}
}

func TestSyncUnhashedTask(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	f.content["https://libs.test/a.jar"] = []byte("jar bytes")
	task := models.Task{Name: "a", Kind: models.KindLibrary, URL: "https://libs.test/a.jar", Dest: filepath.Join(dir, "a.jar")}

	s := New(f, Options{Workers: 1})
	if r := s.Sync(context.Background(), []models.Task{task}, nil); r.Succeeded != 1 {
		t.Fatalf("first = %s", r.Summary())
	}
	if r := s.Sync(context.Background(), []models.Task{task}, nil); r.Skipped != 1 {
		t.Fatalf("present unhashed file should be skipped, got %s", r.Summary())
	}
}

func TestSyncForceRefetchesUnhashed(t *testing.T) {
	dir := t.TempDir()
	f := newCountingFetcher()
	f.content["https://libs.test/b.jar"] = []byte("fresh bytes")
	dest := filepath.Join(dir, "b.jar")
	if err := os.WriteFile(dest, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	task := models.Task{Name: "b", Kind: models.KindLibrary, URL: "https://libs.test/b.jar", Dest: dest, Force: true}

	r := New(f, Options{Workers: 1}).Sync(context.Background(), []models.Task{task}, nil)
	if r.Succeeded != 1 || f.total() != 1 {
		t.Fatalf("forced sync = %s, fetches = %d", r.Summary(), f.total())
	}
	got, _ := os.ReadFile(dest)
	if string(got) != "fresh bytes" {
		t.Errorf("dest content = %q, want refetched bytes", got)
	}
}
