// Package syncer brings a set of content-store objects to a verified state,
// fetching only what is missing or corrupt through a bounded worker pool.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sourcegraph/conc/pool"

	"mclauncher/internal/fetch"
	"mclauncher/internal/logger"
	"mclauncher/internal/models"
	"mclauncher/internal/progress"
	"mclauncher/internal/store"
)

const (
	DefaultWorkers       = 8
	DefaultProgressEvery = 5
)

type Options struct {
	// Workers bounds concurrent fetches and hashing, independent of task count
	Workers int
	// ProgressEvery coalesces progress to one update per N completions
	ProgressEvery int
	Observer      Observer
}

/**
 * Observer receives per-object outcomes, e.g. for metrics
 * @description
 * - Called from worker goroutines; implementations must be safe for concurrent use
 */
type Observer interface {
	Skipped(kind models.ObjectKind)
	FetchStarted(kind models.ObjectKind)
	FetchFinished(kind models.ObjectKind, state models.ItemState, bytes int64, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) Skipped(models.ObjectKind)      {}
func (nopObserver) FetchStarted(models.ObjectKind) {}
func (nopObserver) FetchFinished(models.ObjectKind, models.ItemState, int64, time.Duration) {
}

type Synchronizer struct {
	fetcher fetch.Fetcher
	opts    Options
}

func New(fetcher fetch.Fetcher, opts Options) *Synchronizer {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Synchronizer{fetcher: fetcher, opts: opts}
}

func (s *Synchronizer) Workers() int {
	return s.opts.Workers
}

/**
 * Synchronize tasks into the content store
 * @param {context.Context} ctx - Cancelling stops dispatch; in-flight fetches may complete
 * @param {[]models.Task} tasks - Flat task list; duplicate destinations collapse to one item
 * @param {progress.Reporter} reporter - Receives coalesced, non-decreasing progress
 * @returns {*models.SyncResult} Per-item outcome and totals; never nil
 * @description
 * - Phase 1 classifies every destination (missing/corrupt/valid) on the pool
 * - Phase 2 fetches the non-valid ones on the pool, writing each to a
 *   temporary sibling and renaming only after the digest matches
 * - A failed item never aborts the others; Complete() is false if any failed
 * - No automatic retry, callers decide
 */
func (s *Synchronizer) Sync(ctx context.Context, tasks []models.Task, reporter progress.Reporter) *models.SyncResult {
	items := dedupe(tasks)
	relay := progress.NewRelay(reporter, 4*s.opts.Workers)
	result := &models.SyncResult{}

	if len(items) == 0 {
		relay.Close("Nothing to synchronize", 100)
		return result
	}
	relay.Report(fmt.Sprintf("Checking %d files", len(items)), 0)

	classified := s.classify(ctx, items)

	var needed []int
	for i := range items {
		it := &items[i]
		if it.State.Terminal() {
			continue
		}
		if classified[i] == store.StatusValid {
			it.State = models.StateSkipped
			s.opts.Observer.Skipped(it.Task.Kind)
			logger.Debugf("'%s' already valid, skipping", it.Task.Name)
			continue
		}
		needed = append(needed, i)
	}

	total := len(items)
	present := total - len(needed)
	relay.Report(fmt.Sprintf("%d of %d files already present", present, total), present*100/total)

	if len(needed) > 0 {
		s.fetchAll(ctx, items, needed, present, relay)
	}

	for _, it := range items {
		switch it.State {
		case models.StateSkipped:
			result.Skipped++
		case models.StateValid:
			result.Succeeded++
			result.Bytes += it.Bytes
		default:
			result.Failed++
			if errors.Is(it.Err, models.ErrCancelled) {
				result.Cancelled = true
			}
		}
	}
	result.Items = items

	summary := result.Summary()
	if result.Bytes > 0 {
		summary += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(result.Bytes)))
	}
	if result.Complete() {
		relay.Close(summary, 100)
	} else {
		relay.Close(summary, progress.Indeterminate)
	}
	return result
}

func dedupe(tasks []models.Task) []models.ItemResult {
	seen := make(map[string]struct{}, len(tasks))
	items := make([]models.ItemResult, 0, len(tasks))
	for _, t := range tasks {
		key := filepath.Clean(t.Dest)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, models.ItemResult{Task: t, State: models.StatePending})
	}
	return items
}

// classify hashes destinations on the pool; items not reached before cancellation are failed.
func (s *Synchronizer) classify(ctx context.Context, items []models.ItemResult) []store.Status {
	status := make([]store.Status, len(items))
	p := pool.New().WithMaxGoroutines(s.opts.Workers)
	for i := range items {
		if ctx.Err() != nil {
			cancelItem(&items[i])
			continue
		}
		i := i
		p.Go(func() {
			t := items[i].Task
			if t.Force && t.SHA1 == "" {
				status[i] = store.StatusMissing
				return
			}
			status[i] = store.CheckTask(t)
		})
	}
	p.Wait()
	return status
}

func (s *Synchronizer) fetchAll(ctx context.Context, items []models.ItemResult, needed []int, present int, relay *progress.Relay) {
	total := len(items)
	var done atomic.Int64
	p := pool.New().WithMaxGoroutines(s.opts.Workers)

	for _, idx := range needed {
		if ctx.Err() != nil {
			cancelItem(&items[idx])
			continue
		}
		it := &items[idx]
		p.Go(func() {
			if ctx.Err() != nil {
				cancelItem(it)
			} else {
				s.fetchOne(ctx, it)
			}
			n := int(done.Add(1))
			if n%s.opts.ProgressEvery == 0 || n == len(needed) {
				relay.Report(fmt.Sprintf("Downloaded %d/%d", n, len(needed)), (present+n)*100/total)
			}
		})
	}
	p.Wait()
}

func cancelItem(it *models.ItemResult) {
	it.State = models.StateFailed
	it.Err = models.ErrCancelled
	it.Error = it.Err.Error()
}

// fetchOne runs an item through fetching -> verifying -> valid|failed. The item is owned by this worker.
func (s *Synchronizer) fetchOne(ctx context.Context, it *models.ItemResult) {
	t := it.Task
	start := time.Now()
	s.opts.Observer.FetchStarted(t.Kind)
	it.State = models.StateFetching

	n, err := s.download(ctx, it)
	if err != nil {
		it.State = models.StateFailed
		it.Err = err
		it.Error = err.Error()
		logger.Warnf("sync '%s' failed: %v", t.Name, err)
	} else {
		it.State = models.StateValid
		it.Bytes = n
	}
	s.opts.Observer.FetchFinished(t.Kind, it.State, n, time.Since(start))
}

func (s *Synchronizer) download(ctx context.Context, it *models.ItemResult) (int64, error) {
	t := it.Task
	if t.URL == "" {
		return 0, fmt.Errorf("%w: '%s' has no source url", models.ErrResolutionFailure, t.Name)
	}
	body, _, err := s.fetcher.Fetch(ctx, t.URL)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	// WriteVerified hashes while streaming, so verification ends with the copy
	it.State = models.StateVerifying
	n, err := store.WriteVerified(t.Dest, body, t.SHA1, t.Size)
	if err != nil {
		if errors.Is(err, models.ErrIntegrityMismatch) {
			return n, err
		}
		if ctx.Err() != nil {
			return n, fmt.Errorf("%w: '%s': %v", models.ErrCancelled, t.Name, err)
		}
		return n, fmt.Errorf("%w: '%s': %v", models.ErrNetworkFailure, t.Name, err)
	}
	return n, nil
}
