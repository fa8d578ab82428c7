package models

import "fmt"

type ObjectKind string

const (
	KindAsset      ObjectKind = "asset"
	KindLibrary    ObjectKind = "library"
	KindClient     ObjectKind = "client"
	KindAssetIndex ObjectKind = "asset-index"
)

/**
 * Synchronization task, owned by exactly one worker while it runs
 * @property {string} url - Source URL
 * @property {string} dest - Absolute destination path inside the content store
 * @property {string} sha1 - Expected digest, empty when the descriptor carries none
 * @property {int64} size - Expected size, 0 when unknown
 * @property {bool} force - Refetch even when present if there is no digest to verify against
 */
type Task struct {
	Name  string     `json:"name"`
	Kind  ObjectKind `json:"kind"`
	URL   string     `json:"url"`
	Dest  string     `json:"dest"`
	SHA1  string     `json:"sha1,omitempty"`
	Size  int64      `json:"size,omitempty"`
	Force bool       `json:"force,omitempty"`
}

// ItemState follows pending -> (skipped | fetching -> verifying -> (valid | failed)).
type ItemState string

const (
	StatePending   ItemState = "pending"
	StateSkipped   ItemState = "skipped"
	StateFetching  ItemState = "fetching"
	StateVerifying ItemState = "verifying"
	StateValid     ItemState = "valid"
	StateFailed    ItemState = "failed"
)

// Terminal reports whether no further transition is allowed in this pass.
func (s ItemState) Terminal() bool {
	return s == StateSkipped || s == StateValid || s == StateFailed
}

type ItemResult struct {
	Task  Task      `json:"task"`
	State ItemState `json:"state"`
	Bytes int64     `json:"bytes,omitempty"`
	Err   error     `json:"-"`
	Error string    `json:"error,omitempty"`
}

/**
 * Aggregated outcome of one synchronization pass
 * @property {int} succeeded - Items fetched and verified in this pass
 * @property {int} failed - Items that ended in the failed state
 * @property {int} skipped - Items already valid on disk
 */
type SyncResult struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Bytes     int64        `json:"bytes"`
	Cancelled bool         `json:"cancelled,omitempty"`
	Items     []ItemResult `json:"items,omitempty"`
}

// Total is the number of distinct items in the pass.
func (r *SyncResult) Total() int {
	return r.Succeeded + r.Failed + r.Skipped
}

// Complete is true when every item is valid (skipped or freshly verified).
func (r *SyncResult) Complete() bool {
	return r.Failed == 0 && !r.Cancelled
}

// Failures returns the failed items in task order.
func (r *SyncResult) Failures() []ItemResult {
	var out []ItemResult
	for _, it := range r.Items {
		if it.State == StateFailed {
			out = append(out, it)
		}
	}
	return out
}

// Merge folds another pass into r.
func (r *SyncResult) Merge(o *SyncResult) {
	if o == nil {
		return
	}
	r.Succeeded += o.Succeeded
	r.Failed += o.Failed
	r.Skipped += o.Skipped
	r.Bytes += o.Bytes
	r.Cancelled = r.Cancelled || o.Cancelled
	r.Items = append(r.Items, o.Items...)
}

func (r *SyncResult) Summary() string {
	if r.Cancelled {
		return fmt.Sprintf("cancelled: %d downloaded, %d already present, %d failed", r.Succeeded, r.Skipped, r.Failed)
	}
	if r.Failed > 0 {
		return fmt.Sprintf("incomplete: %d downloaded, %d already present, %d failed", r.Succeeded, r.Skipped, r.Failed)
	}
	return fmt.Sprintf("complete: %d downloaded, %d already present", r.Succeeded, r.Skipped)
}
