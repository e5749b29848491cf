package persistence

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/status-im/coin-tracker/metrics"
	"github.com/status-im/coin-tracker/storage"
)

// pendingWrite is the latest intent for one key
type pendingWrite struct {
	value   string
	deleted bool
	seq     uint64
}

// writeQueue coalesces writes per key. Only the newest value of a key is kept,
// so the queue never holds more entries than there are distinct keys.
type writeQueue struct {
	mu      sync.Mutex
	pending map[string]pendingWrite
	seq     uint64
	wake    chan struct{}

	// flushMu serializes flushes with Clear
	flushMu sync.Mutex
}

func newWriteQueue() *writeQueue {
	return &writeQueue{
		pending: make(map[string]pendingWrite),
		wake:    make(chan struct{}, 1),
	}
}

func (q *writeQueue) put(key, value string) {
	q.enqueue(key, pendingWrite{value: value})
}

func (q *writeQueue) delete(key string) {
	q.enqueue(key, pendingWrite{deleted: true})
}

func (q *writeQueue) enqueue(key string, w pendingWrite) {
	q.mu.Lock()
	q.seq++
	w.seq = q.seq
	q.pending[key] = w
	size := len(q.pending)
	q.mu.Unlock()

	metrics.PendingWritesGauge.Set(float64(size))

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// lookup returns the queued intent for key, if any
func (q *writeQueue) lookup(key string) (pendingWrite, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	w, ok := q.pending[key]
	return w, ok
}

func (q *writeQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// reset drops everything queued
func (q *writeQueue) reset() {
	q.mu.Lock()
	q.pending = make(map[string]pendingWrite)
	q.mu.Unlock()
	metrics.PendingWritesGauge.Set(0)
}

// flush writes a snapshot of the queue to kv in enqueue order. An entry stays
// visible to lookup until it is written, and is only removed if no newer
// intent replaced it meanwhile. Failed writes are logged and dropped.
func (q *writeQueue) flush(ctx context.Context, kv storage.KV) {
	q.flushMu.Lock()
	defer q.flushMu.Unlock()

	q.mu.Lock()
	batch := make(map[string]pendingWrite, len(q.pending))
	for key, w := range q.pending {
		batch[key] = w
	}
	q.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	keys := make([]string, 0, len(batch))
	for key := range batch {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return batch[keys[i]].seq < batch[keys[j]].seq })

	for _, key := range keys {
		w := batch[key]
		var err error
		op := "set"
		if w.deleted {
			op = "delete"
			err = kv.Delete(ctx, key)
		} else {
			err = kv.Set(ctx, key, w.value)
		}
		if err != nil {
			log.Printf("Persistence: failed to %s %s: %v", op, key, err)
			metrics.RecordPersistenceError(op, keyKind(key))
		}

		q.mu.Lock()
		if cur, ok := q.pending[key]; ok && cur.seq == w.seq {
			delete(q.pending, key)
		}
		q.mu.Unlock()
	}

	metrics.PendingWritesGauge.Set(float64(q.len()))
}

// keyKind reduces a storage key to a low-cardinality label
func keyKind(key string) string {
	if i := strings.Index(key, keyCoinDetailBase); i >= 0 {
		return "coinDetail"
	}
	if i := strings.LastIndex(key, ":"); i >= 0 {
		return key[i+1:]
	}
	return key
}
