package pipeline

import (
	"sync"

	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
)

// Barrier collects the per-document outcomes of one claim, indexed by document
// position. The first terminal outcome recorded for a document wins; anything that
// arrives later for it is dropped.
type Barrier struct {
	mu      sync.Mutex
	results []claimModel.DocumentResult
	pending int
}

func NewBarrier(units []*claimModel.DocumentUnit) *Barrier {
	b := &Barrier{
		results: make([]claimModel.DocumentResult, len(units)),
		pending: len(units),
	}
	for i, u := range units {
		b.results[i] = claimModel.DocumentResult{
			Index:    i,
			Filename: u.Filename,
			State:    claimModel.StateReceived,
		}
	}
	return b
}

// Advance records progress of a document that is still running.
func (b *Barrier) Advance(index int, state claimModel.DocumentState, label claimModel.Label, confidence float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := &b.results[index]
	if r.State.Terminal() {
		return
	}
	r.State = state
	if label != "" {
		r.Label = label
		r.Confidence = confidence
	}
}

func (b *Barrier) Complete(index int, record claimModel.ExtractedRecord) bool {
	return b.settle(index, func(r *claimModel.DocumentResult) {
		r.State = claimModel.StateExtracted
		r.Record = record
		if r.Label == "" {
			r.Label = record.Label()
		}
	})
}

func (b *Barrier) Fail(index int, failure *claimModel.ExtractionError) bool {
	return b.settle(index, func(r *claimModel.DocumentResult) {
		r.State = claimModel.StateFailed
		r.Failure = failure
		r.Record = nil
	})
}

func (b *Barrier) settle(index int, apply func(r *claimModel.DocumentResult)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := &b.results[index]
	if r.State.Terminal() {
		return false
	}
	apply(r)
	b.pending--
	return true
}

// FailPending settles every document that has no outcome yet and returns how many it settled.
func (b *Barrier) FailPending(failure *claimModel.ExtractionError) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := range b.results {
		r := &b.results[i]
		if r.State.Terminal() {
			continue
		}
		r.State = claimModel.StateFailed
		r.Failure = failure
		r.Record = nil
		n++
	}
	b.pending -= n
	return n
}

func (b *Barrier) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// Results returns a copy in document order.
func (b *Barrier) Results() []claimModel.DocumentResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]claimModel.DocumentResult, len(b.results))
	copy(out, b.results)
	return out
}
