package worker

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/akolanti/ClaimAPI/internal/metrics"
)

func (p *Pool) executeJob(j job) {
	atomic.AddInt64(&p.busyWorkerCount, 1)
	defer atomic.AddInt64(&p.busyWorkerCount, -1)

	// the submitter may have given up while the job sat in the queue
	if err := j.ctx.Err(); err != nil {
		j.done <- err
		return
	}

	start := time.Now()
	defer func() {
		metrics.CaptureExecutionMetrics("cpu_task", time.Since(start))
	}()
	j.done <- runProtected(j)
}

func runProtected(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cpu task panicked: %v", r)
		}
	}()
	return j.task(j.ctx)
}

// needsWorker is true while queued plus running work exceeds the live workers and
// the pool is below its ceiling.
func (p *Pool) needsWorker() bool {
	current := atomic.LoadInt64(&p.currentWorkerCount)
	if current >= p.cfg.MaxWorkers {
		return false
	}
	pending := atomic.LoadInt64(&p.busyWorkerCount) + int64(len(p.jobChannel))
	return pending > current
}

// tryRetire claims one worker slot for retirement without dropping below the minimum.
func (p *Pool) tryRetire() bool {
	for {
		current := atomic.LoadInt64(&p.currentWorkerCount)
		if current <= p.cfg.MinWorkers {
			return false
		}
		if atomic.CompareAndSwapInt64(&p.currentWorkerCount, current, current-1) {
			return true
		}
	}
}

func (p *Pool) removeWorker(reason string) {
	metrics.DecrementActiveWorkerCount()
	p.logger.Debug("Removed worker", "reason", reason, "workerCount", atomic.LoadInt64(&p.currentWorkerCount))
	p.workerWaitGroup.Done()
}
