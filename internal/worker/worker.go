package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/ClaimAPI/internal/metrics"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
)

var ErrPoolStopped = errors.New("worker pool stopped")

// Task is one unit of CPU bound work.
type Task func(ctx context.Context) error

type job struct {
	ctx  context.Context
	task Task
	done chan error
}

type PoolConfig struct {
	MinWorkers  int64
	MaxWorkers  int64
	QueueLimit  int
	IdleTimeout time.Duration
}

// Pool runs at most MaxWorkers tasks at once. Extra tasks wait in the queue.
// Workers are added on demand by the dispatcher and retire after IdleTimeout
// while more than MinWorkers are alive.
type Pool struct {
	cfg                PoolConfig
	jobChannel         chan job
	dispatcherChannel  chan bool
	stopWorkerChannel  chan struct{}
	workerWaitGroup    sync.WaitGroup
	currentWorkerCount int64
	busyWorkerCount    int64
	stopOnce           sync.Once
	logger             *logger_i.Logger
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	if cfg.MinWorkers < 1 {
		cfg.MinWorkers = 1
	}
	if cfg.MinWorkers > cfg.MaxWorkers {
		cfg.MinWorkers = cfg.MaxWorkers
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = time.Minute
	}
	// growth is driven by the queue length, an unbuffered queue would pin the pool at MinWorkers
	if int64(cfg.QueueLimit) < cfg.MaxWorkers {
		cfg.QueueLimit = int(cfg.MaxWorkers)
	}
	return &Pool{
		cfg:               cfg,
		jobChannel:        make(chan job, cfg.QueueLimit),
		dispatcherChannel: make(chan bool, 1),
		stopWorkerChannel: make(chan struct{}),
		logger:            logger_i.NewLogger("WorkerPool"),
	}
}

func (p *Pool) Start() {
	p.logger.Info("Initializing worker pool", "min", p.cfg.MinWorkers, "max", p.cfg.MaxWorkers)
	for i := int64(0); i < p.cfg.MinWorkers; i++ {
		p.createWorker()
	}
	go p.dispatcher()
}

// Submit queues task and waits for it to finish. ctx bounds both the wait in the
// queue and the task itself.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	select {
	case <-p.stopWorkerChannel:
		return ErrPoolStopped
	default:
	}

	j := job{ctx: ctx, task: task, done: make(chan error, 1)}

	metrics.IncrementTasksInQueue()
	select {
	case p.jobChannel <- j:
	case <-ctx.Done():
		metrics.DecrementTasksInQueue()
		return ctx.Err()
	case <-p.stopWorkerChannel:
		metrics.DecrementTasksInQueue()
		return ErrPoolStopped
	}
	p.signalDispatcher()

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop retires every worker and waits for running tasks to return.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopWorkerChannel)
	})
	p.workerWaitGroup.Wait()
}

func (p *Pool) WorkerCount() int64 {
	return atomic.LoadInt64(&p.currentWorkerCount)
}

func (p *Pool) signalDispatcher() {
	if !p.needsWorker() {
		return
	}
	select {
	case p.dispatcherChannel <- true:
		metrics.StartDispatcherSignalCount()
	default:
	}
}

func (p *Pool) dispatcher() {
	p.logger.Info("Dispatcher started")
	for {
		select {
		case <-p.stopWorkerChannel:
			return
		case <-p.dispatcherChannel:
			for p.needsWorker() {
				p.logger.Debug("Creating new worker", "workerCount", atomic.LoadInt64(&p.currentWorkerCount))
				p.createWorker()
			}
		}
	}
}

func (p *Pool) createWorker() {
	p.workerWaitGroup.Add(1)
	atomic.AddInt64(&p.currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go p.worker()
}

func (p *Pool) worker() {
	for {
		select {
		case currentJob := <-p.jobChannel:
			metrics.DecrementTasksInQueue()
			p.executeJob(currentJob)

		case <-p.stopWorkerChannel:
			atomic.AddInt64(&p.currentWorkerCount, -1)
			p.removeWorker("Stop worker signal received")
			return

		case <-time.After(p.cfg.IdleTimeout):
			if p.tryRetire() {
				p.removeWorker("Idle worker timeout")
				return
			}
		}
	}
}
