// Package coordinator splits claim work into CPU bound tasks, which go through the
// bounded worker pool, and I/O bound backups, which run in the background and never
// affect the claim.
package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/data/backupStore"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/metrics"
	"github.com/akolanti/ClaimAPI/internal/worker"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
)

// CPURunner is the part of the worker pool the coordinator needs.
type CPURunner interface {
	Submit(ctx context.Context, task worker.Task) error
}

type Coordinator struct {
	cpu           CPURunner
	backup        claimModel.BackupStore
	backupTimeout time.Duration
	inflight      sync.WaitGroup
	logger        *logger_i.Logger
	now           func() time.Time
}

func New(cpu CPURunner, backup claimModel.BackupStore) *Coordinator {
	if backup == nil {
		backup = backupStore.Discard{}
	}
	return &Coordinator{
		cpu:           cpu,
		backup:        backup,
		backupTimeout: config.BackupTimeout,
		logger:        logger_i.NewLogger("Coordinator"),
		now:           time.Now,
	}
}

func (c *Coordinator) RunCPU(ctx context.Context, task worker.Task) error {
	return c.cpu.Submit(ctx, task)
}

// BackupItem is what the background task keeps of a document. It holds its own
// reference to the bytes so the pipeline can release the unit's buffer.
type BackupItem struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Backup starts the uploads and returns immediately. Errors are logged and counted only.
func (c *Coordinator) Backup(ctx context.Context, claimID string, items []BackupItem) {
	log := c.logger.FromContext(ctx).With("claimId", claimID)
	at := c.now()

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		// detached from the request so a finished response does not cancel the upload
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.backupTimeout)
		defer cancel()

		for _, item := range items {
			key := backupStore.BuildKey(claimID, item.Filename, at)
			if err := c.backup.Store(bgCtx, key, item.Data, item.ContentType); err != nil {
				log.Warn("document backup failed", "key", key, "error", err)
				metrics.CountBackup("failed")
				continue
			}
			metrics.CountBackup("stored")
		}
	}()
}

// Drain waits for background backups, used on shutdown and in tests.
func (c *Coordinator) Drain() {
	c.inflight.Wait()
}
