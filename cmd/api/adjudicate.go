package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/ClaimAPI/internal/adapter"
	"github.com/akolanti/ClaimAPI/internal/adapter/utils"
	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/extraction"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"github.com/spf13/cobra"
)

// runAdjudicate applies the same intake rules as the HTTP endpoint, without the rate limit.
func runAdjudicate(cmd *cobra.Command, args []string) error {
	settings := config.Load()
	logger_i.InitWithWriter(os.Stderr, settings.IsProd)

	if len(args) > settings.MaxBatchSize {
		return fmt.Errorf("at most %d files per claim, got %d", settings.MaxBatchSize, len(args))
	}
	claim, err := loadClaim(args, settings.MaxFileSize)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	deps, err := buildDependencies(ctx, settings)
	if err != nil {
		return err
	}
	defer deps.Pool.Stop()

	claim.TraceID = utils.GetNewUUID()
	claimCtx := context.WithValue(ctx, config.TRACE_ID_KEY, claim.TraceID)
	outcome := deps.Pipeline.Process(claimCtx, claim)
	deps.Coordinator.Drain()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(adapter.ToClaimResponse(outcome))
}

func loadClaim(paths []string, maxFileSize int64) (*claimModel.ClaimSubmission, error) {
	claim := &claimModel.ClaimSubmission{
		ClaimID:    utils.NewClaimID(),
		ClientKey:  "cli",
		ReceivedAt: time.Now().UTC(),
	}
	for i, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() > maxFileSize {
			return nil, fmt.Errorf("%s exceeds %d bytes", path, maxFileSize)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		name := filepath.Base(path)
		mimeType, err := extraction.Sniff(name, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		claim.Documents = append(claim.Documents, &claimModel.DocumentUnit{
			Index:    i,
			Filename: name,
			MIMEType: mimeType,
			Size:     int64(len(data)),
			Raw:      data,
			State:    claimModel.StateReceived,
		})
	}
	return claim, nil
}
