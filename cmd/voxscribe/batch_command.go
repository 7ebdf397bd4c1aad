package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"voxscribe/internal/pipeline"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var resume bool
	var pattern string

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Transcribe every supported media file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}

			lock, err := pipeline.AcquireLock(cfg.Paths.OutputDir)
			if err != nil {
				return err
			}
			defer lock.Unlock()

			orch := buildOrchestrator(cfg, logger, resume)
			if err := orch.CheckEngines(runCtx); err != nil {
				return err
			}

			result, runErr := orch.ProcessBatch(runCtx, args[0], pattern)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderBatchSummary(result))
			if runErr != nil {
				return runErr
			}
			if result.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", result.Failed, result.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", false, "Reuse existing diarization sidecars when present")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Only process filenames matching this glob")
	return cmd
}
