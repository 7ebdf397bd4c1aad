package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"voxscribe/internal/pipeline"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var resume bool

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Transcribe a single media file",
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

			item, err := orch.ProcessFile(runCtx, args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderItemSummary(item))
			if err != nil {
				return fmt.Errorf("process %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", false, "Reuse an existing diarization sidecar when present")
	return cmd
}
