package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/skinstore/internal/log"
	"github.com/zjrosen/skinstore/internal/paths"
	"github.com/zjrosen/skinstore/internal/presentation"
	"github.com/zjrosen/skinstore/internal/skin"
	"github.com/zjrosen/skinstore/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the saved skin list whenever the store changes",
	Long: `Watch the store file and print the saved skins as JSON each time it is
rewritten. Watching never writes the store. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd)
	},
}

func runWatch(ctx context.Context, cmd *cobra.Command) error {
	storePath := paths.StorePath(cfg.DataDir, cfg.StoreFile)
	out := presentation.NewFormatter(cmd.OutOrStdout())

	changes, err := watcher.Watch(ctx, watcher.Config{Path: storePath})
	if err != nil {
		return err
	}

	if err := printStore(out, storePath); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := printStore(out, storePath); err != nil {
				log.ErrorErr(log.CatStore, "Failed to reload store", err, "path", storePath)
				out.Failure(err.Error())
			}
		}
	}
}

// printStore reads the store without taking part in its lifecycle. Unlike
// list it ignores the corrupt_store policy, so a bad rewrite is reported
// instead of shown as empty.
func printStore(out *presentation.Formatter, storePath string) error {
	reg, err := skin.Open(storePath)
	if err != nil {
		return fmt.Errorf("reading skin store: %w", err)
	}

	dtos := make([]presentation.RecordDTO, 0, reg.Len())
	for _, name := range reg.Names() {
		if name == cfg.LiveSlot {
			continue
		}
		rec, _ := reg.Get(name)
		dtos = append(dtos, presentation.FromRecord(name, rec, false))
	}
	return out.FormatRecords(dtos)
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
