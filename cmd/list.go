package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/skinstore/internal/command"
	"github.com/zjrosen/skinstore/internal/presentation"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved skins as JSON",
	Long: `List saved skins and their metadata as JSON.

Raw payloads are summarised by size and image hash.

Examples:
  skinstore list
  skinstore list | jq '.[].name'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withReadOnlySession(func(s *command.Session) error {
			current, hasCurrent := s.Current()

			dtos := make([]presentation.RecordDTO, 0)
			for _, name := range s.Saved() {
				rec, ok := s.Get(name)
				if !ok {
					continue
				}
				dtos = append(dtos, presentation.FromRecord(name, rec, hasCurrent && rec.ID == current.ID))
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).FormatRecords(dtos)
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one skin as JSON (the current skin when no name is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withReadOnlySession(func(s *command.Session) error {
			name := s.LiveSlot()
			if len(args) == 1 {
				name = args[0]
			}
			rec, ok := s.Get(name)
			if !ok {
				return fmt.Errorf("%w: %s", command.ErrSkinNotFound, name)
			}
			return presentation.NewFormatter(cmd.OutOrStdout()).FormatRecord(
				presentation.FromRecord(name, rec, name == s.LiveSlot()))
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
