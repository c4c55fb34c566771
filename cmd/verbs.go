package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/skinstore/internal/command"
	"github.com/zjrosen/skinstore/internal/presentation"
	"github.com/zjrosen/skinstore/internal/skin"
)

func init() {
	for _, v := range command.Verbs() {
		rootCmd.AddCommand(newVerbCmd(v))
	}
}

func newVerbCmd(v command.Verb) *cobra.Command {
	return &cobra.Command{
		Use:           v.Usage(),
		Short:         v.Short(),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := presentation.NewFormatter(cmd.OutOrStdout())
			return withSession(cmd.Context(), func(s *command.Session) error {
				res, err := s.Run(v, args)
				if err != nil {
					reportVerbError(out, v, args, err)
					return err
				}
				out.Success(res.Message)
				return nil
			})
		},
	}
}

// reportVerbError prints the user-facing message for a failed verb.
func reportVerbError(out *presentation.Formatter, v command.Verb, args []string, err error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	switch {
	case errors.Is(err, command.ErrUsage):
		out.Usage("skinstore " + v.Usage())
	case errors.Is(err, command.ErrFileNotFound):
		out.Failure("File not found")
	case errors.Is(err, skin.ErrAlreadyExists):
		out.Failure(fmt.Sprintf("A skin saved under the name %s already exists.", name))
	case errors.Is(err, command.ErrSkinNotFound):
		out.Failure(fmt.Sprintf("Skin saved under %s not found", name))
	case errors.Is(err, command.ErrNoCurrentSkin):
		out.Failure("No current skin; run load or test first")
	default:
		out.Failure(err.Error())
	}
}
