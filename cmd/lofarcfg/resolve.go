package main

import (
	"fmt"

	"github.com/jacobbieker/LOFAR-ML/pkg/config"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var (
		overlays []string
		sets     []string
		noEnv    bool
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:     "resolve [base]",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		Example: MsgResolveExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			basePath := ""
			if len(args) == 1 {
				basePath = args[0]
			}

			_, doc, err := config.Resolve(config.ResolveOptions{
				BasePath:     basePath,
				OverlayPaths: overlays,
				Set:          sets,
				UseEnv:       !noEnv,
			})
			if err != nil {
				return err
			}

			if output != "" {
				return config.WriteFile(doc, output)
			}

			out, err := config.Encode(doc, format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&overlays, "overlay", "o", nil, MsgFlagOverlay)
	cmd.Flags().StringArrayVar(&sets, "set", nil, MsgFlagSet)
	cmd.Flags().BoolVar(&noEnv, "no-env", false, MsgFlagNoEnv)
	cmd.Flags().StringVar(&format, "format", config.FormatYAML, MsgFlagFormat)
	cmd.Flags().StringVarP(&output, "output", "O", "", MsgFlagOutput)
	cmd.MarkFlagsMutuallyExclusive("format", "output")

	return cmd
}
