package main

import (
	"fmt"

	"github.com/jacobbieker/LOFAR-ML/pkg/config"
	"github.com/jacobbieker/LOFAR-ML/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGetCmd() *cobra.Command {
	var (
		overlays []string
		sets     []string
		noEnv    bool
	)

	cmd := &cobra.Command{
		Use:   "get KEY [base]",
		Short: MsgGetShort,
		Long:  MsgGetLong,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			basePath := ""
			if len(args) == 2 {
				basePath = args[1]
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

			value, ok := doc.Lookup(key)
			if !ok {
				return errors.Newf(errors.ErrUnknownKey, "unknown key %q", key).
					WithDetail("path", key)
			}

			out, err := yaml.Marshal(value)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "cannot render value at %q", key)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&overlays, "overlay", "o", nil, MsgFlagOverlay)
	cmd.Flags().StringArrayVar(&sets, "set", nil, MsgFlagSet)
	cmd.Flags().BoolVar(&noEnv, "no-env", false, MsgFlagNoEnv)

	return cmd
}
