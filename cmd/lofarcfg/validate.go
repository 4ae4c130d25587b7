package main

import (
	"fmt"
	"os"

	"github.com/jacobbieker/LOFAR-ML/pkg/config"
	"github.com/jacobbieker/LOFAR-ML/pkg/errors"
	"github.com/jacobbieker/LOFAR-ML/pkg/style"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var (
		overlays []string
		sets     []string
		noEnv    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [base]",
		Short: MsgValidateShort,
		Long:  MsgValidateLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			basePath := ""
			if len(args) == 1 {
				basePath = args[0]
			}

			_, _, err := config.Resolve(config.ResolveOptions{
				BasePath:     basePath,
				OverlayPaths: overlays,
				Set:          sets,
				UseEnv:       !noEnv,
			})
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), renderValid(basePath))
				return nil
			}

			violations := config.ViolationsFromError(err)
			if !errors.IsErrorCode(err, errors.ErrConfigInvalid) || len(violations) == 0 {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderReport(basePath, violations))
			return fmt.Errorf("%d invalid value(s)", len(violations))
		},
	}

	cmd.Flags().StringArrayVarP(&overlays, "overlay", "o", nil, MsgFlagOverlay)
	cmd.Flags().StringArrayVar(&sets, "set", nil, MsgFlagSet)
	cmd.Flags().BoolVar(&noEnv, "no-env", false, MsgFlagNoEnv)

	return cmd
}

func renderValid(basePath string) string {
	name := basePath
	if name == "" {
		name = "built-in defaults"
	}
	if !style.UseColor(os.Stdout) {
		return fmt.Sprintf("OK   %s", name)
	}
	return fmt.Sprintf("%s %s", style.Badge(style.StatusValid), style.TitleStyle.Render(name))
}

func renderReport(basePath string, violations []config.Violation) string {
	name := basePath
	if name == "" {
		name = "built-in defaults"
	}

	colored := style.UseColor(os.Stdout)
	out := ""
	if colored {
		out = fmt.Sprintf("%s %s\n", style.Badge(style.StatusInvalid), style.TitleStyle.Render(name))
	} else {
		out = fmt.Sprintf("INVALID   %s\n", name)
	}

	for _, v := range violations {
		if colored {
			out += fmt.Sprintf("  %s %s\n", style.KeyStyle.Render(v.Path), style.ErrorStyle.Render(v.Message))
		} else {
			out += fmt.Sprintf("  %s: %s\n", v.Path, v.Message)
		}
	}
	return out
}
