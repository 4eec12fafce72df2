package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"avclapper/internal/input"
)

func newManifestCommand(ctx *commandContext) *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "manifest [input]",
		Short: "Convert a session to the YAML manifest format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			sess, err := readSession(cmd, args, inputFormat, logger)
			if err != nil {
				return err
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(input.ManifestFromStore(sess.store)); err != nil {
				return fmt.Errorf("encode manifest: %w", err)
			}
			return encoder.Close()
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "format", "f", inputAuto, "Input format: auto, lines or yaml")
	return cmd
}
