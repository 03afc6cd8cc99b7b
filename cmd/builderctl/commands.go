// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"blogbuilder/internal/builder"
)

func rootCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:           "builderctl",
		Short:         "Blog builder document tools.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(renderCmd(), parseCmd(), tagsCmd())
	return &cmd
}

func renderCmd() *cobra.Command {
	var sanitize bool

	cmd := cobra.Command{
		Use:   "render <sections.json>",
		Short: "Render a sections document into article HTML. Use - for stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			var doc builder.Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("decode sections: %w", err)
			}

			var opts []builder.Option
			if sanitize {
				opts = append(opts, builder.WithSanitizer())
			}
			out, err := builder.Serialize(doc, opts...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Sanitize text column markup.")

	return &cmd
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file.html>",
		Short: "Parse article HTML into a sections document. Use - for stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			doc, err := builder.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse html: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}

func tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <tag list>",
		Short: "Normalise a comma-separated tag list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(builder.ParseTags(args[0]))
		},
	}
}

// readInput reads a named file, or stdin when name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return data, nil
}
