/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for twsort.
package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"bennypowers.dev/twsort/internal/version"
)

// Cmd prints the twsort version.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		return Write(cmd.OutOrStdout(), format, version.Info())
	},
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

// Write renders info as a one-line summary or as indented JSON.
func Write(w io.Writer, format string, info version.BuildInfo) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			return errors.Errorf("encoding version info: %w", err)
		}
	case "text", "":
		line := "twsort " + info.Version
		if info.GitCommit != "" && info.GitCommit != "unknown" {
			line += " (" + info.GitCommit + ")"
		}
		_, err := fmt.Fprintf(w, "%s %s\n", line, info.GoVersion)
		return errors.WithStack(err)
	default:
		return errors.Errorf("unknown format %q", format)
	}
	return nil
}
