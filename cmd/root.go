/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for twsort.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/twsort/cmd/classify"
	"bennypowers.dev/twsort/cmd/format"
	lspcmd "bennypowers.dev/twsort/cmd/lsp"
	sortcmd "bennypowers.dev/twsort/cmd/sort"
	"bennypowers.dev/twsort/cmd/version"
	"bennypowers.dev/twsort/internal/logger"
	"bennypowers.dev/twsort/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "twsort",
	Short: "Sort Tailwind CSS classes in Elm source",
	Long: `twsort reorders the Tailwind CSS class names inside Elm class attributes
into a canonical order. It uses prettier-plugin-tailwindcss when it can be
loaded and a built-in category ordering otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.SetLevel(viper.GetString(session.KeyLogLevel))
	},
}

// Execute runs the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(session.KeyRoot, "", "Project root containing .config/twsort.yaml (default: working directory)")
	flags.Bool(session.KeyNoExternal, false, "Never load the external sorter; use the built-in ordering")
	flags.String(session.KeyScript, "", "Go script defining SortClasses, used as the external sorter")
	flags.String(session.KeyNodeModules, "", "Directory where node_modules lookup starts")
	flags.Bool(session.KeyElmFormat, false, "Run elm-format before sorting")
	flags.Duration(session.KeyWait, 0, "How long to wait for the external sorter (default 5s)")
	flags.String(session.KeyLogLevel, "warn", "Log level (debug, info, warn, error)")

	viper.SetEnvPrefix("TWSORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	cobra.CheckErr(viper.BindPFlags(flags))

	rootCmd.AddCommand(format.Cmd)
	rootCmd.AddCommand(sortcmd.Cmd)
	rootCmd.AddCommand(classify.Cmd)
	rootCmd.AddCommand(lspcmd.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
