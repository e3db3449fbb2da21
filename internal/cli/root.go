// Package cli wires the payload-distance commands with cobra.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/payload-distance/config"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	envFiles []string
}

// loadConfig reads the server configuration from the environment and the
// dotenv files given with --env-file.
func (o *rootOptions) loadConfig() (*config.ServerConfig, error) {
	return config.LoadServerConfig(o.envFiles...)
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "payload-distance",
		Short: "Re-score search hits by the distance between payloads and target values",
		Long: `payload-distance serves a small search engine whose hits can be re-scored by
payload distance scripts.

Documents carry numeric payloads per token (for example "red|4.5"). A script
compares those payloads with target values per field and term, using either
the ratio strategy (reward closeness) or the difference strategy (penalize
distance).`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil,
		"dotenv file(s) to load before reading PAYLOAD_DISTANCE_* variables (default: .env)")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newScoreCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "payload-distance %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", buildTime)
		},
	}
}
