package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obeli-sk/components-flyio/pkg/config"
	"github.com/obeli-sk/components-flyio/pkg/docker"
	"github.com/obeli-sk/components-flyio/pkg/fly"
	"github.com/obeli-sk/components-flyio/pkg/log"
	"github.com/obeli-sk/components-flyio/pkg/reconcile"
	"github.com/obeli-sk/components-flyio/pkg/state"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// cfg is assembled once in the persistent pre-run and read by every
// subcommand.
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flyio-activity",
	Short: "Fly.io provisioning activities for the Obelisk workflow engine",
	Long: `flyio-activity provisions Fly.io apps, machines, IP assignments,
volumes and secrets, plus local containers through the docker CLI.

The provisioning operations are written to be retried: running the same
operation twice converges on the same remote state instead of failing or
leaking resources.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap(cmd)
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"flyio-activity version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit JSON logs instead of console output")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for local bookkeeping state")

	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(machinesCmd)
	rootCmd.AddCommand(ipsCmd)
	rootCmd.AddCommand(volumesCmd)
	rootCmd.AddCommand(secretsCmd)
	rootCmd.AddCommand(dockerCmd)
	rootCmd.AddCommand(webhookCmd)
	rootCmd.AddCommand(activitiesCmd)
}

// bootstrap assembles configuration in precedence order: defaults, file,
// environment, flags. Logging is initialized here so every subcommand logs
// consistently.
func bootstrap(cmd *cobra.Command) error {
	cfg = config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return err
		}
	}
	cfg.FromEnv()

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if jsonOut, _ := cmd.Flags().GetBool("log-json"); jsonOut {
		cfg.LogJSON = true
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.LogLevel),
		JSONOutput: cfg.LogJSON,
	})
	return nil
}

// newClient validates the credential and builds the API client. Docker-only
// subcommands skip this so they work without a token.
func newClient() (*fly.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return fly.NewClient(cfg)
}

func newReconciler() (*reconcile.Reconciler, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	return reconcile.New(client), nil
}

func newDockerCLI() *docker.CLI {
	return docker.New(cfg.DockerBinary)
}

func openStore() (*state.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return state.Open(cfg.DataDir)
}

// printJSON writes a result to stdout. Logs go to stderr, so stdout stays
// machine-readable.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
