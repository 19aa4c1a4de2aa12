package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agents-at-scale/ark-cli/internal/cli"
	"github.com/agents-at-scale/ark-cli/internal/cli/common"
	"github.com/agents-at-scale/ark-cli/internal/cli/configure"
	"github.com/agents-at-scale/ark-cli/internal/cli/marketplace"
	"github.com/agents-at-scale/ark-cli/internal/cli/resourcecmd"
	"github.com/agents-at-scale/ark-cli/internal/config"
	"github.com/agents-at-scale/ark-cli/internal/exitcode"
	"github.com/agents-at-scale/ark-cli/internal/logging"
	catalog "github.com/agents-at-scale/ark-cli/internal/marketplace"
	"github.com/agents-at-scale/ark-cli/internal/resource"
	"github.com/agents-at-scale/ark-cli/internal/runner"
	"github.com/agents-at-scale/ark-cli/internal/version"
	"github.com/agents-at-scale/ark-cli/pkg/printer"
)

// CLIOptions configures the CLI behavior
type CLIOptions struct {
	// Runner executes kubectl and helm. If nil, programs are run with os/exec.
	Runner runner.Runner

	// Catalog is the marketplace catalog. If nil, the builtin catalog is used.
	Catalog *catalog.Catalog

	// Environ replaces os.Environ when loading configuration.
	Environ []string
	// ConfigDirs replaces the working and home directories searched for .arkrc.yaml.
	ConfigDirs []string
}

var cliOptions CLIOptions

// Configure applies options to the root command
func Configure(opts CLIOptions) {
	cliOptions = opts
}

type rootFlags struct {
	kubectl  string
	helm     string
	logLevel string
	verbose  bool
}

// NewRootCmd builds the ark command tree. Shared dependencies are filled in
// by PersistentPreRunE once flags are parsed.
func NewRootCmd() *cobra.Command {
	deps := &common.Deps{}
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "ark",
		Short:         "ARK operator CLI",
		Long:          `ark manages ARK queries, agents, teams, models and tools in the current cluster and installs marketplace services.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, deps, cliOptions, &flags)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if deps.Logger != nil {
				_ = deps.Logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.kubectl, "kubectl", "", "Path to the kubectl binary (overrides ARK_KUBECTL_PATH)")
	cmd.PersistentFlags().StringVar(&flags.helm, "helm", "", "Path to the helm binary (overrides ARK_HELM_PATH)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides ARK_LOG_LEVEL)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "V", false, "Verbose output")

	cmd.AddCommand(resourcecmd.NewCmd(resource.Queries, deps, "query"))
	cmd.AddCommand(resourcecmd.NewCmd(resource.Agents, deps, "agent"))
	cmd.AddCommand(resourcecmd.NewCmd(resource.Teams, deps, "team"))
	cmd.AddCommand(resourcecmd.NewCmd(resource.Models, deps, "model"))
	cmd.AddCommand(resourcecmd.NewCmd(resource.Tools, deps, "tool"))
	cmd.AddCommand(marketplace.NewMarketplaceCmd(deps))
	cmd.AddCommand(marketplace.NewInstallCmd(deps))
	cmd.AddCommand(marketplace.NewUninstallCmd(deps))
	cmd.AddCommand(configure.NewConfigureCmd(deps))
	cmd.AddCommand(cli.NewVersionCmd())

	return cmd
}

var rootCmd = NewRootCmd()

func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	return run(ctx, rootCmd)
}

func run(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	var exitErr *exitcode.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Silent {
		printer.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr()).Error(err.Error())
	}
	return exitcode.Code(err)
}

func setup(cmd *cobra.Command, deps *common.Deps, opts CLIOptions, flags *rootFlags) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	persisted := *cfg

	logLevelSet := false
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "kubectl":
			cfg.KubectlPath = flags.kubectl
		case "helm":
			cfg.HelmPath = flags.helm
		case "log-level":
			cfg.LogLevel = flags.logLevel
			logLevelSet = true
		case "verbose":
			cfg.Verbose = flags.verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.LogLevel
	if cfg.Verbose && !logLevelSet {
		level = "debug"
	}
	logger, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	r := opts.Runner
	if r == nil {
		r = runner.NewExecRunner(logger)
	}
	cat := opts.Catalog
	if cat == nil {
		if cat, err = catalog.Builtin(); err != nil {
			return fmt.Errorf("failed to load marketplace catalog: %w", err)
		}
	}

	deps.Config = cfg
	deps.Logger = logger
	deps.Runner = r
	deps.Out = printer.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
	deps.Catalog = cat
	deps.Persisted = &persisted
	deps.Stdout = cmd.OutOrStdout()
	deps.Stderr = cmd.ErrOrStderr()
	return nil
}

func loadConfig(opts CLIOptions) (*config.Config, error) {
	if opts.Environ == nil && opts.ConfigDirs == nil {
		return config.NewConfig()
	}
	return config.Load(opts.ConfigDirs, opts.Environ)
}
