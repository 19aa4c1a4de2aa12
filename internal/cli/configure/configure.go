package configure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/agents-at-scale/ark-cli/internal/cli/common"
	"github.com/agents-at-scale/ark-cli/internal/config"
	"github.com/agents-at-scale/ark-cli/internal/runner"
	"github.com/agents-at-scale/ark-cli/pkg/printer"
)

// NewConfigureCmd creates the config command
func NewConfigureCmd(deps *common.Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize CLI configuration",
		Long: `Show the effective configuration or write it to ` + config.FileName + `.yaml.

Values are read, lowest precedence first, from built-in defaults,
` + config.FileName + `.yaml in the working or home directory, a .env file,
ARK_* environment variables, and command line flags.`,
	}
	cmd.AddCommand(newShowCmd(deps))
	cmd.AddCommand(newInitCmd(deps))
	return cmd
}

func newShowCmd(deps *common.Deps) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputType, err := printer.ParseOutputType(output)
			if err != nil {
				return deps.Reporter().Fail(err.Error())
			}
			p := deps.Printer(outputType)
			if !p.Structured() {
				p = deps.Printer(printer.OutputTypeYAML)
			}
			if err := p.Print(deps.Config); err != nil {
				return err
			}

			if deps.Config.ConfigFile != "" {
				fmt.Fprintf(deps.StderrWriter(), "# loaded from %s\n", deps.Config.ConfigFile)
			}
			for _, program := range []string{deps.Config.KubectlPath, deps.Config.HelmPath} {
				if !runner.Available(program) {
					deps.Out.Warning(fmt.Sprintf("%s not found in PATH", program))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (json, yaml)")
	return cmd
}

func newInitCmd(deps *common.Deps) *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to " + config.FileName + ".yaml",
		Long: `Write defaults, file and environment values to ` + config.FileName + `.yaml.
Command line flags such as --verbose only apply to the current invocation and are not saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return deps.Reporter().Fail(fmt.Sprintf("failed to find home directory: %v", err))
				}
				dir = home
			}

			configPath := filepath.Join(dir, config.FileName+".yaml")
			if err := writeConfigFile(configPath, deps.SavedConfig(), force); err != nil {
				return deps.Reporter().Fail(err.Error())
			}

			deps.Out.Success("Wrote " + configPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write the file to (default: home directory)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func writeConfigFile(configPath string, cfg *config.Config, force bool) error {
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", configPath, err)
		}
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
