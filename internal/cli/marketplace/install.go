package marketplace

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/agents-at-scale/ark-cli/internal/cli/common"
	"github.com/agents-at-scale/ark-cli/internal/marketplace"
)

// InstallOptions are the flags accepted by install.
type InstallOptions struct {
	Namespace string
	Version   string
}

// NewInstallCmd returns the install command.
func NewInstallCmd(deps *common.Deps) *cobra.Command {
	var opts InstallOptions

	cmd := &cobra.Command{
		Use:   "install <marketplace-path>",
		Short: "Install a marketplace service or agent",
		Long: `Install a marketplace service or agent with helm.

Examples:
  ark install marketplace/services/phoenix
  ark install marketplace/agents/noah --namespace agents`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInstall(cmd.Context(), deps, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace to install into (defaults to the entry's namespace)")
	cmd.Flags().StringVar(&opts.Version, "version", "", "Chart version (defaults to the catalog version)")
	return cmd
}

// NewUninstallCmd returns the uninstall command.
func NewUninstallCmd(deps *common.Deps) *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "uninstall <marketplace-path>",
		Short: "Uninstall a marketplace service or agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunUninstall(cmd.Context(), deps, args[0], namespace)
		},
	}
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace of the release (defaults to the entry's namespace)")
	return cmd
}

// InstallArgs returns the helm arguments that install entry.
func InstallArgs(entry marketplace.Entry, registry string, opts InstallOptions) []string {
	version := opts.Version
	if version == "" {
		version = entry.Version
	}

	args := []string{
		"upgrade", "--install", entry.Release(), entry.ChartRef(registry),
		"--namespace", targetNamespace(entry, opts.Namespace),
		"--create-namespace",
	}
	if version != "" {
		args = append(args, "--version", version)
	}
	return args
}

// UninstallArgs returns the helm arguments that remove entry's release.
func UninstallArgs(entry marketplace.Entry, namespace string) []string {
	return []string{"uninstall", entry.Release(), "--namespace", targetNamespace(entry, namespace)}
}

func targetNamespace(entry marketplace.Entry, override string) string {
	if override != "" {
		return override
	}
	return entry.TargetNamespace()
}

// RunInstall resolves path in the catalog and installs the entry with helm.
func RunInstall(ctx context.Context, deps *common.Deps, path string, opts InstallOptions) error {
	entry, err := resolve(deps, path)
	if err != nil {
		return err
	}

	args := InstallArgs(entry, deps.Config.Marketplace.Registry, opts)
	if err := runWithSpinner(ctx, deps, "Installing "+entry.Name, "installing "+entry.Name, args); err != nil {
		return err
	}

	deps.Out.Success(fmt.Sprintf("Installed %s into namespace %s", entry.Name, targetNamespace(entry, opts.Namespace)))
	return nil
}

// RunUninstall resolves path in the catalog and removes the entry's release.
func RunUninstall(ctx context.Context, deps *common.Deps, path, namespace string) error {
	entry, err := resolve(deps, path)
	if err != nil {
		return err
	}

	args := UninstallArgs(entry, namespace)
	if err := runWithSpinner(ctx, deps, "Uninstalling "+entry.Name, "uninstalling "+entry.Name, args); err != nil {
		return err
	}

	deps.Out.Success(fmt.Sprintf("Uninstalled %s from namespace %s", entry.Name, targetNamespace(entry, namespace)))
	return nil
}

func resolve(deps *common.Deps, path string) (marketplace.Entry, error) {
	rep := deps.Reporter()
	if !deps.Catalog.IsRecognized(path) {
		return marketplace.Entry{}, rep.Fail(fmt.Sprintf("not a marketplace path: %s (expected %s/<services|agents>/<name>)", path, marketplace.Prefix))
	}
	entry, ok := deps.Catalog.Resolve(path)
	if !ok {
		return marketplace.Entry{}, rep.Fail(fmt.Sprintf("unknown marketplace item: %s (run 'ark marketplace list')", path))
	}
	return entry, nil
}

func runWithSpinner(ctx context.Context, deps *common.Deps, description, action string, args []string) error {
	bar := newSpinner(deps.StderrWriter(), description)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	res, err := deps.Reporter().Run(ctx, action, deps.Config.HelmPath, args...)
	close(done)
	_ = bar.Clear()
	_ = bar.Finish()
	if err != nil {
		return err
	}

	if deps.Config.Verbose {
		if out := strings.TrimSpace(res.Stdout); out != "" {
			deps.Out.Info(out)
		}
	}
	return nil
}

func newSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
