// Package resourcecmd builds the delete and list commands shared by every
// cluster resource kind (queries, agents, teams, models, tools).
package resourcecmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agents-at-scale/ark-cli/internal/cli/common"
	"github.com/agents-at-scale/ark-cli/internal/kubectl"
	"github.com/agents-at-scale/ark-cli/internal/resource"
	"github.com/agents-at-scale/ark-cli/pkg/printer"
)

// NewCmd returns the parent command for kind with its subcommands attached.
func NewCmd(kind resource.Kind, deps *common.Deps, aliases ...string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     kind.Plural,
		Aliases: aliases,
		Short:   fmt.Sprintf("Manage %s", kind.Plural),
		Long:    fmt.Sprintf("Manage ARK %s in the current cluster namespace through kubectl.", kind.Plural),
	}
	cmd.AddCommand(newDeleteCmd(kind, deps))
	cmd.AddCommand(newListCmd(kind, deps))
	return cmd
}

func newDeleteCmd(kind resource.Kind, deps *common.Deps) *cobra.Command {
	var opts resource.DeleteOptions

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("delete [%s-name]", kind.Singular),
		Short: fmt.Sprintf("Delete a %s or all %s", kind.Singular, kind.Plural),
		Long: fmt.Sprintf(`Delete a single %[1]s by name, or every %[1]s with --all.
When both a name and --all are given, --all wins.

Examples:
  ark %[2]s delete my-%[1]s
  ark %[2]s delete --all`, kind.Singular, kind.Plural),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return RunDelete(cmd.Context(), deps, kind, name, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.All, "all", false, fmt.Sprintf("Delete all %s", kind.Plural))
	return cmd
}

// RunDelete deletes one or all resources of kind and echoes kubectl's
// confirmation. Failures are already reported when the error is returned.
func RunDelete(ctx context.Context, deps *common.Deps, kind resource.Kind, name string, opts resource.DeleteOptions) error {
	res, err := deps.Reporter().Delete(ctx, kind, name, opts)
	if err != nil {
		return err
	}
	if out := strings.TrimSpace(res.Stdout); out != "" {
		deps.Out.Info(out)
	}
	return nil
}

// ListOptions are the flags accepted by list commands.
type ListOptions struct {
	Output    string
	NoHeaders bool
}

func newListCmd(kind resource.Kind, deps *common.Deps) *cobra.Command {
	var opts ListOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List %s", kind.Plural),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Output == "" {
				opts.Output = deps.Config.Output
			}
			return RunList(cmd.Context(), deps, kind, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (table, wide, json, yaml)")
	cmd.Flags().BoolVar(&opts.NoHeaders, "no-headers", false, "Omit the table header row")
	return cmd
}

// RunList prints every resource of kind in the requested format.
func RunList(ctx context.Context, deps *common.Deps, kind resource.Kind, opts ListOptions) error {
	rep := deps.Reporter()

	outputType, err := printer.ParseOutputType(opts.Output)
	if err != nil {
		return rep.Fail(err.Error())
	}

	res, err := rep.Run(ctx, "listing "+kind.Plural, deps.Config.KubectlPath, kubectl.ListArgs(kind)...)
	if err != nil {
		return err
	}

	objs, err := kubectl.DecodeList([]byte(res.Stdout))
	if err != nil {
		return rep.Fail(fmt.Sprintf("listing %s: %v", kind.Plural, err))
	}
	items := kubectl.Summarize(objs)

	p := deps.Printer(outputType)
	if p.Structured() {
		return p.Print(items)
	}

	if len(items) == 0 {
		deps.Out.Info(fmt.Sprintf("No %s found", kind.Plural))
		return nil
	}

	tableOpts := []printer.Option{printer.WithOutputType(outputType)}
	if opts.NoHeaders {
		tableOpts = append(tableOpts, printer.WithNoHeaders())
	}
	t := printer.NewTablePrinter(deps.StdoutWriter(), tableOpts...)
	t.SetColumns(
		printer.Column{Name: "Name"},
		printer.Column{Name: "Namespace", Wide: true},
		printer.Column{Name: "Status"},
		printer.Column{Name: "Message", Wide: true},
		printer.Column{Name: "Age"},
	)
	for _, item := range items {
		t.AddRow(
			item.Name,
			printer.EmptyValueOrDefault(item.Namespace, "<none>"),
			printer.EmptyValueOrDefault(item.Phase, "<none>"),
			printer.TruncateString(printer.EmptyValueOrDefault(item.Message, "<none>"), 60),
			printer.FormatAge(item.Created),
		)
	}
	return t.Render()
}
