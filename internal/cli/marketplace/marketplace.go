// Package marketplace holds the marketplace listing and the install and
// uninstall commands that act on marketplace paths.
package marketplace

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agents-at-scale/ark-cli/internal/cli/common"
	"github.com/agents-at-scale/ark-cli/internal/config"
	"github.com/agents-at-scale/ark-cli/internal/marketplace"
	"github.com/agents-at-scale/ark-cli/pkg/printer"
)

const descriptionWidth = 60

// NewMarketplaceCmd returns the marketplace parent command.
func NewMarketplaceCmd(deps *common.Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marketplace",
		Short: "Manage marketplace services",
		Long: `Install community-contributed services and agents from the ARK Marketplace.

Examples:
  ark marketplace list
  ark install marketplace/services/phoenix
  ark install marketplace/agents/noah
  ark uninstall marketplace/services/phoenix`,
	}
	cmd.AddCommand(newListCmd(deps))
	return cmd
}

// listing is the structured form of the catalog.
type listing struct {
	Services map[string]marketplace.Entry `json:"services" yaml:"services"`
	Agents   map[string]marketplace.Entry `json:"agents" yaml:"agents"`
}

func newListCmd(deps *common.Deps) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available marketplace services and agents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(deps, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json, yaml)")
	return cmd
}

func runList(deps *common.Deps, output string) error {
	outputType, err := printer.ParseOutputType(output)
	if err != nil {
		return deps.Reporter().Fail(err.Error())
	}

	p := deps.Printer(outputType)
	if p.Structured() {
		return p.Print(listing{
			Services: deps.Catalog.Services(),
			Agents:   deps.Catalog.Agents(),
		})
	}

	return renderCatalog(deps.StdoutWriter(), deps.Catalog, deps.Config.Marketplace)
}

var partitions = []struct {
	kind marketplace.Kind
	icon string
}{
	{kind: marketplace.KindServices, icon: "📦"},
	{kind: marketplace.KindAgents, icon: "🤖"},
}

func renderCatalog(w io.Writer, catalog *marketplace.Catalog, mc config.MarketplaceConfig) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	heading := r.NewStyle().Bold(true)
	path := r.NewStyle().Foreground(lipgloss.Color("10"))
	dim := r.NewStyle().Faint(true)
	link := r.NewStyle().Foreground(lipgloss.Color("14"))
	caser := cases.Title(language.English)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n\n", title.Render("🏪 ARK Marketplace"))

	for _, part := range partitions {
		fmt.Fprintf(&b, "%s\n", heading.Render(caser.String(string(part.kind))+":"))
		fmt.Fprintf(&b, "%s\n\n", dim.Render(fmt.Sprintf("Install with: ark install %s/%s/<name>", marketplace.Prefix, part.kind)))

		keys := catalog.Keys(part.kind)
		if len(keys) == 0 {
			fmt.Fprintf(&b, "   %s\n\n", dim.Render("(none)"))
			continue
		}

		entries := catalog.Entries(part.kind)

		width := 0
		for _, key := range keys {
			width = max(width, len(marketplace.Path{Kind: part.kind, Key: key}.String()))
		}

		for _, key := range keys {
			entry := entries[key]
			name := fmt.Sprintf("%-*s", width, marketplace.Path{Kind: part.kind, Key: key}.String())
			desc := strings.Split(wordwrap.String(entry.Description, descriptionWidth), "\n")
			indent := strings.Repeat(" ", width+4)

			fmt.Fprintf(&b, "%s %s  %s\n", part.icon, path.Render(name), dim.Render(desc[0]))
			for _, line := range desc[1:] {
				fmt.Fprintf(&b, "%s%s\n", indent, dim.Render(line))
			}
			fmt.Fprintf(&b, "   %s\n\n", dim.Render("namespace: "+entry.TargetNamespace()))
		}
	}

	fmt.Fprintf(&b, "%s\n", link.Render("Repository: "+mc.Repository))
	fmt.Fprintf(&b, "%s\n\n", link.Render("Registry: "+mc.Registry))

	_, err := io.WriteString(w, b.String())
	return err
}
