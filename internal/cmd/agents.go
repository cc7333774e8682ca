package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognitive-os/orchestra/internal/style"
)

var agentsJSON bool

var agentsCmd = &cobra.Command{
	Use:     "agents",
	GroupID: GroupAgents,
	Short:   "List available agent types",
	Long: `Agents lists every agent type the orchestrator can spawn: the built-in
registry plus any overrides from agents.toml under the root directory.`,
	Args: cobra.NoArgs,
	RunE: runAgents,
}

func init() {
	agentsCmd.Flags().BoolVar(&agentsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(cmd *cobra.Command, args []string) error {
	app, err := newAppContext(false)
	if err != nil {
		return err
	}
	defer app.close()

	types := app.registry.Types()

	if agentsJSON {
		list := make([]interface{}, 0, len(types))
		for _, t := range types {
			ac, _ := app.registry.Get(t)
			list = append(list, ac)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	// Fixed columns take 70 cells with gaps; the description gets the rest.
	descWidth := style.TermWidth(120) - 70
	if descWidth < 20 {
		descWidth = 20
	}
	tbl := style.NewTable(
		style.Column{Name: "TYPE", Width: 20},
		style.Column{Name: "NAME", Width: 24},
		style.Column{Name: "DURATION", Width: 9, Align: style.AlignRight},
		style.Column{Name: "GEOMETRY", Width: 9},
		style.Column{Name: "DESCRIPTION", Width: descWidth},
	)
	for _, t := range types {
		ac, err := app.registry.Get(t)
		if err != nil {
			continue
		}
		tbl.AddRow(
			ac.Type,
			ac.Name,
			fmt.Sprintf("%ds", ac.Duration),
			ac.Geometry,
			ac.Description,
		)
	}
	fmt.Println()
	fmt.Println(tbl.Render())
	return nil
}
