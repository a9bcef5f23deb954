package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/driftboard/driftboard/pkg/scene"
)

// simulateCommand creates the simulate command, an interactive TUI that
// drags entities around and shows the repulsion behavior live.
func (c *CLI) simulateCommand() *cobra.Command {
	var entityID, output string

	cmd := &cobra.Command{
		Use:   "simulate [scene.json]",
		Short: "Interactively drag entities and watch repulsion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.newEngine()
			if err != nil {
				return err
			}
			sc, err := scene.ReadSceneFile(args[0])
			if err != nil {
				return err
			}

			model := NewSimulateModel(eng, sc, entityID)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return err
			}

			if output == "" {
				return nil
			}
			if err := scene.WriteSceneFile(sc, output); err != nil {
				return err
			}
			printSuccess("Saved simulated scene")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "initially selected entity")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the final positions to this file")

	return cmd
}
