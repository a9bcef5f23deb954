package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftboard/driftboard/pkg/errors"
	"github.com/driftboard/driftboard/pkg/scene"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	output   string  // output scene file, defaults to the input
	entityID string  // existing entity to re-place
	typ      string  // type for a newly created entity
	zoneID   string  // zone for a newly created entity
	label    string  // label for a newly created entity
	x, y     float64 // preferred position
	dryRun   bool    // print the position without writing the scene

	explicitPos bool // whether --x or --y was given on the command line
}

// placeCommand creates the place command. It finds a collision-free
// position for one entity, either an existing one (--entity) or a new
// one (--type), and writes the updated scene back.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place [scene.json]",
		Short: "Find a collision-free position for an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.explicitPos = cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
			return c.runPlace(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: overwrite input)")
	cmd.Flags().StringVar(&opts.entityID, "entity", "", "ID of an existing entity to re-place")
	cmd.Flags().StringVar(&opts.typ, "type", "", "type of a new entity to add (note, image, todo, ...)")
	cmd.Flags().StringVar(&opts.zoneID, "zone", "", "zone for a new entity")
	cmd.Flags().StringVar(&opts.label, "label", "", "label for a new entity")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "preferred x position")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "preferred y position")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the resolved position without writing")

	return cmd
}

func (c *CLI) runPlace(input string, opts *placeOpts) error {
	if (opts.entityID == "") == (opts.typ == "") {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of --entity or --type is required")
	}

	eng, err := c.newEngine()
	if err != nil {
		return err
	}
	sc, err := scene.ReadSceneFile(input)
	if err != nil {
		return err
	}

	var ent *scene.Entity
	preferred := scene.Position{X: opts.x, Y: opts.y}

	if opts.entityID != "" {
		ent = sc.Entity(opts.entityID)
		if ent == nil {
			return errors.New(errors.ErrCodeEntityNotFound, "entity %s not in scene", opts.entityID)
		}
		// Without explicit coordinates, keep the entity where it is
		// and only resolve conflicts.
		if !opts.explicitPos {
			preferred = ent.Position
		}
	} else {
		e := scene.NewEntity(opts.typ)
		e.ZoneID = opts.zoneID
		e.Label = opts.label
		sc.Entities = append(sc.Entities, e)
		ent = &sc.Entities[len(sc.Entities)-1]
	}

	if ent.ZoneID != "" && sc.Zone(ent.ZoneID) == nil {
		return errors.New(errors.ErrCodeZoneNotFound, "zone %s not in scene", ent.ZoneID)
	}

	pos := eng.FindPlacement(ent, sc.Entities, preferred, sc.Zone(ent.ZoneID))
	ent.Position = pos

	printSuccess("Placed %s at (%.1f, %.1f)", ent.DisplayLabel(), pos.X, pos.Y)
	if pos != preferred {
		printDetail("moved from preferred (%.1f, %.1f)", preferred.X, preferred.Y)
	}

	if opts.dryRun {
		fmt.Printf("%.1f %.1f\n", pos.X, pos.Y)
		return nil
	}

	output := opts.output
	if output == "" {
		output = input
	}
	if err := scene.WriteSceneFile(sc, output); err != nil {
		return err
	}
	printFile(output)
	return nil
}
