package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/driftboard/driftboard/pkg/cache"
	"github.com/driftboard/driftboard/pkg/errors"
	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/render"
	"github.com/driftboard/driftboard/pkg/scene"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output SVG path, derived from the input when empty
	collisions bool   // highlight colliding pairs
	noLabels   bool   // suppress labels
	graph      bool   // render the Graphviz overlap diagram instead
	detailed   bool   // include bounds and overlap magnitudes in the diagram
	noCache    bool   // bypass the artifact cache
}

// renderCommand creates the render command for drawing scenes as SVG.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene.json]",
		Short: "Render a scene to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input with .svg extension)")
	cmd.Flags().BoolVar(&opts.collisions, "collisions", false, "highlight colliding entities")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit entity and zone labels")
	cmd.Flags().BoolVar(&opts.graph, "graph", false, "render the overlap diagram instead of the scene")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show bounds and overlap sizes (with --graph)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	eng := cfg.Engine()
	sc, err := scene.ReadSceneFile(input)
	if err != nil {
		return err
	}

	ca := c.newCache(ctx, cfg, opts.noCache)
	defer ca.Close()

	data, err := scene.MarshalScene(sc)
	if err != nil {
		return err
	}
	key := cache.ArtifactKey(cache.Hash(data), cache.ArtifactKeyOpts{
		Format: fmt.Sprintf("svg:%v:%v:%v:%v", opts.collisions, opts.noLabels, opts.graph, opts.detailed),
	})

	svg, cached, err := ca.Get(ctx, key)
	if err != nil || !cached {
		spinner := newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
		svg, err = c.renderScene(ctx, eng, sc, opts)
		spinner.Stop()
		if err != nil {
			return err
		}
		if err := ca.Set(ctx, key, svg, 0); err != nil {
			c.Logger.Warn("cache render artifact", "error", err)
		}
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	if err := os.WriteFile(output, svg, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", output)
	}

	printSuccess("Rendered %s", sc.Name)
	printSceneStats(sc.EntityCount(), sc.ZoneCount(), countCollisions(eng, sc), cached)
	printFile(output)
	return nil
}

func (c *CLI) renderScene(ctx context.Context, eng *geometry.Engine, sc *scene.Scene, opts *renderOpts) ([]byte, error) {
	if opts.graph {
		dot := render.ToDOT(eng, sc, render.DOTOptions{Detailed: opts.detailed})
		svg, err := render.RenderDOT(ctx, dot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render overlap diagram")
		}
		return svg, nil
	}

	var svgOpts []render.SVGOption
	if opts.collisions {
		svgOpts = append(svgOpts, render.WithCollisions())
	}
	if opts.noLabels {
		svgOpts = append(svgOpts, render.WithoutLabels())
	}
	return render.RenderSVG(eng, sc, svgOpts...), nil
}

// countCollisions returns the number of colliding pairs in the scene.
func countCollisions(eng *geometry.Engine, sc *scene.Scene) int {
	count := 0
	for i := range sc.Entities {
		for j := i + 1; j < len(sc.Entities); j++ {
			a, b := &sc.Entities[i], &sc.Entities[j]
			if a.IsZone() || b.IsZone() {
				continue
			}
			if eng.DetectCollision(a, b, eng.Padding(a, b)).Colliding {
				count++
			}
		}
	}
	return count
}
