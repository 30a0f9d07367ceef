package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphdeck/graphdeck/pkg/graph"
	"github.com/graphdeck/graphdeck/pkg/render"
	"github.com/graphdeck/graphdeck/pkg/scene"
	"github.com/graphdeck/graphdeck/pkg/session"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output  string // output file path
	format  string // svg, png, or dot
	layout  string // layout algorithm
	colorBy string // categorical coloring attribute
}

// newExportCmd creates the export command for rendering a graph file to a
// static image. It renders the same scene the dashboard would show with no
// selection and no filter, so exported images match the initial dashboard
// view.
func newExportCmd() *cobra.Command {
	opts := exportOpts{
		format: string(render.FormatSVG),
		layout: string(scene.DefaultLayout),
	}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Render a graph file to SVG, PNG, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default input name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png, dot")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", opts.layout, "layout: circle, grid, random, concentric, breadthfirst, cose")
	cmd.Flags().StringVar(&opts.colorBy, "color-by", "", "categorical coloring attribute")

	return cmd
}

func runExport(cmd *cobra.Command, input string, opts *exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		printError("%v", err)
		return err
	}
	layout, err := scene.ParseLayout(opts.layout)
	if err != nil {
		printError("%v", err)
		return err
	}

	output := opts.output
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		output = base + "." + string(format)
	}

	prog := newProgress(logger)
	g, err := graph.ReadFile(input)
	if err != nil {
		printError("loading %s: %v", input, err)
		return err
	}

	sess := session.New(session.Defaults{Layout: string(layout)})
	sc := scene.Build(g, sess, opts.colorBy)

	data, err := render.Render(ctx, sc, format)
	if err != nil {
		printError("rendering: %v", err)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		printError("writing %s: %v", output, err)
		return err
	}
	prog.done("Rendered graph")

	printSuccess("Exported %s", string(format))
	printFile(output)
	printStats(g.NodeCount(), g.EdgeCount(), g.Directed())
	return nil
}
