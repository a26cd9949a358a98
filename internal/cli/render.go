package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/foodtree/pkg/cache"
	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	"github.com/matzehuels/foodtree/pkg/render/nodelink"
	"github.com/matzehuels/foodtree/pkg/render/outline"
)

// Render formats.
const (
	formatSVG     = "svg"
	formatPDF     = "pdf"
	formatPNG     = "png"
	formatDOT     = "dot"
	formatOutline = "outline"
)

// renderOpts holds render command flags.
type renderOpts struct {
	format    string
	output    string
	detailed  bool
	highlight string
	title     string
	scale     float64
	noCache   bool
	maxDepth  int
	from      string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the tree as a diagram or text outline",
		Long: `Draw the tree as a Graphviz node-link diagram or a text outline.

Formats:
  svg, pdf, png   rendered diagram (pdf and png need rsvg-convert)
  dot             Graphviz source
  outline         indented text tree

Rendered diagrams are cached by the hash of their Graphviz source.`,
		Example: `  foodtree render -o foods.svg
  foodtree render --format png --highlight "Tortilla Chips" -o chips.png
  foodtree render --format outline --from Snacks`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("format") {
				opts.format = c.Config.Render.Format
			}
			if !flags.Changed("detailed") {
				opts.detailed = c.Config.Render.Detailed
			}
			if !flags.Changed("title") {
				opts.title = c.Config.Render.Title
			}
			if !flags.Changed("scale") {
				opts.scale = c.Config.Render.Scale
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg, pdf, png, dot, outline")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default foodtree.<format>; dot and outline print to stdout)")
	flags.BoolVar(&opts.detailed, "detailed", false, "show depth and descendant count in nodes")
	flags.StringVar(&opts.highlight, "highlight", "", "highlight the path to this label")
	flags.StringVar(&opts.title, "title", "", "diagram title")
	flags.Float64Var(&opts.scale, "scale", 2, "PNG scale factor")
	flags.BoolVar(&opts.noCache, "no-cache", false, "skip the diagram cache")
	flags.IntVar(&opts.maxDepth, "depth", 0, "outline: stop below this depth (0 for all)")
	flags.StringVar(&opts.from, "from", "", "outline: start at this label instead of the root")
	_ = cmd.RegisterFlagCompletionFunc("highlight", c.completeOneLabel)
	_ = cmd.RegisterFlagCompletionFunc("from", c.completeOneLabel)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatSVG, formatPDF, formatPNG, formatDOT, formatOutline}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runRender(ctx context.Context, out io.Writer, opts renderOpts) error {
	switch opts.format {
	case formatSVG, formatPDF, formatPNG, formatDOT, formatOutline:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown format %q", opts.format)
	}

	e, err := c.loadEngine(ctx)
	if err != nil {
		return err
	}
	t := e.Tree()

	if opts.format == formatOutline {
		return writeOutput(opts.output, out, func(w io.Writer) error {
			return outline.Write(w, t, outline.Options{MaxDepth: opts.maxDepth, From: opts.from})
		})
	}

	dotOpts := nodelink.Options{Detailed: opts.detailed, Title: opts.title}
	if opts.highlight != "" {
		path, err := e.Trace(ctx, opts.highlight)
		if err != nil {
			return err
		}
		dotOpts.Highlight = path
	}
	dot := nodelink.ToDOT(t, dotOpts)

	if opts.format == formatDOT {
		return writeOutput(opts.output, out, func(w io.Writer) error {
			_, err := io.WriteString(w, dot)
			return err
		})
	}

	store, keyer, err := c.openCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	keyOpts := cache.DiagramKeyOpts{Format: opts.format}
	if opts.format == formatPNG {
		keyOpts.Scale = opts.scale
	}
	key := keyer.DiagramKey(cache.DOTHash(dot), keyOpts)

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()
	data, hit, err := cache.Remember(ctx, store, key, c.Config.Cache.TTL.Duration, func() ([]byte, error) {
		switch opts.format {
		case formatPDF:
			return nodelink.RenderPDF(ctx, dot)
		case formatPNG:
			return nodelink.RenderPNG(ctx, dot, opts.scale)
		default:
			return nodelink.RenderSVG(ctx, dot)
		}
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	c.Logger.Debug("Rendered diagram", "format", opts.format, "bytes", len(data), "cached", hit)

	path := opts.output
	if path == "" {
		path = appName + "." + opts.format
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "write %s", path)
	}

	printSuccess("Rendered %s", opts.format)
	printFile(path)
	printStats(t.NodeCount(), t.EdgeCount(), hit)
	return nil
}

// writeOutput runs write against the file at path, or against fallback
// when path is empty or "-".
func writeOutput(path string, fallback io.Writer, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(fallback)
	}
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printFile(path)
	return nil
}
