// Command cliclient renders Mandelbrot and Julia views to PNG files, either
// locally or by asking a running server.
//
//	cliclient render --region seahorse --iter 300 --out seahorse.png
//	cliclient fetch --server ws://localhost:8080/ws --mode julia --re -0.8 --im 0.156
package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marben/fraktaly"
	"github.com/marben/fraktaly/render"
	"github.com/marben/fraktaly/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(&options{}).ExecuteContext(ctx); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

type options struct {
	mode    string
	region  string
	bounds  fraktaly.Region
	width   int
	height  int
	iter    int
	re, im  float64
	palette string
	out     string
	verbose bool
}

func newRootCmd(opts *options) *cobra.Command {
	def := view.Default()

	root := &cobra.Command{
		Use:           "cliclient",
		Short:         "Render escape-time fractals to PNG",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			fraktaly.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.mode, "mode", string(def.Mode), "mandelbrot or julia")
	pf.StringVar(&opts.region, "region", "default", "landmark region: "+strings.Join(fraktaly.RegionNames(), ", "))
	pf.Float64Var(&opts.bounds.Xmin, "xmin", 0, "real axis minimum (overrides --region)")
	pf.Float64Var(&opts.bounds.Xmax, "xmax", 0, "real axis maximum (overrides --region)")
	pf.Float64Var(&opts.bounds.Ymin, "ymin", 0, "imaginary axis minimum (overrides --region)")
	pf.Float64Var(&opts.bounds.Ymax, "ymax", 0, "imaginary axis maximum (overrides --region)")
	pf.IntVar(&opts.width, "width", def.Resolution.Width, "image width")
	pf.IntVar(&opts.height, "height", def.Resolution.Height, "image height")
	pf.IntVar(&opts.iter, "iter", def.MaxIter, "iteration cap")
	pf.Float64Var(&opts.re, "re", def.JuliaRe, "real part of the Julia constant")
	pf.Float64Var(&opts.im, "im", def.JuliaIm, "imaginary part of the Julia constant")
	pf.StringVar(&opts.palette, "palette", "hot", "palette: "+strings.Join(render.PaletteNames(), ", "))
	pf.StringVarP(&opts.out, "out", "o", "fractal.png", "output PNG file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRenderCmd(opts), newFetchCmd(opts), newRegionsCmd())
	return root
}

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Compute the view locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.state(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			grid, err := fraktaly.Generate(st.Params())
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			fraktaly.Logger().Info("computed", "region", st.Region, "elapsed", time.Since(start))

			return opts.save(view.Frame{State: st, Grid: grid})
		},
	}
}

func newFetchCmd(opts *options) *cobra.Command {
	var server string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Ask a running server for the view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.state(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			fraktaly.Logger().Info("connecting", "server", server)
			c, err := dialServer(ctx, server)
			if err != nil {
				return err
			}
			defer c.Close()

			f, err := c.send(ctx, commandsFor(st)...)
			if err != nil {
				return err
			}
			fraktaly.Logger().Info("received", "seq", f.Seq, "server_ms", f.ElapsedMs)

			return opts.save(f)
		},
	}
	cmd.Flags().StringVar(&server, "server", "ws://localhost:8080/ws", "server websocket URL")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "give up after")
	return cmd
}

func newRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List landmark regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range fraktaly.RegionNames() {
				r, err := fraktaly.RegionByName(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %v\n", name, r)
			}
			return nil
		},
	}
}

// state builds the requested view. Explicit bounds override --region
// one by one.
func (o *options) state(cmd *cobra.Command) (view.State, error) {
	st := view.Default()
	if err := st.SetMode(view.Mode(strings.ToLower(o.mode))); err != nil {
		return st, err
	}

	region, err := fraktaly.RegionByName(o.region)
	if err != nil {
		return st, err
	}
	flags := cmd.Flags()
	if flags.Changed("xmin") {
		region.Xmin = o.bounds.Xmin
	}
	if flags.Changed("xmax") {
		region.Xmax = o.bounds.Xmax
	}
	if flags.Changed("ymin") {
		region.Ymin = o.bounds.Ymin
	}
	if flags.Changed("ymax") {
		region.Ymax = o.bounds.Ymax
	}
	st.Region = region

	st.Resolution = fraktaly.Resolution{Width: o.width, Height: o.height}
	st.MaxIter = o.iter
	st.JuliaRe, st.JuliaIm = o.re, o.im
	return st, nil
}

func (o *options) save(f view.Frame) error {
	pal, err := render.PaletteByName(o.palette)
	if err != nil {
		return err
	}
	img, err := render.Frame(f, pal)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := writePNG(o.out, img); err != nil {
		return err
	}
	fraktaly.Logger().Info("saved", "file", o.out, "title", render.Title(f.State))
	return nil
}

func writePNG(filename string, img image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}
