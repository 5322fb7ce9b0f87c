// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ndkit/ndarray"
)

var errNoTarget = errors.New("one of --to or --scale is required")

// globals are the persistent flags shared by every subcommand.
type globals struct {
	precision int
	workers   int
	verbose   bool
}

// options turns the persistent flags into engine options.
func (g *globals) options(cmd *cobra.Command) []ndarray.Option {
	opts := []ndarray.Option{ndarray.WithWorkers(g.workers)}
	if g.verbose {
		h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, ndarray.WithLogger(slog.New(h)))
	}

	return opts
}

// print writes a in the literal format at the requested precision.
func (g *globals) print(cmd *cobra.Command, a *ndarray.Array[float64]) {
	fmt.Fprintln(cmd.OutOrStdout(), ndarray.Format(a, ndarray.WithPrecision(g.precision)))
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "ndkit",
		Short:         "Inspect, regrid and smooth N-dimensional array literals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if g.precision < -1 {
				return fmt.Errorf("--precision %d: must be >= -1", g.precision)
			}
			if g.workers < 0 {
				return fmt.Errorf("--workers %d: must be >= 0", g.workers)
			}
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.IntVar(&g.precision, "precision", ndarray.DefaultPrecision, "decimals for printed floats (-1 = shortest)")
	pf.IntVar(&g.workers, "workers", ndarray.DefaultWorkers, "parallel workers (0 = GOMAXPROCS)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log engine diagnostics to stderr")

	root.AddCommand(newShapeCmd(), newRegridCmd(g), newSmoothCmd(g))

	return root
}

func newShapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shape <literal>",
		Short: "Print rank, shape, element count and valid count of a literal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readLiteral(cmd, args[0])
			if err != nil {
				return err
			}
			valid := 0
			for _, v := range a.Data() {
				if !math.IsNaN(v) {
					valid++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rank=%d shape=%v count=%d valid=%d\n", a.Rank(), a.Shape(), a.Len(), valid)
			return nil
		},
	}
}

func newRegridCmd(g *globals) *cobra.Command {
	var (
		to    []int
		scale []float64
	)
	cmd := &cobra.Command{
		Use:   "regrid <literal>",
		Short: "Sum into a coarser grid (--to) or smooth-regrid by pixel scale (--scale)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readLiteral(cmd, args[0])
			if err != nil {
				return err
			}
			var out *ndarray.Array[float64]
			switch {
			case len(to) > 0:
				if out, err = ndarray.New[float64](to...); err != nil {
					return err
				}
				err = ndarray.CoarseRegrid(a, out)
			case len(scale) > 0:
				out, err = ndarray.SmoothRegrid(a, scale, g.options(cmd)...)
			default:
				err = errNoTarget
			}
			if err != nil {
				return err
			}
			g.print(cmd, out)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&to, "to", nil, "destination shape for coarse regridding")
	cmd.Flags().Float64SliceVar(&scale, "scale", nil, "output pixel size in input pixels, per axis")
	cmd.MarkFlagsMutuallyExclusive("to", "scale")

	return cmd
}

func newSmoothCmd(g *globals) *cobra.Command {
	var fwhm []float64
	cmd := &cobra.Command{
		Use:   "smooth <literal>",
		Short: "Gaussian-smooth a literal, skipping NaN cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readLiteral(cmd, args[0])
			if err != nil {
				return err
			}
			// A single width applies to every axis.
			if len(fwhm) == 1 && a.Rank() > 1 {
				w := fwhm[0]
				fwhm = make([]float64, a.Rank())
				for d := range fwhm {
					fwhm[d] = w
				}
			}
			out, err := ndarray.SmoothGaussian(a, nil, fwhm, g.options(cmd)...)
			if err != nil {
				return err
			}
			g.print(cmd, out)
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&fwhm, "fwhm", []float64{1}, "Gaussian FWHM in pixels, one per axis or one for all")

	return cmd
}

// readLiteral parses arg, or standard input when arg is "-".
func readLiteral(cmd *cobra.Command, arg string) (*ndarray.Array[float64], error) {
	if arg == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		arg = strings.TrimSpace(string(b))
	}

	return ndarray.ParseAuto[float64](arg)
}
