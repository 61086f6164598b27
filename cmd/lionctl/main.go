// Command lionctl is a thin reference driver for the lion package's Lion
// and Mandala kernels. It is not a container format: it emits and expects
// raw concatenated kernel output, with no header, footer, or block
// sentinels of its own, matching the library's explicit scope.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/flowcodec/lion"
	"github.com/flowcodec/lion/cmd/lionctl/internal/runner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		kernel                 string
		parallelDecompressible bool
		verbose                bool
	)

	root := &cobra.Command{
		Use:           "lionctl",
		Short:         "Drive the Lion/Mandala streaming compression kernels over a file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&kernel, "kernel", "lion", `which kernel to run: "lion" or "mandala"`)
	root.PersistentFlags().BoolVar(&parallelDecompressible, "parallel-decompressible", false,
		"periodically reset the dictionary on block boundaries so ranges can be decoded independently")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log every scheduler interrupt at debug level")

	newLogger := func() zerolog.Logger {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	}

	root.AddCommand(newEncodeCmd(&kernel, &parallelDecompressible, newLogger))
	root.AddCommand(newDecodeCmd(&kernel, &parallelDecompressible, newLogger))
	return root
}

func newEncodeCmd(kernel *string, parallelDecompressible *bool, newLogger func() zerolog.Logger) *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Compress a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			input, err := readInput(inPath)
			if err != nil {
				return err
			}

			enc, err := newEncoder(*kernel, *parallelDecompressible)
			if err != nil {
				return err
			}

			out, stats, err := runner.Encode(log, enc, input)
			if err != nil {
				return err
			}
			log.Info().
				Str("kernel", *kernel).
				Int("input_bytes", len(input)).
				Int("output_bytes", len(out)).
				Int("blocks", stats.NewBlocks).
				Int("efficiency_checks", stats.EfficiencyChecks).
				Int("output_grows", stats.OutputGrows).
				Msg("encode complete")
			return writeOutput(outPath, out)
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input file path (default stdin)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (default stdout)")
	return cmd
}

func newDecodeCmd(kernel *string, parallelDecompressible *bool, newLogger func() zerolog.Logger) *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decompress a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			input, err := readInput(inPath)
			if err != nil {
				return err
			}

			dec, err := newDecoder(*kernel, *parallelDecompressible)
			if err != nil {
				return err
			}

			out, stats, err := runner.Decode(log, dec, input)
			if err != nil {
				return err
			}
			log.Info().
				Str("kernel", *kernel).
				Int("input_bytes", len(input)).
				Int("output_bytes", len(out)).
				Int("blocks", stats.NewBlocks).
				Int("efficiency_checks", stats.EfficiencyChecks).
				Msg("decode complete")
			return writeOutput(outPath, out)
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input file path (default stdin)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (default stdout)")
	return cmd
}

func newEncoder(kernel string, parallelDecompressible bool) (interface {
	Continue(in lion.Teleport, out *lion.Location, flush bool) lion.StateCode
	Finish(in lion.Teleport, out *lion.Location) lion.StateCode
}, error) {
	switch kernel {
	case "lion":
		return lion.NewEncoder(parallelDecompressible), nil
	case "mandala":
		return lion.NewMandalaEncoder(parallelDecompressible), nil
	default:
		return nil, fmt.Errorf(`unknown kernel %q, want "lion" or "mandala"`, kernel)
	}
}

func newDecoder(kernel string, parallelDecompressible bool) (interface {
	Continue(in *lion.Location, out lion.Teleport, flush bool) lion.StateCode
	Finish(in *lion.Location, out lion.Teleport) lion.StateCode
}, error) {
	switch kernel {
	case "lion":
		return lion.NewDecoder(parallelDecompressible), nil
	case "mandala":
		return lion.NewMandalaDecoder(parallelDecompressible), nil
	default:
		return nil, fmt.Errorf(`unknown kernel %q, want "lion" or "mandala"`, kernel)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
