// Command huffmin compresses or decompresses a single file with canonical
// Huffman coding over byte symbols. Argument parsing, default output-path
// derivation, and console error reporting are this command's job, not the
// codec's (the core Encode/Decode operations never read argv or the
// filesystem directly; they work on byte streams).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelbwah/huffmin/internal/huffman"
	"github.com/urfave/cli/v2"
)

var (
	outfileFlag = &cli.StringFlag{
		Name:    "outfile",
		Aliases: []string{"o"},
		Usage:   "output file path (default derived from infile)",
	}
	decompressFlag = &cli.BoolFlag{
		Name:    "decompress",
		Aliases: []string{"d"},
		Usage:   "decompress infile instead of compressing it",
	}
)

func main() {
	app := &cli.App{
		Name:      "huffmin",
		Usage:     "compress or decompress a file with canonical Huffman coding",
		ArgsUsage: "infile",
		Flags:     []cli.Flag{outfileFlag, decompressFlag},
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	infile := c.Args().First()
	if infile == "" {
		return cli.Exit("infile is required", 1)
	}
	if _, err := os.Stat(infile); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	decompress := c.Bool(decompressFlag.Name)
	outfile := c.String(outfileFlag.Name)
	if outfile == "" {
		outfile = defaultOutfile(infile, decompress)
	}

	ctx := context.Background()
	var err error
	if decompress {
		err = huffman.DecompressFile(ctx, infile, outfile)
	} else {
		err = huffman.CompressFile(ctx, infile, outfile)
	}
	if err != nil {
		var herr *huffman.Error
		if errors.As(err, &herr) && herr.Kind == huffman.KindEmptyInput {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	return nil
}

// defaultOutfile derives the output path: "<infile>.comp" when compressing;
// when decompressing, strip a ".comp" suffix if infile ends with it and is
// longer than 5 characters, otherwise append ".decomp".
func defaultOutfile(infile string, decompress bool) string {
	if !decompress {
		return infile + ".comp"
	}
	if strings.HasSuffix(infile, ".comp") && len(infile) > 5 {
		return strings.TrimSuffix(infile, ".comp")
	}
	return infile + ".decomp"
}
