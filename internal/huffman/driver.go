package huffman

import (
	"context"
	"os"
)

// CompressFile sequences Encode against two os.File handles opened at
// inPath/outPath, the file-level wrapper around the streaming core. On any
// failure the partial output file is removed: callers never see a partial
// output file left behind, and must assume the sink's contents are
// otherwise indeterminate.
func CompressFile(ctx context.Context, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return ioErrorf(err, "open input file %q", inPath)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return ioErrorf(err, "create output file %q", outPath)
	}

	if err := Encode(ctx, NewChunkSource(in), out); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return ioErrorf(err, "close output file %q", outPath)
	}
	return nil
}

// DecompressFile is CompressFile's mirror image for Decode.
func DecompressFile(ctx context.Context, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return ioErrorf(err, "open input file %q", inPath)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return ioErrorf(err, "create output file %q", outPath)
	}

	if err := Decode(ctx, in, out); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return ioErrorf(err, "close output file %q", outPath)
	}
	return nil
}
