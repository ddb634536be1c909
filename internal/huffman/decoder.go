package huffman

import (
	"context"
	"errors"
	"io"
	"math/big"
)

// Decode parses a compressed stream written by Encode and writes the
// original bytes to sink.
func Decode(ctx context.Context, source io.Reader, sink io.Writer) error {
	var first [1]byte
	if _, err := io.ReadFull(source, first[:]); err != nil {
		return headerReadErr(err, "read leading byte")
	}

	if first[0] == 0x00 {
		return decodeSingleSymbol(source, sink)
	}

	leaves := int(first[0]) + 1
	symbols := make([]byte, leaves)
	if _, err := io.ReadFull(source, symbols); err != nil {
		return headerReadErr(err, "read %d-entry symbol list", leaves)
	}

	// The tree-shape window is sized for the worst case (align up to 7
	// bits) but on a small alphabet the payload can
	// already start inside this same window, so unlike the leading byte
	// and symbol list above, a short read here is not by itself malformed
	// — it's read to end-of-file tolerantly, and whatever trails the
	// shape bits becomes the initial payload carry.
	shapeLen := 4*leaves - 4
	shapeByteLen := (shapeLen+7)/8 + 1
	shapeRaw, err := readAtMost(source, shapeByteLen)
	if err != nil {
		return ioErrorf(err, "read up to %d-byte tree shape window", shapeByteLen)
	}

	shapeBits, carry, err := parseShape(shapeRaw, shapeLen)
	if err != nil {
		return err
	}

	codeToSymbol, err := reconstructCodes(shapeBits, symbols)
	if err != nil {
		return err
	}

	return streamDecode(ctx, source, sink, codeToSymbol, carry)
}

// readAtMost reads up to n bytes from source, returning fewer than n
// without error if the source runs out first — the Go equivalent of
// Python's file.read(n), which the original codec relies on here.
func readAtMost(source io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(source, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return buf[:read], nil
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func headerReadErr(err error, format string, args ...any) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return malformedHeaderf(format+": truncated before it could be read", args...)
	}
	return ioErrorf(err, format, args...)
}

// parseShape strips the leading run of align '1' bits from the raw header
// tail, returning the shapeLen-bit shape string and whatever bits are left
// over as the initial payload carry.
func parseShape(raw []byte, shapeLen int) (shape string, carry string, err error) {
	bits := bytesToBits(raw)
	start := firstZeroBit(bits)
	if start == -1 {
		return "", "", malformedHeaderf("tree shape field is entirely align bits")
	}
	rest := bits[start:]
	if len(rest) < shapeLen {
		return "", "", malformedHeaderf("tree shape field shorter than expected %d bits", shapeLen)
	}
	return rest[:shapeLen], rest[shapeLen:], nil
}

// reconstructCodes replays the shape bit-string's descend/ascend automaton
// to recover each leaf's code, in the same order as the
// symbol list, and pairs codes with symbols.
func reconstructCodes(shapeBits string, symbols []byte) (map[string]byte, error) {
	var codes []string
	var path []byte
	prev := byte('0')
	for i := 0; i < len(shapeBits); i++ {
		cur := shapeBits[i]
		switch {
		case prev == '0' && cur == '1':
			codes = append(codes, string(path))
			if len(path) == 0 {
				return nil, malformedHeaderf("tree shape ascends past the root")
			}
			path = path[:len(path)-1]
		case prev == '0' && cur == '0':
			path = append(path, '0')
		case prev == '1' && cur == '0':
			path = append(path, '1')
		default: // prev == '1' && cur == '1'
			if len(path) == 0 {
				return nil, malformedHeaderf("tree shape ascends past the root")
			}
			path = path[:len(path)-1]
		}
		prev = cur
	}
	if len(codes) != len(symbols) {
		return nil, malformedHeaderf("tree shape produced %d codes, expected %d", len(codes), len(symbols))
	}

	codeToSymbol := make(map[string]byte, len(symbols))
	for i, code := range codes {
		codeToSymbol[code] = symbols[i]
	}
	return codeToSymbol, nil
}

// streamDecode consumes the payload chunk by chunk, carrying unmatched bits
// across chunk boundaries.
func streamDecode(ctx context.Context, source io.Reader, sink io.Writer, codeToSymbol map[string]byte, carry string) error {
	buf := make([]byte, defaultChunkBytes)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := source.Read(buf)
		if n > 0 {
			bits := carry + bytesToBits(buf[:n])
			decoded, rest, err := decodeBits(bits, codeToSymbol)
			if err != nil {
				return err
			}
			carry = rest
			if len(decoded) > 0 {
				if _, err := sink.Write(decoded); err != nil {
					return ioErrorf(err, "write decoded output")
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return ioErrorf(readErr, "read payload")
		}
	}

	// The carry may still hold whole codes when the payload ended inside the
	// tree-shape window and no further chunk was read.
	decoded, rest, err := decodeBits(carry, codeToSymbol)
	if err != nil {
		return err
	}
	if len(decoded) > 0 {
		if _, err := sink.Write(decoded); err != nil {
			return ioErrorf(err, "write final decoded bytes")
		}
	}
	if rest == "" {
		return nil
	}
	return truncatedPayloadf("%d trailing bits match no code", len(rest))
}

// decodeBits greedily matches bits against codeToSymbol, returning decoded
// bytes and the unmatched tail.
func decodeBits(bits string, codeToSymbol map[string]byte) (decoded []byte, rest string, err error) {
	start := 0
	for i := 1; i <= len(bits); i++ {
		if symbol, ok := codeToSymbol[bits[start:i]]; ok {
			decoded = append(decoded, symbol)
			start = i
		}
	}
	return decoded, bits[start:], nil
}

// decodeSingleSymbol implements the one-distinct-byte special case's
// decode side.
func decodeSingleSymbol(source io.Reader, sink io.Writer) error {
	var symbol [1]byte
	if _, err := io.ReadFull(source, symbol[:]); err != nil {
		return headerReadErr(err, "read single-symbol byte")
	}
	countBytes, err := io.ReadAll(source)
	if err != nil {
		return ioErrorf(err, "read single-symbol repeat count")
	}
	count := new(big.Int).SetBytes(countBytes)

	const writeChunk = defaultChunkBytes
	fill := make([]byte, writeChunk)
	for i := range fill {
		fill[i] = symbol[0]
	}

	remaining := new(big.Int).Set(count)
	chunkBig := big.NewInt(writeChunk)
	for remaining.Sign() > 0 {
		n := writeChunk
		if remaining.Cmp(chunkBig) < 0 {
			n = int(remaining.Int64())
		}
		if _, err := sink.Write(fill[:n]); err != nil {
			return ioErrorf(err, "write single-symbol output")
		}
		remaining.Sub(remaining, big.NewInt(int64(n)))
	}
	return nil
}
