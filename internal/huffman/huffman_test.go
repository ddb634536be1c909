package huffman

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	return b
}

func encodeBytes(t *testing.T, input []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	src := NewChunkSource(bytes.NewReader(input))
	if err := Encode(context.Background(), src, &out); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return out.Bytes()
}

func decodeBytes(t *testing.T, compressed []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := Decode(context.Background(), bytes.NewReader(compressed), &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return out.Bytes()
}

func TestEncodeEmptyInputFails(t *testing.T) {
	var out bytes.Buffer
	src := NewChunkSource(bytes.NewReader(nil))
	err := Encode(context.Background(), src, &out)
	if err == nil {
		t.Fatal("expected an error for empty input")
	}
	var herr *Error
	if !errors.As(err, &herr) || herr.Kind != KindEmptyInput {
		t.Fatalf("got %v, want KindEmptyInput", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on EmptyInput, got %d bytes", out.Len())
	}
}

func TestLiteralVectors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"one", []byte{0x61}, "00 61 01"},
		{"one_repeated", []byte{0x61, 0x61}, "00 61 02"},
		{"two", []byte{0x61, 0x62}, "01 61 62 D5"},
		{
			"couple",
			[]byte{0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0xFF},
			"06 FF 61 62 63 64 65 66 F2 5C 59 74 E5 DC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeBytes(t, tt.in)
			want := mustHex(t, tt.want)
			if !bytes.Equal(got, want) {
				t.Fatalf("encode(%x) = % X, want % X", tt.in, got, want)
			}

			back := decodeBytes(t, got)
			if !bytes.Equal(back, tt.in) {
				t.Fatalf("round-trip mismatch: got %x, want %x", back, tt.in)
			}
		})
	}
}

func TestOneLargeVector(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 3,000,000-byte vector in short mode")
	}
	in := bytes.Repeat([]byte{0xFF}, 3_000_000)
	got := encodeBytes(t, in)
	want := append([]byte{0x00, 0xFF}, mustHex(t, "2D C6 C0")...)
	if !bytes.Equal(got, want) {
		t.Fatalf("encode output mismatch: got % X, want % X", got, want)
	}
	back := decodeBytes(t, got)
	if !bytes.Equal(back, in) {
		t.Fatal("round-trip mismatch for one_large vector")
	}
}

func TestLargeThreeSymbolVector(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 30,000,000-byte vector in short mode")
	}
	in := make([]byte, 0, 30_000_000)
	in = append(in, bytes.Repeat([]byte{0x61}, 10_000_000)...)
	in = append(in, bytes.Repeat([]byte{0xFF}, 10_000_000)...)
	in = append(in, bytes.Repeat([]byte{0x63}, 10_000_000)...)

	got := encodeBytes(t, in)

	want := append([]byte{}, mustHex(t, "02 FF 61 63 4B")...)
	want = append(want, bytes.Repeat([]byte{0xAA}, 2_500_000)...)
	want = append(want, bytes.Repeat([]byte{0x00}, 1_250_000)...)
	want = append(want, bytes.Repeat([]byte{0xFF}, 2_500_000)...)

	if !bytes.Equal(got, want) {
		t.Fatalf("encode output mismatch (lengths got=%d want=%d)", len(got), len(want))
	}

	back := decodeBytes(t, got)
	if !bytes.Equal(back, in) {
		t.Fatal("round-trip mismatch for large three-symbol vector")
	}
}

func TestRoundTripArbitraryInputs(t *testing.T) {
	inputs := [][]byte{
		[]byte("aaaaabbbbcccdde"),
		{0x00, 0xFF, 0xAB, 0xAB, 0xAB, 0x01, 0x02, 0x03},
		[]byte("hello world! hello world! hello world! hello world!"),
		bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200),
	}
	for _, in := range inputs {
		compressed := encodeBytes(t, in)
		back := decodeBytes(t, compressed)
		if !bytes.Equal(back, in) {
			t.Fatalf("round-trip mismatch for input of length %d", len(in))
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	in := []byte("mississippi river")
	first := encodeBytes(t, in)
	for i := 0; i < 5; i++ {
		again := encodeBytes(t, in)
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d: encode output changed across calls", i)
		}
	}
}

func TestDecodeRejectsTruncatedPayload(t *testing.T) {
	in := []byte("aaaaabbbbcccdde")
	compressed := encodeBytes(t, in)
	truncated := compressed[:len(compressed)-1]

	var out bytes.Buffer
	err := Decode(context.Background(), bytes.NewReader(truncated), &out)
	if err == nil {
		t.Fatal("expected an error decoding a truncated payload")
	}
}

func TestDecodeRejectsMalformedHeader(t *testing.T) {
	// A single distinct-byte-count byte claiming 3 symbols, but no symbol
	// bytes or tree-shape bytes follow.
	var out bytes.Buffer
	err := Decode(context.Background(), bytes.NewReader([]byte{0x02}), &out)
	if err == nil {
		t.Fatal("expected an error decoding a header with no symbol list")
	}
	var herr *Error
	if !errors.As(err, &herr) || (herr.Kind != KindMalformedHeader && herr.Kind != KindIoError) {
		t.Fatalf("got %v, want KindMalformedHeader or KindIoError", err)
	}
}
