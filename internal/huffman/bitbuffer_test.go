package huffman

import (
	"bytes"
	"testing"
)

func TestBitWriterPacksMSBFirst(t *testing.T) {
	var buf bytes.Buffer
	w := newBitWriter(&buf)
	if err := w.write("11010101"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := buf.Bytes(); len(got) != 1 || got[0] != 0xD5 {
		t.Fatalf("got %x, want d5", got)
	}
}

func TestBitWriterCarriesSubByteResidueAcrossWrites(t *testing.T) {
	var buf bytes.Buffer
	w := newBitWriter(&buf)
	if err := w.write("1101"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no bytes flushed yet, got %d", buf.Len())
	}
	if err := w.write("0101"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := buf.Bytes(); len(got) != 1 || got[0] != 0xD5 {
		t.Fatalf("got %x, want d5", got)
	}
}

func TestBitWriterCloseFailsOnUnalignedResidue(t *testing.T) {
	var buf bytes.Buffer
	w := newBitWriter(&buf)
	if err := w.write("101"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.close(); err == nil {
		t.Fatal("expected close to fail on 3 leftover bits")
	}
}
