package huffman

import "strings"

// serializedTree is everything serialize() needs to hand the encoder: the
// header's two variable-length fields (symbol list and shape) plus the two
// derived products the emitter populates during its single traversal sweep.
// The align run is computed separately by alignmentBits.
type serializedTree struct {
	symbols        []byte          // pre-order leaf visit order
	shapeBits      string          // length 4L-4
	codebook       map[byte]string // symbol -> code
	encodingLength int             // E = sum(freq(s) * len(code(s)))
}

// serialize walks root in left-first pre-order, emitting a '0' on every
// descent and a '1' on every ascent, and records each leaf's code and the
// running payload length as it goes: at every internal node emit '0',
// recurse left, emit '1', '0', recurse right, emit '1'; leaves emit nothing
// of their own but contribute their accumulated code path.
func serialize(root *node, freq map[byte]int) serializedTree {
	st := serializedTree{
		codebook: make(map[byte]string, len(freq)),
	}
	var shape strings.Builder

	var walk func(n *node, code string)
	walk = func(n *node, code string) {
		if n.isLeaf() {
			st.symbols = append(st.symbols, n.symbol)
			st.codebook[n.symbol] = code
			st.encodingLength += freq[n.symbol] * len(code)
			return
		}
		shape.WriteByte('0')
		walk(n.left, code+"0")
		shape.WriteByte('1')
		shape.WriteByte('0')
		walk(n.right, code+"1")
		shape.WriteByte('1')
	}
	walk(root, "")

	st.shapeBits = shape.String()
	return st
}

// alignmentBits returns the run length of '1' padding bits needed so that
// the total bit count of align+shape+payload is a multiple of 8.
func alignmentBits(shapeLen, encodingLength int) int {
	return (8 - (shapeLen+encodingLength)%8) % 8
}
