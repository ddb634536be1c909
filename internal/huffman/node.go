package huffman

import (
	"bytes"
	"container/heap"
)

// node is one entry in the Huffman tree. A leaf carries a single symbol; an
// internal node carries the combined frequency of its children and owns
// them exclusively (there is no sharing, so the tree is freed in one pass
// by simply dropping the root).
//
// key is the tie-breaking secondary sort key: for a leaf it is the leaf's
// own symbol, for an internal node the concatenation of its children's
// keys at the time the node was created. It exists only for priority-queue
// ordering and never changes afterwards.
type node struct {
	symbol byte
	freq   int
	key    []byte
	left   *node
	right  *node
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// priorityQueue implements heap.Interface over *node, ordered by
// (freq, key) ascending. This ordering is load-bearing: it is what makes
// buildTree's output bit-exact across runs and across map iteration order.
type priorityQueue []*node

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].freq != pq[j].freq {
		return pq[i].freq < pq[j].freq
	}
	return bytes.Compare(pq[i].key, pq[j].key) < 0
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(*node))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// buildTree constructs a Huffman tree from a frequency table with at least
// two distinct symbols. Callers are expected to special-case the
// zero- and one-symbol alphabets themselves before calling this.
func buildTree(freq map[byte]int) *node {
	pq := make(priorityQueue, 0, len(freq))
	heap.Init(&pq)
	for symbol, f := range freq {
		heap.Push(&pq, &node{symbol: symbol, freq: f, key: []byte{symbol}})
	}

	for pq.Len() > 1 {
		left := heap.Pop(&pq).(*node)
		right := heap.Pop(&pq).(*node)
		key := make([]byte, 0, len(left.key)+len(right.key))
		key = append(key, left.key...)
		key = append(key, right.key...)
		merged := &node{
			freq:  left.freq + right.freq,
			key:   key,
			left:  left,
			right: right,
		}
		heap.Push(&pq, merged)
	}
	return heap.Pop(&pq).(*node)
}
