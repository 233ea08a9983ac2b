package huffman

import "container/heap"

// node is either a leaf (left and right nil) or an internal node with exactly
// two children. Internal frequency is the sum of its children.
type node struct {
	symbol rune
	freq   int
	seq    int // heap tie-break: first-seen index for leaves, creation order for merges
	left   *node
	right  *node
}

func (n *node) leaf() bool {
	return n.left == nil
}

// nodeHeap is a min-heap ordered by (freq, seq).
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

// Tree is an immutable Huffman tree. The zero Tree has no root and encodes
// nothing.
type Tree struct {
	root   *node
	leaves int
}

// BuildTree builds the Huffman tree for freq.
//
// Nodes with equal frequency are merged in insertion order: leaves in the
// table's first-seen order, then merged nodes in the order they were created.
// The first node extracted becomes the left child. The result is therefore
// fully determined by the table.
func BuildTree(freq *FrequencyTable) *Tree {
	h := make(nodeHeap, 0, freq.Len())
	seq := 0
	freq.Each(func(r rune, n int) {
		h = append(h, &node{symbol: r, freq: n, seq: seq})
		seq++
	})
	if len(h) == 0 {
		return &Tree{}
	}

	leaves := len(h)
	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(*node)
		b := heap.Pop(&h).(*node)
		heap.Push(&h, &node{freq: a.freq + b.freq, seq: seq, left: a, right: b})
		seq++
	}
	return &Tree{root: heap.Pop(&h).(*node), leaves: leaves}
}

// Empty reports whether the tree has no symbols.
func (t *Tree) Empty() bool {
	return t.root == nil
}

// Leaves returns the number of leaf symbols.
func (t *Tree) Leaves() int {
	return t.leaves
}

// Weight returns the root frequency, the number of symbols the tree was built from.
func (t *Tree) Weight() int {
	if t.root == nil {
		return 0
	}
	return t.root.freq
}

// Depth returns the length of the longest root-to-leaf path. A single-leaf
// tree has depth 0.
func (t *Tree) Depth() int {
	if t.root == nil {
		return 0
	}
	var depth func(n *node) int
	depth = func(n *node) int {
		if n.leaf() {
			return 0
		}
		return 1 + max(depth(n.left), depth(n.right))
	}
	return depth(t.root)
}

// valid checks the strict-binary and frequency-sum invariants.
func (t *Tree) valid() bool {
	if t.root == nil {
		return t.leaves == 0
	}
	leaves := 0
	var walk func(n *node) bool
	walk = func(n *node) bool {
		if n.left == nil || n.right == nil {
			if n.left != n.right {
				return false
			}
			leaves++
			return true
		}
		if n.freq != n.left.freq+n.right.freq {
			return false
		}
		return walk(n.left) && walk(n.right)
	}
	return walk(t.root) && leaves == t.leaves
}
