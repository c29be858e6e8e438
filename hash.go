package dawg

import (
	"fmt"
	"math/bits"
)

// nodeStore is the flat edge array being built together with the
// hash-consing index over the nodes stored in it. Offset 0 is reserved for
// the empty node and the root occupies offsets 1 to RootSlots.
type nodeStore struct {
	edges    []Edge
	table    []NodeRef
	maxEdges int

	nodes  int // root included
	shared int // nodes found already stored
}

func newNodeStore(cfg Config) *nodeStore {
	edges := make([]Edge, RootSlots+1, RootSlots+1+4096)
	edges[RootSlots] = NodeEnd

	return &nodeStore{
		edges:    edges,
		table:    make([]NodeRef, cfg.HashTableSize),
		maxEdges: cfg.MaxEdges,
		nodes:    1,
	}
}

// numEdges returns the number of stored edges, not counting offset 0.
func (s *nodeStore) numEdges() int {
	return len(s.edges) - 1
}

// setRoot copies the root's edges to the start of the root block. The last
// slot of the block is always flagged as the end of the node so that the
// block can be scanned backwards.
func (s *nodeStore) setRoot(edges []Edge) error {
	if len(edges) > RootSlots {
		return fmt.Errorf("%w: root has %d edges", ErrInternal, len(edges))
	}
	copy(s.edges[1:], edges)
	s.edges[RootSlots] |= NodeEnd
	return nil
}

// hashEdges folds the edges of a node into a 32-bit value. The order of the
// edges matters.
func hashEdges(edges []Edge) uint32 {
	var h uint32
	for _, e := range edges {
		h = bits.RotateLeft32(h, 1) ^ uint32(e)
	}
	return h
}

func (s *nodeStore) slotOf(edges []Edge) int {
	h := int64(int32(hashEdges(edges)))
	if h < 0 {
		h = -h
	}
	return int(h % int64(len(s.table)))
}

// add returns the offset of a node with exactly these edges, storing the
// node first if no identical node has been stored yet. The hash only
// selects where to look; equality is always decided by comparing edges.
func (s *nodeStore) add(edges []Edge) (NodeRef, error) {
	size := len(s.table)
	a := s.slotOf(edges)
	first := a
	inc := 9

	for s.table[a] != 0 {
		if s.matches(s.table[a], edges) {
			s.shared++
			return s.table[a], nil
		}

		// quadratic probe
		a = (a + inc) % size
		inc = (inc + 8) % size
		if a == first {
			return 0, fmt.Errorf("%w: %d slots", ErrIndexFull, size)
		}
	}

	if s.numEdges()+len(edges) >= s.maxEdges {
		return 0, fmt.Errorf("%w: total edges = %d, limit %d", ErrCapacity, s.numEdges(), s.maxEdges)
	}

	ref := NodeRef(len(s.edges))
	s.edges = append(s.edges, edges...)
	s.table[a] = ref
	s.nodes++

	return ref, nil
}

func (s *nodeStore) matches(ref NodeRef, edges []Edge) bool {
	at := int(ref)
	if at+len(edges) > len(s.edges) {
		return false
	}
	for i, e := range edges {
		if s.edges[at+i] != e {
			return false
		}
	}
	return true
}
