package dawg

import "fmt"

/* EDGE FORMAT

 31                24 23  22  21                                     0
+--------------------+---+---+--+-------------------------------------+
|      Letter        | W | N |R |            Node pointer             |
+--------------------+---+---+--+-------------------------------------+

W flags an edge as the end of a word, N flags the last edge of a node and
R is reserved and always zero. A node pointer of 0 means the edge has no
further edges below it.
*/

const (
	letterShift = 24

	// WordEnd is set on an edge whose traversal completes a word.
	WordEnd Edge = 1 << 23

	// NodeEnd is set on the last edge of a node.
	NodeEnd Edge = 1 << 22

	reserved Edge = 1 << 21

	// PointerMask selects the node pointer of an edge.
	PointerMask = 0x1FFFFF

	// EdgeSize is the size in bytes of one encoded edge record.
	EdgeSize = 4
)

// NodeRef is the offset of the first edge of a node in the edge array.
// The zero value refers to the node with no edges.
type NodeRef uint32

// Edge is a packed 32-bit edge record.
type Edge uint32

// NewEdge packs an edge. The target must fit in PointerMask.
func NewEdge(letter byte, wordEnd bool, target NodeRef) Edge {
	e := Edge(letter)<<letterShift | Edge(target)&PointerMask
	if wordEnd {
		e |= WordEnd
	}
	return e
}

// Letter returns the byte labelling the edge.
func (e Edge) Letter() byte {
	return byte(e >> letterShift)
}

// IsWordEnd reports whether following the edge completes a word.
func (e Edge) IsWordEnd() bool {
	return e&WordEnd != 0
}

// IsNodeEnd reports whether the edge is the last one of its node.
func (e Edge) IsNodeEnd() bool {
	return e&NodeEnd != 0
}

// Target returns the node reached through the edge, or 0.
func (e Edge) Target() NodeRef {
	return NodeRef(e & PointerMask)
}

func (e Edge) valid() bool {
	return e&reserved == 0
}

func (e Edge) String() string {
	w, n := '-', '-'
	if e.IsWordEnd() {
		w = 'W'
	}
	if e.IsNodeEnd() {
		n = 'N'
	}
	ch := e.Letter()
	if ch < 0x20 || ch >= 0x7f {
		return fmt.Sprintf("0x%02x %c%c -> %d", ch, w, n, e.Target())
	}
	return fmt.Sprintf("'%c'  %c%c -> %d", ch, w, n, e.Target())
}
