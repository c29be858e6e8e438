package dawg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/exp/mmap"
)

/* FILE FORMAT
All records are 32 bits, little-endian.
- record 0: number of edges N (only the low 24 bits are used)
- records 1..256: the root node, padded with empty edges. The last record
  of the block always has the node-end flag set.
- records 257..N: the other nodes, in the order they were first built.
Each edge record is laid out as described in bits.go. The file is
4*(N+1) bytes long.
*/

// Ext is the extension given to compiled files.
const Ext = ".dwg"

const countMask = 0xFFFFFF

// WriteTo writes the encoded graph to w. Returns the number of bytes written
func (d *Dawg) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, EdgeSize*len(d.edges))
	binary.LittleEndian.PutUint32(buf, uint32(d.NumEdges())&countMask)
	for i := 1; i < len(d.edges); i++ {
		binary.LittleEndian.PutUint32(buf[i*EdgeSize:], uint32(d.edges[i]))
	}

	n, err := w.Write(buf)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// Save writes the graph to filename. The data goes to a temporary file
// next to it which is renamed into place once complete, so filename is
// never left holding a partial graph. Returns the number of bytes written
func (d *Dawg) Save(filename string) (int64, error) {
	f, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmp := f.Name()

	n, err := d.WriteTo(f)
	if err == nil {
		err = f.Chmod(0o644)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, filename)
	}
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("writing %s: %w", filename, err)
	}

	return n, nil
}

// Graph gives read access to a compiled file in place. It is meant for
// checking and inspecting output, not for fast lookups.
type Graph struct {
	r        io.ReaderAt
	numEdges int
}

// Load opens a compiled file, mapping it into memory.
func Load(filename string) (*Graph, error) {
	f, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}

	g, err := Read(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return g, nil
}

// Read returns a Graph that accesses the compiled data in r. If r reports
// its length, the length must match the edge count in the header.
func Read(r io.ReaderAt) (*Graph, error) {
	g := &Graph{r: r}

	header, err := g.readUint32(0)
	if err != nil {
		return nil, err
	}
	if header&^countMask != 0 || header < RootSlots {
		return nil, fmt.Errorf("%w: bad edge count 0x%08x", ErrCorrupt, header)
	}
	g.numEdges = int(header)

	if sized, ok := r.(interface{ Len() int }); ok {
		if want := EdgeSize * (g.numEdges + 1); sized.Len() != want {
			return nil, fmt.Errorf("%w: size is %d bytes, header implies %d", ErrCorrupt, sized.Len(), want)
		}
	}

	last, err := g.Edge(RootSlots)
	if err != nil {
		return nil, err
	}
	if !last.IsNodeEnd() {
		return nil, fmt.Errorf("%w: root block is not terminated", ErrCorrupt)
	}

	return g, nil
}

// Close releases the underlying reader if it can be closed.
func (g *Graph) Close() error {
	if closer, ok := g.r.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// NumEdges returns the edge count recorded in the header.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// Edge returns the edge at offset i.
func (g *Graph) Edge(i NodeRef) (Edge, error) {
	if i == 0 || int(i) > g.numEdges {
		return 0, fmt.Errorf("%w: edge %d out of range 1..%d", ErrCorrupt, i, g.numEdges)
	}
	v, err := g.readUint32(int64(i) * EdgeSize)
	if err != nil {
		return 0, err
	}
	e := Edge(v)
	if !e.valid() {
		return 0, fmt.Errorf("%w: edge %d has the reserved bit set", ErrCorrupt, i)
	}
	return e, nil
}

func (g *Graph) readUint32(at int64) (uint32, error) {
	var data [4]byte
	if _, err := g.r.ReadAt(data[:], at); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: truncated at byte %d", ErrCorrupt, at)
		}
		return 0, err
	}
	return binary.LittleEndian.Uint32(data[:]), nil
}

// EnumFn is called for every prefix reachable in the graph. The word slice
// is reused between calls.
type EnumFn = func(word []byte, final bool) EnumerationResult

// EnumerationResult is returned by an EnumFn to say whether enumeration
// should continue below the prefix, skip it, or stop
type EnumerationResult = int

const (
	// Continue enumerating all words with this prefix
	Continue EnumerationResult = iota

	// Skip will skip all words with this prefix
	Skip

	// Stop will immediately stop enumerating words
	Stop
)

// Enumerate walks the graph depth first, in increasing byte order, calling
// fn with each prefix and whether it is a word.
func (g *Graph) Enumerate(fn EnumFn) error {
	_, err := g.enumerate(RootNode, nil, fn)
	return err
}

func (g *Graph) enumerate(node NodeRef, word []byte, fn EnumFn) (EnumerationResult, error) {
	// a path longer than the edge count can only come from a cycle
	if len(word) > g.numEdges {
		return Stop, fmt.Errorf("%w: cycle through edge %d", ErrCorrupt, node)
	}

	l := len(word)
	word = append(word, 0)

	for i := node; ; i++ {
		edge, err := g.Edge(i)
		if err != nil {
			return Stop, err
		}

		// unused slots of the root block carry nothing
		if edge&^NodeEnd != 0 {
			word[l] = edge.Letter()
			result := fn(word, edge.IsWordEnd())
			if result == Stop {
				return Stop, nil
			}
			if result == Continue && edge.Target() != 0 {
				result, err = g.enumerate(edge.Target(), word, fn)
				if err != nil || result == Stop {
					return result, err
				}
			}
		}

		if edge.IsNodeEnd() {
			break
		}
	}

	return Continue, nil
}

// Words returns every word in the graph in increasing order.
func (g *Graph) Words() ([]string, error) {
	var words []string
	err := g.Enumerate(func(word []byte, final bool) EnumerationResult {
		if final {
			words = append(words, string(word))
		}
		return Continue
	})
	return words, err
}

// Dump prints out every record of the graph
func (g *Graph) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "[%08x] EdgeCount=%d\n", 0, g.numEdges); err != nil {
		return err
	}
	for i := 1; i <= g.numEdges; i++ {
		edge, err := g.Edge(NodeRef(i))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "[%08x] %7d %v\n", i*EdgeSize, i, edge); err != nil {
			return err
		}
	}
	return nil
}
