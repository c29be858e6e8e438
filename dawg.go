package dawg

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// RootNode is the offset of the root node's first edge.
const RootNode NodeRef = 1

// Stats describes a finished build.
type Stats struct {
	Words    int   // words accepted
	Skipped  int   // non-blank lines rejected
	Nodes    int   // distinct nodes, root included
	Edges    int   // stored edges, root block included
	Shared   int   // times an identical node was found already stored
	Bytes    int64 // size of the encoded file
	Duration time.Duration
}

// Dawg is a compiled word graph held in memory, ready to be written.
type Dawg struct {
	edges []Edge
	stats Stats
}

// CompileReader compiles the words read one per line from r.
func CompileReader(r io.Reader, cfg Config) (*Dawg, error) {
	words, err := NewWordStream(r, cfg)
	if err != nil {
		return nil, err
	}
	return Compile(words, cfg)
}

// Compile consumes src and builds the graph of its words. Words are read
// exactly once. Any error from src, and any capacity or consistency
// failure, aborts the build.
func Compile(src WordSource, cfg Config) (*Dawg, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	b := &builder{
		src:      src,
		store:    newNodeStore(cfg),
		progress: cfg.ProgressInterval,
	}

	// prime the stream with the first word
	if err := b.advance(); err != nil {
		return nil, err
	}
	if _, err := b.buildNode(0); err != nil {
		return nil, err
	}

	d := &Dawg{
		edges: b.store.edges,
		stats: Stats{
			Words:    b.words,
			Nodes:    b.store.nodes,
			Edges:    b.store.numEdges(),
			Shared:   b.store.shared,
			Bytes:    int64(EdgeSize * len(b.store.edges)),
			Duration: time.Since(start),
		},
	}
	if sk, ok := src.(interface{ NumSkipped() int }); ok {
		d.stats.Skipped = sk.NumSkipped()
	}

	slog.Info("Dawg generated",
		"words", d.stats.Words,
		"skipped", d.stats.Skipped,
		"nodes", d.stats.Nodes,
		"edges", d.stats.Edges,
		"shared", d.stats.Shared,
		"bytes", d.stats.Bytes,
		"duration", d.stats.Duration)

	return d, nil
}

// NumAdded returns the number of words in the graph.
func (d *Dawg) NumAdded() int {
	return d.stats.Words
}

// NumNodes returns the number of distinct nodes, counting the root.
func (d *Dawg) NumNodes() int {
	return d.stats.Nodes
}

// NumEdges returns the number of stored edges. This includes every slot of
// the root block, used or not.
func (d *Dawg) NumEdges() int {
	return d.stats.Edges
}

// Stats returns the statistics of the build.
func (d *Dawg) Stats() Stats {
	return d.stats
}

// Edge returns the edge stored at offset i, for 1 <= i <= NumEdges().
func (d *Dawg) Edge(i NodeRef) Edge {
	return d.edges[i]
}

// builder carries the state of one build: the word being placed, the
// source it came from and the store receiving the nodes.
type builder struct {
	src   WordSource
	word  Word
	store *nodeStore

	words    int
	progress int
}

func (b *builder) advance() error {
	w, err := b.src.Next()
	if err != nil {
		return err
	}

	b.word = w
	if !w.End() {
		b.words++
		if b.progress > 0 && b.words%b.progress == 0 {
			b.report()
		}
	}
	return nil
}

func (b *builder) report() {
	edges := b.store.numEdges()
	bytes := EdgeSize * (edges + 1)
	slog.Info("Progress",
		"at", string(b.word.Text[:1]),
		"words", b.words,
		"nodes", b.store.nodes,
		"edges", edges,
		"bytes", bytes,
		"bytes_per_word", float64(bytes)/float64(b.words))
}

// buildNode builds the node reached after depth letters of the current
// word, together with everything below it, and returns its offset. It
// returns 0 when the current word ends at depth and the next word does not
// continue it.
func (b *builder) buildNode(depth int) (NodeRef, error) {
	if len(b.word.Text) == depth {
		if err := b.advance(); err != nil {
			return 0, err
		}
		if b.word.Prefix < depth {
			return 0, nil
		}
	}

	var edges []Edge
	for {
		if len(b.word.Text) <= depth {
			return 0, fmt.Errorf("%w: word %q has no letter at depth %d", ErrInternal, b.word.Text, depth)
		}
		letter := b.word.Text[depth]
		wordEnd := len(b.word.Text) == depth+1

		target, err := b.buildNode(depth + 1)
		if err != nil {
			return 0, err
		}
		edges = append(edges, NewEdge(letter, wordEnd, target))

		if b.word.Prefix != depth {
			break
		}
	}

	if b.word.Prefix > depth {
		return 0, fmt.Errorf("%w: common prefix %d exceeds depth %d", ErrInternal, b.word.Prefix, depth)
	}

	// flag the last edge in the node
	edges[len(edges)-1] |= NodeEnd

	if depth == 0 {
		return 0, b.store.setRoot(edges)
	}
	return b.store.add(edges)
}
