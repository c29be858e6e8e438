package dawg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/yaml.v3"
)

const (
	// RootSlots is the number of edges reserved for the root node.
	RootSlots = 256

	// DefaultHashTableSize should be prime and about 20% larger than the
	// number of edges needed. Other good values are 30011, 150001,
	// 200003 and 220009.
	DefaultHashTableSize = 240007

	DefaultMaxEdges         = DefaultHashTableSize - 1
	DefaultMaxLine          = 256
	DefaultProgressInterval = 1024
)

// Config controls the capacities of a build.
type Config struct {
	// MaxEdges bounds the total number of edges, root included.
	MaxEdges int `yaml:"max_edges"`

	// HashTableSize is the number of slots in the hash-consing index.
	HashTableSize int `yaml:"hash_table_size"`

	// MaxLine bounds word length: words must be 2 to MaxLine-1 bytes.
	MaxLine int `yaml:"max_line"`

	// Encoding is an IANA charset name. When set, input lines are read as
	// UTF-8 and converted to this charset before they are compiled. The
	// input must then be sorted by the byte order of the converted words,
	// which can differ from the order of their UTF-8 form.
	Encoding string `yaml:"encoding"`

	// ProgressInterval is the number of words between progress reports.
	// Zero disables them.
	ProgressInterval int `yaml:"progress_interval"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		MaxEdges:         DefaultMaxEdges,
		HashTableSize:    DefaultHashTableSize,
		MaxLine:          DefaultMaxLine,
		ProgressInterval: DefaultProgressInterval,
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the
// file keep their default values; unknown fields are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %s: %v", ErrBadConfig, path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that the capacities can produce a well formed file.
func (c Config) Validate() error {
	switch {
	case c.MaxEdges <= RootSlots:
		return fmt.Errorf("%w: max_edges must exceed %d, got %d", ErrBadConfig, RootSlots, c.MaxEdges)
	case c.MaxEdges > PointerMask+1:
		return fmt.Errorf("%w: max_edges must not exceed %d, got %d", ErrBadConfig, PointerMask+1, c.MaxEdges)
	case c.HashTableSize < 1:
		return fmt.Errorf("%w: hash_table_size must be positive, got %d", ErrBadConfig, c.HashTableSize)
	case c.MaxLine < 3:
		return fmt.Errorf("%w: max_line must be at least 3, got %d", ErrBadConfig, c.MaxLine)
	case c.ProgressInterval < 0:
		return fmt.Errorf("%w: progress_interval must not be negative, got %d", ErrBadConfig, c.ProgressInterval)
	}
	_, err := c.encoding()
	return err
}

// encoding resolves the configured charset. A nil result means bytes are
// compiled as read.
func (c Config) encoding() (encoding.Encoding, error) {
	if c.Encoding == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(c.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %q: %v", ErrBadConfig, c.Encoding, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: encoding %q is not supported", ErrBadConfig, c.Encoding)
	}
	return enc, nil
}
