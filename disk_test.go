package dawg_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	dawg "github.com/milden6/dwg"
)

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) - 1, nil
}

func TestWriteToShortWrite(t *testing.T) {
	d := createDawg(t, []string{"ab"}, dawg.DefaultConfig())
	_, err := d.WriteTo(shortWriter{})
	require.ErrorIs(t, err, io.ErrShortWrite)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	d := createDawg(t, []string{"ab", "cd"}, dawg.DefaultConfig())

	filename := filepath.Join(dir, "words"+dawg.Ext)
	n, err := d.Save(filename)
	require.NoError(t, err)
	require.Equal(t, d.Stats().Bytes, n)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.Equal(t, encode(t, d), data)

	// nothing but the output is left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	d := createDawg(t, []string{"ab"}, dawg.DefaultConfig())

	filename := filepath.Join(t.TempDir(), "missing", "words"+dawg.Ext)
	_, err := d.Save(filename)
	require.Error(t, err)

	_, err = os.Stat(filename)
	require.True(t, os.IsNotExist(err))
}

func corrupt(t *testing.T, data []byte) error {
	_, err := dawg.Read(bytes.NewReader(data))
	return err
}

func TestReadRejectsCorruptFiles(t *testing.T) {
	good := encode(t, createDawg(t, []string{"ab", "cd"}, dawg.DefaultConfig()))
	require.NoError(t, corrupt(t, good))

	t.Run("truncated", func(t *testing.T) {
		require.ErrorIs(t, corrupt(t, good[:len(good)-4]), dawg.ErrCorrupt)
	})

	t.Run("trailing data", func(t *testing.T) {
		require.ErrorIs(t, corrupt(t, append(append([]byte{}, good...), 0, 0, 0, 0)), dawg.ErrCorrupt)
	})

	t.Run("empty", func(t *testing.T) {
		require.ErrorIs(t, corrupt(t, nil), dawg.ErrCorrupt)
	})

	t.Run("high count bits", func(t *testing.T) {
		bad := append([]byte{}, good...)
		bad[3] = 1
		require.ErrorIs(t, corrupt(t, bad), dawg.ErrCorrupt)
	})

	t.Run("count below root", func(t *testing.T) {
		bad := make([]byte, 4*11)
		binary.LittleEndian.PutUint32(bad, 10)
		require.ErrorIs(t, corrupt(t, bad), dawg.ErrCorrupt)
	})

	t.Run("unterminated root", func(t *testing.T) {
		bad := append([]byte{}, good...)
		binary.LittleEndian.PutUint32(bad[4*dawg.RootSlots:], 0)
		require.ErrorIs(t, corrupt(t, bad), dawg.ErrCorrupt)
	})
}

func TestEnumerateRejectsBadTargets(t *testing.T) {
	data := encode(t, createDawg(t, []string{"ab"}, dawg.DefaultConfig()))

	// point the root edge past the end
	binary.LittleEndian.PutUint32(data[4:], uint32(dawg.NewEdge('a', false, 999)|dawg.NodeEnd))
	g, err := dawg.Read(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = g.Words()
	require.ErrorIs(t, err, dawg.ErrCorrupt)

	// make the leaf point back at itself
	binary.LittleEndian.PutUint32(data[4:], uint32(dawg.NewEdge('a', false, 257)|dawg.NodeEnd))
	binary.LittleEndian.PutUint32(data[4*257:], uint32(dawg.NewEdge('b', true, 257)|dawg.NodeEnd))
	g, err = dawg.Read(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = g.Words()
	require.ErrorIs(t, err, dawg.ErrCorrupt)
}

func TestEnumerate(t *testing.T) {
	words := []string{"blip", "cat", "catnip", "cats"}
	g, err := dawg.Read(bytes.NewReader(encode(t, createDawg(t, words, dawg.DefaultConfig()))))
	require.NoError(t, err)

	var prefixes []string
	require.NoError(t, g.Enumerate(func(word []byte, final bool) dawg.EnumerationResult {
		prefixes = append(prefixes, string(word))
		return dawg.Continue
	}))
	require.Equal(t, []string{
		"b", "bl", "bli", "blip",
		"c", "ca", "cat", "catn", "catni", "catnip", "cats",
	}, prefixes)

	// skip everything under "b", stop at "catn"
	prefixes = nil
	require.NoError(t, g.Enumerate(func(word []byte, final bool) dawg.EnumerationResult {
		prefixes = append(prefixes, string(word))
		switch string(word) {
		case "b":
			return dawg.Skip
		case "catn":
			return dawg.Stop
		}
		return dawg.Continue
	}))
	require.Equal(t, []string{"b", "c", "ca", "cat", "catn"}, prefixes)
}

func TestDump(t *testing.T) {
	g, err := dawg.Read(bytes.NewReader(encode(t, createDawg(t, []string{"ab"}, dawg.DefaultConfig()))))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, g.Dump(&out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 258)
	require.Equal(t, "[00000000] EdgeCount=257", lines[0])
	require.Equal(t, "[00000004]       1 'a'  -N -> 257", lines[1])
	require.Equal(t, "[00000400]     256 0x00 -N -> 0", lines[256])
	require.Equal(t, "[00000404]     257 'b'  WN -> 0", lines[257])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := dawg.Load(filepath.Join(t.TempDir(), "nope"+dawg.Ext))
	require.Error(t, err)
}
