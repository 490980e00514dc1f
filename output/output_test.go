package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JosLopes/LI3-sub000/output"
)

func TestDelimitedWriter(t *testing.T) {
	requireT := require.New(t)

	buf := &bytes.Buffer{}
	w := output.NewWriter(buf, false)

	w.NewObject()
	w.NewField("id", "%010d", 1)
	w.NewField("name", "%s", "LIS")
	w.NewObject()
	w.NewField("id", "%010d", 2)
	w.NewField("name", "%s", "OPO")
	requireT.NoError(w.Close())

	requireT.Equal("0000000001;LIS\n0000000002;OPO\n", buf.String())
}

func TestDelimitedWriterEmpty(t *testing.T) {
	requireT := require.New(t)

	buf := &bytes.Buffer{}
	w := output.NewWriter(buf, false)
	requireT.NoError(w.Close())
	requireT.Empty(buf.String())
}

func TestFormattedWriter(t *testing.T) {
	requireT := require.New(t)

	buf := &bytes.Buffer{}
	w := output.NewWriter(buf, true)

	w.NewObject()
	w.NewField("id", "%010d", 1)
	w.NewField("name", "%s", "LIS")
	w.NewObject()
	w.NewField("id", "%010d", 2)
	requireT.NoError(w.Close())

	requireT.Equal("--- 1 ---\nid: 0000000001\nname: LIS\n\n--- 2 ---\nid: 0000000002\n", buf.String())
}

func TestFileFactory(t *testing.T) {
	requireT := require.New(t)
	dir := filepath.Join(t.TempDir(), "results")

	factory, err := output.NewFileFactory(dir)
	requireT.NoError(err)

	w, err := factory.Writer(3, false)
	requireT.NoError(err)
	w.NewObject()
	w.NewField("rating", "%.3f", 4.5)
	requireT.NoError(w.Close())

	empty, err := factory.Writer(7, false)
	requireT.NoError(err)
	requireT.NoError(empty.Close())

	content, err := os.ReadFile(filepath.Join(dir, "command3_output.txt"))
	requireT.NoError(err)
	requireT.Equal("4.500\n", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "command7_output.txt"))
	requireT.NoError(err)
	requireT.Empty(content)
}

func TestBufferFactory(t *testing.T) {
	requireT := require.New(t)

	factory := output.NewBufferFactory()
	for _, line := range []uint32{5, 2, 9} {
		w, err := factory.Writer(line, false)
		requireT.NoError(err)
		w.NewObject()
		w.NewField("line", "%d", line)
		requireT.NoError(w.Close())
	}

	requireT.Equal([]uint32{2, 5, 9}, factory.Lines())
	requireT.Equal("5\n", factory.Output(5))
	requireT.Empty(factory.Output(1))
}
