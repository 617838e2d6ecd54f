package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "github.com/scan-io-git/testforge/pkg/shared/errors"
)

func TestNewSplitsLines(t *testing.T) {
	doc := New("a\nb\n\nc")
	assert.Equal(t, 4, doc.LineCount())
	assert.Equal(t, []string{"a", "b", "", "c"}, doc.Lines())

	line, ok := doc.Line(2)
	assert.True(t, ok)
	assert.Equal(t, "b", line)

	_, ok = doc.Line(0)
	assert.False(t, ok)
	_, ok = doc.Line(5)
	assert.False(t, ok)
}

func TestEmptyDocumentHasOneLine(t *testing.T) {
	for _, doc := range []Document{New(""), {}} {
		assert.Equal(t, 1, doc.LineCount())
		assert.True(t, doc.IsBlank())
		line, ok := doc.Line(1)
		assert.True(t, ok)
		assert.Equal(t, "", line)
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	doc := New("x\ny")
	lines := doc.Lines()
	lines[0] = "mutated"
	line, _ := doc.Line(1)
	assert.Equal(t, "x", line)
}

func TestFromBytes(t *testing.T) {
	doc, err := FromBytes([]byte("const a = 1;\n"))
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\n", doc.Text())
	assert.Equal(t, 2, doc.LineCount())

	_, err = FromBytes([]byte{0xff, 0xfe, 0x00})
	assert.True(t, errors.Is(err, sharederrors.ErrInvalidInput))

	_, err = FromBytes([]byte("abc\x00def"))
	assert.True(t, errors.Is(err, sharederrors.ErrInvalidInput))

	doc, err = FromBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.LineCount())
}
