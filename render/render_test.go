package render

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGIFProducesOneFramePerPlyPlusInitial(t *testing.T) {
	history := []int{3, 3, 4, 2, 2, 4, 5}
	var buf bytes.Buffer
	require.NoError(t, WriteGIF(&buf, history))

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, g.Image, len(history)+1)
	assert.Len(t, g.Delay, len(history)+1)
}

func TestWriteGIFRejectsIllegalHistory(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGIF(&buf, []int{0, 0, 0, 0, 0, 0, 0})
	assert.Error(t, err)
}

func TestWriteGIFOnEmptyHistoryStillProducesAFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGIF(&buf, nil))

	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, g.Image, 1)
}
