package pandocreader

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `unsupported format extension=".txt" path="a.txt"`,
		(&UnsupportedFormatError{Extension: ".txt", Path: "a.txt"}).Error())
	assert.Equal(t, "unsupported format", (&UnsupportedFormatError{}).Error())

	exit := errors.New("exit status 64")
	ce := &ConversionError{Format: "nope", Path: "a.md", Stderr: "Unknown input format nope\nTry --help", Err: exit}
	assert.Equal(t, "conversion failed format=\"nope\" path=\"a.md\": exit status 64\n  Unknown input format nope\n  Try --help", ce.Error())
	assert.ErrorIs(t, ce, exit)

	me := &MetadataError{Path: "a.md", Err: exit}
	assert.Contains(t, me.Error(), `"a.md"`)
	assert.ErrorIs(t, me, exit)
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsUnsupportedFormat(fmt.Errorf("read: %w", &UnsupportedFormatError{})))
	assert.False(t, IsUnsupportedFormat(errors.New("x")))
	assert.True(t, IsConverterUnavailable(fmt.Errorf("%w: pandoc", ErrConverterUnavailable)))
	assert.False(t, IsConverterUnavailable(ErrBinaryInput))
}
