package protocol

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagFromByte(t *testing.T) {
	for _, b := range []byte("+-:$*") {
		tag, err := TagFromByte(b)
		require.NoError(t, err)
		assert.Equal(t, b, tag.Byte())
		assert.True(t, tag.Valid())
	}
}

func TestTagFromByteRejectsEverythingElse(t *testing.T) {
	known := map[byte]bool{'+': true, '-': true, ':': true, '$': true, '*': true}
	for i := 0; i < 256; i++ {
		b := byte(i)
		if known[b] {
			continue
		}
		_, err := TagFromByte(b)
		require.Error(t, err, "byte %d", i)
		assert.ErrorIs(t, err, ErrUnknownTag)

		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, KindUnknownTag, pe.Kind)
		assert.Equal(t, b, pe.Byte)
		assert.False(t, pe.Incomplete())
	}
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "bulk", TagBulk.String())
	assert.Equal(t, "multibulk", TagMultiBulk.String())
	assert.Equal(t, "unknown('x')", Tag('x').String())
	assert.False(t, Tag('x').Valid())
}

func TestParseErrorMessages(t *testing.T) {
	err := &ParseError{Kind: KindUnexpectedTag, Expected: TagMultiBulk, Actual: TagStatus, Offset: 0}
	assert.Equal(t, "resp: unexpected tag: expected multibulk, got status at offset 0", err.Error())

	err = &ParseError{Kind: KindNegativeLength, Length: -2, Offset: 1}
	assert.Equal(t, "resp: negative length -2 at offset 1", err.Error())
	assert.ErrorIs(t, err, ErrNegativeLength)
}

func TestZeroParseError(t *testing.T) {
	var err ParseError
	assert.NotPanics(t, func() { _ = err.Error() })
	assert.Equal(t, "resp: parse error at offset 0", err.Error())
	assert.NoError(t, err.Unwrap())
	assert.False(t, errors.Is(&err, ErrUnknownTag))
}

func TestIsIncomplete(t *testing.T) {
	wrapped := fmt.Errorf("read: %w", &ParseError{Kind: KindNotEnoughBytes, Partial: true})
	assert.True(t, IsIncomplete(wrapped))
	assert.False(t, IsIncomplete(&ParseError{Kind: KindMissingTerminator}))
	assert.False(t, IsIncomplete(errors.New("boom")))
}

func TestConversionError(t *testing.T) {
	err := error(&ConversionError{Expected: TagInteger, Actual: TagMultiBulk})
	assert.ErrorIs(t, err, ErrDataTypeMismatch)
	assert.Equal(t, "resp: data type mismatch: expected integer, got multibulk", err.Error())
}
