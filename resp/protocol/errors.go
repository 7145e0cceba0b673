// Package protocol -----------------------------
// @file      : errors.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/2/20 14:31
// -------------------------------------
package protocol

import (
	"errors"
	"strconv"
)

var (
	ErrUnknownTag        = errors.New("resp: unknown tag")
	ErrUnexpectedTag     = errors.New("resp: unexpected tag")
	ErrNotEnoughBytes    = errors.New("resp: not enough bytes")
	ErrNonNumericDigit   = errors.New("resp: non numeric digit")
	ErrMissingTerminator = errors.New("resp: missing terminator")
	ErrNegativeLength    = errors.New("resp: negative length")
	ErrIntegerOverflow   = errors.New("resp: integer overflows int64")
	ErrLengthTooLarge    = errors.New("resp: declared length exceeds limit")
	ErrTooDeep           = errors.New("resp: nesting exceeds depth limit")
	ErrDataTypeMismatch  = errors.New("resp: data type mismatch")
)

// ErrorKind enumerates the ways a parse can fail.
type ErrorKind int

const (
	KindUnknownTag ErrorKind = iota + 1
	KindUnexpectedTag
	KindNotEnoughBytes
	KindNonNumericDigit
	KindMissingTerminator
	KindNegativeLength
	KindIntegerOverflow
	KindLengthTooLarge
	KindTooDeep
)

var kindErrors = map[ErrorKind]error{
	KindUnknownTag:        ErrUnknownTag,
	KindUnexpectedTag:     ErrUnexpectedTag,
	KindNotEnoughBytes:    ErrNotEnoughBytes,
	KindNonNumericDigit:   ErrNonNumericDigit,
	KindMissingTerminator: ErrMissingTerminator,
	KindNegativeLength:    ErrNegativeLength,
	KindIntegerOverflow:   ErrIntegerOverflow,
	KindLengthTooLarge:    ErrLengthTooLarge,
	KindTooDeep:           ErrTooDeep,
}

// ParseError is the single error type produced by a failed parse.
// Byte is set for UnknownTag and NonNumericDigit, Expected/Actual for
// UnexpectedTag, Length for NegativeLength and LengthTooLarge.
type ParseError struct {
	Kind     ErrorKind
	Byte     byte
	Expected Tag
	Actual   Tag
	Length   int64
	// Offset 出错位置相对于输入起点的字节偏移
	Offset int
	// Partial 输入提前结束导致的失败，补齐字节后可以重新解析
	Partial bool
	// Need is set when Partial: the shortest input, counted from the same
	// start as Offset, whose parse could turn out differently. It exceeds the
	// current length by more than one only inside a bulk payload.
	Need int
}

func (e *ParseError) Error() string {
	sentinel, ok := kindErrors[e.Kind]
	if !ok {
		return "resp: parse error at offset " + strconv.Itoa(e.Offset)
	}
	msg := sentinel.Error()
	switch e.Kind {
	case KindUnknownTag, KindNonNumericDigit:
		msg += " " + quoteByte(e.Byte)
	case KindUnexpectedTag:
		msg += ": expected " + e.Expected.String() + ", got " + e.Actual.String()
	case KindNegativeLength, KindLengthTooLarge:
		msg += " " + strconv.FormatInt(e.Length, 10)
	}
	return msg + " at offset " + strconv.Itoa(e.Offset)
}

// Unwrap lets errors.Is match the sentinel of the kind.
func (e *ParseError) Unwrap() error {
	return kindErrors[e.Kind]
}

// Incomplete reports whether the input simply ended too early.
func (e *ParseError) Incomplete() bool {
	return e.Partial
}

// IsIncomplete reports whether err is a ParseError caused by truncated input.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Incomplete()
}

// ConversionError is produced by a typed projection when the value has a
// different shape than the one asked for.
type ConversionError struct {
	Expected Tag
	Actual   Tag
}

func (e *ConversionError) Error() string {
	return ErrDataTypeMismatch.Error() + ": expected " + e.Expected.String() + ", got " + e.Actual.String()
}

func (e *ConversionError) Unwrap() error {
	return ErrDataTypeMismatch
}

func quoteByte(b byte) string {
	return strconv.QuoteRune(rune(b))
}
