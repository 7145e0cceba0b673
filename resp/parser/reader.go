// Package parser -----------------------------
// @file      : reader.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/2/20 16:18
// -------------------------------------------
package parser

import (
	"bytes"
	"math"

	"resp-go/resp/protocol"
)

var crlf = []byte(protocol.CRLF)

// cursor 是对输入的只读视图，pos 之前的字节已经消费
// 所有读取都不会修改 buf
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) rest() []byte {
	return c.buf[c.pos:]
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) fail(kind protocol.ErrorKind, offset int) *protocol.ParseError {
	return &protocol.ParseError{Kind: kind, Offset: offset}
}

// notEnough 输入在 pos 处用完，输入长度到 need 之前再解析结果不会变
func (c *cursor) notEnough(need int) *protocol.ParseError {
	return &protocol.ParseError{Kind: protocol.KindNotEnoughBytes, Offset: c.pos, Partial: true, Need: need}
}

// peekTag reads the tag at the current position without consuming it.
func (c *cursor) peekTag() (protocol.Tag, error) {
	if c.remaining() == 0 {
		return 0, c.notEnough(len(c.buf) + 1)
	}
	tag, err := protocol.TagFromByte(c.buf[c.pos])
	if err != nil {
		err.(*protocol.ParseError).Offset = c.pos
		return 0, err
	}
	return tag, nil
}

func (c *cursor) readTag() (protocol.Tag, error) {
	tag, err := c.peekTag()
	if err != nil {
		return 0, err
	}
	c.pos++
	return tag, nil
}

// expectTag fails with UnexpectedTag when the next tag is not want.
func (c *cursor) expectTag(want protocol.Tag) error {
	tag, err := c.peekTag()
	if err != nil {
		return err
	}
	if tag != want {
		return &protocol.ParseError{Kind: protocol.KindUnexpectedTag, Expected: want, Actual: tag, Offset: c.pos}
	}
	return nil
}

// expectTerminator 必须正好是 \r\n
// 剩下的是 "" 或者 "\r" 时还可能等到后续字节，记为 Partial
func (c *cursor) expectTerminator() error {
	rest := c.rest()
	if len(rest) >= 2 && rest[0] == '\r' && rest[1] == '\n' {
		c.pos += 2
		return nil
	}
	err := c.fail(protocol.KindMissingTerminator, c.pos)
	err.Partial = len(rest) == 0 || (len(rest) == 1 && rest[0] == '\r')
	if err.Partial {
		err.Need = len(c.buf) + 1
	}
	return err
}

// readInteger 读取 [-]digit+\r\n
// 至少要有一个数字，"-\r\n" 和 "\r\n" 都是 NonNumericDigit('\r')
func (c *cursor) readInteger() (int64, error) {
	start := c.pos
	neg := false
	if c.pos < len(c.buf) && c.buf[c.pos] == '-' {
		neg = true
		c.pos++
	}
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	var n uint64
	digits := 0
	for c.pos < len(c.buf) && c.buf[c.pos] != '\r' {
		b := c.buf[c.pos]
		if b < '0' || b > '9' {
			err := c.fail(protocol.KindNonNumericDigit, c.pos)
			err.Byte = b
			return 0, err
		}
		d := uint64(b - '0')
		if n > (limit-d)/10 {
			return 0, c.fail(protocol.KindIntegerOverflow, start)
		}
		n = n*10 + d
		digits++
		c.pos++
	}
	if digits == 0 && c.pos < len(c.buf) {
		err := c.fail(protocol.KindNonNumericDigit, c.pos)
		err.Byte = c.buf[c.pos]
		return 0, err
	}
	if err := c.expectTerminator(); err != nil {
		return 0, err
	}
	if neg {
		return int64(-n), nil
	}
	return int64(n), nil
}

// readLength reads the length header of a bulk or multibulk.
// -1 is passed through as the null marker, anything below is NegativeLength.
func (c *cursor) readLength(limit int64) (int64, error) {
	start := c.pos
	n, err := c.readInteger()
	if err != nil {
		return 0, err
	}
	if n < -1 {
		e := c.fail(protocol.KindNegativeLength, start)
		e.Length = n
		return 0, e
	}
	if limit > 0 && n > limit {
		e := c.fail(protocol.KindLengthTooLarge, start)
		e.Length = n
		return 0, e
	}
	return n, nil
}

// readRun 读取固定长度的内容，后面必须紧跟 \r\n
// 返回的切片指向 buf，调用方需要自己拷贝
func (c *cursor) readRun(n int64) ([]byte, error) {
	if n < 0 {
		e := c.fail(protocol.KindNegativeLength, c.pos)
		e.Length = n
		return nil, e
	}
	if int64(c.remaining()) < n {
		// 内容是任意字节，直到结束符的第一个字节才可能出错
		return nil, c.notEnough(c.pos + int(n) + 1)
	}
	run := c.buf[c.pos : c.pos+int(n)]
	c.pos += int(n)
	if err := c.expectTerminator(); err != nil {
		return nil, err
	}
	return run, nil
}

// readLine 读取到第一个 \r\n 为止，单独的 \r 属于内容
func (c *cursor) readLine() (string, error) {
	i := bytes.Index(c.rest(), crlf)
	if i < 0 {
		return "", &protocol.ParseError{Kind: protocol.KindMissingTerminator, Offset: len(c.buf), Partial: true, Need: len(c.buf) + 1}
	}
	line := string(c.buf[c.pos : c.pos+i])
	c.pos += i + len(crlf)
	return line, nil
}

// ExpectTerminator succeeds iff data starts with CRLF and returns what follows.
func ExpectTerminator(data []byte) ([]byte, error) {
	c := &cursor{buf: data}
	if err := c.expectTerminator(); err != nil {
		return nil, err
	}
	return c.rest(), nil
}

// ReadInteger reads a CRLF terminated signed decimal integer.
func ReadInteger(data []byte) (int64, []byte, error) {
	c := &cursor{buf: data}
	n, err := c.readInteger()
	if err != nil {
		return 0, nil, err
	}
	return n, c.rest(), nil
}

// ReadRun returns the first n bytes of data, which must be followed by CRLF,
// and the bytes after that CRLF. The run aliases data.
func ReadRun(data []byte, n int) ([]byte, []byte, error) {
	c := &cursor{buf: data}
	run, err := c.readRun(int64(n))
	if err != nil {
		return nil, nil, err
	}
	return run, c.rest(), nil
}
