// Package protocol -----------------------------
// @file      : tag.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/2/20 14:05
// -------------------------------------------
package protocol

// CRLF 每一行的结束符
const CRLF = "\r\n"

// Tag 是一条 RESP 消息的第一个字节，决定了消息的形状
type Tag byte

const (
	TagStatus    Tag = '+' // +OK\r\n
	TagError     Tag = '-' // -ERR msg\r\n
	TagInteger   Tag = ':' // :5\r\n
	TagBulk      Tag = '$' // $5\r\nhello\r\n
	TagMultiBulk Tag = '*' // *2\r\n$3\r\nGET\r\n$1\r\nk\r\n
)

// TagFromByte maps the leading byte of a message to its Tag.
// Any byte outside the five known ones is an UnknownTag error.
func TagFromByte(b byte) (Tag, error) {
	switch t := Tag(b); t {
	case TagStatus, TagError, TagInteger, TagBulk, TagMultiBulk:
		return t, nil
	}
	return 0, &ParseError{Kind: KindUnknownTag, Byte: b}
}

// Byte returns the wire byte of the tag.
func (t Tag) Byte() byte {
	return byte(t)
}

// Valid reports whether t is one of the five known tags.
func (t Tag) Valid() bool {
	_, err := TagFromByte(byte(t))
	return err == nil
}

func (t Tag) String() string {
	switch t {
	case TagStatus:
		return "status"
	case TagError:
		return "error"
	case TagInteger:
		return "integer"
	case TagBulk:
		return "bulk"
	case TagMultiBulk:
		return "multibulk"
	}
	return "unknown(" + quoteByte(byte(t)) + ")"
}
