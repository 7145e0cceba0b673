// Package reply -----------------------------
// @file      : reply.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/23 12:55
// -------------------------------------------
package reply

import (
	"strconv"
	"strings"

	"resp-go/interface/resp"
	"resp-go/resp/protocol"

	"golang.org/x/exp/constraints"
)

// Value is a fully decoded RESP message. The set of implementations is closed:
// *IntReply, *BulkReply, *NullBulkReply, *StatusReply, *StandardErrReply,
// *MultiReply and *NullMultiBulkReply. Values are immutable once built.
type Value interface {
	resp.Reply
	Tag() protocol.Tag
	// appendTo 把自己的协议编码追加到 dst
	appendTo(dst []byte) []byte
}

/* ---- Int Reply ---- */

// IntReply stores an int64 number
type IntReply struct {
	Code int64
}

// MakeIntReply creates int protocol
func MakeIntReply(code int64) *IntReply {
	return &IntReply{
		Code: code,
	}
}

// MakeInt creates an IntReply from any integer type.
func MakeInt[T constraints.Integer](n T) *IntReply {
	return MakeIntReply(int64(n))
}

func (r *IntReply) Tag() protocol.Tag { return protocol.TagInteger }

// ToBytes marshal redis.Reply
func (r *IntReply) ToBytes() []byte {
	return r.appendTo(nil)
}

func (r *IntReply) appendTo(dst []byte) []byte {
	dst = append(dst, protocol.TagInteger.Byte())
	dst = strconv.AppendInt(dst, r.Code, 10)
	return append(dst, protocol.CRLF...)
}

/* ---- Bulk Reply ---- */

// BulkReply is a present bulk string, possibly empty. The null bulk string
// is NullBulkReply.
type BulkReply struct {
	Arg []byte
}

// MakeBulkReply creates a present bulk string. A nil arg is the empty string,
// not null.
func MakeBulkReply(arg []byte) *BulkReply {
	if arg == nil {
		arg = []byte{}
	}
	return &BulkReply{
		Arg: arg,
	}
}

func (r *BulkReply) Tag() protocol.Tag { return protocol.TagBulk }

// "hcjjj" → "$5\r\nhcjjj\r\n"
func (r *BulkReply) ToBytes() []byte {
	return r.appendTo(make([]byte, 0, len(r.Arg)+16))
}

func (r *BulkReply) appendTo(dst []byte) []byte {
	dst = append(dst, protocol.TagBulk.Byte())
	dst = strconv.AppendInt(dst, int64(len(r.Arg)), 10)
	dst = append(dst, protocol.CRLF...)
	dst = append(dst, r.Arg...)
	return append(dst, protocol.CRLF...)
}

// NullBulkReply 空回复，不是空字符串
type NullBulkReply struct{}

func (r *NullBulkReply) Tag() protocol.Tag { return protocol.TagBulk }

func (r *NullBulkReply) ToBytes() []byte {
	return nullBulkBytes
}

func (r *NullBulkReply) appendTo(dst []byte) []byte {
	dst = append(dst, "$-1"...)
	return append(dst, protocol.CRLF...)
}

/* ---- Status Reply ---- */

// StatusReply stores a simple status string
type StatusReply struct {
	Status string
}

// MakeStatusReply creates StatusReply. A CRLF inside status would end the
// line early on the wire, so it is replaced by two spaces.
func MakeStatusReply(status string) *StatusReply {
	return &StatusReply{
		Status: singleLine(status),
	}
}

func (r *StatusReply) Tag() protocol.Tag { return protocol.TagStatus }

// ToBytes marshal redis.Reply
func (r *StatusReply) ToBytes() []byte {
	return r.appendTo(nil)
}

func (r *StatusReply) appendTo(dst []byte) []byte {
	dst = append(dst, protocol.TagStatus.Byte())
	dst = append(dst, r.Status...)
	return append(dst, protocol.CRLF...)
}

/* ---- Err Reply ---- */

// ErrorReply is a reply that is also a Go error
type ErrorReply interface {
	Error() string
	ToBytes() []byte
}

// StandardErrReply represents server error
type StandardErrReply struct {
	Status string
}

// MakeErrReply creates StandardErrReply
func MakeErrReply(status string) *StandardErrReply {
	return &StandardErrReply{
		Status: singleLine(status),
	}
}

func (r *StandardErrReply) Tag() protocol.Tag { return protocol.TagError }

func (r *StandardErrReply) ToBytes() []byte {
	return r.appendTo(nil)
}

func (r *StandardErrReply) Error() string {
	return r.Status
}

func (r *StandardErrReply) appendTo(dst []byte) []byte {
	dst = append(dst, protocol.TagError.Byte())
	dst = append(dst, r.Status...)
	return append(dst, protocol.CRLF...)
}

// IsErrReply reports whether the reply is an error string.
func IsErrReply(reply Value) bool {
	return reply != nil && reply.Tag() == protocol.TagError
}

/* ---- Multi Reply ---- */

// MultiReply is a present array of values, possibly empty. Elements may be
// any Value including further MultiReplies.
type MultiReply struct {
	Replies []Value
}

// MakeMultiReply creates a present array. A nil slice is the empty array.
func MakeMultiReply(replies []Value) *MultiReply {
	if replies == nil {
		replies = []Value{}
	}
	return &MultiReply{Replies: replies}
}

// MakeMultiBulkReply 二维的参数回复，nil 元素编码为 $-1
func MakeMultiBulkReply(args [][]byte) *MultiReply {
	replies := make([]Value, len(args))
	for i, arg := range args {
		if arg == nil {
			replies[i] = theNullBulkReply
		} else {
			replies[i] = &BulkReply{Arg: arg}
		}
	}
	return &MultiReply{Replies: replies}
}

func (r *MultiReply) Tag() protocol.Tag { return protocol.TagMultiBulk }

func (r *MultiReply) ToBytes() []byte {
	return r.appendTo(nil)
}

func (r *MultiReply) appendTo(dst []byte) []byte {
	dst = append(dst, protocol.TagMultiBulk.Byte())
	dst = strconv.AppendInt(dst, int64(len(r.Replies)), 10)
	dst = append(dst, protocol.CRLF...)
	for _, sub := range r.Replies {
		if sub == nil {
			sub = theNullBulkReply
		}
		dst = sub.appendTo(dst)
	}
	return dst
}

// NullMultiBulkReply is the null array *-1
type NullMultiBulkReply struct{}

func (r *NullMultiBulkReply) Tag() protocol.Tag { return protocol.TagMultiBulk }

func (r *NullMultiBulkReply) ToBytes() []byte {
	return nullMultiBulkBytes
}

func (r *NullMultiBulkReply) appendTo(dst []byte) []byte {
	dst = append(dst, "*-1"...)
	return append(dst, protocol.CRLF...)
}

func singleLine(s string) string {
	if !strings.Contains(s, protocol.CRLF) {
		return s
	}
	return strings.ReplaceAll(s, protocol.CRLF, "  ")
}
