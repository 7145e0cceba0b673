// Package reply -----------------------------
// @file      : convert.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/2/21 16:40
// -------------------------------------------
package reply

import "resp-go/resp/protocol"

// 把通用的 Value 收窄成调用方需要的具体类型
// 形状不匹配时返回 *protocol.ConversionError

// Bulk is a bulk string that remembers whether it was null.
type Bulk struct {
	Arg  []byte
	Null bool
}

func (b Bulk) String() string {
	return string(b.Arg)
}

// Status is the text of a status reply.
type Status string

// ErrorString is the text of an error reply.
type ErrorString string

func (e ErrorString) Error() string {
	return string(e)
}

// Array is a possibly null list of already converted items.
type Array[T any] struct {
	Items []T
	Null  bool
}

// ToInt accepts only IntReply.
func ToInt(v Value) (int64, error) {
	if r, ok := v.(*IntReply); ok {
		return r.Code, nil
	}
	return 0, mismatch(protocol.TagInteger, v)
}

// ToBulk accepts BulkReply and NullBulkReply.
func ToBulk(v Value) (Bulk, error) {
	switch r := v.(type) {
	case *BulkReply:
		return Bulk{Arg: r.Arg}, nil
	case *NullBulkReply:
		return Bulk{Null: true}, nil
	}
	return Bulk{}, mismatch(protocol.TagBulk, v)
}

// ToStatus accepts only StatusReply.
func ToStatus(v Value) (Status, error) {
	if r, ok := v.(*StatusReply); ok {
		return Status(r.Status), nil
	}
	return "", mismatch(protocol.TagStatus, v)
}

// ToErr accepts only StandardErrReply.
func ToErr(v Value) (ErrorString, error) {
	if r, ok := v.(*StandardErrReply); ok {
		return ErrorString(r.Status), nil
	}
	return "", mismatch(protocol.TagError, v)
}

// ToArray accepts MultiReply and NullMultiBulkReply and converts every element
// with elem. The first element error is returned as is.
func ToArray[T any](v Value, elem func(Value) (T, error)) (Array[T], error) {
	switch r := v.(type) {
	case *NullMultiBulkReply:
		return Array[T]{Null: true}, nil
	case *MultiReply:
		items := make([]T, len(r.Replies))
		for i, sub := range r.Replies {
			item, err := elem(sub)
			if err != nil {
				return Array[T]{}, err
			}
			items[i] = item
		}
		return Array[T]{Items: items}, nil
	}
	return Array[T]{}, mismatch(protocol.TagMultiBulk, v)
}

func mismatch(expected protocol.Tag, v Value) error {
	var actual protocol.Tag
	if v != nil {
		actual = v.Tag()
	}
	return &protocol.ConversionError{Expected: expected, Actual: actual}
}
