// Package reply -----------------------------
// @file      : consts.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/22 16:44
// -------------------------------------------
package reply

// 固定的一些回复
// Value 不可变，所以可以共享同一个实例，节约内存的一种方式

var (
	nullBulkBytes      = []byte("$-1\r\n")
	nullMultiBulkBytes = []byte("*-1\r\n")

	thePongReply          = &StatusReply{Status: "PONG"}
	theOkReply            = &StatusReply{Status: "OK"}
	theNullBulkReply      = &NullBulkReply{}
	theNullMultiBulkReply = &NullMultiBulkReply{}
)

func MakePongReply() *StatusReply {
	return thePongReply
}

func MakeOkReply() *StatusReply {
	return theOkReply
}

// MakeNullBulkReply 空的字符串回复 $-1
func MakeNullBulkReply() *NullBulkReply {
	return theNullBulkReply
}

// MakeEmptyMultiBulkReply is an empty list *0
func MakeEmptyMultiBulkReply() *MultiReply {
	return &MultiReply{Replies: []Value{}}
}

// MakeNullMultiBulkReply is the null list *-1
func MakeNullMultiBulkReply() *NullMultiBulkReply {
	return theNullMultiBulkReply
}
