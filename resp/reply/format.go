// Package reply -----------------------------
// @file      : format.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/2/21 10:12
// -------------------------------------------
package reply

import (
	"resp-go/lib/utils"
)

// Mode selects how Render writes a value.
type Mode int

const (
	// WireMode writes the exact protocol bytes.
	WireMode Mode = iota
	// DebugMode writes every CR and LF byte, terminators and payload alike,
	// as the printable escapes \r and \n, so the result is always one line.
	// Only for logs, never for the wire.
	DebugMode
)

// Render formats v in the given mode. It never fails.
func Render(v Value, mode Mode) []byte {
	return AppendValue(nil, v, mode)
}

// AppendValue appends the rendering of v to dst and returns the extended slice.
func AppendValue(dst []byte, v Value, mode Mode) []byte {
	if v == nil {
		return dst
	}
	if mode != DebugMode {
		return v.appendTo(dst)
	}
	// 先按协议编码，再把所有 \r \n 转义，bulk 内容里的换行也不例外
	return append(dst, utils.DebugString(v.appendTo(nil))...)
}

// DebugString renders v in debug mode.
func DebugString(v Value) string {
	return string(Render(v, DebugMode))
}
