// Package parser -----------------------------
// @file      : stream.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/2/22 19:47
// -------------------------------------------
package parser

import (
	"errors"
	"io"
	"runtime/debug"

	"resp-go/lib/logger"
	"resp-go/lib/utils"
	"resp-go/resp/protocol"
	"resp-go/resp/reply"
)

var ErrBufferOverflow = errors.New("resp: buffered input exceeds limit")

// Payload 表示从连接上解析出来的一条消息或者一个错误
type Payload struct {
	Data reply.Value
	Err  error
}

type decodeFunc func(data []byte) (reply.Value, []byte, error)

const (
	initBufSize = 4096
	// 协议错误日志里最多带多少字节的原始输入
	maxLoggedInput = 64
)

// ParseStream 异步解析，作为协议层对外的接口
func ParseStream(reader io.Reader) <-chan *Payload {
	return defaultParser.ParseStream(reader)
}

// ParseRequestStream 同 ParseStream，但每条消息必须是命令
func ParseRequestStream(reader io.Reader) <-chan *Payload {
	return defaultParser.ParseRequestStream(reader)
}

// ParseStream decodes values from reader until it fails and sends them on the
// returned channel, which is closed after the final error.
func (p *Parser) ParseStream(reader io.Reader) <-chan *Payload {
	ch := make(chan *Payload)
	go p.parse0(reader, ch, p.Parse)
	return ch
}

func (p *Parser) ParseRequestStream(reader io.Reader) <-chan *Payload {
	ch := make(chan *Payload)
	// 一个连接一个解析协程
	go p.parse0(reader, ch, p.ParseRequest)
	return ch
}

// parse0 读到的字节都追加到 buf，每次都从 buf 开头重新调用无状态的 decode
// 消息不完整就继续读，两次解析之间只记住 need：buf 攒到 need 之前解析结果不会变，
// 大的 bulk 分多次到达时不用每次都从头扫一遍
func (p *Parser) parse0(reader io.Reader, ch chan<- *Payload, decode decodeFunc) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(string(debug.Stack()))
		}
		close(ch)
	}()
	buf := make([]byte, 0, initBufSize)
	need := 0
	for {
		if len(buf) == cap(buf) {
			if p.limits.MaxBuffered > 0 && len(buf) >= p.limits.MaxBuffered {
				ch <- &Payload{Err: ErrBufferOverflow}
				return
			}
			grown := make([]byte, len(buf), 2*cap(buf))
			copy(grown, buf)
			buf = grown
		}
		n, err := reader.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if n > 0 && len(buf) >= need {
			buf, need = p.drain(buf, ch, decode)
		}
		if err != nil {
			// 出现 io 错误 解析直接结束
			if err == io.EOF && len(buf) > 0 {
				err = io.ErrUnexpectedEOF
			}
			ch <- &Payload{Err: err}
			return
		}
	}
}

// drain sends every complete value at the front of buf and moves the
// unparsed tail to the start of buf. It returns the length the tail must
// reach before decoding it again can give a different result.
func (p *Parser) drain(buf []byte, ch chan<- *Payload, decode decodeFunc) ([]byte, int) {
	rest := buf
	need := 0
	for len(rest) > 0 {
		v, remain, err := decode(rest)
		if err != nil {
			var pe *protocol.ParseError
			if errors.As(err, &pe) && pe.Incomplete() {
				need = pe.Need
				break
			}
			// 协议错误之后无法再对齐消息边界，丢掉已缓存的数据
			// 继续解析用户发来的下一条数据
			logger.Warn("protocol error: " + err.Error() + ", input: " + utils.DebugString(utils.Truncate(rest, maxLoggedInput)))
			ch <- &Payload{Err: err}
			rest = nil
			break
		}
		ch <- &Payload{Data: v}
		rest = remain
	}
	n := copy(buf, rest)
	return buf[:n], need
}
