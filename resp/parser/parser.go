// Package parser -----------------------------
// @file      : parser.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/23 20:43
// -------------------------------------------
package parser

import (
	"math"

	"resp-go/lib/utils"
	"resp-go/resp/protocol"
	"resp-go/resp/reply"
)

// Limits bounds what a single parse may accept. A zero field disables that
// limit.
type Limits struct {
	// MaxDepth 数组最多嵌套几层
	MaxDepth int
	// MaxBulkLen 单个字符串声明的最大长度
	MaxBulkLen int64
	// MaxMultiBulkLen 单个数组声明的最大元素个数
	MaxMultiBulkLen int64
	// MaxBuffered 流式解析时等待一条完整消息最多缓存的字节数
	MaxBuffered int
}

var DefaultLimits = Limits{
	MaxDepth:        128,
	MaxBulkLen:      512 << 20,
	MaxMultiBulkLen: math.MaxInt32,
	MaxBuffered:     1 << 30,
}

// 最短的一条消息 "+\r\n"
const minValueLen = 3

// Parser is a stateless RESP decoder. It is safe for concurrent use.
type Parser struct {
	limits Limits
}

func New(limits Limits) *Parser {
	return &Parser{limits: limits}
}

var defaultParser = New(DefaultLimits)

// Parse decodes one value from the front of data using DefaultLimits.
func Parse(data []byte) (reply.Value, []byte, error) {
	return defaultParser.Parse(data)
}

// ParseExpect is Parse that first requires the leading tag to be want.
func ParseExpect(data []byte, want protocol.Tag) (reply.Value, []byte, error) {
	return defaultParser.ParseExpect(data, want)
}

// ParseRequest decodes one client command using DefaultLimits.
func ParseRequest(data []byte) (reply.Value, []byte, error) {
	return defaultParser.ParseRequest(data)
}

// Parse decodes one value from the front of data and returns it with the
// bytes that follow it. data is never modified. On error nothing is consumed
// and the error is a *protocol.ParseError.
func (p *Parser) Parse(data []byte) (reply.Value, []byte, error) {
	c := &cursor{buf: data}
	v, err := p.parseValue(c, 0)
	if err != nil {
		return nil, nil, err
	}
	return v, c.rest(), nil
}

func (p *Parser) ParseExpect(data []byte, want protocol.Tag) (reply.Value, []byte, error) {
	c := &cursor{buf: data}
	if err := c.expectTag(want); err != nil {
		return nil, nil, err
	}
	v, err := p.parseValue(c, 0)
	if err != nil {
		return nil, nil, err
	}
	return v, c.rest(), nil
}

// ParseRequest decodes a command sent by a client: a multibulk whose elements
// are all bulk strings.
// *3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nvalue\r\n
func (p *Parser) ParseRequest(data []byte) (reply.Value, []byte, error) {
	c := &cursor{buf: data}
	if err := c.expectTag(protocol.TagMultiBulk); err != nil {
		return nil, nil, err
	}
	c.pos++
	n, err := c.readLength(p.limits.MaxMultiBulkLen)
	if err != nil {
		return nil, nil, err
	}
	if n == -1 {
		return reply.MakeNullMultiBulkReply(), c.rest(), nil
	}
	args := make([]reply.Value, 0, p.capacity(c, n))
	for i := int64(0); i < n; i++ {
		if err := c.expectTag(protocol.TagBulk); err != nil {
			return nil, nil, err
		}
		arg, err := p.parseValue(c, 1)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, arg)
	}
	return &reply.MultiReply{Replies: args}, c.rest(), nil
}

// parseValue 递归下降，depth 是外层已经打开的数组个数
func (p *Parser) parseValue(c *cursor, depth int) (reply.Value, error) {
	tag, err := c.readTag()
	if err != nil {
		return nil, err
	}
	switch tag {
	case protocol.TagInteger:
		// :5\r\n
		n, err := c.readInteger()
		if err != nil {
			return nil, err
		}
		return &reply.IntReply{Code: n}, nil
	case protocol.TagBulk:
		// $4\r\nPING\r\n
		n, err := c.readLength(p.limits.MaxBulkLen)
		if err != nil {
			return nil, err
		}
		if n == -1 {
			return reply.MakeNullBulkReply(), nil
		}
		run, err := c.readRun(n)
		if err != nil {
			return nil, err
		}
		// 拷贝一份，值不引用调用方的缓冲区
		arg := make([]byte, len(run))
		copy(arg, run)
		return &reply.BulkReply{Arg: arg}, nil
	case protocol.TagStatus:
		line, err := c.readLine()
		if err != nil {
			return nil, err
		}
		return &reply.StatusReply{Status: line}, nil
	case protocol.TagError:
		line, err := c.readLine()
		if err != nil {
			return nil, err
		}
		return &reply.StandardErrReply{Status: line}, nil
	case protocol.TagMultiBulk:
		// *3\r\n 后面跟 3 个任意类型的值
		if p.limits.MaxDepth > 0 && depth >= p.limits.MaxDepth {
			return nil, c.fail(protocol.KindTooDeep, c.pos-1)
		}
		n, err := c.readLength(p.limits.MaxMultiBulkLen)
		if err != nil {
			return nil, err
		}
		if n == -1 {
			return reply.MakeNullMultiBulkReply(), nil
		}
		replies := make([]reply.Value, 0, p.capacity(c, n))
		for i := int64(0); i < n; i++ {
			sub, err := p.parseValue(c, depth+1)
			if err != nil {
				return nil, err
			}
			replies = append(replies, sub)
		}
		return &reply.MultiReply{Replies: replies}, nil
	}
	// TagFromByte 只会返回上面五种
	panic("unreachable")
}

// capacity 预分配不超过剩余字节能装下的元素个数，防止恶意的长度
func (p *Parser) capacity(c *cursor, n int64) int {
	return int(utils.Clamp(n, 0, int64(c.remaining()/minValueLen)))
}
