// Package reply -----------------------------
// @file      : error.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/23 12:55
// -------------------------------------------
package reply

var (
	theUnknownErrReply   = &StandardErrReply{Status: "ERR unknown"}
	theSyntaxErrReply    = &StandardErrReply{Status: "ERR syntax error"}
	theWrongTypeErrReply = &StandardErrReply{Status: "WRONGTYPE Operation against a key holding the wrong kind of value"}
)

func MakeUnknownErrReply() *StandardErrReply {
	return theUnknownErrReply
}

// MakeArgNumErrReply 是动态的
func MakeArgNumErrReply(cmd string) *StandardErrReply {
	return MakeErrReply("ERR wrong number of arguments for '" + cmd + "' command")
}

// MakeSyntaxErrReply represents meeting unexpected arguments
func MakeSyntaxErrReply() *StandardErrReply {
	return theSyntaxErrReply
}

// MakeWrongTypeErrReply represents operation against a key holding the wrong kind of value
func MakeWrongTypeErrReply() *StandardErrReply {
	return theWrongTypeErrReply
}

// MakeProtocolErrReply represents meeting unexpected byte during parse requests
func MakeProtocolErrReply(msg string) *StandardErrReply {
	return MakeErrReply("ERR Protocol error: " + msg)
}
