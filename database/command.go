// Package database -----------------------------
// @file      : command.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2024/1/12 18:28
// -------------------------------------------
package database

import "strings"

// 支持的 指令表
// 每个指令对应一个 command 结构体
var cmdTable = make(map[string]*command)

type command struct {
	// 对应的执行的方法
	executor ExecFunc
	// 参数的数量，包含命令名本身，负数表示至少 -arity 个
	arity int
}

// RegisterCommand 注册命令，命令名不区分大小写
func RegisterCommand(name string, executor ExecFunc, arity int) {
	name = strings.ToLower(name)
	cmdTable[name] = &command{
		executor: executor,
		arity:    arity,
	}
}

// IsKnownCommand reports whether name is in the command table.
func IsKnownCommand(name string) bool {
	_, ok := cmdTable[strings.ToLower(name)]
	return ok
}

// SET K V → arity = 3
// EXISTS k1 k2 k3 ... → arity = -2
func validateArity(arity int, cmdArgs [][]byte) bool {
	argNum := len(cmdArgs)
	// 固定长度
	if arity > 0 {
		return argNum == arity
	}
	// 变长
	return argNum >= -arity
}
