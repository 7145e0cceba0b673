// Package main -----------------------------
// @file      : main.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/15 20:23
// -------------------------------------------
package main

import (
	"flag"
	"os"

	"resp-go/config"
	"resp-go/interface/tcp"
	"resp-go/lib/logger"
	"resp-go/resp/handler"
	tcpserver "resp-go/tcp"
)

const defaultConfigFile = "redis.toml"

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func main() {
	configFile := flag.String("config", defaultConfigFile, "path of the toml config file")
	flag.Parse()

	// 没有配置文件就用默认配置，单机模式
	if fileExists(*configFile) {
		if err := config.SetupConfig(*configFile); err != nil {
			logger.Fatal(err)
		}
	}
	logger.Setup(&config.Properties.Log)
	defer func() {
		_ = logger.Sync()
	}()

	var h tcp.Handler
	switch config.Properties.Handler {
	case config.HandlerEcho:
		// 测试解析结果，直接返回解析结果给用户
		h = tcpserver.MakeEchoHandler(config.Properties.Limits())
	default:
		h = handler.MakeHandler()
	}
	if config.Properties.ClusterEnabled() {
		logger.Info("cluster mode, self " + config.Properties.Self)
	}
	err := tcpserver.ListenAndServeWithSignal(
		&tcpserver.Config{
			// IP:PORT
			Address: config.Properties.Address(),
		},
		h)
	if err != nil {
		logger.Error(err)
	}
}
