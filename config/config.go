// Package config -----------------------------
// @file      : config.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/15 20:31
// -------------------------------------------
package config

import (
	"fmt"

	"resp-go/lib/logger"
	"resp-go/resp/parser"

	"github.com/BurntSushi/toml"
)

const (
	HandlerResp = "resp"
	HandlerEcho = "echo"
)

// ServerProperties defines global config properties
type ServerProperties struct {
	Bind      string `toml:"bind"`
	Port      int    `toml:"port"`
	Databases int    `toml:"databases"`
	// Handler resp 正常提供服务，echo 把解析结果原样回显
	Handler string `toml:"handler"`

	// 集群，peers 为空就是单机模式
	Self  string   `toml:"self"`
	Peers []string `toml:"peers"`

	// 协议限制，0 表示使用默认值，负数表示不限制
	MaxDepth         int   `toml:"proto_max_depth"`
	MaxBulkLen       int64 `toml:"proto_max_bulk_len"`
	MaxMultiBulkLen  int64 `toml:"proto_max_multibulk_len"`
	QueryBufferLimit int   `toml:"client_query_buffer_limit"`

	Log logger.Settings `toml:"log"`
}

// Properties holds global config properties
var Properties = Default()

// Default returns the properties used when no config file exists.
func Default() *ServerProperties {
	return &ServerProperties{
		Bind:      "0.0.0.0",
		Port:      6379,
		Databases: 16,
		Handler:   HandlerResp,
		Log: logger.Settings{
			Path:       "logs",
			Name:       "resp-go",
			Ext:        "log",
			TimeFormat: "2006-01-02",
			Level:      "info",
		},
	}
}

// Load parses a toml config file; missing keys keep their defaults.
func Load(configFilename string) (*ServerProperties, error) {
	props := Default()
	if _, err := toml.DecodeFile(configFilename, props); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", configFilename, err)
	}
	if err := props.validate(); err != nil {
		return nil, fmt.Errorf("config invalid (%s): %w", configFilename, err)
	}
	return props, nil
}

// SetupConfig 读取配置文件并替换全局配置
func SetupConfig(configFilename string) error {
	props, err := Load(configFilename)
	if err != nil {
		return err
	}
	Properties = props
	return nil
}

func (p *ServerProperties) validate() error {
	if p.Port <= 0 || p.Port > 65535 {
		return fmt.Errorf("port %d out of range", p.Port)
	}
	if p.Databases <= 0 {
		return fmt.Errorf("databases must be positive, got %d", p.Databases)
	}
	switch p.Handler {
	case HandlerResp, HandlerEcho:
	default:
		return fmt.Errorf("unknown handler %q", p.Handler)
	}
	if len(p.Peers) > 0 && p.Self == "" {
		return fmt.Errorf("self must be set when peers are configured")
	}
	return nil
}

// Address is bind:port
func (p *ServerProperties) Address() string {
	return fmt.Sprintf("%s:%d", p.Bind, p.Port)
}

// ClusterEnabled reports whether commands are routed to peers.
func (p *ServerProperties) ClusterEnabled() bool {
	return p.Self != "" && len(p.Peers) > 0
}

// Limits converts the protocol settings into parser limits.
func (p *ServerProperties) Limits() parser.Limits {
	limits := parser.DefaultLimits
	limits.MaxDepth = pick(p.MaxDepth, limits.MaxDepth)
	limits.MaxBulkLen = pick(p.MaxBulkLen, limits.MaxBulkLen)
	limits.MaxMultiBulkLen = pick(p.MaxMultiBulkLen, limits.MaxMultiBulkLen)
	limits.MaxBuffered = pick(p.QueryBufferLimit, limits.MaxBuffered)
	return limits
}

func pick[T int | int64](configured, def T) T {
	switch {
	case configured < 0:
		return 0
	case configured == 0:
		return def
	}
	return configured
}
