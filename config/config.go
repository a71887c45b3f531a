// Package config 提供应用程序配置加载功能
// 基于viper实现，支持YAML配置文件和环境变量覆盖
// 认证密钥、Cookie名称等均通过配置注入，避免散落在代码中的全局常量
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	// Port 监听端口
	Port int `mapstructure:"port"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `mapstructure:"read_timeout"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Driver 数据库驱动，目前仅支持sqlite
	Driver string `mapstructure:"driver"`
	// DSN 数据库连接串（sqlite为文件路径）
	DSN string `mapstructure:"dsn"`
	// MaxIdleConns 最大空闲连接数
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// ConnMaxLifetime 连接最大生命周期（秒）
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime"`
}

// AuthConfig 认证配置
// JWT签名密钥和Cookie名称在此注入，而不是作为进程级常量
type AuthConfig struct {
	// JWTSecret JWT签名密钥，必填
	JWTSecret string `mapstructure:"jwt_secret"`
	// CookieName 存放访问令牌的Cookie名称
	CookieName string `mapstructure:"cookie_name"`
	// AccessTokenTTL 访问令牌有效期（小时）
	AccessTokenTTL int `mapstructure:"access_token_ttl"`
	// RefreshTokenTTL 刷新令牌有效期（小时）
	RefreshTokenTTL int `mapstructure:"refresh_token_ttl"`
	// DevLogin 是否开启开发环境登录接口
	DevLogin bool `mapstructure:"dev_login"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别 (debug, info, warn, error, fatal, panic)
	Level string `mapstructure:"level"`
	// Format 日志格式 (json, text)
	Format string `mapstructure:"format"`
	// Output 输出方式 (console, file, both)
	Output string `mapstructure:"output"`
	// FilePath 日志文件路径
	FilePath string `mapstructure:"file_path"`
}

// Load 加载配置
// 查找顺序: ./config.yaml、./config/config.yaml，环境变量以NOTEDROP_为前缀覆盖
// 返回值: *Config - 配置实例; error - 加载或校验失败
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("NOTEDROP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时仅依赖默认值和环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 设置默认配置
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/notedrop.db")
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("auth.cookie_name", "auth_token")
	v.SetDefault("auth.access_token_ttl", 24)      // 24小时
	v.SetDefault("auth.refresh_token_ttl", 90*24) // 90天
	v.SetDefault("auth.dev_login", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.file_path", "logs/app.log")
}

// validate 校验配置合法性
func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set NOTEDROP_AUTH_JWT_SECRET or config file)")
	}
	if c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("auth token ttl must be positive")
	}
	return nil
}
