package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（对应 config/config.yaml）
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`    // 服务器配置
	Database  DatabaseConfig  `mapstructure:"database"`  // PostgreSQL 配置
	Scheduler SchedulerConfig `mapstructure:"scheduler"` // 定时任务配置
	Cache     CacheConfig     `mapstructure:"cache"`     // 缓存配置
	Log       LogConfig       `mapstructure:"log"`       // 日志配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int      `mapstructure:"port"`         // 服务端口
	Mode        string   `mapstructure:"mode"`         // Gin运行模式：debug/release/test
	CORSOrigins []string `mapstructure:"cors_origins"` // 允许跨域的来源
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN（URL 形式）
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	AutoCreate      bool          `mapstructure:"auto_create"`       // 目标库不存在时自动创建
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`          // 是否启用
	StatusSyncCron string `mapstructure:"status_sync_cron"` // 状态同步 Cron 表达式（含秒）
}

// CacheConfig 缓存配置
type CacheConfig struct {
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"` // 过期条目清理周期
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// Production 是否为生产模式
func (c *Config) Production() bool {
	return c.Server.Mode == "release"
}

// LoadConfig 从 dir 读取 config.yaml（可不存在），再加载 .env 并用环境变量覆盖
func LoadConfig(dir string) (*Config, error) {
	// 1. 加载 .env（若存在）
	_ = godotenv.Load()

	// 2. 读取 config.yaml，缺省值兜底
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 部署相关字段：env 优先
	if err := overrideFromEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Database.DSN == "" {
		return nil, errors.New("未配置数据库连接（database.dsn 或 DATABASE_URL）")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_origins", []string{"http://localhost:4200"})
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_create", true)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.status_sync_cron", "0 */5 * * * *")
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// overrideFromEnv 用环境变量覆盖部署配置
func overrideFromEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT 不是合法端口: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.CORSOrigins = origins
	}
	if os.Getenv("PRODUCTION") == "true" {
		cfg.Server.Mode = "release"
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}
