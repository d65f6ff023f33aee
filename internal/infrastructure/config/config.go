package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、环境变量覆盖
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Metadata MetadataConfig `mapstructure:"metadata"`
	Events   EventsConfig   `mapstructure:"events"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig 存储后端选择
// Type取值：memory | file | jsonbin | redis | mysql
// 设计说明：
// 1. Type是工厂的选择键，同一套仓储逻辑可跑在任意后端之上
// 2. file/jsonbin/redis各自只用到自己的子配置
type StorageConfig struct {
	Type     string        `mapstructure:"type"`
	FilePath string        `mapstructure:"file_path"` // file后端的JSON文件路径
	RedisKey string        `mapstructure:"redis_key"` // redis后端存放整个集合的key
	JSONBin  JSONBinConfig `mapstructure:"jsonbin"`
}

// JSONBinConfig 外部单文档存储（JSONBin.io风格）
type JSONBinConfig struct {
	URL     string        `mapstructure:"url"`     // bin的完整URL
	APIKey  string        `mapstructure:"api_key"` // X-Master-Key
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN 生成MySQL连接字符串
// 格式：user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
// 注意：loc参数需要URL编码（Asia/Shanghai → Asia%2FShanghai）
func (d DatabaseConfig) DSN() string {
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MetadataConfig 外部元数据服务（Open Library）
// 设计说明：
// 1. Enabled=false时服务不做任何补全，写路径行为完全不变
// 2. Timeout约束单次外呼，元数据查询永远不能无限阻塞写路径
type MetadataConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RateLimit  int           `mapstructure:"rate_limit"`  // 每秒最大外呼次数
	MaxRetries int           `mapstructure:"max_retries"` // 单次查询的最大重试次数
	UserAgent  string        `mapstructure:"user_agent"`
}

// EventsConfig 图书生命周期事件发布（RabbitMQ）
type EventsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml
// 2. 环境变量覆盖（如BOOKCATALOG_STORAGE_TYPE、BOOKCATALOG_DATABASE_PASSWORD）
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	setDefaults(v)

	// 读取配置文件（缺省时使用默认值，便于memory后端零配置启动）
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 环境变量绑定（自动转换，如BOOKCATALOG_STORAGE_TYPE → storage.type）
	v.SetEnvPrefix("BOOKCATALOG")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 配置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")

	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.file_path", "data.json")
	v.SetDefault("storage.redis_key", "bookcatalog:books")
	v.SetDefault("storage.jsonbin.timeout", "10s")

	// mysql连接参数默认值（纯环境变量配置时也要能生成合法DSN）
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")

	v.SetDefault("metadata.enabled", false)
	v.SetDefault("metadata.base_url", "https://openlibrary.org")
	v.SetDefault("metadata.timeout", "10s")
	v.SetDefault("metadata.rate_limit", 3)
	v.SetDefault("metadata.max_retries", 2)
	v.SetDefault("metadata.user_agent", "bookcatalog/1.0")

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.exchange", "bookcatalog.events")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	switch cfg.Storage.Type {
	case "memory", "file", "jsonbin", "redis", "mysql":
	default:
		return fmt.Errorf("未知的存储类型: %s", cfg.Storage.Type)
	}

	if cfg.Storage.Type == "jsonbin" {
		if cfg.Storage.JSONBin.URL == "" {
			return fmt.Errorf("jsonbin存储必须配置storage.jsonbin.url")
		}
		if cfg.Storage.JSONBin.APIKey == "" {
			return fmt.Errorf("jsonbin存储必须配置storage.jsonbin.api_key")
		}
	}

	if cfg.Events.Enabled && cfg.Events.URL == "" {
		return fmt.Errorf("事件发布已启用但未配置events.url")
	}

	return nil
}
