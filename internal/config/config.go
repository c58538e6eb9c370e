package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig           `mapstructure:"server"`   // 服务器配置
	Settings SettingsConfig         `mapstructure:"settings"` // 通用设置
	LLM      LLMConfig              `mapstructure:"llm"`      // 推荐模型配置
	Sports   map[string]SportConfig `mapstructure:"sports"`   // 各运动数据源独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// SettingsConfig 通用设置
type SettingsConfig struct {
	TimeWindow    int      `mapstructure:"time_window"`    // 足球查询窗口（天）
	Count         int      `mapstructure:"count"`          // 推荐条数
	StorePath     string   `mapstructure:"store_path"`     // matches.json 路径
	ProfilePath   string   `mapstructure:"profile_path"`   // 用户偏好文件路径
	EnabledSports []string `mapstructure:"enabled_sports"` // 全量同步时启用的运动列表
}

// LLMConfig 推荐模型配置（Key 仅从 .env 注入）
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"` // chat completions 接口地址
	Model   string `mapstructure:"model"`    // 模型名
	Timeout int    `mapstructure:"timeout"`  // 请求超时（秒）
	APIKey  string `mapstructure:"-"`        // OPENAI_API_KEY
}

// SportConfig 单个运动数据源的独立配置
type SportConfig struct {
	APIURL       string   `mapstructure:"api_url"`      // API基础地址
	Status       []string `mapstructure:"status"`       // 拉取的比赛状态列表
	Tier         []string `mapstructure:"tier"`         // 电竞赛事等级筛选（PandaScore）
	Timeout      int      `mapstructure:"timeout"`      // 请求超时（秒）
	Proxy        string   `mapstructure:"proxy"`        // 代理地址
	AuthToken    string   `mapstructure:"-"`            // 访问令牌，仅从 .env 注入
	Competitions string   `mapstructure:"competitions"` // 限定联赛编号（足球，逗号分隔）
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），令牌类配置只允许从环境变量进入
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Settings.TimeWindow <= 0 {
		cfg.Settings.TimeWindow = 3
	}
	if cfg.Settings.Count <= 0 {
		cfg.Settings.Count = 10
	}
	if cfg.Settings.StorePath == "" {
		cfg.Settings.StorePath = "matches.json"
	}
	if cfg.Settings.ProfilePath == "" {
		cfg.Settings.ProfilePath = "user_profile.txt"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-5-nano"
	}
	if f, ok := cfg.Sports["football"]; ok && len(f.Status) == 0 {
		f.Status = []string{"SCHEDULED"}
		cfg.Sports["football"] = f
	}
}

// overrideFromEnv 用环境变量覆盖敏感配置（优先级 env > yaml）
func overrideFromEnv(cfg *Config) {
	if f, ok := cfg.Sports["football"]; ok {
		f.AuthToken = os.Getenv("FOOTBALL_API_TOKEN")
		if v := os.Getenv("FOOTBALL_COMPETITIONS"); v != "" {
			// 允许通过环境变量限定需要的联赛编号（逗号分隔）
			f.Competitions = v
		}
		cfg.Sports["football"] = f
	}
	if c, ok := cfg.Sports["cs2"]; ok {
		c.AuthToken = os.Getenv("CS2_API_TOKEN")
		cfg.Sports["cs2"] = c
	}
	if l, ok := cfg.Sports["lol"]; ok {
		l.AuthToken = os.Getenv("PANDASCORE_API_TOKEN")
		cfg.Sports["lol"] = l
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
}
