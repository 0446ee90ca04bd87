package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type RedisConfig struct {
	Addr   string `yaml:"addr" json:"addr"`
	Passwd string `yaml:"passwd" json:"passwd"`
	DB     int    `yaml:"db" json:"db"`
}

type AppConfig struct {
	System   SysConfig   `yaml:"system" json:"system"`
	Web      WebConfig   `yaml:"web" json:"web"`
	Database DBConfig    `yaml:"database" json:"database"`
	Logger   LogConfig   `yaml:"logger" json:"logger"`
	Redis    RedisConfig `yaml:"redis" json:"redis"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) InitDirs() error {
	if err := os.MkdirAll(c.GetLogDir(), 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.GetDataDir(), 0755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Servimart",
		Location: "Asia/Shanghai",
		Workdir:  "/var/servimart",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		JwtSecret: "9b6de5cc-servimart-b37a-x4fw",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "servimart_v1",
		User:     "postgres",
		Passwd:   "root",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/servimart/servimart.log",
	},
	Redis: RedisConfig{
		Addr: "",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := strconv.ParseInt(evalue, 10, 64)
	if err == nil {
		f(p)
	}
}

// LoadConfig reads the YAML config file when it exists and applies
// environment overrides. A missing file falls back to defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" && FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read config %s error: %v\n", cfile, err)
		} else if err = yaml.Unmarshal(data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "parse config %s error: %v\n", cfile, err)
		}
	}

	setEnvValue("SERVIMART_SYSTEM_WORKER_DIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("SERVIMART_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = v == "true" })
	setEnvValue("SERVIMART_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("SERVIMART_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("SERVIMART_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("SERVIMART_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvInt64Value("SERVIMART_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("SERVIMART_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt64Value("SERVIMART_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("SERVIMART_WEB_JWT_SECRET", func(v string) { cfg.Web.JwtSecret = v })
	setEnvValue("SERVIMART_REDIS_ADDR", func(v string) { cfg.Redis.Addr = v })

	return cfg
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
