package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig Database config
type DBConfig struct {
	Type     string `yaml:"type" json:"type"` // postgres or sqlite
	Url      string `yaml:"url" json:"url"`   // connection string, host:port or a full DSN
	Name     string `yaml:"name" json:"name"` // database name, sqlite file name
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// SysConfig System config
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig WEB Config
type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	ApiPrefix string `yaml:"api_prefix" json:"api_prefix"`
	BodyLimit string `yaml:"body_limit" json:"body_limit"`
}

// LogConfig Logger config
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetMetricsDir() string {
	return path.Join(c.System.Workdir, "data", "metrics")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

// DSN builds the driver connection string. A url that already carries
// key=value pairs or a postgres:// scheme is used as given.
func (d DBConfig) DSN() string {
	if d.Type == "sqlite" {
		return d.Name
	}
	if strings.Contains(d.Url, "=") || strings.HasPrefix(d.Url, "postgres") {
		return d.Url
	}
	host, port := d.Url, "5432"
	if i := strings.LastIndex(d.Url, ":"); i > 0 {
		host, port = d.Url[:i], d.Url[i+1:]
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, d.User, d.Passwd, d.Name)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "TaskRest",
		Location: "Europe/Moscow",
		Workdir:  "/var/taskrest",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      8080,
		BodyLimit: "2M",
	},
	Database: DBConfig{
		Type:     "postgres",
		Url:      "127.0.0.1:5432",
		Name:     "taskrest",
		User:     "postgres",
		Passwd:   "postgres",
		MaxConn:  20,
		IdleConn: 5,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/taskrest/taskrest.log",
	},
}

// LoadConfig reads the yaml file at cfile, falls back to the defaults when the
// file is absent, then applies TASKREST_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile == "" {
		cfile = "taskrest.yml"
	}
	if data, err := os.ReadFile(cfile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	setEnvValue("TASKREST_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("TASKREST_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("TASKREST_DEBUG", &cfg.System.Debug)

	setEnvValue("TASKREST_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("TASKREST_WEB_PORT", &cfg.Web.Port)

	setEnvValue("TASKREST_DB_TYPE", &cfg.Database.Type)
	setEnvValue("TASKREST_DB_URL", &cfg.Database.Url)
	setEnvValue("TASKREST_DB_NAME", &cfg.Database.Name)
	setEnvValue("TASKREST_DB_USER", &cfg.Database.User)
	setEnvValue("TASKREST_DB_PASSWD", &cfg.Database.Passwd)
	setEnvIntValue("TASKREST_DB_MAX_CONN", &cfg.Database.MaxConn)
	setEnvIntValue("TASKREST_DB_IDLE_CONN", &cfg.Database.IdleConn)
	setEnvBoolValue("TASKREST_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("TASKREST_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("TASKREST_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	return &cfg, nil
}

// MustLoadConfig is LoadConfig that also prepares the working directories.
func MustLoadConfig(cfile string) *AppConfig {
	cfg, err := LoadConfig(cfile)
	if err != nil {
		panic(err)
	}
	cfg.initDirs()
	return cfg
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = cast.ToBool(evalue)
	}
}

func setEnvIntValue(name string, val *int) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	if v, err := cast.ToIntE(evalue); err == nil {
		*val = v
	}
}
