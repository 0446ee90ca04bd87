package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if cfg.Web.Port != DefaultAppConfig.Web.Port {
		t.Errorf("port = %d, want default %d", cfg.Web.Port, DefaultAppConfig.Web.Port)
	}
	if cfg.Database.Type != "postgres" {
		t.Errorf("db type = %s, want postgres", cfg.Database.Type)
	}
}

func TestLoadConfigReadsYaml(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "servimart.yml")
	content := `
web:
  host: 127.0.0.1
  port: 9090
database:
  type: sqlite
`
	if err := os.WriteFile(cfile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(cfile)
	if cfg.Web.Host != "127.0.0.1" || cfg.Web.Port != 9090 {
		t.Errorf("web = %+v", cfg.Web)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("db type = %s, want sqlite", cfg.Database.Type)
	}
	// untouched sections keep defaults
	if cfg.System.Appid != DefaultAppConfig.System.Appid {
		t.Errorf("appid = %s", cfg.System.Appid)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVIMART_WEB_PORT", "8081")
	t.Setenv("SERVIMART_WEB_JWT_SECRET", "env-secret")
	t.Setenv("SERVIMART_DB_HOST", "db.internal")
	t.Setenv("SERVIMART_REDIS_ADDR", "redis.internal:6379")

	cfg := LoadConfig("")
	if cfg.Web.Port != 8081 {
		t.Errorf("port = %d, want 8081", cfg.Web.Port)
	}
	if cfg.Web.JwtSecret != "env-secret" {
		t.Errorf("jwt secret = %s", cfg.Web.JwtSecret)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %s", cfg.Database.Host)
	}
	if cfg.Redis.Addr != "redis.internal:6379" {
		t.Errorf("redis addr = %s", cfg.Redis.Addr)
	}
}

func TestLoadConfigIgnoresBadIntEnv(t *testing.T) {
	t.Setenv("SERVIMART_WEB_PORT", "not-a-number")
	cfg := LoadConfig("")
	if cfg.Web.Port != DefaultAppConfig.Web.Port {
		t.Errorf("port = %d, want default", cfg.Web.Port)
	}
}
