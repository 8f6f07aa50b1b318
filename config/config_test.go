package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, "taskrest", cfg.Database.Name)
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taskrest.yml")
	content := `
system:
  workdir: /tmp/taskrest
web:
  port: 9090
database:
  type: sqlite
  name: orders.db
logger:
  mode: production
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	t.Setenv("TASKREST_WEB_PORT", "9191")
	t.Setenv("TASKREST_DB_DEBUG", "true")
	t.Setenv("TASKREST_DB_MAX_CONN", "not-a-number")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/taskrest", cfg.System.Workdir)
	assert.Equal(t, 9191, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, DefaultAppConfig.Database.MaxConn, cfg.Database.MaxConn)
	assert.Equal(t, "production", cfg.Logger.Mode)
	assert.Equal(t, "/tmp/taskrest/data/metrics", cfg.GetMetricsDir())
}

func TestLoadConfigRejectsBrokenYaml(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(file, []byte("web: [port"), 0o644))

	_, err := LoadConfig(file)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DBConfig
		want string
	}{
		{
			name: "host and port",
			cfg:  DBConfig{Type: "postgres", Url: "db.local:6432", Name: "shop", User: "u", Passwd: "p"},
			want: "host=db.local port=6432 user=u password=p dbname=shop sslmode=disable",
		},
		{
			name: "host only",
			cfg:  DBConfig{Type: "postgres", Url: "db.local", Name: "shop", User: "u", Passwd: "p"},
			want: "host=db.local port=5432 user=u password=p dbname=shop sslmode=disable",
		},
		{
			name: "full url",
			cfg:  DBConfig{Type: "postgres", Url: "postgres://u:p@db/shop"},
			want: "postgres://u:p@db/shop",
		},
		{
			name: "sqlite",
			cfg:  DBConfig{Type: "sqlite", Name: "file.db"},
			want: "file.db",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
