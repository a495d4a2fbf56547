package config

import (
	"os"
	"path/filepath"
	"testing"
)

func intPtr(v int) *int { return &v }

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverRueidis, URL: "redis://localhost:6379"},
	}
}

func TestValidate_InvalidDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memcached"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `database.driver must be "rueidis" or "go-redis", got "memcached"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidDrivers(t *testing.T) {
	for _, driver := range []string{DriverRueidis, DriverGoRedis} {
		t.Run("driver="+driver, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database.Driver = driver
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for driver %q: %v", driver, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingStoreAddress(t *testing.T) {
	cfg := validConfig()
	cfg.Database.URL = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing url and addrs")
	}
}

func TestValidate_UTCOffsetRange(t *testing.T) {
	cfg := validConfig()
	cfg.Search.UTCOffsetHours = intPtr(15)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for offset 15")
	}

	cfg.Search.UTCOffsetHours = intPtr(-5)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.HTTP.Compress == nil || !*cfg.HTTP.Compress {
		t.Error("expected compression on by default")
	}
	if cfg.Database.Driver != DriverRueidis {
		t.Errorf("expected Driver=rueidis, got %q", cfg.Database.Driver)
	}
	if cfg.Database.URL != "" || len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "127.0.0.1:6379" {
		t.Errorf("expected default addrs without url, got url=%q addrs=%v", cfg.Database.URL, cfg.Database.Addrs)
	}
	if cfg.Database.PoolSize != 20 {
		t.Errorf("expected PoolSize=20, got %d", cfg.Database.PoolSize)
	}
	if cfg.Database.IdleTimeoutSec != 30 {
		t.Errorf("expected IdleTimeoutSec=30, got %d", cfg.Database.IdleTimeoutSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Search.UTCOffsetHours == nil || *cfg.Search.UTCOffsetHours != 8 {
		t.Errorf("expected UTCOffsetHours=8, got %v", cfg.Search.UTCOffsetHours)
	}
	if cfg.Search.DefaultLimit != 20 {
		t.Errorf("expected DefaultLimit=20, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.DefaultSortField != "post_timestamp" || cfg.Search.DefaultFilterField != "post_timestamp" {
		t.Errorf("unexpected sort/filter defaults: %+v", cfg.Search)
	}
	if cfg.Ingest.MaxBatchSize != 100 || cfg.Ingest.Concurrency != 4 {
		t.Errorf("unexpected ingest defaults: %+v", cfg.Ingest)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	off := false
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5, Compress: &off},
		Database: DatabaseConfig{Driver: DriverGoRedis, ReadinessTimeout: 15, PoolSize: 5},
		Search:   SearchConfig{UTCOffsetHours: intPtr(0), DefaultLimit: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if *cfg.HTTP.Compress {
		t.Error("explicit compress=false must survive defaults")
	}
	if cfg.Database.Driver != DriverGoRedis || cfg.Database.PoolSize != 5 {
		t.Errorf("database overridden: %+v", cfg.Database)
	}
	if *cfg.Search.UTCOffsetHours != 0 {
		t.Errorf("explicit UTC offset 0 must survive defaults, got %d", *cfg.Search.UTCOffsetHours)
	}
	if cfg.Search.DefaultLimit != 50 {
		t.Errorf("expected DefaultLimit=50, got %d", cfg.Search.DefaultLimit)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yml := []byte(`
http:
  port: 9000
database:
  driver: go-redis
  url: ${TEST_DATANODE_URL:-redis://fallback:6379}
search:
  default_language: chinese
`)
	if err := os.WriteFile(filepath.Join(dir, "config", "loadtest.yaml"), yml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("REDIS_ADDRS", "a:6379,b:6379")

	cfg, err := Load("loadtest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9100 {
		t.Errorf("env should override port, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.URL != "redis://fallback:6379" {
		t.Errorf("URL = %q", cfg.Database.URL)
	}
	if len(cfg.Database.Addrs) != 2 || cfg.Database.Addrs[1] != "b:6379" {
		t.Errorf("Addrs = %v", cfg.Database.Addrs)
	}
	if cfg.Database.Driver != DriverGoRedis || cfg.Search.DefaultLanguage != "chinese" {
		t.Errorf("yaml values lost: %+v", cfg)
	}
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REDIS_URL", "redis://env-only:6379")
	t.Setenv("UTC_OFFSET_HOURS", "0")

	cfg, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URL != "redis://env-only:6379" {
		t.Errorf("URL = %q", cfg.Database.URL)
	}
	if *cfg.Search.UTCOffsetHours != 0 {
		t.Errorf("UTCOffsetHours = %d", *cfg.Search.UTCOffsetHours)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("Port = %d", cfg.HTTP.Port)
	}
}

func TestLoad_AddrsAndPasswordWithoutURL(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yml := []byte(`
database:
  url: ${TEST_DATANODE_UNSET_URL}
  password: ${TEST_DATANODE_PASSWORD}
`)
	if err := os.WriteFile(filepath.Join(dir, "config", "creds.yaml"), yml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("TEST_DATANODE_PASSWORD", "s3cret")
	t.Setenv("REDIS_ADDRS", "10.0.0.5:6379")

	cfg, err := Load("creds")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URL != "" {
		t.Errorf("no url configured, got %q", cfg.Database.URL)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "10.0.0.5:6379" {
		t.Errorf("Addrs = %v", cfg.Database.Addrs)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("Password = %q", cfg.Database.Password)
	}
}

func TestLoad_PasswordOnlyKeepsDefaultAddrs(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REDIS_PASSWORD", "s3cret")

	cfg, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URL != "" || len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "127.0.0.1:6379" {
		t.Errorf("url=%q addrs=%v", cfg.Database.URL, cfg.Database.Addrs)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("Password = %q", cfg.Database.Password)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_DATANODE_HOST", "db.internal")
	got := string(expandEnvVars([]byte("a: ${TEST_DATANODE_HOST}\nb: ${TEST_DATANODE_UNSET:-x}\nc: ${TEST_DATANODE_UNSET}")))
	want := "a: db.internal\nb: x\nc: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
