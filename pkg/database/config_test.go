package database_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/spotlight/pkg/database"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := database.Config{Name: "spotlight", User: "spotlight"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "localhost" || cfg.Port != 5432 || cfg.SSLMode != "disable" {
		t.Errorf("connection defaults = %s:%d %s", cfg.Host, cfg.Port, cfg.SSLMode)
	}
	if cfg.ConnMaxLifetimeDuration() != 15*time.Minute {
		t.Errorf("conn_max_lifetime = %v", cfg.ConnMaxLifetimeDuration())
	}
	if cfg.ConnTimeoutDuration() != 5*time.Second {
		t.Errorf("conn_timeout = %v", cfg.ConnTimeoutDuration())
	}

	want := "host=localhost port=5432 dbname=spotlight user=spotlight password= sslmode=disable"
	if got := cfg.Dsn(); got != want {
		t.Errorf("Dsn() = %q, want %q", got, want)
	}
}

func TestFinalizeDSN(t *testing.T) {
	t.Setenv("TEST_DB_DSN", "postgres://u:p@db:5432/spot?sslmode=disable")

	cfg := database.Config{}
	if err := cfg.Finalize(&database.Env{DSN: "TEST_DB_DSN"}); err != nil {
		t.Fatalf("finalize with dsn failed: %v", err)
	}

	if got := cfg.Dsn(); got != "postgres://u:p@db:5432/spot?sslmode=disable" {
		t.Errorf("Dsn() = %q", got)
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db")
	t.Setenv("TEST_DB_PORT", "6543")
	t.Setenv("TEST_DB_NAME", "reports")
	t.Setenv("TEST_DB_USER", "writer")

	env := &database.Env{
		Host: "TEST_DB_HOST",
		Port: "TEST_DB_PORT",
		Name: "TEST_DB_NAME",
		User: "TEST_DB_USER",
	}

	cfg := database.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "db" || cfg.Port != 6543 || cfg.Name != "reports" || cfg.User != "writer" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr string
	}{
		{name: "missing name", cfg: database.Config{User: "u"}, wantErr: "name required"},
		{name: "missing user", cfg: database.Config{Name: "n"}, wantErr: "user required"},
		{name: "bad lifetime", cfg: database.Config{Name: "n", User: "u", ConnMaxLifetime: "soon"}, wantErr: "conn_max_lifetime"},
		{name: "bad timeout", cfg: database.Config{Name: "n", User: "u", ConnTimeout: "later"}, wantErr: "conn_timeout"},
		{name: "idle exceeds open", cfg: database.Config{Name: "n", User: "u", MaxOpenConns: 2, MaxIdleConns: 4}, wantErr: "max_idle_conns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := database.Config{Host: "localhost", Name: "spotlight", Port: 5432}
	overlay := database.Config{Host: "db", DSN: "postgres://db/spot"}
	base.Merge(&overlay)

	if base.Host != "db" || base.Name != "spotlight" || base.Port != 5432 || base.DSN != "postgres://db/spot" {
		t.Errorf("merge result = %+v", base)
	}
}

func TestNewNotReadyBeforeStart(t *testing.T) {
	cfg := database.Config{Name: "spotlight", User: "spotlight"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}

	sys, err := database.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sys.Connection().Close()

	if sys.Ready() {
		t.Error("database should not be ready before Start")
	}
}
