package main

import (
	"io"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestParseOptions(t *testing.T) {
	env := func(v string) func(string) string {
		return func(string) string { return v }
	}

	tests := []struct {
		name    string
		args    []string
		env     string
		want    options
		wantErr bool
	}{
		{
			name: "usage",
			want: options{dsn: defaultDSN, force: -1},
		},
		{
			name: "up from env",
			args: []string{"-up"},
			env:  "postgres://env/spot",
			want: options{dsn: "postgres://env/spot", action: actionUp, force: -1},
		},
		{
			name: "flag dsn wins",
			args: []string{"-dsn", "postgres://flag/spot", "-down"},
			env:  "postgres://env/spot",
			want: options{dsn: "postgres://flag/spot", action: actionDown, force: -1},
		},
		{
			name: "steps",
			args: []string{"-steps", "-1"},
			want: options{dsn: defaultDSN, action: actionSteps, steps: -1, force: -1},
		},
		{
			name: "force zero",
			args: []string{"-force", "0"},
			want: options{dsn: defaultDSN, action: actionForce, force: 0},
		},
		{
			name: "version beats up",
			args: []string{"-up", "-version"},
			want: options{dsn: defaultDSN, action: actionVersion, force: -1},
		},
		{
			name:    "unknown flag",
			args:    []string{"-sideways"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOptions(tt.args, env(tt.env))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	defer source.Close()

	first, err := source.First()
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first != 1 {
		t.Fatalf("first version: got %d, want 1", first)
	}

	up, _, err := source.ReadUp(first)
	if err != nil {
		t.Fatalf("read up: %v", err)
	}
	defer up.Close()

	data, err := io.ReadAll(up)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"CREATE TABLE IF NOT EXISTS reports", "UNIQUE (storage_key)", "JSONB"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("up migration missing %q", want)
		}
	}

	if _, _, err := source.ReadDown(first); err != nil {
		t.Errorf("read down: %v", err)
	}
}
