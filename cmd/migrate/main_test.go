package main

import (
	"io/fs"
	"strings"
	"testing"

	appmigrations "github.com/wolfman30/window-quote/migrations"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		args    []string
		cmd     string
		n       int
		wantErr bool
	}{
		{args: nil, cmd: "up"},
		{args: []string{"up"}, cmd: "up"},
		{args: []string{"version"}, cmd: "version"},
		{args: []string{"down"}, cmd: "down", n: 1},
		{args: []string{"down", "2"}, cmd: "down", n: 2},
		{args: []string{"down", "0"}, wantErr: true},
		{args: []string{"force", "1"}, cmd: "force", n: 1},
		{args: []string{"force"}, wantErr: true},
		{args: []string{"sideways"}, wantErr: true},
	}
	for _, tt := range tests {
		cmd, n, err := parseArgs(tt.args)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%v: expected error", tt.args)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%v: unexpected error %v", tt.args, err)
		}
		if cmd != tt.cmd || n != tt.n {
			t.Fatalf("%v: got (%s, %d), want (%s, %d)", tt.args, cmd, n, tt.cmd, tt.n)
		}
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.Glob(appmigrations.FS, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	ups, downs := 0, 0
	for _, name := range entries {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups++
		case strings.HasSuffix(name, ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Fatalf("expected paired migrations, got %d up / %d down", ups, downs)
	}
}
