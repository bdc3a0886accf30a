package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/google/uuid"
)

func TestParseID(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		value   string
		want    uuid.UUID
		wantErr string
	}{
		{name: "valid", value: id.String(), want: id},
		{name: "missing", value: "", wantErr: "-owner is required"},
		{name: "malformed", value: "not-a-uuid", wantErr: "invalid -owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID("owner", tt.value)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCommandsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range commands(&app{}) {
		if seen[c.Name()] {
			t.Errorf("duplicate command %q", c.Name())
		}
		seen[c.Name()] = true
		if c.Synopsis() == "" || !strings.Contains(c.Usage(), c.Name()) {
			t.Errorf("command %q has incomplete help", c.Name())
		}
	}
	for _, name := range []string{"recalc", "consolidate", "ic-normalize", "ic-dedupe", "ic-migrate", "ic-mirror", "schema"} {
		if !seen[name] {
			t.Errorf("missing command %q", name)
		}
	}
}

func TestCommandsRejectMissingIDsBeforeOpening(t *testing.T) {
	a := &app{}
	for _, c := range commands(a) {
		if c.Name() == "schema" {
			continue
		}
		t.Run(c.Name(), func(t *testing.T) {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			if err := fs.Parse(nil); err != nil {
				t.Fatalf("unexpected flag error: %v", err)
			}
			if status := c.Execute(context.Background(), fs); status != subcommands.ExitFailure {
				t.Errorf("expected failure without ids, got %v", status)
			}
			if a.useCases != nil {
				t.Error("database must not be opened when arguments are invalid")
			}
		})
	}
}

func TestPrintWritesIndentedJSON(t *testing.T) {
	var buf bytes.Buffer
	a := &app{out: &buf}

	if err := a.print(map[string]int{"removed": 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "{\n  \"removed\": 2\n}\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
