package main

import (
	"strings"
	"testing"
)

func TestInventoryLines(t *testing.T) {
	cases := []struct {
		name  string
		items map[string]int
		want  []string
	}{
		{"empty", nil, []string{"Nothing harvested yet"}},
		{"zero_counts_hidden", map[string]int{"corn": 0}, []string{"Nothing harvested yet"}},
		{"sorted", map[string]int{"potato": 2, "carrot": 5}, []string{"carrot", "potato"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := inventoryLines(c.items)
			if len(got) != len(c.want) {
				t.Fatalf("got %q, want %d lines", got, len(c.want))
			}
			for i, prefix := range c.want {
				if !strings.HasPrefix(got[i], prefix) {
					t.Fatalf("line %d = %q, want prefix %q", i, got[i], prefix)
				}
			}
		})
	}
	if got := inventoryLines(map[string]int{"carrot": 5})[0]; !strings.HasSuffix(got, "x5") {
		t.Fatalf("count missing from %q", got)
	}
}

func TestEnvSeed(t *testing.T) {
	t.Setenv("RUSTYFARM_SEED", "42")
	if got := envSeed("RUSTYFARM_SEED"); got != 42 {
		t.Fatalf("seed = %d, want 42", got)
	}
	t.Setenv("RUSTYFARM_DEBUG_ADDR", "")
	if got := envOr("RUSTYFARM_DEBUG_ADDR", "fallback"); got != "fallback" {
		t.Fatalf("envOr = %q", got)
	}
}
