package idgen_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/artpar/gymprice/adapters/idgen"
)

func TestUUID_New(t *testing.T) {
	g := idgen.UUID{Prefix: idgen.QuotePrefix}

	id := g.New()
	if !strings.HasPrefix(id, "q_") {
		t.Fatalf("ID %s missing prefix q_", id)
	}

	uuidRegex := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	if !uuidRegex.MatchString(strings.TrimPrefix(id, "q_")) {
		t.Errorf("ID %s doesn't match UUID v4 format", id)
	}
}

func TestUUID_New_Unique(t *testing.T) {
	g := idgen.UUID{}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.New()
		if seen[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestSequential_New(t *testing.T) {
	g := idgen.NewSequential("quote_")

	want := []string{"quote_1", "quote_2", "quote_3"}
	for _, w := range want {
		if got := g.New(); got != w {
			t.Errorf("New() = %s, want %s", got, w)
		}
	}
}
