package prompt

import "testing"

func TestOptionsEndWithCustom(t *testing.T) {
	opts := Options()
	if len(opts) != 7 {
		t.Fatalf("expected 7 options, got %d", len(opts))
	}
	if opts[len(opts)-1].ID != CustomID {
		t.Fatalf("expected custom to be last, got %q", opts[len(opts)-1].ID)
	}
	seen := map[string]bool{}
	for _, opt := range opts {
		if seen[opt.ID] {
			t.Fatalf("duplicate option id %q", opt.ID)
		}
		seen[opt.ID] = true
		if opt.Label == "" {
			t.Fatalf("option %q has empty label", opt.ID)
		}
	}
}

func TestOptionsReturnsCopy(t *testing.T) {
	opts := Options()
	opts[0].ID = "mutated"
	if _, ok := Lookup("self_appraisal"); !ok {
		t.Fatalf("catalog was mutated through returned slice")
	}
}

func TestLookupAndIndexOf(t *testing.T) {
	opt, ok := Lookup("career")
	if !ok || opt.Label != "Show me my current career trajectory information" {
		t.Fatalf("unexpected lookup result: %+v ok=%v", opt, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatalf("expected unknown id lookup to fail")
	}
	if IndexOf("self_appraisal") != 0 {
		t.Fatalf("expected self_appraisal at index 0")
	}
	if IndexOf("nope") != -1 {
		t.Fatalf("expected -1 for unknown id")
	}
}
