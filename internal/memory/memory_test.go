package memory

import (
	"errors"
	"strings"
	"testing"
)

func TestStore_AutoNamesAreConsecutive(t *testing.T) {
	m := New()

	first := m.Store("", "1")
	second := m.Store("", "2")

	if first != "1" || second != "2" {
		t.Errorf("expected auto names 1, 2; got %s, %s", first, second)
	}
}

func TestStore_AutoNamesSkipPastNamedStores(t *testing.T) {
	m := New()

	m.Store("", "10")
	m.Store("rate", "0.25")
	name := m.Store("", "20")

	if name != "2" {
		t.Errorf("expected auto name 2 after intervening named store, got %s", name)
	}
}

func TestStore_ExplicitNameIsUsedVerbatim(t *testing.T) {
	m := New()

	name := m.Store("speed", "88 mph")

	if name != "speed" {
		t.Errorf("expected name speed, got %s", name)
	}
	if v, ok := m.Get("speed"); !ok || v != "88 mph" {
		t.Errorf("expected binding speed=88 mph, got %q (ok=%v)", v, ok)
	}
}

func TestStore_AutoCounterNotReusedAfterDelete(t *testing.T) {
	m := New()

	m.Store("", "1")
	if err := m.Delete("1"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}

	name := m.Store("", "2")
	if name != "2" {
		t.Errorf("expected counter to keep advancing, got %s", name)
	}
}

func TestUpdateLast(t *testing.T) {
	m := New()

	m.UpdateLast("42")
	if v, ok := m.Get(LastResult); !ok || v != "42" {
		t.Errorf("expected _ = 42, got %q (ok=%v)", v, ok)
	}

	m.UpdateLast("43")
	if v, _ := m.Get(LastResult); v != "43" {
		t.Errorf("expected _ overwritten to 43, got %q", v)
	}
}

func TestDelete_MissingNameLeavesBindingsUnchanged(t *testing.T) {
	m := New()
	m.Store("x", "1")
	m.Store("y", "2")

	err := m.Delete("z")

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("expected bindings untouched (2 entries), got %d", m.Len())
	}
	if v, _ := m.Get("x"); v != "1" {
		t.Errorf("expected x still bound to 1, got %q", v)
	}
}

func TestClear_ResetsCounter(t *testing.T) {
	m := New()
	m.Store("", "1")
	m.Store("", "2")
	m.Store("named", "3")

	m.Clear()

	if m.Len() != 0 {
		t.Errorf("expected empty bindings after clear, got %d entries", m.Len())
	}
	if name := m.Store("", "5"); name != "1" {
		t.Errorf("expected auto counter reset to 1, got %s", name)
	}
}

func TestNamedVariables_ExcludesAllDigitKeys(t *testing.T) {
	m := New()
	m.Store("", "1")     // auto "1"
	m.Store("", "2")     // auto "2"
	m.Store("rate", "3") // user named
	m.Store("x_2", "4")  // user named, mixed
	m.Store("7", "5")    // user named but all digits: hidden

	names := m.NamedVariables()

	got := make(map[string]bool)
	for _, n := range names {
		got[n] = true
	}
	if len(names) != 2 || !got["$rate"] || !got["$x_2"] {
		t.Errorf("expected exactly $rate and $x_2, got %v", names)
	}
}

func TestDump_SortsLexicographically(t *testing.T) {
	m := New()
	m.Store("_", "7")
	m.Store("2", "3")
	m.Store("10", "1")

	out := m.Dump()

	// String sort, not numeric: "10" before "2", "_" last.
	lines := strings.Split(out, "\n")
	want := []string{"$10 = 1", "$2 = 3", "$_ = 7"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d rows, got %d: %q", len(want), len(lines), out)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("row %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestDump_EmptyMemory(t *testing.T) {
	m := New()

	out := m.Dump()

	if !strings.Contains(out, "no variables") {
		t.Errorf("expected sentinel empty message, got %q", out)
	}
}

func TestStateAndReplace_RoundTrip(t *testing.T) {
	m := New()
	m.Store("", "1")
	m.Store("x", "some text")

	bindings, next := m.State()

	fresh := New()
	fresh.Replace(bindings, next)

	if fresh.Len() != m.Len() {
		t.Fatalf("expected %d bindings after replace, got %d", m.Len(), fresh.Len())
	}
	if v, _ := fresh.Get("x"); v != "some text" {
		t.Errorf("expected x preserved, got %q", v)
	}
	if name := fresh.Store("", "2"); name != "2" {
		t.Errorf("expected counter preserved at 2, got %s", name)
	}
}

func TestState_ReturnsCopy(t *testing.T) {
	m := New()
	m.Store("x", "1")

	bindings, _ := m.State()
	bindings["x"] = "tampered"

	if v, _ := m.Get("x"); v != "1" {
		t.Errorf("expected live bindings isolated from snapshot copy, got %q", v)
	}
}

func TestReplace_NormalizesNilAndBadCounter(t *testing.T) {
	m := New()
	m.Store("x", "1")

	m.Replace(nil, 0)

	if m.Len() != 0 {
		t.Errorf("expected empty bindings, got %d", m.Len())
	}
	if name := m.Store("", "v"); name != "1" {
		t.Errorf("expected counter normalized to 1, got %s", name)
	}
}
