package setting

import "testing"

func TestSettingLazyLoadsPersistedValue(t *testing.T) {
	store := NewMapStore()
	store.Put("brightness", "42")

	s := New("brightness", "brightness", 100, store)
	if got := s.Get(); got != 42 {
		t.Fatalf("expected lazily-loaded 42, got %d", got)
	}
}

func TestSettingDefaultsWhenUnset(t *testing.T) {
	store := NewMapStore()
	s := New("brightness", "brightness", 100, store)
	if got := s.Get(); got != 100 {
		t.Fatalf("expected default 100, got %d", got)
	}
}

func TestSettingSetPersists(t *testing.T) {
	store := NewMapStore()
	s := New("brightness", "brightness", 100, store)

	s.Set(55)

	if got := s.Get(); got != 55 {
		t.Fatalf("expected 55, got %d", got)
	}
	raw, ok := store.Get("brightness")
	if !ok || raw != "55" {
		t.Fatalf("expected store to hold \"55\", got %q ok=%v", raw, ok)
	}
}

func TestSettingReset(t *testing.T) {
	store := NewMapStore()
	s := New("brightness", "brightness", 100, store)
	s.Set(55)
	s.Reset()

	if got := s.Get(); got != 100 {
		t.Fatalf("expected reset to restore default 100, got %d", got)
	}
	if _, ok := store.Get("brightness"); ok {
		t.Fatalf("expected Reset to remove the persisted key")
	}
}

func TestSettingBoolAndString(t *testing.T) {
	store := NewMapStore()
	b := New[bool]("enabled", "enabled", false, store)
	b.Set(true)
	if !b.Get() {
		t.Fatalf("expected true")
	}

	str := New[string]("label", "label", "default", store)
	str.Set("hello")
	if got := str.Get(); got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
}
