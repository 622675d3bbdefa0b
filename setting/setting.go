// Package setting provides Setting, a persisted State backed by a
// pluggable key-value Store, for firmware configuration that must
// survive a reboot.
//
// Grounded on original_source/include/async/Setting.h, whose C++
// template specializes per primitive type and backs each specialization
// with the ESP32 Preferences flash API. Go generics collapse the
// per-type specializations into one Setting[T] constrained to the
// primitive types Preferences actually supports; the Store interface
// stands in for Preferences so tests can run against an in-memory
// store instead of real flash.
package setting

import (
	"strconv"

	"github.com/tickcore/async"
	"github.com/tickcore/async/state"
)

// Primitive lists the value types a Setting may hold, mirroring the
// explicit template specializations (int, float, double, bool, String)
// in Setting.h.
type Primitive interface {
	int | float64 | bool | string
}

// Store is the persistence surface a Setting reads from and writes to.
// Values are serialized as strings so one Store implementation serves
// every Primitive without per-type methods, the way a real flash
// preferences API would be wrapped on the Go side.
type Store interface {
	Get(key string) (string, bool)
	Put(key, value string)
	Remove(key string)
}

// MapStore is an in-memory Store for tests and host-side development.
type MapStore struct {
	values map[string]string
}

// NewMapStore constructs an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{values: make(map[string]string)}
}

func (m *MapStore) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *MapStore) Put(key, value string) {
	m.values[key] = value
}

func (m *MapStore) Remove(key string) {
	delete(m.values, key)
}

// Setting is a State[T] whose Set additionally persists the new value
// to a Store, and whose first Get lazily loads any previously-persisted
// value — matching Setting<T>::start()'s "init on first get()" pattern
// rather than eagerly reading the store at construction.
type Setting[T Primitive] struct {
	*state.State[T]

	uuid         string
	defaultValue T
	store        Store
	started      bool
}

// New constructs a Setting identified by uuid, defaulting to
// defaultValue until the first Get or Set loads any
// previously-persisted value from store; Start does not load it.
func New[T Primitive](name async.Name, uuid string, defaultValue T, store Store) *Setting[T] {
	return &Setting[T]{
		State:        state.New(name, defaultValue),
		uuid:         uuid,
		defaultValue: defaultValue,
		store:        store,
	}
}

// UUID returns the key this Setting is persisted under.
func (s *Setting[T]) UUID() string { return s.uuid }

func (s *Setting[T]) lazyStart() {
	if s.started {
		return
	}
	s.started = true
	if raw, ok := s.store.Get(s.uuid); ok {
		if v, ok := parse[T](raw); ok {
			s.State.Set(v, true)
		}
	}
}

// Get lazily loads the persisted value on first access, then returns
// the current value.
func (s *Setting[T]) Get() T {
	s.lazyStart()
	return s.State.Get()
}

// Set persists value to the Store and updates the observable State,
// skipping both the write and the change notification when value is
// unchanged and force is not set.
func (s *Setting[T]) Set(value T, force ...bool) {
	s.lazyStart()
	forced := len(force) > 0 && force[0]
	if s.State.Get() == value && !forced {
		return
	}
	s.store.Put(s.uuid, format(value))
	s.State.Set(value, force...)
}

// Reset removes the persisted value and restores the default, matching
// Setting<T>::reset() in the original header.
func (s *Setting[T]) Reset() {
	s.store.Remove(s.uuid)
	s.State.Set(s.defaultValue, true)
	s.started = true
}

func format[T Primitive](v T) string {
	switch val := any(v).(type) {
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	default:
		return ""
	}
}

func parse[T Primitive](raw string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		return any(n).(T), true
	case float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		return any(f).(T), true
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		return any(b).(T), true
	case string:
		return any(raw).(T), true
	default:
		return zero, false
	}
}
