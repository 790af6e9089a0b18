package hashmap

import (
	"testing"
	"time"
)

func TestExpiringMap_Lookup(t *testing.T) {
	obj := NewExpiring[string, int](time.Hour)
	obj.Set("key", 42)

	val, ok := obj.Lookup("key")
	if !ok || val != 42 {
		t.Errorf("Lookup = (%d, %v), want (42, true)", val, ok)
	}
	if _, ok := obj.Lookup("missing"); ok {
		t.Error("missing key reported as present")
	}
}

func TestExpiringMap_ExpiredValuesAreDroppedLazily(t *testing.T) {
	obj := NewExpiring[string, int](-time.Second)
	obj.Set("key", 42)

	if _, ok := obj.Lookup("key"); ok {
		t.Error("expired value still returned")
	}
}

func TestExpiringMap_Unset(t *testing.T) {
	obj := NewExpiring[string, int](time.Hour)
	obj.Set("key", 42)
	obj.Unset("key")

	if _, ok := obj.Lookup("key"); ok {
		t.Error("value survived Unset")
	}
}
