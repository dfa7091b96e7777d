package domain_test

import (
	"testing"

	"kanban/internal/domain"
)

func TestFieldUpdate_Apply(t *testing.T) {
	t.Run("no change keeps existing value", func(t *testing.T) {
		t.Parallel()
		v := "keep"
		field := &v

		domain.NoChange[string]().Apply(&field)

		if field == nil || *field != "keep" {
			t.Fatalf("got %v, want keep", field)
		}
	})

	t.Run("set replaces existing value", func(t *testing.T) {
		t.Parallel()
		v := "old"
		field := &v

		domain.Set("new").Apply(&field)

		if field == nil || *field != "new" {
			t.Fatalf("got %v, want new", field)
		}
	})

	t.Run("set fills empty field", func(t *testing.T) {
		t.Parallel()
		var field *int

		domain.Set(42).Apply(&field)

		if field == nil || *field != 42 {
			t.Fatalf("got %v, want 42", field)
		}
	})

	t.Run("clear empties the field", func(t *testing.T) {
		t.Parallel()
		v := 7
		field := &v

		domain.Clear[int]().Apply(&field)

		if field != nil {
			t.Fatalf("got %v, want nil", *field)
		}
	})
}

func TestFieldUpdate_FromPtr(t *testing.T) {
	t.Parallel()

	// Nil pointer means an explicit clear, not "leave alone".
	field := new(string)
	domain.FromPtr[string](nil).Apply(&field)
	if field != nil {
		t.Error("nil pointer should clear the field")
	}

	v := "x"
	u := domain.FromPtr(&v)
	got, ok := u.Value()
	if !ok || got != "x" {
		t.Fatalf("got (%q, %v), want (x, true)", got, ok)
	}
}
