package domain

// FieldUpdate is a three-state update value for optional fields.
// It distinguishes "leave the field alone" from "explicitly clear it",
// which a bare pointer cannot encode. The zero value is NoChange.
type FieldUpdate[T any] struct {
	op    updateOp
	value T
}

type updateOp int

const (
	opNoChange updateOp = iota
	opSet
	opClear
)

// NoChange leaves the field as is.
func NoChange[T any]() FieldUpdate[T] { return FieldUpdate[T]{} }

// Set assigns the given value to the field.
func Set[T any](v T) FieldUpdate[T] { return FieldUpdate[T]{op: opSet, value: v} }

// Clear empties the field.
func Clear[T any]() FieldUpdate[T] { return FieldUpdate[T]{op: opClear} }

// FromPtr maps a pointer to Set(*p) or Clear for nil, matching the
// driver contract where an explicit null clears the field.
func FromPtr[T any](p *T) FieldUpdate[T] {
	if p == nil {
		return Clear[T]()
	}
	return Set(*p)
}

// Apply mutates an optional field in place.
func (u FieldUpdate[T]) Apply(field **T) {
	switch u.op {
	case opNoChange:
	case opSet:
		v := u.value
		*field = &v
	case opClear:
		*field = nil
	}
}

// IsChange reports whether applying this update would modify the field.
func (u FieldUpdate[T]) IsChange() bool { return u.op != opNoChange }

// Value returns the value carried by a Set update.
func (u FieldUpdate[T]) Value() (T, bool) {
	if u.op == opSet {
		return u.value, true
	}
	var zero T
	return zero, false
}
