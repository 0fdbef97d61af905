package fieldedit

import "errors"

// ErrInvalidTransition возвращается при недопустимом переходе состояния
var ErrInvalidTransition = errors.New("fieldedit: invalid state transition")

// State is the lifecycle tag of an editable field
type State int

const (
	// StateClean поле совпадает с последним сохраненным значением
	StateClean State = iota

	// StateDirty поле содержит несохраненное значение
	StateDirty

	// StateCommitting значение поля проходит валидацию перед сохранением
	StateCommitting

	// StateReverted последняя правка отклонена, поле возвращено к сохраненному значению
	StateReverted
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateCommitting:
		return "committing"
	case StateReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Field tracks the edit lifecycle of one editable value: an edit begins,
// then either commits through validation or reverts to the last known-good
// value. The committed value survives any failed edit.
type Field[T any] struct {
	committed T
	pending   T
	state     State
}

// New creates a Clean field holding value as its committed state
func New[T any](value T) *Field[T] {
	return &Field[T]{committed: value, state: StateClean}
}

// State returns the current lifecycle tag
func (f *Field[T]) State() State {
	return f.state
}

// Value returns the committed (last known-good) value
func (f *Field[T]) Value() T {
	return f.committed
}

// Pending returns the uncommitted value and true while the field is Dirty
func (f *Field[T]) Pending() (T, bool) {
	if f.state != StateDirty {
		var zero T
		return zero, false
	}
	return f.pending, true
}

// Begin stores pending as the new uncommitted value and marks the field
// Dirty. Re-editing a Dirty field overwrites the previous pending value.
// Beginning an edit mid-commit is not allowed.
func (f *Field[T]) Begin(pending T) error {
	if f.state == StateCommitting {
		return ErrInvalidTransition
	}
	f.pending = pending
	f.state = StateDirty
	return nil
}

// Commit validates the pending value. On success it becomes the committed
// value and the field returns to Clean. On validation failure the pending
// value is discarded, the committed value is restored and the field is
// marked Reverted; the validation error is returned to the caller.
func (f *Field[T]) Commit(validate func(T) error) error {
	if f.state != StateDirty {
		return ErrInvalidTransition
	}

	f.state = StateCommitting

	if validate != nil {
		if err := validate(f.pending); err != nil {
			var zero T
			f.pending = zero
			f.state = StateReverted
			return err
		}
	}

	f.committed = f.pending
	f.state = StateClean
	return nil
}

// Reset discards any pending value and returns the field to Clean
func (f *Field[T]) Reset() {
	var zero T
	f.pending = zero
	f.state = StateClean
}
