// Package editing implements the add/edit/save/cancel/remove cycle shared by every
// manually edited collection of a portfolio (projects, experience, education, skills).
//
// A collection is a State holding the committed items, an optional new-item draft
// and at most one EditSession. Apply is the single reducer; it never mutates its
// input state.
package editing

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Entity is an item that can be identified and re-identified by id.
type Entity[T any] interface {
	EntityID() string
	WithEntityID(id string) T
}

// EditSession is an in-progress edit of one committed item.
type EditSession[T any] struct {
	Base  T
	Draft T
}

// State is one editable collection.
type State[T Entity[T]] struct {
	Items   []T
	NewItem T
	Editing *EditSession[T]
}

// ActionKind names a reducer action.
type ActionKind string

// Reducer actions
const (
	ActionSetNew ActionKind = "set_new"
	ActionAdd    ActionKind = "add"
	ActionEdit   ActionKind = "edit"
	ActionUpdate ActionKind = "update"
	ActionSave   ActionKind = "save"
	ActionCancel ActionKind = "cancel"
	ActionRemove ActionKind = "remove"
)

// Action is one reducer input. ID is used by edit and remove; Item by set_new, add and update.
type Action[T any] struct {
	Kind ActionKind
	ID   string
	Item T
}

var (
	// ErrNotFound is returned when an action targets an id that is not in the collection
	ErrNotFound = errors.New("item not found")
	// ErrNoEditSession is returned by update and save when nothing is being edited
	ErrNoEditSession = errors.New("no edit in progress")
	// ErrUnknownAction is returned for an unrecognized action kind
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidItem is returned when an edit carries no item or one that does not decode
	ErrInvalidItem = errors.New("invalid item")
)

// ValidationError is returned when an item is missing a required field.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Tag)
}

var validate = validator.New()

// Validate checks the struct tags of item.
func Validate(item any) error {
	if err := validate.Struct(item); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ValidationError{Field: verrs[0].Field(), Tag: verrs[0].Tag()}
		}
		return &ValidationError{Field: "item", Tag: "invalid"}
	}
	return nil
}

// Apply returns the state that results from applying a to s.
//
//   - set_new replaces the new-item draft
//   - add validates the draft given in Item (or the stored draft when Item is zero),
//     assigns an id when missing, appends it and clears the draft
//   - edit opens a session on the item with ID; any open session is discarded
//   - update replaces the session draft
//   - save replaces the base item (matched by id) with the draft and closes the session
//   - cancel closes the session without touching Items
//   - remove deletes the item with ID, closing its session if open
func Apply[T Entity[T]](s State[T], a Action[T]) (State[T], error) {
	next := State[T]{
		Items:   append([]T(nil), s.Items...),
		NewItem: s.NewItem,
		Editing: s.Editing,
	}

	switch a.Kind {
	case ActionSetNew:
		next.NewItem = a.Item
		return next, nil

	case ActionAdd:
		item := a.Item
		if isZero(item) {
			item = s.NewItem
		}
		if err := Validate(item); err != nil {
			return s, err
		}
		if item.EntityID() == "" {
			item = item.WithEntityID(uuid.NewString())
		} else if indexOf(next.Items, item.EntityID()) >= 0 {
			return s, fmt.Errorf("duplicate id %q", item.EntityID())
		}
		next.Items = append(next.Items, item)
		var zero T
		next.NewItem = zero
		return next, nil

	case ActionEdit:
		i := indexOf(next.Items, a.ID)
		if i < 0 {
			return s, fmt.Errorf("%w: %s", ErrNotFound, a.ID)
		}
		next.Editing = &EditSession[T]{Base: next.Items[i], Draft: next.Items[i]}
		return next, nil

	case ActionUpdate:
		if s.Editing == nil {
			return s, ErrNoEditSession
		}
		next.Editing = &EditSession[T]{Base: s.Editing.Base, Draft: a.Item}
		return next, nil

	case ActionSave:
		if s.Editing == nil {
			return s, ErrNoEditSession
		}
		id := s.Editing.Base.EntityID()
		draft := s.Editing.Draft.WithEntityID(id)
		if err := Validate(draft); err != nil {
			return s, err
		}
		i := indexOf(next.Items, id)
		if i < 0 {
			return s, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		next.Items[i] = draft
		next.Editing = nil
		return next, nil

	case ActionCancel:
		next.Editing = nil
		return next, nil

	case ActionRemove:
		i := indexOf(next.Items, a.ID)
		if i < 0 {
			return s, fmt.Errorf("%w: %s", ErrNotFound, a.ID)
		}
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
		if s.Editing != nil && s.Editing.Base.EntityID() == a.ID {
			next.Editing = nil
		}
		return next, nil
	}

	return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}

func indexOf[T Entity[T]](items []T, id string) int {
	if id == "" {
		return -1
	}
	for i, item := range items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func isZero[T any](v T) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}
