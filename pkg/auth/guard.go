package auth

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/webapp/pkg/apperr"
)

// Action is an operation on an owned resource.
type Action int

const (
	ReadOne Action = iota
	ReadAll
	ReadMine
	Create
	Update
	Delete
)

func (a Action) String() string {
	switch a {
	case ReadOne:
		return "read-one"
	case ReadAll:
		return "read-all"
	case ReadMine:
		return "read-mine"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ErrNotOwner is returned when a verified caller mutates a resource they do not own.
var ErrNotOwner = fmt.Errorf("%w: caller does not own this resource", apperr.ErrForbidden)

// Authorize decides whether identity may perform action on a resource owned
// by ownerID. identity may be nil for anonymous callers. ownerID is ignored
// for reads and create. Unknown actions are denied.
func Authorize(identity *Identity, ownerID uuid.UUID, action Action) error {
	switch action {
	case ReadOne, ReadAll:
		return nil
	case ReadMine, Create:
		if identity == nil {
			return ErrMissingCredential
		}
		return nil
	case Update, Delete:
		if identity == nil {
			return ErrMissingCredential
		}
		if ownerID != identity.AccountID {
			return ErrNotOwner
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action %s", apperr.ErrForbidden, action)
	}
}
