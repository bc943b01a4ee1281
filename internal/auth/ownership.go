package auth

import "errors"

// ErrForbidden is returned when an authenticated user tries to change a resource they do not own.
var ErrForbidden = errors.New("operation not permitted")

// AuthorizeMutation allows the change only when id owns the resource.
func AuthorizeMutation(id Identity, ownerID int64) error {
	if id.UserID == 0 || id.UserID != ownerID {
		return ErrForbidden
	}
	return nil
}
