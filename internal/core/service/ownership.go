package service

import "github.com/userhub/user-service/internal/core/domain"

// CheckOwnership allows the call only when the authenticated identity is the
// target account. It must run after Authenticate.
func CheckOwnership(identity *domain.User, targetID string) error {
	if identity == nil || identity.ID == "" || identity.ID != targetID {
		return domain.ErrForbidden
	}
	return nil
}
