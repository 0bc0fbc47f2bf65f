package services

import (
	"etalase/internal/apperrors"
	"etalase/internal/models"
)

// RequireAdmin is the authorization gate guarding every mutating operation.
// It rejects unless the caller presents a session with the admin role.
func RequireAdmin(session *models.Session) error {
	if !session.IsAdmin() {
		return apperrors.ErrUnauthorized
	}
	return nil
}
