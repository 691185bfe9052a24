package services

import (
	"errors"

	"fursa_backend/internal/repositories"
	"fursa_backend/pkg/apperrors"
)

// mapRepoError переводит ошибки репозиториев в ошибки API
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrProviderNotFound):
		return apperrors.ErrProviderNotFound
	case errors.Is(err, repositories.ErrTalentNotFound):
		return apperrors.ErrTalentNotFound
	case errors.Is(err, repositories.ErrEmailTaken):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrPhoneTaken):
		return apperrors.ErrPhoneAlreadyExists
	default:
		return apperrors.InternalError(err)
	}
}
