package impl

import (
	"errors"

	"go.uber.org/zap"

	"github.com/jrjohn/docstore-users/internal/domain/dao"
	daomongo "github.com/jrjohn/docstore-users/internal/domain/dao/mongo"
	"github.com/jrjohn/docstore-users/internal/domain/service"
)

// translate logs err with its operation context and maps it onto the
// service error taxonomy. detail is the offending id or email.
func translate(logger *zap.Logger, op, detail string, err error) error {
	switch {
	case errors.Is(err, dao.ErrInvalidID):
		logger.Warn("Invalid user id", zap.String("operation", op), zap.String("id", detail))
		return service.ErrInvalidUserID.WithDetail(detail)
	case daomongo.IsDuplicateKey(err):
		logger.Warn("Duplicate email", zap.String("operation", op), zap.String("email", detail))
		return service.ErrDuplicateEmail.WithDetail(detail)
	default:
		logger.Error("Data access failed",
			zap.String("operation", op),
			zap.String("detail", detail),
			zap.Error(err),
		)
		return service.ErrDataAccess.WithDetail(op).WithError(err)
	}
}

// notFound logs a miss and returns ErrUserNotFound for id.
func notFound(logger *zap.Logger, op, id string) error {
	logger.Warn("User not found", zap.String("operation", op), zap.String("id", id))
	return service.ErrUserNotFound.WithDetail(id)
}

// emailOf returns the email a patch sets, for error details.
func emailOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
