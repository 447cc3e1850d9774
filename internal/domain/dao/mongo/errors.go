package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jrjohn/docstore-users/internal/domain/dao"
)

// ParseObjectID converts a hex id, returning dao.ErrInvalidID when it is malformed.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", dao.ErrInvalidID, id)
	}
	return oid, nil
}

// IsDuplicateKey reports whether err is a unique index violation (E11000).
func IsDuplicateKey(err error) bool {
	return errors.Is(err, dao.ErrDuplicateKey) || mongo.IsDuplicateKeyError(err)
}

// translateWriteError maps unique index violations to dao.ErrDuplicateKey.
func translateWriteError(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", dao.ErrDuplicateKey, err)
	}
	return err
}
