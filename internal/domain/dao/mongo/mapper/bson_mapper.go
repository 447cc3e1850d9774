package mapper

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/document"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// ToBSON builds the raw document stored for user, field by field.
// _id is included only when user.ID is a valid hex ObjectID.
func ToBSON(user *entity.User) bson.D {
	doc := bson.D{}
	if oid, err := primitive.ObjectIDFromHex(user.ID); err == nil {
		doc = append(doc, bson.E{Key: document.FieldID, Value: oid})
	}
	return append(doc,
		bson.E{Key: document.FieldName, Value: user.Name},
		bson.E{Key: document.FieldEmail, Value: user.Email},
		bson.E{Key: document.FieldDepartment, Value: user.Department},
		bson.E{Key: document.FieldRole, Value: user.Role},
		bson.E{Key: document.FieldActive, Value: user.Active},
		bson.E{Key: document.FieldCreatedAt, Value: entity.Timestamp(user.CreatedAt)},
		bson.E{Key: document.FieldUpdatedAt, Value: entity.Timestamp(user.UpdatedAt)},
	)
}

// FromBSON reads a raw users document. Missing fields take their zero value,
// except active which defaults to true. A field holding the wrong BSON type is an error.
func FromBSON(raw bson.M) (*entity.User, error) {
	if raw == nil {
		return nil, fmt.Errorf("nil document")
	}

	user := &entity.User{Active: true}
	var err error

	switch id := raw[document.FieldID].(type) {
	case primitive.ObjectID:
		user.ID = id.Hex()
	case string:
		user.ID = id
	case nil:
	default:
		return nil, fmt.Errorf("field %s: unexpected type %T", document.FieldID, id)
	}

	if user.Name, err = stringField(raw, document.FieldName); err != nil {
		return nil, err
	}
	if user.Email, err = stringField(raw, document.FieldEmail); err != nil {
		return nil, err
	}
	if user.Department, err = stringField(raw, document.FieldDepartment); err != nil {
		return nil, err
	}
	if user.Role, err = stringField(raw, document.FieldRole); err != nil {
		return nil, err
	}

	switch active := raw[document.FieldActive].(type) {
	case bool:
		user.Active = active
	case nil:
	default:
		return nil, fmt.Errorf("field %s: unexpected type %T", document.FieldActive, active)
	}

	if user.CreatedAt, err = timeField(raw, document.FieldCreatedAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = timeField(raw, document.FieldUpdatedAt); err != nil {
		return nil, err
	}
	return user, nil
}

// FromBSONSlice maps every document, failing on the first malformed one.
func FromBSONSlice(raws []bson.M) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(raws))
	for _, raw := range raws {
		user, err := FromBSON(raw)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func stringField(raw bson.M, key string) (string, error) {
	switch v := raw[key].(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("field %s: unexpected type %T", key, v)
	}
}

func timeField(raw bson.M, key string) (time.Time, error) {
	switch v := raw[key].(type) {
	case primitive.DateTime:
		return entity.Timestamp(v.Time()), nil
	case time.Time:
		return entity.Timestamp(v), nil
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("field %s: unexpected type %T", key, v)
	}
}
