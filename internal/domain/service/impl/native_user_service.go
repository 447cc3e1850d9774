package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	daomongo "github.com/jrjohn/docstore-users/internal/domain/dao/mongo"
	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/document"
	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/mapper"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
	"github.com/jrjohn/docstore-users/internal/domain/service"
)

// NativeUserService talks to the collection directly with raw bson documents,
// filter documents and an aggregation pipeline.
type NativeUserService struct {
	db         *mongo.Database
	collection *mongo.Collection
	inst       *daomongo.Instrumenter
	logger     *zap.Logger
	now        func() time.Time
}

var (
	_ service.UserDataService        = (*NativeUserService)(nil)
	_ service.DepartmentStatsService = (*NativeUserService)(nil)
)

// NewNativeUserService creates the driver-level service over the named collection.
// recorder may be nil.
func NewNativeUserService(
	db *mongo.Database,
	collectionName string,
	logger *zap.Logger,
	recorder daomongo.OperationRecorder,
) *NativeUserService {
	if collectionName == "" {
		collectionName = document.UserDocument{}.CollectionName()
	}
	logger = logger.With(zap.String("variant", service.VariantNative))
	logger.Info("Native user service initialised",
		zap.String("database", db.Name()),
		zap.String("collection", collectionName),
	)
	return &NativeUserService{
		db:         db,
		collection: db.Collection(collectionName),
		inst:       daomongo.NewInstrumenter(service.VariantNative, collectionName, recorder),
		logger:     logger,
		now:        time.Now,
	}
}

func (s *NativeUserService) TestConnection(ctx context.Context) (string, error) {
	var (
		names []string
		ping  bson.M
		users int64
	)
	err := s.inst.Observe(ctx, "testConnection", func(ctx context.Context) error {
		var err error
		if names, err = s.db.ListCollectionNames(ctx, bson.D{}); err != nil {
			return err
		}
		if err = s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Decode(&ping); err != nil {
			return err
		}
		users, err = s.collection.CountDocuments(ctx, bson.D{})
		return err
	})
	if err != nil {
		return "", translate(s.logger, "testConnection", s.db.Name(), err)
	}

	msg := fmt.Sprintf("Native driver connection OK | DB: %s | Collections: %d | Users: %d | Ping: %v",
		s.db.Name(), len(names), users, ping["ok"])
	s.logger.Info(msg)
	return msg, nil
}

func (s *NativeUserService) CreateUser(ctx context.Context, name, email, department, role string) (*entity.User, error) {
	user := entity.NewUser(name, email, department, role, s.now())

	var res *mongo.InsertOneResult
	err := s.inst.Observe(ctx, "insert", func(ctx context.Context) error {
		var err error
		res, err = s.collection.InsertOne(ctx, mapper.ToBSON(user))
		return err
	})
	if err != nil {
		return nil, translate(s.logger, "createUser", email, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, translate(s.logger, "createUser", email, fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
	user.ID = oid.Hex()
	s.logger.Info("User created", zap.String("id", user.ID))
	return user, nil
}

func (s *NativeUserService) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := daomongo.ParseObjectID(id)
	if err != nil {
		return nil, translate(s.logger, "findUserById", id, err)
	}

	var raw bson.M
	err = s.inst.Observe(ctx, "findOne", func(ctx context.Context) error {
		return s.collection.FindOne(ctx, daomongo.ByID(oid)).Decode(&raw)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(s.logger, "findUserById", id)
	}
	if err != nil {
		return nil, translate(s.logger, "findUserById", id, err)
	}
	return s.decode("findUserById", raw)
}

// UpdateUser runs one findOneAndUpdate with an update pipeline so the
// updatedAt bump is computed against the stored value.
func (s *NativeUserService) UpdateUser(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	oid, err := daomongo.ParseObjectID(id)
	if err != nil {
		return nil, translate(s.logger, "updateUser", id, err)
	}

	update := daomongo.TouchPipeline(patchSet(patch), entity.Timestamp(s.now()))
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var raw bson.M
	err = s.inst.Observe(ctx, "findOneAndUpdate", func(ctx context.Context) error {
		return s.collection.FindOneAndUpdate(ctx, daomongo.ByID(oid), update, opts).Decode(&raw)
	})
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, notFound(s.logger, "updateUser", id)
	case daomongo.IsDuplicateKey(err):
		return nil, translate(s.logger, "updateUser", emailOf(patch.Email), err)
	case err != nil:
		return nil, translate(s.logger, "updateUser", id, err)
	}

	user, err := s.decode("updateUser", raw)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User updated", zap.String("id", id))
	return user, nil
}

func (s *NativeUserService) DeleteUser(ctx context.Context, id string) (bool, error) {
	oid, err := daomongo.ParseObjectID(id)
	if err != nil {
		return false, translate(s.logger, "deleteUser", id, err)
	}

	var res *mongo.DeleteResult
	err = s.inst.Observe(ctx, "delete", func(ctx context.Context) error {
		var err error
		res, err = s.collection.DeleteOne(ctx, daomongo.ByID(oid))
		return err
	})
	if err != nil {
		return false, translate(s.logger, "deleteUser", id, err)
	}
	if res.DeletedCount == 0 {
		s.logger.Warn("No user to delete", zap.String("id", id))
		return false, nil
	}
	s.logger.Info("User deleted", zap.String("id", id))
	return true, nil
}

func (s *NativeUserService) FindAll(ctx context.Context) ([]*entity.User, error) {
	return s.find(ctx, "findAll", bson.D{})
}

func (s *NativeUserService) FindUsersByDepartment(ctx context.Context, department string) ([]*entity.User, error) {
	return s.find(ctx, "findUsersByDepartment", daomongo.ByDepartment(department))
}

func (s *NativeUserService) SearchUsers(ctx context.Context, query entity.UserQuery) ([]*entity.User, error) {
	q := query.Normalize()
	return s.find(ctx, "searchUsers", daomongo.FilterFromQuery(q), daomongo.FindOptionsFromQuery(q))
}

func (s *NativeUserService) CountByDepartment(ctx context.Context, department string) (int64, error) {
	var n int64
	err := s.inst.Observe(ctx, "count", func(ctx context.Context) error {
		var err error
		n, err = s.collection.CountDocuments(ctx, daomongo.ByDepartment(department))
		return err
	})
	if err != nil {
		return 0, translate(s.logger, "countByDepartment", department, err)
	}
	return n, nil
}

// GetStatsByDepartment runs the grouping server-side; the collection is never
// pulled into memory.
func (s *NativeUserService) GetStatsByDepartment(ctx context.Context) ([]entity.DepartmentStats, error) {
	var rows []document.DepartmentStatsDocument
	err := s.inst.Observe(ctx, "aggregate", func(ctx context.Context) error {
		cursor, err := s.collection.Aggregate(ctx, daomongo.DepartmentStatsPipeline())
		if err != nil {
			return err
		}
		return cursor.All(ctx, &rows)
	})
	if err != nil {
		return nil, translate(s.logger, "getStatsByDepartment", "", err)
	}

	stats := mapper.StatsToEntities(rows)
	s.logger.Debug("Department stats computed", zap.Int("departments", len(stats)))
	return stats, nil
}

func (s *NativeUserService) find(ctx context.Context, op string, filter bson.D, opts ...*options.FindOptions) ([]*entity.User, error) {
	var raws []bson.M
	err := s.inst.Observe(ctx, "find", func(ctx context.Context) error {
		cursor, err := s.collection.Find(ctx, filter, opts...)
		if err != nil {
			return err
		}
		return cursor.All(ctx, &raws)
	})
	if err != nil {
		return nil, translate(s.logger, op, "", err)
	}

	users, err := mapper.FromBSONSlice(raws)
	if err != nil {
		return nil, translate(s.logger, op, "", err)
	}
	return users, nil
}

func (s *NativeUserService) decode(op string, raw bson.M) (*entity.User, error) {
	user, err := mapper.FromBSON(raw)
	if err != nil {
		return nil, translate(s.logger, op, fmt.Sprint(raw[document.FieldID]), err)
	}
	return user, nil
}

// patchSet lists the fields a patch changes, in storage order.
func patchSet(p entity.UserPatch) bson.D {
	set := bson.D{}
	if p.Name != nil {
		set = append(set, bson.E{Key: document.FieldName, Value: *p.Name})
	}
	if p.Email != nil {
		set = append(set, bson.E{Key: document.FieldEmail, Value: *p.Email})
	}
	if p.Department != nil {
		set = append(set, bson.E{Key: document.FieldDepartment, Value: *p.Department})
	}
	if p.Role != nil {
		set = append(set, bson.E{Key: document.FieldRole, Value: *p.Role})
	}
	if p.Active != nil {
		set = append(set, bson.E{Key: document.FieldActive, Value: *p.Active})
	}
	return set
}
