package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/document"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// DepartmentStatsPipeline groups users per department, counting all and
// active users, largest department first. Null, missing and empty
// departments share the entity.UnknownDepartment group.
func DepartmentStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: departmentKey()},
			{Key: "totalUsers", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "activeUsers", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$eq", Value: bson.A{"$" + document.FieldActive, true}}},
					1,
					0,
				}},
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "totalUsers", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}
}

// departmentKey evaluates to the department, or the unknown sentinel when it is
// null, missing or "".
func departmentKey() bson.D {
	field := "$" + document.FieldDepartment
	return bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{field, ""}}},
			"",
		}}},
		entity.UnknownDepartment,
		field,
	}}}
}

// TouchPipeline is the update pipeline used by the native update. It sets the
// given fields and moves updatedAt to max(now, updatedAt + 1ms) so the stored
// value always increases. Values are wrapped in $literal so strings starting
// with "$" are not read as field paths.
func TouchPipeline(set bson.D, now time.Time) mongo.Pipeline {
	stage := make(bson.D, 0, len(set)+1)
	for _, e := range set {
		stage = append(stage, bson.E{Key: e.Key, Value: bson.D{{Key: "$literal", Value: e.Value}}})
	}
	stage = append(stage, bson.E{Key: document.FieldUpdatedAt, Value: bson.D{{Key: "$max", Value: bson.A{
		now,
		bson.D{{Key: "$add", Value: bson.A{"$" + document.FieldUpdatedAt, 1}}},
	}}}})
	return mongo.Pipeline{{{Key: "$set", Value: stage}}}
}
