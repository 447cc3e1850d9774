package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/document"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// ByID matches the document with the given ObjectID.
func ByID(id primitive.ObjectID) bson.D {
	return bson.D{{Key: document.FieldID, Value: id}}
}

// ByDepartment matches an exact, case-sensitive department.
func ByDepartment(department string) bson.D {
	return bson.D{{Key: document.FieldDepartment, Value: department}}
}

// ByActive matches the active flag.
func ByActive(active bool) bson.D {
	return bson.D{{Key: document.FieldActive, Value: active}}
}

// NameContains matches names containing fragment, ignoring case.
// The fragment is escaped so it is matched literally.
func NameContains(fragment string) bson.D {
	return bson.D{{Key: document.FieldName, Value: primitive.Regex{
		Pattern: regexp.QuoteMeta(fragment),
		Options: "i",
	}}}
}

// And combines clauses. Empty clauses are dropped; a single clause is
// returned as is and no clauses match everything.
func And(clauses ...bson.D) bson.D {
	kept := make(bson.A, 0, len(clauses))
	for _, c := range clauses {
		if len(c) > 0 {
			kept = append(kept, c)
		}
	}
	switch len(kept) {
	case 0:
		return bson.D{}
	case 1:
		return kept[0].(bson.D)
	default:
		return bson.D{{Key: "$and", Value: kept}}
	}
}

// FilterFromQuery builds the search filter. Unset criteria are left out.
func FilterFromQuery(q entity.UserQuery) bson.D {
	var clauses []bson.D
	if q.Name != nil {
		clauses = append(clauses, NameContains(*q.Name))
	}
	if q.Department != nil {
		clauses = append(clauses, ByDepartment(*q.Department))
	}
	if q.Active != nil {
		clauses = append(clauses, ByActive(*q.Active))
	}
	return And(clauses...)
}

// FindOptionsFromQuery applies sort, skip and limit for a normalized query.
// Sortable entity fields share their storage names; _id breaks ties so
// pages never overlap.
func FindOptionsFromQuery(q entity.UserQuery) *options.FindOptions {
	direction := 1
	if q.SortDirection == entity.SortDesc {
		direction = -1
	}
	sort := bson.D{{Key: q.SortBy, Value: direction}}
	if q.SortBy != document.FieldID {
		sort = append(sort, bson.E{Key: document.FieldID, Value: direction})
	}
	return options.Find().
		SetSort(sort).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Size))
}
