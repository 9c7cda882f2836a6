package formula

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Filter and update documents are built by pure functions so the query
// shapes can be tested without a running server.

func idFilter(formulaID string) bson.M {
	return bson.M{"formula_id": formulaID}
}

func categoryFilter(category string) bson.M {
	if category == "" {
		return bson.M{}
	}
	return bson.M{"category": category}
}

func textFilter(term string) bson.M {
	return bson.M{"$text": bson.M{"$search": term}}
}

func tagFilter(tag string) bson.M {
	return bson.M{"tags": tag}
}

// setUpdate copies fields and stamps updated_at, leaving the caller's map
// untouched.
func setUpdate(fields bson.M, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	for k, v := range fields {
		if k == "formula_id" || k == "_id" {
			continue // identifiers are immutable
		}
		set[k] = v
	}
	return bson.M{"$set": set}
}

func addTagsUpdate(tags []string, now time.Time) bson.M {
	return bson.M{
		"$addToSet": bson.M{"tags": bson.M{"$each": tags}},
		"$set":      bson.M{"updated_at": now},
	}
}

func removeTagsUpdate(tags []string, now time.Time) bson.M {
	return bson.M{
		"$pull": bson.M{"tags": bson.M{"$in": tags}},
		"$set":  bson.M{"updated_at": now},
	}
}
