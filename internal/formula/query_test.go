package formula

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCategoryFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, categoryFilter(""))
	assert.Equal(t, bson.M{"category": "plasma"}, categoryFilter("plasma"))
}

func TestTextFilter(t *testing.T) {
	assert.Equal(t, bson.M{"$text": bson.M{"$search": "wave"}}, textFilter("wave"))
}

func TestSetUpdate(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	fields := bson.M{"description": "updated", "formula_id": "hacked", "_id": "hacked"}

	update := setUpdate(fields, now)

	set, ok := update["$set"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, "updated", set["description"])
	assert.Equal(t, now, set["updated_at"])
	assert.NotContains(t, set, "formula_id")
	assert.NotContains(t, set, "_id")

	// caller's map stays untouched
	assert.NotContains(t, fields, "updated_at")
}

func TestTagUpdates(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	tags := []string{"physics", "energy"}

	add := addTagsUpdate(tags, now)
	assert.Equal(t, bson.M{"tags": bson.M{"$each": tags}}, add["$addToSet"])
	assert.Equal(t, bson.M{"updated_at": now}, add["$set"])

	remove := removeTagsUpdate(tags, now)
	assert.Equal(t, bson.M{"tags": bson.M{"$in": tags}}, remove["$pull"])
	assert.Equal(t, bson.M{"updated_at": now}, remove["$set"])
}
