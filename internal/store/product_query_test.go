package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProductQueryEmpty(t *testing.T) {
	q := NewProductQuery()

	assert.Equal(t, bson.D{}, q.Filter())
	assert.Equal(t, DefaultSearchLimit, q.Limit())
	assert.Equal(t, DefaultSearchLimit, ProductQuery{}.Limit())
}

func TestProductQueryCombinesCriteria(t *testing.T) {
	q := NewProductQuery().
		WithCategory("plush").
		WithFeatured(false).
		WithSearch("dino").
		WithLimit(5)

	want := bson.D{
		{Key: "category", Value: "plush"},
		{Key: "featured", Value: false},
		{Key: "$or", Value: bson.A{
			bson.M{"title": bson.M{"$regex": "dino", "$options": "i"}},
			bson.M{"description": bson.M{"$regex": "dino", "$options": "i"}},
		}},
	}
	assert.Equal(t, want, q.Filter())
	assert.Equal(t, int64(5), q.Limit())
}

func TestProductQueryIgnoresEmptyValues(t *testing.T) {
	q := NewProductQuery().WithCategory("").WithSearch("").WithLimit(0).WithLimit(-4)

	assert.Equal(t, bson.D{}, q.Filter())
	assert.Equal(t, DefaultSearchLimit, q.Limit())
}

func TestProductQueryIsImmutable(t *testing.T) {
	base := NewProductQuery().WithCategory("toys")
	featured := base.WithFeatured(true)
	other := base.WithCategory("plush")

	assert.Equal(t, bson.D{{Key: "category", Value: "toys"}}, base.Filter())
	assert.Equal(t, bson.D{{Key: "category", Value: "toys"}, {Key: "featured", Value: true}}, featured.Filter())
	assert.Equal(t, bson.D{{Key: "category", Value: "plush"}}, other.Filter())
}

func TestProductQueryEscapesSearchText(t *testing.T) {
	filter := NewProductQuery().WithSearch("3+ (wood)").Filter()

	or := filter[0].Value.(bson.A)
	title := or[0].(bson.M)["title"].(bson.M)
	assert.Equal(t, `3\+ \(wood\)`, title["$regex"])
}
