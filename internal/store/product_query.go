package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultSearchLimit caps product searches that do not ask for a limit.
// A negative limit never reaches the query: the search request rejects it
// with 422 instead of passing it through as a single-batch cap.
const DefaultSearchLimit int64 = 20

// ProductQuery is an immutable set of product search criteria. The With
// methods return modified copies.
type ProductQuery struct {
	category *string
	featured *bool
	search   *string
	limit    int64
}

func NewProductQuery() ProductQuery {
	return ProductQuery{limit: DefaultSearchLimit}
}

// WithCategory filters on an exact, case-sensitive category. Empty is ignored.
func (q ProductQuery) WithCategory(category string) ProductQuery {
	if category == "" {
		return q
	}
	q.category = &category
	return q
}

func (q ProductQuery) WithFeatured(featured bool) ProductQuery {
	q.featured = &featured
	return q
}

// WithSearch matches text as a case-insensitive substring of the title or
// the description. Empty is ignored.
func (q ProductQuery) WithSearch(text string) ProductQuery {
	if text == "" {
		return q
	}
	q.search = &text
	return q
}

// WithLimit sets the result cap; zero or less keeps DefaultSearchLimit.
func (q ProductQuery) WithLimit(limit int64) ProductQuery {
	if limit <= 0 {
		return q
	}
	q.limit = limit
	return q
}

func (q ProductQuery) Limit() int64 {
	if q.limit <= 0 {
		return DefaultSearchLimit
	}
	return q.limit
}

// Filter builds the filter document. Criteria are ANDed; the search text
// expands to an $or over title and description.
func (q ProductQuery) Filter() bson.D {
	filter := bson.D{}

	if q.category != nil {
		filter = append(filter, bson.E{Key: "category", Value: *q.category})
	}

	if q.featured != nil {
		filter = append(filter, bson.E{Key: "featured", Value: *q.featured})
	}

	if q.search != nil {
		pattern := regexp.QuoteMeta(*q.search)
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}})
	}

	return filter
}
