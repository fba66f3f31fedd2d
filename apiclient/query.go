package apiclient

import (
	"net/url"
	"strconv"
)

// Query builds URL parameters, skipping unset values the way the API expects optional
// parameters to be omitted rather than sent empty.
type Query struct {
	values url.Values
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

func (q *Query) String(key, value string) *Query {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

// Int adds key when value is non-nil
func (q *Query) Int(key string, value *int) *Query {
	if value != nil {
		q.values.Set(key, strconv.Itoa(*value))
	}
	return q
}

// PositiveInt adds key when value is greater than zero
func (q *Query) PositiveInt(key string, value int) *Query {
	if value > 0 {
		q.values.Set(key, strconv.Itoa(value))
	}
	return q
}

func (q *Query) Values() url.Values {
	return q.values
}
