// Package resources exposes typed clients for every entity the console
// administers. Each client is thin glue over the authenticated HTTP
// client: filters become query parameters, envelopes become structs.
package resources

import (
	"net/url"
	"strconv"
)

func baseQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setBool(q url.Values, key string, value *bool) {
	if value != nil {
		q.Set(key, strconv.FormatBool(*value))
	}
}

func setSort(q url.Values, sortBy, sortOrder string) {
	setIf(q, "sort_by", sortBy)
	setIf(q, "sort_order", sortOrder)
}
