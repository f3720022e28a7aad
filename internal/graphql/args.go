// Package gql holds the argument plumbing shared by the dashboard and
// storefront schemas: flat GraphQL argument maps are converted into typed
// service requests, preserving the omitted / explicit-null distinction
// update mutations rely on.
package gql

import (
	"time"

	"github.com/smallbiznis/mall/pkg/db/pagination"
	"github.com/smallbiznis/mall/pkg/optional"
)

func String(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func StringPtr(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func IntPtr(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func FloatPtr(args map[string]interface{}, key string) *float64 {
	switch v := args[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func BoolPtr(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

func TimePtr(args map[string]interface{}, key string) *time.Time {
	if v, ok := args[key].(time.Time); ok {
		return &v
	}
	return nil
}

func StringList(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func MapArg(args map[string]interface{}, key string) map[string]any {
	if v, ok := args[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

// The Optional* helpers keep the three-way distinction: key absent, key
// present with null, key present with a value.

func OptionalString(args map[string]interface{}, key string) optional.Value[string] {
	raw, present := args[key]
	if !present {
		return optional.Value[string]{}
	}
	if s, ok := raw.(string); ok {
		return optional.Of(s)
	}
	return optional.Null[string]()
}

func OptionalInt(args map[string]interface{}, key string) optional.Value[int] {
	raw, present := args[key]
	if !present {
		return optional.Value[int]{}
	}
	if v, ok := raw.(int); ok {
		return optional.Of(v)
	}
	return optional.Null[int]()
}

func OptionalFloat(args map[string]interface{}, key string) optional.Value[float64] {
	raw, present := args[key]
	if !present {
		return optional.Value[float64]{}
	}
	switch v := raw.(type) {
	case float64:
		return optional.Of(v)
	case int:
		return optional.Of(float64(v))
	}
	return optional.Null[float64]()
}

func OptionalBool(args map[string]interface{}, key string) optional.Value[bool] {
	raw, present := args[key]
	if !present {
		return optional.Value[bool]{}
	}
	if v, ok := raw.(bool); ok {
		return optional.Of(v)
	}
	return optional.Null[bool]()
}

func OptionalTime(args map[string]interface{}, key string) optional.Value[time.Time] {
	raw, present := args[key]
	if !present {
		return optional.Value[time.Time]{}
	}
	if v, ok := raw.(time.Time); ok {
		return optional.Of(v)
	}
	return optional.Null[time.Time]()
}

func OptionalStringList(args map[string]interface{}, key string) optional.Value[[]string] {
	raw, present := args[key]
	if !present {
		return optional.Value[[]string]{}
	}
	if _, ok := raw.([]interface{}); ok {
		return optional.Of(StringList(args, key))
	}
	return optional.Null[[]string]()
}

func OptionalMap(args map[string]interface{}, key string) optional.Value[map[string]any] {
	raw, present := args[key]
	if !present {
		return optional.Value[map[string]any]{}
	}
	if v, ok := raw.(map[string]interface{}); ok {
		return optional.Of(map[string]any(v))
	}
	return optional.Null[map[string]any]()
}

func Pagination(args map[string]interface{}) pagination.Pagination {
	p := pagination.Pagination{}
	if v, ok := args["pageNumber"].(int); ok {
		p.PageNumber = v
	}
	if v, ok := args["pageSize"].(int); ok {
		p.PageSize = v
	}
	return p.Normalize()
}

func OrderBy(args map[string]interface{}) []string {
	return StringList(args, "orderBy")
}
