package service

import (
	"time"

	"github.com/smallbiznis/mall/pkg/optional"
)

func ofString(v string) optional.Value[string] { return optional.Of(v) }
func nullString() optional.Value[string]       { return optional.Null[string]() }
func ofBool(v bool) optional.Value[bool]       { return optional.Of(v) }
func ofFloat(v float64) optional.Value[float64] {
	return optional.Of(v)
}
func ofTime(v time.Time) optional.Value[time.Time] { return optional.Of(v) }
