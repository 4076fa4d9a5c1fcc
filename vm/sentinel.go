package vm

import "github.com/rookscript/rookscript/value"

// sentinelToken is the unique identity PUSH_SENTINEL pushes. Value has no
// dedicated sentinel Kind (spec.md section 3 enumerates none), so the marker
// rides as an Object Value whose reference is this package-private pointer;
// nothing outside this file can construct or compare against it.
var sentinelToken = &struct{}{}

func pushSentinel() value.Value { return value.NewObject(sentinelToken) }

func isSentinel(v value.Value) bool {
	return v.Kind() == value.Object && v.ObjectRef() == sentinelToken
}
