package proto

import "github.com/nspcc-dev/neo-go/pkg/interop/native/std"

// CheckFieldType checks whether field with given number has expected type and
// returns non-empty exception if not.
func CheckFieldType(num, got, exp int) string {
	if got != exp {
		return "wrong type of field #" + std.Itoa10(num) + ": expected " + StringifyFieldType(exp) + ", got " + StringifyFieldType(got)
	}

	return ""
}
