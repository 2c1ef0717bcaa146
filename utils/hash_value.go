package utils

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"time"
)

// HashValue computes a deterministic hash for a value stored in an index
// search key. Only the types a schema field can actually hold are
// supported; anything else is an error.
func HashValue(val any) (uint32, error) {
	var s string
	switch v := val.(type) {
	case int16:
		s = strconv.FormatInt(int64(v), 10)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case string:
		s = v
	case bool:
		s = strconv.FormatBool(v)
	case time.Time:
		s = v.UTC().Format(time.RFC3339Nano)
	case nil:
		return 0, fmt.Errorf("cannot hash nil value")
	default:
		return 0, fmt.Errorf("unsupported type for hashing: %T", val)
	}

	h := fnv.New32a()
	if _, err := h.Write([]byte(s)); err != nil {
		return 0, err
	}
	return h.Sum32(), nil
}
