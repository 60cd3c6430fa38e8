package tasklist

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a random UUID. If the secure random source is unavailable
// it falls back to "<unix-millis>-<base36 random>", which is unique enough
// for a single user's list but carries no global guarantee.
func NewID() string {
	if u, err := uuid.NewRandom(); err == nil {
		return u.String()
	}
	return fallbackID(time.Now())
}

func fallbackID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.FormatUint(rand.Uint64(), 36)
}
