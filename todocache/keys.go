package todocache

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// Key joins the segments and appends a short digest of the joined form. The
// digest keeps keys valid for backends that reject unusual characters and
// makes accidental collisions with foreign keys in a shared backend unlikely.
func Key(segments ...string) string {
	joined := strings.Join(segments, KeySeparator)
	return joined + KeySeparator + fmt.Sprintf("%08x", xxhash.Sum64String(joined)&0xffffffff)
}

// CollectionKey is the fixed logical key for the "all records" snapshot. It is
// the only key the service populates; every write invalidates it.
func CollectionKey() string {
	return Key("todos", "all")
}
