package task

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// canonicalize returns a canonical JSON representation of the item's
// scorer-visible text with stable key ordering for consistent hashing.
func canonicalize(item *WorkItem) ([]byte, error) {
	// json.Marshal sorts map keys, which gives the stable ordering.
	data := map[string]string{
		"id":          item.ID.String(),
		"title":       item.Title,
		"description": item.Description,
		"details":     item.Details,
	}
	return json.Marshal(data)
}

// Fingerprint computes the blake3 hash of the item's canonicalized text.
// Complexity report entries carry this hash so stale analysis can be
// detected after an item is edited.
func Fingerprint(item *WorkItem) string {
	canonical, err := canonicalize(item)
	if err != nil {
		// map[string]string cannot fail to marshal
		return ""
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return ""
	}

	return fmt.Sprintf("%x", hasher.Sum(nil))
}
