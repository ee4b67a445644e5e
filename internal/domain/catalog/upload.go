package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

// Upload is an attachment payload bound for a video slot.
type Upload struct {
	// Name is the client-supplied file name; only its extension survives
	// into the derived storage name.
	Name    string
	Content []byte
}

// StorageName derives the collision-resistant blob name for this payload:
// the hex SHA-256 of the content (truncated) plus the original extension.
// Deterministic for identical content, which makes key collisions between
// unrelated writes practically impossible once namespaced by entity ID.
func (u *Upload) StorageName() string {
	if u == nil {
		return ""
	}
	sum := sha256.Sum256(u.Content)
	name := hex.EncodeToString(sum[:])[:40]
	if ext := strings.ToLower(path.Ext(u.Name)); ext != "" && ext != "." {
		name += ext
	}
	return name
}

// BlobKey namespaces a derived storage name under its owning entity.
func BlobKey(entityID, storageName string) string {
	return entityID + "/" + storageName
}
