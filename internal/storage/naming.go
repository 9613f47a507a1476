package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Namer derives object keys for uploaded images.
type Namer struct {
	now   func() time.Time
	newID func() string
}

func NewNamer() *Namer {
	return &Namer{now: time.Now, newID: uuid.NewString}
}

// DeriveKey returns "<unix-ms>-<uuid>.<ext>" where ext is everything after the
// last dot of the file's base name. Names without an extension produce
// "<unix-ms>-<uuid>" with no trailing dot.
func (n *Namer) DeriveKey(originalFilename string) string {
	key := fmt.Sprintf("%d-%s", n.now().UnixMilli(), n.newID())
	if ext := Extension(originalFilename); ext != "" {
		key += "." + ext
	}
	return key
}

// Extension returns the substring after the last "." of the base name of
// filename, or "" if there is none.
func Extension(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	i := strings.LastIndex(base, ".")
	if i < 0 || base == "." || base == ".." {
		return ""
	}
	return base[i+1:]
}
