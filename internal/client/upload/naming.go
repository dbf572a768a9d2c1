package upload

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectNamer produces a storage object name for a file with extension ext.
type ObjectNamer func(ext string) string

// TimestampNamer names objects image_{unixMillis}_{random}{ext}.
func TimestampNamer(now func() time.Time) ObjectNamer {
	return func(ext string) string {
		random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		return fmt.Sprintf("image_%d_%s%s", now().UnixMilli(), random, ext)
	}
}

// StripCredentials removes query and fragment from a storage URL so no
// token material is persisted.
func StripCredentials(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid object url: %w", err)
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}
