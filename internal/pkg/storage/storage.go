// Package storage stores uploaded objects (landing page images) in a bucket
// and builds the public URL they are served from.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/shandysiswandi/talentflow/internal/pkg/strcase"
)

// ErrNotFound is returned when the object does not exist.
var ErrNotFound = errors.New("storage: object not found")

// Storage is an object store bound to a single bucket.
type Storage interface {
	io.Closer

	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Object, error)
	Delete(ctx context.Context, key string) error
	// URL returns where key is publicly served.
	URL(key string) string
}

// PutOptions configures an upload.
type PutOptions struct {
	// Size is the content length, or -1 when unknown.
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// Object describes a stored object.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// ObjectKey builds "<prefix>/<id>-<kebab name><ext>" from an uploaded file name.
func ObjectKey(prefix, id, filename string) string {
	filename = path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(path.Ext(filename))
	name := strcase.ToKebab(strings.TrimSuffix(filename, path.Ext(filename)))

	base := id
	if name != "" {
		base += "-" + name
	}

	return path.Join(prefix, base+ext)
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
