// Package store defines the synchronous key-value slot storage the poll
// store persists its snapshot into, and opens the available backends.
package store

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/poll/internal/store/jsonstore"
	"github.com/idilsaglam/poll/internal/store/memstore"
	"github.com/idilsaglam/poll/internal/store/sqlstore"
)

// Backend reads and overwrites whole string slots addressed by key.
// Read reports ok=false when the slot has never been written.
type Backend interface {
	Read(key string) (value string, ok bool, err error)
	Write(key, value string) error
}

// Handle is a Backend that holds resources until closed.
type Handle interface {
	Backend
	Close() error
}

// Kind names a backend implementation.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// Kinds lists the accepted backend names, default first.
var Kinds = []Kind{KindFile, KindSQLite, KindMemory}

// ParseKind maps a user-supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q (want file, sqlite or memory)", s)
}

// Open returns a backend of the given kind rooted at dir.
// dir is ignored by the memory backend.
func Open(kind Kind, dir string) (Handle, error) {
	switch kind {
	case KindFile:
		return jsonstore.Open(dir)
	case KindSQLite:
		return sqlstore.Open(dir)
	case KindMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", kind)
}
