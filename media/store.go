package media

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/littlesteps/littlestepsbackend/tenant"
)

// ErrNotFound is returned when no object exists under the given key.
var ErrNotFound = errors.New("media object not found")

// Object is a stored media object as returned to callers. ETag is a
// content fingerprint: identical bytes always produce the identical
// tag, so clients can use it for conditional requests.
type Object struct {
	Data        []byte
	ContentType string
	ETag        string
	Size        int64
}

// Store defines the interface for saving and retrieving media objects
// by their composite key.
type Store interface {
	// Put stores data under key. Writes are idempotent on key
	// collision (overwrite), though generated keys make collisions
	// practically impossible.
	Put(key ObjectKey, data []byte, contentType string) error
	// Get retrieves an object by exact key.
	Get(key ObjectKey) (*Object, error)
	// Delete removes an object; deleting a missing object is not an error.
	Delete(key ObjectKey) error
	// List returns all object keys stored under a family prefix.
	List(familyID tenant.ID) ([]string, error)
}

// LocalStorage implements Store on the local filesystem. The key's
// slash-separated form maps directly onto a directory layout under
// basePath, so the family prefix is also a physical boundary.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local filesystem store rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}
	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base storage directory '%s': %w", absBasePath, err)
	}
	log.Printf("media.store: Initialized LocalStorage at %s", absBasePath)
	return &LocalStorage{basePath: absBasePath}, nil
}

// fullPath resolves the absolute path for a key and guards against the
// result escaping the storage root.
func (ls *LocalStorage) fullPath(key ObjectKey) (string, error) {
	rel := filepath.FromSlash(key.String())
	fullPath := filepath.Clean(filepath.Join(ls.basePath, rel))
	if !strings.HasPrefix(fullPath, ls.basePath+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid media key: resolves outside storage root")
	}
	return fullPath, nil
}

func (ls *LocalStorage) Put(key ObjectKey, data []byte, contentType string) error {
	fullPath, err := ls.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create object directory for '%s': %w", key, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write object '%s': %w", key, err)
	}
	return nil
}

func (ls *LocalStorage) Get(key ObjectKey) (*Object, error) {
	fullPath, err := ls.fullPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read object '%s': %w", key, err)
	}

	sum := sha256.Sum256(data)
	return &Object{
		Data:        data,
		ContentType: contentTypeFor(key, data),
		ETag:        hex.EncodeToString(sum[:]),
		Size:        int64(len(data)),
	}, nil
}

func (ls *LocalStorage) Delete(key ObjectKey) error {
	fullPath, err := ls.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object '%s': %w", key, err)
	}
	return nil
}

// List walks a family's prefix and returns every stored key in slash form.
func (ls *LocalStorage) List(familyID tenant.ID) ([]string, error) {
	if familyID == "" {
		return nil, fmt.Errorf("family ID is required")
	}
	familyRoot := filepath.Join(ls.basePath, string(familyID))
	if !strings.HasPrefix(filepath.Clean(familyRoot), ls.basePath+string(os.PathSeparator)) {
		return nil, fmt.Errorf("invalid family ID %q", familyID)
	}

	var keys []string
	err := filepath.WalkDir(familyRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(ls.basePath, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects for family %s: %w", familyID, err)
	}
	return keys, nil
}

// contentTypeFor derives the content type from the key's extension,
// falling back to sniffing the bytes. The extension is recorded at
// upload time, so the original content type round-trips through it.
func contentTypeFor(key ObjectKey, data []byte) string {
	if ct := mime.TypeByExtension("." + key.Ext); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
