package registry

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/openecomap/ecomap/pkg/constants"
	"github.com/openecomap/ecomap/pkg/errors"
)

// Load reads a snapshot file into a Registry.
//
// A missing file yields an empty registry: a first run legitimately starts
// from nothing. A present but unreadable or corrupt file is an error the
// caller must treat as fatal, since silently starting from empty would
// discard previously accumulated enrichment.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var entities []*Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	r := New()
	for _, e := range entities {
		if e == nil || e.ID == "" {
			continue
		}
		r.Set(e)
	}
	return r, nil
}

// Save writes the full registry to path as a whole-snapshot rewrite.
// The snapshot is staged in a temp file and renamed into place so a crash
// mid-write never leaves a truncated snapshot behind.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(r.List(), "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("chmod", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
