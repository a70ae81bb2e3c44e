// Package configutil reads json5 configuration files with an optional
// git-ignored `.local` layer on top.
package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// LocalPath is the override layer of `path`, config.json5 -> config.local.json5.
func LocalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// decodeFile unmarshals `path` into `out`, found is false when the file does
// not exist or is empty.
func decodeFile(path string, out any) (found bool, err error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(strings.TrimSpace(string(contents))) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// Read decodes `path` and merges LocalPath(path) over it, non-zero fields of
// the local layer win. It returns os.ErrNotExist (with the zero T) when
// neither layer exists.
func Read[T any](path string) (T, error) {
	var out T

	foundBase, err := decodeFile(path, &out)
	if err != nil {
		return out, err
	}

	local := LocalPath(path)
	var override T
	foundLocal, err := decodeFile(local, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, fmt.Errorf("merge %s: %w", local, err)
		}
		slog.Debug("applied local config layer", "path", local)
	}

	if !foundBase && !foundLocal {
		return out, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	return out, nil
}

// ReadUpward looks for `name` in the working directory and each of its
// parents, and Reads the first one that exists.
func ReadUpward[T any](name string) (T, error) {
	var zero T

	dir, err := os.Getwd()
	if err != nil {
		return zero, err
	}
	for {
		out, err := Read[T](filepath.Join(dir, name))
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return zero, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return zero, fmt.Errorf("%s: %w", name, os.ErrNotExist)
		}
		dir = parent
	}
}
