package incremental

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
)

// LoadCache reads the metadata cache written by the previous build. A missing or
// unreadable cache is reported through the logger and yields an empty list, which
// forces a rebuild.
func LoadCache(path string, logger *slog.Logger) PackageMetadata {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No metadata cache found", logfields.Path(path))
		} else {
			logger.Warn("Metadata cache unreadable, treating as empty", logfields.Path(path), logfields.Error(err))
		}
		return PackageMetadata{}
	}
	var cached PackageMetadata
	if err := json.Unmarshal(data, &cached); err != nil {
		cacheErr := errors.WrapError(err, errors.CategoryCache, "metadata cache is not valid JSON").
			Warning().
			WithContext(logfields.KeyFile, path).
			Build()
		logger.Warn("Metadata cache unreadable, treating as empty", logfields.Path(path), logfields.Error(cacheErr))
		return PackageMetadata{}
	}
	return cached
}

// SaveCache writes the metadata atomically: a temp file next to path is renamed over it.
func SaveCache(path string, metadata PackageMetadata) error {
	if metadata == nil {
		metadata = PackageMetadata{}
	}
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode metadata cache").Build()
	}
	return WriteFileAtomic(path, append(data, '\n'))
}

// WriteFileAtomic writes data to a temp file in the target directory and renames it into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create directory").
			Fatal().
			WithContext(logfields.KeyFile, dir).
			Build()
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create temp file").
			Fatal().
			WithContext(logfields.KeyFile, path).
			Build()
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").Fatal().WithContext(logfields.KeyFile, path).Build()
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").Fatal().WithContext(logfields.KeyFile, path).Build()
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to set file mode").Fatal().WithContext(logfields.KeyFile, path).Build()
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to replace file").Fatal().WithContext(logfields.KeyFile, path).Build()
	}
	return nil
}
