// Package manifest reads the canonical card version from a package manifest.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bnema/cardver/internal/domain/entity"
	"github.com/bnema/cardver/internal/logging"
)

// versionKey is the manifest field holding the canonical version.
// The lookup is case-sensitive: "Version" is a different field.
const versionKey = "version"

// Reader implements port.ManifestReader. package.json, TOML and YAML
// manifests are accepted based on their extension.
type Reader struct{}

// NewReader creates a new manifest reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadVersion returns the manifest's version field rendered as a string.
func (r *Reader) ReadVersion(ctx context.Context, path string) (string, error) {
	log := logging.FromContext(ctx)

	fields, err := decodeFile(path)
	if err != nil {
		return "", &entity.CheckError{
			Kind:   entity.KindManifestRead,
			Source: entity.VersionSourceManifest,
			Path:   path,
			Err:    err,
		}
	}

	raw, ok := fields[versionKey]
	if !ok {
		return "", &entity.CheckError{
			Kind:   entity.KindManifestFieldMissing,
			Source: entity.VersionSourceManifest,
			Path:   path,
		}
	}

	switch val := raw.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return "", &entity.CheckError{
				Kind:   entity.KindManifestFieldMissing,
				Source: entity.VersionSourceManifest,
				Path:   path,
				Err:    fmt.Errorf("version field is empty"),
			}
		}
		log.Debug().Str("path", path).Str("version", val).Msg("manifest version read")
		return val, nil
	case nil:
		return "", &entity.CheckError{
			Kind:   entity.KindManifestFieldMissing,
			Source: entity.VersionSourceManifest,
			Path:   path,
		}
	case map[string]any, []any:
		return "", &entity.CheckError{
			Kind:   entity.KindManifestRead,
			Source: entity.VersionSourceManifest,
			Path:   path,
			Err:    fmt.Errorf("version field is a %T, want a string", raw),
		}
	default:
		// Numbers and booleans are surfaced as text so format validation reports them.
		return fmt.Sprint(val), nil
	}
}

// decodeFile parses the manifest into its top-level fields, keeping key case.
func decodeFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "", "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&fields)
	case "toml":
		err = toml.Unmarshal(data, &fields)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &fields)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return fields, nil
}
