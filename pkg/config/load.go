package config

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	api "tapcsv/pkg/api/schema"
	"tapcsv/pkg/streams"
)

//go:embed settings.schema.json
var settingsSchema string

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("settings.schema.json", settingsSchema)
})

// SettingsSchema returns the JSON schema of the settings document.
func SettingsSchema() json.RawMessage {
	return json.RawMessage(settingsSchema)
}

// Load reads the settings files in order and merges their top-level keys,
// later files winning. Files ending in .yaml or .yml are YAML, anything else
// is JSON.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		return nil, &ConfigurationError{Err: ErrNoConfig}
	}
	merged := make(map[string]any)
	for _, path := range paths {
		doc, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		settings, ok := doc.(map[string]any)
		if !ok {
			return nil, Errorf(path, "%w: top level must be an object", ErrSchemaViolation)
		}
		maps.Copy(merged, settings)
	}
	return FromMap(merged)
}

// FromMap builds a Config from decoded settings. csv_files_definition is
// expanded into files before validation.
func FromMap(settings map[string]any) (*Config, error) {
	settings = maps.Clone(settings)
	if def, ok := settings["csv_files_definition"].(string); ok && def != "" {
		if err := expandDefinition(settings, def); err != nil {
			return nil, err
		}
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, Errorf("settings", "%w: %w", ErrSchemaViolation, err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, Errorf("settings", "%w: %w", ErrSchemaViolation, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: err}
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, Errorf(path, "unable to parse: %w", err)
	}
	return doc, nil
}

func expandDefinition(settings map[string]any, path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	entries, ok := doc.([]any)
	if !ok {
		return Errorf(path, "%w: csv_files_definition must hold an array of file entries", ErrSchemaViolation)
	}

	var files []any
	switch v := settings["files"].(type) {
	case nil:
	case []any:
		files = append(files, v...)
	default:
		return Errorf("files", "%w: must be an array", ErrSchemaViolation)
	}
	settings["files"] = append(files, entries...)
	return nil
}

func validate(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("unable to compile settings schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Errorf("settings", "%w: %w", ErrSchemaViolation, err)
	}
	if err := schema.Validate(doc); err != nil {
		return Errorf("settings", "%w: %w", ErrSchemaViolation, err)
	}
	return nil
}

func (c *Config) normalize() error {
	if len(c.Files) == 0 {
		return &ConfigurationError{Source: "files", Err: ErrNoFiles}
	}
	seen := make(map[string]int, len(c.Files))
	for i := range c.Files {
		src := fmt.Sprintf("files[%d]", i)
		f := &c.Files[i]
		if err := f.normalize(src); err != nil {
			return err
		}
		name := f.StreamName()
		if name == "" {
			return Errorf(src, "%w from %q", ErrNoStreamName, f.Path)
		}
		if j, ok := seen[name]; ok {
			return Errorf(src, "%w %q, also used by files[%d]", ErrDuplicateStream, name, j)
		}
		seen[name] = i
	}
	return nil
}

// StreamName is the entity, or a name derived from the path.
func (f *FileConfig) StreamName() string {
	if f.Entity != "" {
		return f.Entity
	}
	return api.ParseStreamName(f.Path)
}

func (f *FileConfig) normalize(src string) error {
	f.Path = strings.TrimSpace(f.Path)
	f.Entity = strings.TrimSpace(f.Entity)
	if f.Path == "" {
		return Errorf(src+".path", "path is empty")
	}

	if f.Delimiter == "" {
		f.Delimiter = ","
	}
	if f.QuoteChar == "" {
		f.QuoteChar = `"`
	}
	if f.QuoteChar != `"` {
		return Errorf(src+".quotechar", "%w: quotechar %q", ErrUnsupportedDialect, f.QuoteChar)
	}
	if f.DoubleQuote != nil && !*f.DoubleQuote {
		return Errorf(src+".doublequote", "%w: doublequote false", ErrUnsupportedDialect)
	}
	if f.EscapeChar != nil && *f.EscapeChar != "" {
		return Errorf(src+".escapechar", "%w: escapechar %q", ErrUnsupportedDialect, *f.EscapeChar)
	}
	if f.EncodingErrors == "" {
		f.EncodingErrors = string(streams.EncodingErrorsStrict)
	}
	if err := streams.ValidateOptions(f.StreamOptions()...); err != nil {
		return &ConfigurationError{Source: src, Err: err}
	}

	if f.Decimal == "" {
		f.Decimal = "."
	}
	if utf8.RuneCountInString(f.Decimal) != 1 || utf8.RuneCountInString(f.Thousands) > 1 || f.Thousands == f.Decimal {
		return Errorf(src, "%w: thousands %q, decimal %q", ErrInvalidNumberFormat, f.Thousands, f.Decimal)
	}

	if f.SampleSize == 0 {
		f.SampleSize = DefaultSampleSize
	}
	if f.OnRecordError == "" {
		f.OnRecordError = OnRecordErrorSkip
	}

	f.columnTypes = make(map[string]api.ColumnType, len(f.Types))
	for col, name := range f.Types {
		t := api.ParseColumnType(name)
		if t == api.ColumnTypeNone {
			return Errorf(src+".types."+col, "%w: %q", ErrUnknownType, name)
		}
		f.columnTypes[col] = t
	}
	return nil
}
