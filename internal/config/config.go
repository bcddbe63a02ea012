package config

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL     = "http://127.0.0.1:7343"
	DefaultDBFileName = ".pantry.db"
	DefaultLogLevel   = "warn"

	DefaultRecipeEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	DefaultRecipeModel    = "qwen/qwen-2-7b-instruct:free"

	DefaultBlobMaxUploadBytes    int64 = 20 * 1024 * 1024
	DefaultBlobMultipartMemory   int64 = 8 * 1024 * 1024
	defaultAllowedImageMediaList       = "image/jpeg,image/png,image/gif,image/webp"

	configDirEnvKey         = "PANTRY_CONFIG_DIR"
	apiURLEnvKey            = "PANTRY_API_URL"
	dbPathEnvKey            = "PANTRY_DB"
	recipeAPIKeyEnvKey      = "PANTRY_OPENROUTER_API_KEY"
	allowedMediaTypesEnvKey = "PANTRY_ALLOWED_MEDIA_TYPES"
)

// BlobConfig defines runtime configuration for image blob handling.
type BlobConfig struct {
	Root               string   `toml:"root"`
	MaxUploadBytes     int64    `toml:"max_upload_bytes"`
	MultipartMaxMemory int64    `toml:"multipart_max_memory"`
	AllowedMediaTypes  []string `toml:"allowed_media_types"`
}

// RecipeConfig defines the chat-completion endpoint used for suggestions.
// The API key is taken from PANTRY_OPENROUTER_API_KEY, never from the file.
type RecipeConfig struct {
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
	APIKey   string `toml:"-"`
}

// CameraConfig defines the single-shot camera capture command.
type CameraConfig struct {
	Command string `toml:"command"`
}

// Config defines runtime configuration for pantry.
type Config struct {
	APIURL   string       `toml:"api_url"`
	DBPath   string       `toml:"db_path"`
	LogLevel string       `toml:"log_level"`
	Blobs    BlobConfig   `toml:"blobs"`
	Recipe   RecipeConfig `toml:"recipe"`
	Camera   CameraConfig `toml:"camera"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		DBPath:   "",
		LogLevel: "",
		Blobs: BlobConfig{
			MaxUploadBytes:     DefaultBlobMaxUploadBytes,
			MultipartMaxMemory: DefaultBlobMultipartMemory,
			AllowedMediaTypes:  splitCSV(defaultAllowedImageMediaList),
		},
		Recipe: RecipeConfig{
			Endpoint: DefaultRecipeEndpoint,
			Model:    DefaultRecipeModel,
		},
	}
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"log_level",
	"blobs.root",
	"blobs.max_upload_bytes",
	"blobs.multipart_max_memory",
	"blobs.allowed_media_types",
	"recipe.endpoint",
	"recipe.model",
	"camera.command",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "blobs.root":
		return c.Blobs.Root, nil
	case "blobs.max_upload_bytes":
		return strconv.FormatInt(c.Blobs.MaxUploadBytes, 10), nil
	case "blobs.multipart_max_memory":
		return strconv.FormatInt(c.Blobs.MultipartMaxMemory, 10), nil
	case "blobs.allowed_media_types":
		return strings.Join(c.Blobs.AllowedMediaTypes, ","), nil
	case "recipe.endpoint":
		return c.Recipe.Endpoint, nil
	case "recipe.model":
		return c.Recipe.Model, nil
	case "camera.command":
		return c.Camera.Command, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pantry.toml"), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from the global file and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := GlobalPath()
	if err == nil {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if cfg.DBPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DBPath = filepath.Join(home, DefaultDBFileName)
		}
	}

	if apiURL := os.Getenv(apiURLEnvKey); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv(dbPathEnvKey); dbPath != "" {
		cfg.DBPath = dbPath
	}
	cfg.Recipe.APIKey = strings.TrimSpace(os.Getenv(recipeAPIKeyEnvKey))

	if raw := strings.TrimSpace(os.Getenv(allowedMediaTypesEnvKey)); raw != "" {
		cfg.Blobs.AllowedMediaTypes = splitCSV(raw)
	}

	cfg.normalizeBlobDefaults()

	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, ".pantry.toml"), true
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "blobs.max_upload_bytes", "blobs.multipart_max_memory":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "blobs.allowed_media_types":
		return splitCSV(value), nil
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func splitCSV(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func (c *Config) normalizeBlobDefaults() {
	if c.Blobs.MaxUploadBytes <= 0 {
		c.Blobs.MaxUploadBytes = DefaultBlobMaxUploadBytes
	}
	if c.Blobs.MultipartMaxMemory <= 0 {
		c.Blobs.MultipartMaxMemory = DefaultBlobMultipartMemory
	}
	if c.Recipe.Endpoint == "" {
		c.Recipe.Endpoint = DefaultRecipeEndpoint
	}
	if c.Recipe.Model == "" {
		c.Recipe.Model = DefaultRecipeModel
	}
	c.Blobs.AllowedMediaTypes = normalizeConfiguredMediaTypes(c.Blobs.AllowedMediaTypes)
}

func normalizeConfiguredMediaTypes(rawValues []string) []string {
	if len(rawValues) == 0 {
		return nil
	}
	out := make([]string, 0, len(rawValues))
	seen := map[string]struct{}{}
	for _, raw := range rawValues {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parsed, _, err := mime.ParseMediaType(raw)
		if err != nil {
			continue
		}
		normalized := strings.ToLower(strings.TrimSpace(parsed))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
