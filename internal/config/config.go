package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/mcncl/jsondoc/internal/writer"
)

// Output styles naming the writer presets
const (
	StyleCompact = "compact"
	StylePretty  = "pretty"
)

// Indent character names
const (
	IndentSpace = "space"
	IndentTab   = "tab"
)

// Config represents the complete configuration for jsondoc
type Config struct {
	Style      string           `yaml:"style"`
	Formatting FormattingConfig `yaml:"formatting"`
	Dev        DevConfig        `yaml:"dev"`
}

// FormattingConfig mirrors writer.Params in YAML form
type FormattingConfig struct {
	IndentChar               string `yaml:"indent_char"`
	IndentWidth              int    `yaml:"indent_width"`
	SpacesAfterKey           int    `yaml:"spaces_after_key"`
	SpacesAfterColon         int    `yaml:"spaces_after_colon"`
	SpacesAfterOpenBracket   int    `yaml:"spaces_after_open_bracket"`
	SpacesBeforeCloseBracket int    `yaml:"spaces_before_close_bracket"`
	SpacesAfterComma         int    `yaml:"spaces_after_comma"`
	NewlineAfterOpenBracket  bool   `yaml:"newline_after_open_bracket"`
	NewlineAfterComma        bool   `yaml:"newline_after_comma"`
	CompactEmpty             bool   `yaml:"compact_empty"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Style:      StylePretty,
		Formatting: FormattingFromParams(writer.Pretty()),
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// NormalizeName folds user-supplied names such as "Pretty" or "TAB" into
// their canonical snake_case form.
func NormalizeName(name string) string {
	return strcase.ToSnake(strings.TrimSpace(name))
}

// PresetParams returns the writer preset for a style name
func PresetParams(style string) (writer.Params, error) {
	switch NormalizeName(style) {
	case StyleCompact:
		return writer.Compact(), nil
	case StylePretty:
		return writer.Pretty(), nil
	default:
		return writer.Params{}, errors.NewConfigError(fmt.Sprintf("unknown style '%s'", style), nil)
	}
}

// FormattingFromParams converts writer params to their YAML form
func FormattingFromParams(p writer.Params) FormattingConfig {
	indent := IndentSpace
	if p.IndentChar == writer.IndentTab {
		indent = IndentTab
	}
	return FormattingConfig{
		IndentChar:               indent,
		IndentWidth:              p.IndentWidth,
		SpacesAfterKey:           p.SpacesAfterKey,
		SpacesAfterColon:         p.SpacesAfterColon,
		SpacesAfterOpenBracket:   p.SpacesAfterOpenBracket,
		SpacesBeforeCloseBracket: p.SpacesBeforeCloseBracket,
		SpacesAfterComma:         p.SpacesAfterComma,
		NewlineAfterOpenBracket:  p.NewlineAfterOpenBracket,
		NewlineAfterComma:        p.NewlineAfterComma,
		CompactEmpty:             p.CompactEmpty,
	}
}

// applyStyle resets Formatting to the preset named by style
func (c *Config) applyStyle(style string) error {
	params, err := PresetParams(style)
	if err != nil {
		return err
	}
	c.Style = NormalizeName(style)
	c.Formatting = FormattingFromParams(params)
	return nil
}

// LoadConfig loads configuration from a YAML file. The file's style picks
// the starting preset; keys under formatting then override it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	var head struct {
		Style string `yaml:"style"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	// Start with defaults
	cfg := NewConfig()
	if head.Style != "" {
		if err := cfg.applyStyle(head.Style); err != nil {
			return nil, err
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}
	cfg.Style = NormalizeName(cfg.Style)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the formatting values can be rendered
func (c *Config) Validate() error {
	switch NormalizeName(c.Formatting.IndentChar) {
	case IndentSpace, IndentTab:
	default:
		return errors.NewConfigError(fmt.Sprintf("invalid indent_char '%s': use 'space' or 'tab'", c.Formatting.IndentChar), nil)
	}

	counts := map[string]int{
		"indent_width":                c.Formatting.IndentWidth,
		"spaces_after_key":            c.Formatting.SpacesAfterKey,
		"spaces_after_colon":          c.Formatting.SpacesAfterColon,
		"spaces_after_open_bracket":   c.Formatting.SpacesAfterOpenBracket,
		"spaces_before_close_bracket": c.Formatting.SpacesBeforeCloseBracket,
		"spaces_after_comma":          c.Formatting.SpacesAfterComma,
	}
	for name, n := range counts {
		if n < 0 {
			return errors.NewConfigError(fmt.Sprintf("%s must not be negative, got %d", name, n), nil)
		}
	}
	return nil
}

// WriterParams converts the formatting section to writer params
func (c *Config) WriterParams() (writer.Params, error) {
	if err := c.Validate(); err != nil {
		return writer.Params{}, err
	}
	f := c.Formatting
	indent := writer.IndentSpace
	if NormalizeName(f.IndentChar) == IndentTab {
		indent = writer.IndentTab
	}
	return writer.Params{
		IndentChar:               indent,
		IndentWidth:              f.IndentWidth,
		SpacesAfterKey:           f.SpacesAfterKey,
		SpacesAfterColon:         f.SpacesAfterColon,
		SpacesAfterOpenBracket:   f.SpacesAfterOpenBracket,
		SpacesBeforeCloseBracket: f.SpacesBeforeCloseBracket,
		SpacesAfterComma:         f.SpacesAfterComma,
		NewlineAfterOpenBracket:  f.NewlineAfterOpenBracket,
		NewlineAfterComma:        f.NewlineAfterComma,
		CompactEmpty:             f.CompactEmpty,
	}, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsondoc.yml", ".jsondoc.yaml", "jsondoc.yml", "jsondoc.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// An empty cliStyle and a negative cliIndent mean "not given".
func LoadConfigWithCLI(configPath, cliStyle string, cliIndent int, cliTabs bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	// A style flag replaces the whole formatting section
	if cliStyle != "" {
		if err := cfg.applyStyle(cliStyle); err != nil {
			return nil, err
		}
	}
	if cliTabs {
		cfg.Formatting.IndentChar = IndentTab
		if cliIndent < 0 {
			cfg.Formatting.IndentWidth = 1
		}
	}
	if cliIndent >= 0 {
		cfg.Formatting.IndentWidth = cliIndent
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
