package legitimacy

import (
	"embed"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"

	"github.com/openecomap/ecomap/pkg/errors"
)

//go:embed rules.yaml
var embedded embed.FS

// Ruleset is the externally-maintained rule table behind the filter.
// It ships embedded in the binary and can be overridden from a file so the
// noise vocabulary can grow without code changes.
type Ruleset struct {
	MaxNameLength        int      `yaml:"max_name_length"`
	MaxNameTokens        int      `yaml:"max_name_tokens"`
	DisallowedCharacters string   `yaml:"disallowed_characters"`
	DocumentExtensions   []string `yaml:"document_extensions"`
	Patterns             []string `yaml:"patterns"`
	Blacklist            []string `yaml:"blacklist"`
}

// DefaultRuleset loads the rule table embedded in the binary.
func DefaultRuleset() (*Ruleset, error) {
	data, err := embedded.ReadFile("rules.yaml")
	if err != nil {
		return nil, errors.WrapIO("read", "rules.yaml", err)
	}
	return parseRuleset(data, "rules.yaml")
}

// LoadRuleset reads a rule table from an external file.
func LoadRuleset(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parseRuleset(data, path)
}

func parseRuleset(data []byte, name string) (*Ruleset, error) {
	var rules Ruleset
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	if err := rules.validate(); err != nil {
		return nil, err
	}
	return &rules, nil
}

func (r *Ruleset) validate() error {
	if r.MaxNameLength <= 0 {
		return &errors.ValidationError{
			Field:   "max_name_length",
			Value:   r.MaxNameLength,
			Message: "must be positive",
		}
	}
	if r.MaxNameTokens <= 0 {
		return &errors.ValidationError{
			Field:   "max_name_tokens",
			Value:   r.MaxNameTokens,
			Message: "must be positive",
		}
	}
	for _, p := range r.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return &errors.ValidationError{
				Field:   "patterns",
				Value:   p,
				Message: "invalid regular expression",
			}
		}
	}
	return nil
}
