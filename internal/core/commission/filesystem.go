package commission

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RatesFileName is the file inside the config directory holding the rate tables.
const RatesFileName = "rates.yaml"

// rawRates is the on-disk shape of rates.yaml:
//
//	cpa:
//	  level1: "50"
//	  ...
//	rev_share:
//	  level1: "0.25"
type rawRates struct {
	CPA      map[string]decimal.Decimal `yaml:"cpa"`
	RevShare map[string]decimal.Decimal `yaml:"rev_share"`
}

// FileSystemSource loads validation rules from *.yaml files in a directory (one rule
// per file) plus rates.yaml. Files are read once at construction and cached in
// memory; there is no hot reload.
type FileSystemSource struct {
	dir   string
	rules map[string]Rule // keyed by ID
	rates *Rates
}

// NewFileSystemSource eagerly loads dir. A missing directory yields an empty source;
// a malformed or invalid file is an error.
func NewFileSystemSource(dir string) (*FileSystemSource, error) {
	s := &FileSystemSource{
		dir:   dir,
		rules: make(map[string]Rule),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileSystemSource) load() error {
	info, err := os.Stat(s.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commission config dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("commission config path %q is not a directory", s.dir)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading commission config dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		if e.Name() == RatesFileName {
			rates, err := parseRates(data)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}
			s.rates = &rates
			continue
		}

		rule, ok, err := parseRule(data)
		if err != nil {
			return fmt.Errorf("parsing rule file %s: %w", path, err)
		}
		if !ok {
			continue // empty / comment-only file
		}
		if _, exists := s.rules[rule.ID]; exists {
			return fmt.Errorf("rule %q: duplicate rule id (check multiple YAML files)", rule.ID)
		}
		s.rules[rule.ID] = rule
	}
	return nil
}

func parseRule(data []byte) (Rule, bool, error) {
	var rule Rule
	if err := yaml.Unmarshal(data, &rule); err != nil {
		return Rule{}, false, err
	}
	if rule.ID == "" && len(rule.Groups) == 0 {
		return Rule{}, false, nil
	}
	if err := rule.Validate(); err != nil {
		return Rule{}, false, err
	}
	rule.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))
	return rule, true, nil
}

func parseRates(data []byte) (Rates, error) {
	var raw rawRates
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Rates{}, err
	}
	cpa, err := levelTableFromKeys(raw.CPA)
	if err != nil {
		return Rates{}, err
	}
	rates := Rates{CPA: cpa}
	if len(raw.RevShare) > 0 {
		rev, err := levelTableFromKeys(raw.RevShare)
		if err != nil {
			return Rates{}, err
		}
		rates.RevShare = &rev
	}
	return rates, nil
}

// Rules returns all loaded rules sorted by ID.
func (s *FileSystemSource) Rules(context.Context) ([]Rule, error) {
	out := make([]Rule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Rates returns the loaded rate tables, or a configuration error when rates.yaml is absent.
func (s *FileSystemSource) Rates(context.Context) (Rates, error) {
	if s.rates == nil {
		return Rates{}, configErrorf("%s not found in %q", RatesFileName, s.dir)
	}
	return *s.rates, nil
}
