package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/felixgrant/shiftwise/pkg/core/model"
)

// ShiftTemplate defines a recurring shift. The rrule is expanded into dated
// occurrences for the requested week by the shift catalog.
type ShiftTemplate struct {
	Name                   string   `yaml:"name" validate:"required"`
	RRule                  string   `yaml:"rrule" validate:"required"`
	StartTime              string   `yaml:"startTime" validate:"required"` // "15:04" format
	DurationHours          float64  `yaml:"durationHours" validate:"required,gt=0"`
	DepartmentID           string   `yaml:"departmentID" validate:"required"`
	MinStaff               int      `yaml:"minStaff" validate:"required,min=1"`
	RequiredQualifications []string `yaml:"requiredQualifications,omitempty"`
}

// RulesConfig configures the scheduling constraints. The flat fields are the
// global defaults; Constraints layer scoped rules on top of them.
type RulesConfig struct {
	MinRestHours      float64            `yaml:"minRestHours" validate:"min=0"`
	CoverageMandatory bool               `yaml:"coverageMandatory"`
	MaxRepairRetries  int                `yaml:"maxRepairRetries" validate:"min=0"`
	Constraints       []ConstraintConfig `yaml:"constraints,omitempty" validate:"omitempty,dive"`
}

// ConstraintConfig expresses one scheduling rule, optionally scoped to a
// department. An empty scope applies everywhere.
type ConstraintConfig struct {
	Type              string  `yaml:"type" validate:"required,oneof=max_hours min_rest required_coverage availability"`
	Scope             string  `yaml:"scope,omitempty"`
	MinRestHours      float64 `yaml:"minRestHours,omitempty" validate:"min=0"`
	CoverageMandatory bool    `yaml:"coverageMandatory,omitempty"`
	MaxHoursPerWeek   float64 `yaml:"maxHoursPerWeek,omitempty" validate:"min=0"`
}

// RedisConfig configures the optional roster cache. An empty Addr disables
// caching and the roster provider reads straight from the database.
type RedisConfig struct {
	Addr             string `yaml:"addr,omitempty"`
	RosterTTLMinutes int    `yaml:"rosterTTLMinutes,omitempty" validate:"omitempty,min=1"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL    string          `yaml:"databaseURL" validate:"required"`
	Redis          RedisConfig     `yaml:"redis,omitempty"`
	Rules          RulesConfig     `yaml:"rules"`
	ShiftTemplates []ShiftTemplate `yaml:"shiftTemplates" validate:"required,min=1,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for the given environment.
// It looks for shiftwise_config.<env>.yaml in the current directory first,
// then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Unknown fields are rejected: the schema at this boundary is closed.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, rrule syntax and time formats
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, tmpl := range cfg.ShiftTemplates {
		if _, err := rrule.StrToRRule(tmpl.RRule); err != nil {
			return fmt.Errorf("invalid rrule in shiftTemplates[%d]: %w", i, err)
		}
		start, err := time.Parse("15:04", tmpl.StartTime)
		if err != nil {
			return fmt.Errorf("invalid startTime in shiftTemplates[%d]: %w", i, err)
		}
		startMinutes := float64(start.Hour()*60 + start.Minute())
		if startMinutes+tmpl.DurationHours*60 > 24*60 {
			return fmt.Errorf("shiftTemplates[%d] crosses midnight: shifts must end by 24:00", i)
		}
	}

	for i, con := range cfg.Rules.Constraints {
		switch model.RuleType(con.Type) {
		case model.RuleMinRest:
			if con.MinRestHours <= 0 {
				return fmt.Errorf("rules.constraints[%d]: min_rest requires minRestHours", i)
			}
		case model.RuleMaxHours:
			if con.MaxHoursPerWeek <= 0 {
				return fmt.Errorf("rules.constraints[%d]: max_hours requires maxHoursPerWeek", i)
			}
		case model.RuleRequiredCoverage, model.RuleAvailability:
			// no parameters beyond the scope
		}
	}

	return nil
}

// ScopedRules expands the rules configuration into rule entities: the global
// defaults first, then the scoped constraints in declaration order
func (c *Config) ScopedRules() []model.Rule {
	rules := []model.Rule{
		{ID: "rules.minRestHours", Type: model.RuleMinRest, Params: model.RuleParams{MinRestHours: c.Rules.MinRestHours}},
		{ID: "rules.coverageMandatory", Type: model.RuleRequiredCoverage, Params: model.RuleParams{CoverageMandatory: c.Rules.CoverageMandatory}},
	}
	for i, con := range c.Rules.Constraints {
		rules = append(rules, model.Rule{
			ID:    fmt.Sprintf("rules.constraints[%d]", i),
			Type:  model.RuleType(con.Type),
			Scope: con.Scope,
			Params: model.RuleParams{
				MinRestHours:      con.MinRestHours,
				CoverageMandatory: con.CoverageMandatory,
				MaxHoursPerWeek:   con.MaxHoursPerWeek,
			},
		})
	}
	return rules
}

// RuleSetFor resolves the effective rule set for one department
func (c *Config) RuleSetFor(department string) model.RuleSet {
	set := model.ResolveRules(c.ScopedRules(), department)
	set.MaxRepairRetries = c.Rules.MaxRepairRetries
	if set.MaxRepairRetries == 0 {
		set.MaxRepairRetries = model.DefaultMaxRepairRetries
	}
	return set
}

// RuleSet resolves the globally scoped rule set
func (c *Config) RuleSet() model.RuleSet {
	return c.RuleSetFor("")
}

// RosterTTL returns the configured roster cache TTL
func (c *Config) RosterTTL() time.Duration {
	if c.Redis.RosterTTLMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Redis.RosterTTLMinutes) * time.Minute
}

// findConfigFile searches for shiftwise_config.<env>.yaml in the current
// directory and the home directory
func findConfigFile(env string) (string, error) {
	configFileName := fmt.Sprintf("shiftwise_config.%s.yaml", env)

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
