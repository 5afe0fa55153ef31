package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/banknotify/internal/common"
	"github.com/Veraticus/banknotify/internal/model"
)

// DefaultDatabasePath is where the verdict log lives unless configured.
const DefaultDatabasePath = "$HOME/.local/share/banknotify/banknotify.db"

// Settings is the user-tunable behaviour of the pipeline.
type Settings struct {
	Database            DatabaseSettings           `mapstructure:"database"`
	Registry            RegistrySettings           `mapstructure:"registry"`
	Methods             MethodSettings             `mapstructure:"methods"`
	Accounts            []model.OwnedAccount       `mapstructure:"accounts"`
	CashOutDestinations []model.CashOutDestination `mapstructure:"cash_out_destinations"`
	QRBusinesses        []model.QRBusiness         `mapstructure:"qr_businesses"`
	Device              model.Device               `mapstructure:"device"`
	Dedup               DedupSettings              `mapstructure:"dedup"`
	History             HistorySettings            `mapstructure:"history"`
	Detection           DetectionSettings          `mapstructure:"detection"`
	Filters             FilterSettings             `mapstructure:"filters"`
}

// DatabaseSettings locates the verdict log.
type DatabaseSettings struct {
	Path string `mapstructure:"path"`
}

// RegistrySettings points at an optional YAML override of the built-in registry.
type RegistrySettings struct {
	Path string `mapstructure:"path"`
}

// DetectionSettings toggles the two notification channels.
type DetectionSettings struct {
	Push bool `mapstructure:"push"`
	SMS  bool `mapstructure:"sms"`
}

// FilterSettings toggles which records are forwarded.
type FilterSettings struct {
	Deposit         bool `mapstructure:"deposit"`
	Withdrawal      bool `mapstructure:"withdrawal"`
	ExcludeInternal bool `mapstructure:"exclude_internal"`
}

// MethodSettings lists the enabled payment methods per direction, in preference order.
type MethodSettings struct {
	Deposit    []string `mapstructure:"deposit"`
	Withdrawal []string `mapstructure:"withdrawal"`
}

// DedupSettings tunes the duplicate filter.
type DedupSettings struct {
	ExactWindow time.Duration `mapstructure:"exact_window"`
	FuzzyWindow time.Duration `mapstructure:"fuzzy_window"`
	MaxEntries  int           `mapstructure:"max_entries"`
}

// HistorySettings bounds how long verdicts are kept.
type HistorySettings struct {
	RetentionDays int `mapstructure:"retention_days"`
}

// SetDefaults registers the default for every settings key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("registry.path", "")
	v.SetDefault("device.number", 1)
	v.SetDefault("device.name", "")
	v.SetDefault("detection.push", true)
	v.SetDefault("detection.sms", false)
	v.SetDefault("filters.deposit", true)
	v.SetDefault("filters.withdrawal", true)
	v.SetDefault("filters.exclude_internal", false)
	v.SetDefault("methods.deposit", model.DefaultDepositMethods())
	v.SetDefault("methods.withdrawal", model.DefaultWithdrawalMethods())
	v.SetDefault("dedup.exact_window", 30*time.Second)
	v.SetDefault("dedup.fuzzy_window", 10*time.Second)
	v.SetDefault("dedup.max_entries", 512)
	v.SetDefault("history.retention_days", 30)
}

// Load reads Settings out of v after applying defaults. Relative paths
// resolve against the directory of the config file v read, if any.
func Load(v *viper.Viper) (Settings, error) {
	SetDefaults(v)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	base := configDir(v.ConfigFileUsed())
	s.Database.Path = ResolvePath(s.Database.Path, base)
	s.Registry.Path = ResolvePath(s.Registry.Path, base)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports every inconsistent setting at once.
func (s *Settings) Validate() error {
	var problems []error

	if s.Database.Path == "" {
		problems = append(problems, errors.New("database.path is empty"))
	}
	if s.Device.Number < 0 {
		problems = append(problems, fmt.Errorf("device.number must not be negative, got %d", s.Device.Number))
	}
	if s.Dedup.ExactWindow <= 0 || s.Dedup.FuzzyWindow <= 0 {
		problems = append(problems, errors.New("dedup windows must be positive"))
	}
	if s.Dedup.FuzzyWindow > s.Dedup.ExactWindow {
		problems = append(problems, fmt.Errorf("dedup.fuzzy_window %s is longer than dedup.exact_window %s", s.Dedup.FuzzyWindow, s.Dedup.ExactWindow))
	}
	if s.Dedup.MaxEntries <= 0 {
		problems = append(problems, fmt.Errorf("dedup.max_entries must be positive, got %d", s.Dedup.MaxEntries))
	}
	if s.History.RetentionDays <= 0 {
		problems = append(problems, fmt.Errorf("history.retention_days must be positive, got %d", s.History.RetentionDays))
	}
	for i, b := range s.QRBusinesses {
		if b.Type != model.QRCustomerScans && b.Type != model.QRMerchantScans {
			problems = append(problems, fmt.Errorf("qr_businesses[%d] %q has unknown type %q", i, b.Name, b.Type))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, errors.Join(problems...))
	}
	return nil
}

// MethodEnabled reports whether method is enabled for records of type t.
func (s *Settings) MethodEnabled(t model.TransactionType, method string) bool {
	switch t {
	case model.TypeDeposit:
		return slices.Contains(s.Methods.Deposit, method)
	case model.TypeWithdrawal:
		return slices.Contains(s.Methods.Withdrawal, method)
	default:
		return false
	}
}

// TypeEnabled reports whether records of type t are forwarded at all.
func (s *Settings) TypeEnabled(t model.TransactionType) bool {
	switch t {
	case model.TypeDeposit:
		return s.Filters.Deposit
	case model.TypeWithdrawal:
		return s.Filters.Withdrawal
	default:
		return false
	}
}

// ChannelEnabled reports whether notifications arriving on c are processed.
func (s *Settings) ChannelEnabled(c model.Channel) bool {
	if c == model.ChannelSMS {
		return s.Detection.SMS
	}
	return s.Detection.Push
}

// Default returns the settings Load yields with no configuration at all.
func Default() Settings {
	s, err := Load(viper.New())
	if err != nil {
		panic(fmt.Sprintf("default settings: %v", err))
	}
	return s
}
