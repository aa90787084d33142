// Package risk holds the catalog of risk profiles that gate which strategies a
// portfolio may admit.
package risk

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aristath/strategy-builder/pkg/formulas"
)

// ErrUnknownProfile is returned when a label is not in the catalog
var ErrUnknownProfile = errors.New("unknown risk profile")

// ErrInvalidMaxRisk is returned when a custom slider value is not a number
var ErrInvalidMaxRisk = errors.New("max_risk must be a number")

// ProfileLabel identifies a risk profile
type ProfileLabel string

const (
	Conservative ProfileLabel = "conservative"
	Moderate     ProfileLabel = "moderate"
	Aggressive   ProfileLabel = "aggressive"
	Custom       ProfileLabel = "custom"
)

// Slider bounds for the custom profile's risk ceiling
const (
	MinCustomRisk     = 1.0
	MaxCustomRisk     = 10.0
	DefaultCustomRisk = 5.0
)

// RiskProfile defines the admission thresholds applied to candidate strategies.
// MaxDrawdown is a floor: a strategy is admitted only if its drawdown is not worse.
type RiskProfile struct {
	Label        ProfileLabel `json:"label"`
	MaxRisk      float64      `json:"max_risk"`
	MaxLeverage  float64      `json:"max_leverage"`
	TargetSharpe float64      `json:"target_sharpe"`
	MaxDrawdown  float64      `json:"max_drawdown"`
}

// catalog is the fixed preset table. The custom entry carries the default slider
// value and the widest leverage and drawdown bounds.
var catalog = map[ProfileLabel]RiskProfile{
	Conservative: {Label: Conservative, MaxRisk: 5, MaxLeverage: 2, TargetSharpe: 1.5, MaxDrawdown: -8},
	Moderate:     {Label: Moderate, MaxRisk: 7, MaxLeverage: 3, TargetSharpe: 1.0, MaxDrawdown: -12},
	Aggressive:   {Label: Aggressive, MaxRisk: 10, MaxLeverage: 5, TargetSharpe: 0.5, MaxDrawdown: -20},
	Custom:       {Label: Custom, MaxRisk: DefaultCustomRisk, MaxLeverage: 5, TargetSharpe: 1.0, MaxDrawdown: -20},
}

// Labels returns the catalog labels in display order
func Labels() []ProfileLabel {
	return []ProfileLabel{Conservative, Moderate, Aggressive, Custom}
}

// ParseLabel normalises a textual label and checks it against the catalog
func ParseLabel(s string) (ProfileLabel, error) {
	label := ProfileLabel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := catalog[label]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProfile, s)
	}
	return label, nil
}

// Lookup returns the preset for label. The custom preset uses the default slider value.
func Lookup(label ProfileLabel) (RiskProfile, error) {
	profile, ok := catalog[label]
	if !ok {
		return RiskProfile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, label)
	}
	return profile, nil
}

// CustomProfile returns the custom preset with its risk ceiling set from the
// slider value, clamped to [MinCustomRisk, MaxCustomRisk].
func CustomProfile(maxRisk float64) RiskProfile {
	profile := catalog[Custom]
	profile.MaxRisk = formulas.Clamp(maxRisk, MinCustomRisk, MaxCustomRisk)
	return profile
}

// Resolve returns the profile for label; customMaxRisk only applies to the custom label.
func Resolve(label ProfileLabel, customMaxRisk float64) (RiskProfile, error) {
	if label == Custom {
		return CustomProfile(customMaxRisk), nil
	}
	return Lookup(label)
}

// All returns every preset in display order
func All() []RiskProfile {
	profiles := make([]RiskProfile, 0, len(catalog))
	for _, label := range Labels() {
		profiles = append(profiles, catalog[label])
	}
	return profiles
}

// ParseProfile resolves textual input as received from a query string. An
// empty label selects fallback; an empty maxRisk selects DefaultCustomRisk.
func ParseProfile(label, maxRisk string, fallback ProfileLabel) (RiskProfile, error) {
	if strings.TrimSpace(label) == "" {
		label = string(fallback)
	}
	parsed, err := ParseLabel(label)
	if err != nil {
		return RiskProfile{}, err
	}

	slider := DefaultCustomRisk
	if maxRisk != "" {
		slider, err = strconv.ParseFloat(strings.TrimSpace(maxRisk), 64)
		if err != nil {
			return RiskProfile{}, fmt.Errorf("%w: %q", ErrInvalidMaxRisk, maxRisk)
		}
	}
	return Resolve(parsed, slider)
}
