package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Presets(t *testing.T) {
	for _, label := range Labels() {
		t.Run(string(label), func(t *testing.T) {
			profile, err := Lookup(label)
			require.NoError(t, err)
			assert.Equal(t, label, profile.Label)
			assert.LessOrEqual(t, profile.MaxDrawdown, 0.0)
			assert.GreaterOrEqual(t, profile.MaxLeverage, 1.0)
		})
	}
}

func TestLookup_PresetsTightenWithCaution(t *testing.T) {
	conservative, _ := Lookup(Conservative)
	moderate, _ := Lookup(Moderate)
	aggressive, _ := Lookup(Aggressive)

	assert.Less(t, conservative.MaxRisk, moderate.MaxRisk)
	assert.Less(t, moderate.MaxRisk, aggressive.MaxRisk)
	assert.Greater(t, conservative.MaxDrawdown, moderate.MaxDrawdown)
	assert.Greater(t, moderate.MaxDrawdown, aggressive.MaxDrawdown)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("reckless")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestParseLabel(t *testing.T) {
	label, err := ParseLabel("  Aggressive ")
	require.NoError(t, err)
	assert.Equal(t, Aggressive, label)

	_, err = ParseLabel("yolo")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestCustomProfile_ClampsSlider(t *testing.T) {
	tests := []struct {
		name     string
		slider   float64
		expected float64
	}{
		{"within range", 6.5, 6.5},
		{"below minimum", 0, MinCustomRisk},
		{"above maximum", 12, MaxCustomRisk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := CustomProfile(tt.slider)
			assert.Equal(t, Custom, profile.Label)
			assert.Equal(t, tt.expected, profile.MaxRisk)
			assert.Equal(t, 5.0, profile.MaxLeverage)
			assert.Equal(t, -20.0, profile.MaxDrawdown)
		})
	}
}

func TestResolve(t *testing.T) {
	custom, err := Resolve(Custom, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, custom.MaxRisk)

	moderate, err := Resolve(Moderate, 3)
	require.NoError(t, err)
	assert.Equal(t, 7.0, moderate.MaxRisk, "slider only applies to custom")

	_, err = Resolve("unknown", 3)
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestAll_DisplayOrder(t *testing.T) {
	profiles := All()
	require.Len(t, profiles, 4)
	assert.Equal(t, Conservative, profiles[0].Label)
	assert.Equal(t, Custom, profiles[3].Label)
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		maxRisk     string
		fallback    ProfileLabel
		wantLabel   ProfileLabel
		wantMaxRisk float64
		wantErr     error
	}{
		{"preset", "moderate", "", Conservative, Moderate, 7, nil},
		{"empty label uses fallback", "", "", Aggressive, Aggressive, 10, nil},
		{"custom default slider", "custom", "", Moderate, Custom, DefaultCustomRisk, nil},
		{"custom slider", " Custom ", "3.5", Moderate, Custom, 3.5, nil},
		{"custom slider clamped low", "custom", "0", Moderate, Custom, MinCustomRisk, nil},
		{"slider ignored for presets", "conservative", "9", Moderate, Conservative, 5, nil},
		{"bad slider", "custom", "ten", Moderate, "", 0, ErrInvalidMaxRisk},
		{"unknown label", "reckless", "", Moderate, "", 0, ErrUnknownProfile},
		{"empty label and fallback", "", "", "", "", 0, ErrUnknownProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := ParseProfile(tt.label, tt.maxRisk, tt.fallback)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, profile.Label)
			assert.Equal(t, tt.wantMaxRisk, profile.MaxRisk)
		})
	}
}
