package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cardver/internal/domain/entity"
)

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1.4.0", true},
		{"0.0.0", true},
		{"10.20.30", true},
		{"v1.4.0", false},
		{"1.4", false},
		{"1.4.0-beta.1", false},
		{"1.4.0 ", false},
		{"", false},
		{"a.b.c", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormed(tt.in))
		})
	}
}

func TestParseAndCompare(t *testing.T) {
	a, err := Parse("1.4.0")
	require.NoError(t, err)
	b, err := Parse("1.3.9")
	require.NoError(t, err)

	assert.Equal(t, "1.4.0", a.String())
	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(&Version{Major: 1, Minor: 4}))

	_, err = Parse("1.4")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		placeholders []string
		wantKind     entity.CheckErrorKind
	}{
		{name: "valid", value: "1.4.0"},
		{name: "two parts", value: "1.4", wantKind: entity.KindFormatInvalid},
		{name: "v prefix", value: "v1.4.0", wantKind: entity.KindFormatInvalid},
		{name: "empty", value: "", wantKind: entity.KindFormatInvalid},
		{name: "placeholder", value: "0.0.0", wantKind: entity.KindPlaceholderVersion},
		{name: "format before placeholder", value: "0.0", placeholders: []string{"0.0"}, wantKind: entity.KindFormatInvalid},
		{name: "configured placeholder", value: "9.9.9", placeholders: []string{"9.9.9"}, wantKind: entity.KindPlaceholderVersion},
		{name: "empty configured placeholder ignored", value: "1.0.0", placeholders: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(entity.VersionSourceEmbedded, tt.value, tt.placeholders...)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			var ce *entity.CheckError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.wantKind, ce.Kind)
			assert.Equal(t, entity.VersionSourceEmbedded, ce.Source)
			assert.Equal(t, tt.value, ce.Value)
		})
	}
}

func TestSkew(t *testing.T) {
	assert.Equal(t, "behind", Skew("1.3.9", "1.4.0"))
	assert.Equal(t, "ahead", Skew("1.10.0", "1.9.0"))
	assert.Empty(t, Skew("1.4.0", "1.4.0"))
	assert.Empty(t, Skew("1.4", "1.4.0"))
	assert.Empty(t, Skew("1.4.0", "latest"))
}
