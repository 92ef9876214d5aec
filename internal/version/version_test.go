package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want Ordering
	}{
		{"2.4.0", "2.3.2", Greater},
		{"2.4.0", "2.4.0", Equal},
		{"2.3.2", "2.4.0", Less},
		{"v2.4.0", "2.4.0", Equal},
		{"2.10.0", "2.9.9", Greater},
		{"10.0.0", "9.0.0", Greater},
		{"1.0.0-beta", "1.0.0", Less},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareMalformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-version", "2.4", "1.2.3.4", "2.x.0"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Compare(raw, "1.0.0")
			require.Error(t, err)
			assert.True(t, IsParseError(err))

			_, err = Compare("1.0.0", raw)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(" v2.3.2 ")
	require.NoError(t, err)
	assert.Equal(t, "2.3.2", got)

	_, err = Normalize("latest")
	assert.ErrorContains(t, err, "vX.Y.Z")
}

func TestIsDev(t *testing.T) {
	assert.True(t, IsDev("dev"))
	assert.True(t, IsDev(""))
	assert.True(t, IsDev("(devel)"))
	assert.False(t, IsDev("1.0.0"))
}

func TestOrderingString(t *testing.T) {
	assert.Equal(t, "less", Less.String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "greater", Greater.String())
	assert.Equal(t, "ordering(7)", Ordering(7).String())
}
