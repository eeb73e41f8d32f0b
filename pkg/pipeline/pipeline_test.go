package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mend/pkg/errors"
)

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()

	assert.Equal(t, DefaultThreshold, o.Threshold)
	assert.Equal(t, float64(DefaultGap), o.Gap)
	assert.Equal(t, DefaultMaxIterations, o.MaxIterations)
	assert.Equal(t, DefaultConcurrency, o.Concurrency)
	assert.NotNil(t, o.Logger)
	assert.False(t, o.KeepOrphans)
	assert.Zero(t, o.Anchor)
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	o := Options{Threshold: 0.9, Gap: 10, MaxIterations: 5, Concurrency: 2}
	o.SetDefaults()

	assert.Equal(t, 0.9, o.Threshold)
	assert.Equal(t, 10.0, o.Gap)
	assert.Equal(t, 5, o.MaxIterations)
	assert.Equal(t, 2, o.Concurrency)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantMsg string
	}{
		{"defaults", Options{}, ""},
		{"threshold one", Options{Threshold: 1}, ""},
		{"threshold above one", Options{Threshold: 1.5}, "threshold must be at most 1"},
		{"negative threshold", Options{Threshold: -0.1}, "threshold must be greater than 0"},
		{"negative gap", Options{Gap: -5}, "gap must be at least 0"},
		{"negative iterations", Options{MaxIterations: -1}, "maxiterations must be at least 1"},
		{"negative concurrency", Options{Concurrency: -2}, "concurrency must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "code = %s", errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	o := Options{Threshold: 2, Gap: -1}
	err := o.ValidateAndSetDefaults()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
	assert.Contains(t, err.Error(), "gap")
}

func TestOptionConversions(t *testing.T) {
	o := Options{KeepOrphans: true, Gap: 12, MaxIterations: 3}
	assert.True(t, o.SanitizeOptions().KeepOrphans)

	lo := o.LayoutOptions()
	assert.Equal(t, 12.0, lo.Gap)
	assert.Equal(t, 3, lo.MaxIterations)
}
