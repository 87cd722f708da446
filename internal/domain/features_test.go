package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFeatures() FeatureVector {
	return FeatureVector{
		PH:            6.5,
		OrganicMatter: 3.0,
		Nitrogen:      40,
		Phosphorus:    30,
		Potassium:     180,
		Temperature:   22,
		Rainfall:      800,
		Humidity:      65,
	}
}

func TestFeatureVectorValidate(t *testing.T) {
	t.Run("valid vector", func(t *testing.T) {
		assert.NoError(t, validFeatures().Validate())
	})

	t.Run("NaN rejected", func(t *testing.T) {
		f := validFeatures()
		f.Rainfall = math.NaN()
		assert.ErrorIs(t, f.Validate(), ErrInvalidFeature)
	})

	t.Run("Inf rejected", func(t *testing.T) {
		f := validFeatures()
		f.Temperature = math.Inf(1)
		assert.ErrorIs(t, f.Validate(), ErrInvalidFeature)
	})
}

func TestFeatureVectorValues(t *testing.T) {
	values := validFeatures().Values()
	require.Len(t, values, NumFeatures)
	assert.Equal(t, 6.5, values[0])
	assert.Equal(t, 65.0, values[NumFeatures-1])

	assert.Len(t, FeatureNames(), NumFeatures)
	assert.Len(t, FeatureDisplayNames(), NumFeatures)
}

func TestClipGlobal(t *testing.T) {
	f := FeatureVector{
		PH:            12,   // above global max 9
		OrganicMatter: 0.1,  // below global min 0.5
		Nitrogen:      40,
		Phosphorus:    150,  // above global max 100
		Potassium:     180,
		Temperature:   2,    // below global min 5
		Rainfall:      5000, // above global max 3000
		Humidity:      65,
	}
	clipped := f.ClipGlobal()

	assert.Equal(t, 9.0, clipped.PH)
	assert.Equal(t, 0.5, clipped.OrganicMatter)
	assert.Equal(t, 40.0, clipped.Nitrogen)
	assert.Equal(t, 100.0, clipped.Phosphorus)
	assert.Equal(t, 5.0, clipped.Temperature)
	assert.Equal(t, 3000.0, clipped.Rainfall)
	assert.Equal(t, 65.0, clipped.Humidity)
}
