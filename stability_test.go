package molequle

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStability(Te *testing.T) {
	cases := []struct {
		name      string
		freqs     []float64
		want      Stability
		imaginary []float64
	}{
		{"empty", []float64{}, Stable, nil},
		{"nil", nil, Stable, nil},
		{"one imaginary", []float64{-50.0, 100.0, 200.0}, Unstable, []float64{-50}},
		{"all real", []float64{50.0, 100.0, 200.0}, Stable, nil},
		{"zero mode", []float64{0, 100}, Stable, nil},
		{"negative zero", []float64{math.Copysign(0, -1), 1500}, Stable, nil},
		{"two imaginary", []float64{300, -12.5, 900, -430}, Unstable, []float64{-12.5, -430}},
		{"tiny imaginary", []float64{-1e-9}, Unstable, []float64{-1e-9}},
	}
	for _, c := range cases {
		Te.Run(c.name, func(Te *testing.T) {
			for _, E := range []float64{-1027.3, 0, -40.5, 12} {
				v, err := ClassifyStability(E, c.freqs)
				require.NoError(Te, err)
				assert.Equal(Te, c.want, v.Class)
				assert.Equal(Te, c.imaginary, v.Imaginary)
				assert.Equal(Te, E, v.GroundStateEnergy)
			}
		})
	}
}

//The energy plays no part in the decision, not even when it is not finite.
func TestClassifyStabilityIgnoresEnergy(Te *testing.T) {
	for _, E := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		v, err := ClassifyStability(E, []float64{10, 20})
		require.NoError(Te, err)
		assert.Equal(Te, Stable, v.Class)
	}
}

func TestClassifyStabilityInvalid(Te *testing.T) {
	for i, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		freqs := []float64{-50, 100, 200}
		freqs[i] = bad
		_, err := ClassifyStability(-1027.3, freqs)
		require.Error(Te, err)
		assert.True(Te, IsInvalidParameter(err))
		var perr *ParameterError
		require.True(Te, errors.As(err, &perr))
		assert.Equal(Te, i, perr.Index)
		assert.Contains(Te, err.Error(), "vibrational_frequencies_cm1[")
	}
}

func TestVerdictQualifier(Te *testing.T) {
	v, err := ClassifyStability(-1027.3, []float64{-50, 100, 200, -75})
	require.NoError(Te, err)
	assert.Equal(Te, "Unstable (imaginary frequencies)", v.Qualifier())
	assert.Equal(Te, 75.0, v.LargestImaginary())

	v, err = ClassifyStability(-1027.3, []float64{50})
	require.NoError(Te, err)
	assert.Equal(Te, "Thermodynamically Stable", v.String())
	assert.Zero(Te, v.LargestImaginary())
}

func TestVerdictJSON(Te *testing.T) {
	v, err := ClassifyStability(-1.5, []float64{-50, 100})
	require.NoError(Te, err)
	b, err := json.Marshal(v)
	require.NoError(Te, err)
	assert.JSONEq(Te, `{"class":"Unstable","imaginary_cm1":[-50],"ground_state_energy_hartree":-1.5}`, string(b))
	var v2 Verdict
	require.NoError(Te, json.Unmarshal(b, &v2))
	assert.Equal(Te, v, v2)
	assert.Error(Te, json.Unmarshal([]byte(`{"class":"Maybe"}`), &v2))
}
