package linguistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netdiag/core/membership"
	"netdiag/internal/errors"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	inputs := reg.Inputs()
	require.Len(t, inputs, 5)
	for _, v := range inputs {
		assert.Len(t, v.Terms, 3, "input %s", v.Name)
	}

	assert.Equal(t, []string{
		RouterFailure, ISPFailure, DNSProblem, WeakWiFi,
		LocalCongestion, ServerSaturation, NoFault,
	}, reg.OutputNames())

	for _, v := range reg.Outputs() {
		assert.Equal(t, []string{Improbable, Possible, Probable}, v.TermNames(), "output %s", v.Name)
	}
}

func TestRegistryTermLookups(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.True(t, reg.HasInputTerm(WiFiSignal, "debil"))
	assert.True(t, reg.HasInputTerm(WiFiSignal, "media"))
	assert.False(t, reg.HasInputTerm(WiFiSignal, "moderada"))
	assert.False(t, reg.HasInputTerm(NoFault, Probable), "outputs are not input terms")

	assert.True(t, reg.HasOutputTerm(DNSProblem, Possible))
	assert.False(t, reg.HasOutputTerm(DNSProblem, "alta"))
	assert.False(t, reg.HasOutputTerm(PacketLoss, "alta"), "inputs are not output terms")
	assert.False(t, reg.HasOutputTerm("unknown", Probable))

	assert.Equal(t, "DNS problem", reg.Label(DNSProblem))
	assert.Equal(t, "mystery", reg.Label("mystery"))
}

func TestRegistryIsReadOnly(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	outputs := reg.Outputs()
	outputs[0].Name = "tampered"
	outputs[0].Terms[0].Function.Points[0] = 99

	assert.Equal(t, RouterFailure, reg.OutputNames()[0])
	v, ok := reg.Variable(RouterFailure)
	require.True(t, ok)
	assert.Equal(t, 0.0, v.Terms[0].Function.Points[0])
}

func TestNewRegistryRejectsBadDefinitions(t *testing.T) {
	good := func() Variable {
		return Variable{Name: "x", Min: 0, Max: 1, Terms: []Term{
			{Name: "low", Function: membership.Triangular(0, 0, 1)},
		}}
	}
	out := func() Variable {
		return Variable{Name: "y", Min: 0, Max: 100, Terms: CertaintyTerms()}
	}

	tests := []struct {
		name     string
		inputs   []Variable
		outputs  []Variable
		wantType errors.Type
	}{
		{
			name:     "no inputs",
			outputs:  []Variable{out()},
			wantType: errors.TypeConfig,
		},
		{
			name:     "no outputs",
			inputs:   []Variable{good()},
			wantType: errors.TypeConfig,
		},
		{
			name:     "duplicate variable across inputs and outputs",
			inputs:   []Variable{good()},
			outputs:  []Variable{func() Variable { v := out(); v.Name = "x"; return v }()},
			wantType: errors.TypeConfig,
		},
		{
			name: "duplicate term",
			inputs: []Variable{func() Variable {
				v := good()
				v.Terms = append(v.Terms, v.Terms[0])
				return v
			}()},
			outputs:  []Variable{out()},
			wantType: errors.TypeConfig,
		},
		{
			name:     "no terms",
			inputs:   []Variable{{Name: "empty", Max: 1}},
			outputs:  []Variable{out()},
			wantType: errors.TypeConfig,
		},
		{
			name: "malformed membership function",
			inputs: []Variable{func() Variable {
				v := good()
				v.Terms[0].Function = membership.Triangular(1, 0, 2)
				return v
			}()},
			outputs:  []Variable{out()},
			wantType: errors.TypeMembership,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.inputs, tt.outputs)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestFuzzify(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	d := reg.Fuzzify(map[string]float64{
		Connection:  40,
		UploadSpeed: 1.5,
		PacketLoss:  18,
		DNSErrors:   0.2,
		WiFiSignal:  85,
	})

	assert.Len(t, d, 5)
	assert.InDelta(t, 20.0/30.0, d.Of(Connection, "intermitente"), 1e-12)
	assert.Equal(t, 0.0, d.Of(Connection, "inexistente"))
	assert.Equal(t, 1.0, d.Of(UploadSpeed, "baja"))
	assert.InDelta(t, 0.6, d.Of(PacketLoss, "alta"), 1e-12)
	assert.InDelta(t, 0.6, d.Of(DNSErrors, "inexistente"), 1e-12)
	assert.InDelta(t, 0.75, d.Of(WiFiSignal, "fuerte"), 1e-12)
	assert.InDelta(t, 0.0, d.Of(WiFiSignal, "media"), 1e-12)

	for variable, terms := range d {
		assert.Len(t, terms, 3, "variable %s", variable)
	}
}

func TestFuzzifyOverlapIsNotNormalized(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	v, ok := reg.Variable(WiFiSignal)
	require.True(t, ok)

	degrees := v.Fuzzify(75)
	assert.InDelta(t, 0.25, degrees["media"], 1e-12)
	assert.InDelta(t, 0.25, degrees["fuerte"], 1e-12)
	assert.InDelta(t, 0.5, degrees["debil"]+degrees["media"]+degrees["fuerte"], 1e-12)
}

func TestFuzzifyMissingAndOutOfRangeValues(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	d := reg.Fuzzify(map[string]float64{WiFiSignal: 250})
	assert.Equal(t, 0.0, d.Of(WiFiSignal, "fuerte"), "out of range saturates to 0")
	assert.Equal(t, 1.0, d.Of(Connection, "inexistente"), "missing value is read as 0")
	assert.Equal(t, 0.0, d.Of("nope", "nothing"))
}
