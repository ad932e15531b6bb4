package linguistic

import "netdiag/core/membership"

// Input variable names
const (
	Connection  = "connection"
	UploadSpeed = "upload_speed"
	PacketLoss  = "packet_loss"
	DNSErrors   = "dns_errors"
	WiFiSignal  = "wifi_signal"
)

// Output variable names, in the order used to break ties
const (
	RouterFailure    = "router_failure"
	ISPFailure       = "isp_failure"
	DNSProblem       = "dns_problem"
	WeakWiFi         = "weak_wifi"
	LocalCongestion  = "local_congestion"
	ServerSaturation = "server_saturation"
	NoFault          = "no_fault"
)

// Certainty terms shared by every output variable
const (
	Improbable = "improbable"
	Possible   = "possible"
	Probable   = "probable"
)

// DefaultInputs returns the five symptom variables
func DefaultInputs() []Variable {
	tri, trap := membership.Triangular, membership.Trapezoidal

	return []Variable{
		{
			Name: Connection, Label: "Connection", Unit: "%", Min: 0, Max: 100,
			Terms: []Term{
				{Name: "inexistente", Function: trap(0, 0, 20, 30)},
				{Name: "intermitente", Function: tri(20, 50, 80)},
				{Name: "estable", Function: trap(70, 90, 100, 100)},
			},
		},
		{
			Name: UploadSpeed, Label: "Upload speed", Unit: "Mbps", Min: 0, Max: 10,
			Terms: []Term{
				{Name: "baja", Function: trap(0, 0, 2, 3)},
				{Name: "media", Function: tri(2, 4.5, 7)},
				{Name: "alta", Function: trap(6, 7, 10, 10)},
			},
		},
		{
			Name: PacketLoss, Label: "Packet loss", Unit: "%", Min: 0, Max: 30,
			Terms: []Term{
				{Name: "ninguna", Function: tri(0, 0, 1)},
				{Name: "moderada", Function: tri(1, 8, 15)},
				{Name: "alta", Function: trap(15, 20, 30, 30)},
			},
		},
		{
			Name: DNSErrors, Label: "DNS errors", Unit: "per hour", Min: 0, Max: 10,
			Terms: []Term{
				{Name: "inexistente", Function: tri(0, 0, 0.5)},
				{Name: "ocasional", Function: tri(0.5, 2, 3)},
				{Name: "frecuente", Function: trap(3, 5, 10, 10)},
			},
		},
		{
			Name: WiFiSignal, Label: "Wi-Fi signal", Unit: "%", Min: 0, Max: 100,
			Terms: []Term{
				{Name: "debil", Function: trap(0, 0, 30, 50)},
				{Name: "media", Function: tri(30, 60, 80)},
				{Name: "fuerte", Function: trap(70, 90, 100, 100)},
			},
		},
	}
}

// DefaultOutputs returns the seven diagnosis variables in tie-break order
func DefaultOutputs() []Variable {
	labels := []struct{ name, label string }{
		{RouterFailure, "Router failure"},
		{ISPFailure, "ISP failure"},
		{DNSProblem, "DNS problem"},
		{WeakWiFi, "Weak Wi-Fi signal"},
		{LocalCongestion, "Local network congestion"},
		{ServerSaturation, "Internal server saturation"},
		{NoFault, "No fault detected"},
	}

	outputs := make([]Variable, len(labels))
	for i, l := range labels {
		outputs[i] = Variable{
			Name:  l.name,
			Label: l.label,
			Unit:  "certainty",
			Min:   0,
			Max:   100,
			Terms: CertaintyTerms(),
		}
	}
	return outputs
}

// CertaintyTerms returns the improbable/possible/probable terms over [0,100]
func CertaintyTerms() []Term {
	return []Term{
		{Name: Improbable, Function: membership.Triangular(0, 0, 50)},
		{Name: Possible, Function: membership.Triangular(25, 50, 75)},
		{Name: Probable, Function: membership.Triangular(50, 100, 100)},
	}
}

// Default builds the registry of the shipped network diagnosis system
func Default() (*Registry, error) {
	return NewRegistry(DefaultInputs(), DefaultOutputs())
}
