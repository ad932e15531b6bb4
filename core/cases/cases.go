// Package cases holds the built-in demonstration cases.
package cases

import (
	lv "netdiag/core/linguistic"
	"netdiag/core/types"
)

// Case is a named symptom snapshot
type Case struct {
	// ID is a short stable identifier
	ID string `json:"id" yaml:"id"`

	// Name is the display name
	Name string `json:"name" yaml:"name"`

	// Symptoms are the readings of the case
	Symptoms types.Symptoms `json:"symptoms" yaml:"symptoms"`

	// Expected is the diagnosis the shipped rules must produce, empty when
	// the case is illustrative only
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// Builtin returns the built-in cases in display order
func Builtin() []Case {
	return []Case{
		{
			ID:       "isp",
			Name:     "ISP or router fault",
			Symptoms: types.Symptoms{UploadSpeed: 1.5, PacketLoss: 18, DNSErrors: 0.2, WiFiSignal: 85, Connection: 40},
			Expected: lv.RouterFailure,
		},
		{
			ID:       "dns",
			Name:     "DNS fault",
			Symptoms: types.Symptoms{UploadSpeed: 5, PacketLoss: 3, DNSErrors: 7, WiFiSignal: 75, Connection: 60},
			Expected: lv.DNSProblem,
		},
		{
			ID:       "healthy",
			Name:     "Healthy network",
			Symptoms: types.Symptoms{UploadSpeed: 10, PacketLoss: 0, DNSErrors: 0, WiFiSignal: 100, Connection: 100},
			Expected: lv.NoFault,
		},
		{
			ID:       "wifi",
			Name:     "Weak Wi-Fi",
			Symptoms: types.Symptoms{UploadSpeed: 2.8, PacketLoss: 5, DNSErrors: 0.1, WiFiSignal: 25, Connection: 55},
			Expected: lv.WeakWiFi,
		},
		{
			ID:       "uplink",
			Name:     "Saturated uplink",
			Symptoms: types.Symptoms{UploadSpeed: 1.2, PacketLoss: 12, DNSErrors: 0.3, WiFiSignal: 90, Connection: 35},
			Expected: lv.ServerSaturation,
		},
		{
			ID:       "congestion",
			Name:     "Local congestion",
			Symptoms: types.Symptoms{UploadSpeed: 2.5, PacketLoss: 8, DNSErrors: 1, WiFiSignal: 65, Connection: 75},
		},
	}
}

// Find returns the built-in case with the given id
func Find(id string) (Case, bool) {
	for _, c := range Builtin() {
		if c.ID == id {
			return c, true
		}
	}
	return Case{}, false
}
