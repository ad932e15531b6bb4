// Package recommend maps a diagnosis and its score to advice lines.
package recommend

import (
	lv "netdiag/core/linguistic"
)

// SevereThreshold is the score above which the severe advice is appended
const SevereThreshold = 70.0

// SecondaryThreshold is the score above which a non-principal category earns
// a preventive line
const SecondaryThreshold = 60.0

// SupportMessage is the single recommendation returned when a diagnosis fails
const SupportMessage = "Diagnosis system error. Please contact technical support."

// Recommender produces advice for a diagnosis
type Recommender interface {
	Recommend(diagnosis string, score float64) []string
}

// Advice is the advice table entry of one category
type Advice struct {
	// Baseline is always returned
	Baseline []string `json:"baseline" yaml:"baseline"`

	// Severe is appended when the score exceeds SevereThreshold
	Severe []string `json:"severe,omitempty" yaml:"severe,omitempty"`

	// Preventive is used when the category is not the principal diagnosis
	// but still scores above SecondaryThreshold
	Preventive string `json:"preventive,omitempty" yaml:"preventive,omitempty"`
}

// Table is an immutable recommendation table
type Table struct {
	entries map[string]Advice
}

// NewTable creates a table from entries. The entries are copied.
func NewTable(entries map[string]Advice) *Table {
	t := &Table{entries: make(map[string]Advice, len(entries))}
	for k, a := range entries {
		t.entries[k] = Advice{
			Baseline:   append([]string(nil), a.Baseline...),
			Severe:     append([]string(nil), a.Severe...),
			Preventive: a.Preventive,
		}
	}
	return t
}

// Recommend returns the baseline advice of diagnosis, plus its severe advice
// when score > SevereThreshold. Unknown categories yield an empty list.
// The returned slice is fresh on every call.
func (t *Table) Recommend(diagnosis string, score float64) []string {
	a, ok := t.entries[diagnosis]
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(a.Baseline)+len(a.Severe))
	out = append(out, a.Baseline...)
	if score > SevereThreshold {
		out = append(out, a.Severe...)
	}
	return out
}

// Secondary returns one preventive line for every category other than
// principal whose score exceeds SecondaryThreshold, in the given order.
func (t *Table) Secondary(principal string, order []string, scores map[string]float64) []string {
	out := []string{}
	for _, name := range order {
		if name == principal || !(scores[name] > SecondaryThreshold) {
			continue
		}
		if a, ok := t.entries[name]; ok && a.Preventive != "" {
			out = append(out, a.Preventive)
		}
	}
	return out
}

// Has reports whether the table carries advice for a category
func (t *Table) Has(diagnosis string) bool {
	_, ok := t.entries[diagnosis]
	return ok
}

// Default returns the advice for the shipped output categories
func Default() *Table {
	return NewTable(map[string]Advice{
		lv.RouterFailure: {
			Baseline: []string{
				"Restart the router and check the physical connections.",
				"Check whether firmware updates are available for the router.",
			},
			Severe: []string{
				"Consider replacing the router if it is old or shows signs of failure.",
				"Check for electromagnetic interference near the router.",
			},
			Preventive: "Perform preventive maintenance on the network equipment.",
		},
		lv.ISPFailure: {
			Baseline: []string{
				"Contact the Internet service provider (ISP) to report the problem.",
				"Check for scheduled maintenance or outages in the area.",
			},
			Severe: []string{
				"Request a technical inspection from the ISP.",
				"Consider a temporary alternative Internet provider for critical tasks.",
			},
			Preventive: "Check the service status with the ISP as a preventive measure.",
		},
		lv.DNSProblem: {
			Baseline: []string{
				"Check the DNS configuration on the affected devices.",
				"Consider alternative DNS servers (such as Google 8.8.8.8 or Cloudflare 1.1.1.1).",
			},
			Severe: []string{
				"Check for malware affecting DNS resolution.",
				"Check for conflicts with the firewall or security software.",
			},
			Preventive: "Configure alternative DNS servers as a fallback.",
		},
		lv.WeakWiFi: {
			Baseline: []string{
				"Check where the Wi-Fi router is placed and consider moving it.",
				"Check for interference from other electronic devices or nearby networks.",
			},
			Severe: []string{
				"Install Wi-Fi repeaters in areas with a weak signal.",
				"Consider upgrading to a router with better coverage or newer technology.",
			},
			Preventive: "Assess Wi-Fi coverage across all work areas.",
		},
		lv.LocalCongestion: {
			Baseline: []string{
				"Look for devices or applications consuming excessive bandwidth.",
				"Apply QoS (Quality of Service) policies to prioritise critical traffic.",
			},
			Severe: []string{
				"Segment the network to spread traffic more evenly.",
				"Consider increasing the capacity of the network equipment.",
			},
			Preventive: "Monitor bandwidth usage to identify consumption peaks.",
		},
		lv.ServerSaturation: {
			Baseline: []string{
				"Review the server load and the processes consuming resources.",
				"Optimise the applications running on the server.",
			},
			Severe: []string{
				"Consider increasing server capacity or adding load balancing.",
				"Schedule heavy workloads for off-peak hours.",
			},
			Preventive: "Track server load trends to anticipate saturation.",
		},
		lv.NoFault: {
			Baseline: []string{
				"No significant network problems detected.",
				"Carry out periodic preventive maintenance to avoid future problems.",
			},
		},
	})
}
