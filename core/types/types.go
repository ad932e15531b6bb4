// Package types defines the domain records shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// Symptoms is one snapshot of the five network readings
type Symptoms struct {
	// Connection availability in percent, nominally [0,100]
	Connection float64 `json:"connection"`

	// UploadSpeed in Mbps, nominally [0,10]
	UploadSpeed float64 `json:"upload_speed"`

	// PacketLoss in percent, nominally [0,30]
	PacketLoss float64 `json:"packet_loss"`

	// DNSErrors per hour, nominally [0,10]
	DNSErrors float64 `json:"dns_errors"`

	// WiFiSignal strength in percent, nominally [0,100]
	WiFiSignal float64 `json:"wifi_signal"`
}

// Values returns the readings keyed by input variable name
func (s Symptoms) Values() map[string]float64 {
	return map[string]float64{
		"connection":   s.Connection,
		"upload_speed": s.UploadSpeed,
		"packet_loss":  s.PacketLoss,
		"dns_errors":   s.DNSErrors,
		"wifi_signal":  s.WiFiSignal,
	}
}

// ActivatedRule is one rule that fired during inference
type ActivatedRule struct {
	// RuleID identifies the rule
	RuleID string `json:"rule_id"`

	// Rule is the rule description
	Rule string `json:"rule"`

	// Strength is the firing strength in (0,1]
	Strength float64 `json:"strength"`
}
