package rules

import (
	lv "netdiag/core/linguistic"
)

func then(variable, term string) Ref {
	return Ref{Variable: variable, Term: term}
}

// Default returns the shipped rule set: 12 single-symptom rules, 13
// two-symptom rules and 6 three-symptom rules, in evaluation order.
func Default() []Rule {
	lossHigh := Is(lv.PacketLoss, "alta")
	lossModerate := Is(lv.PacketLoss, "moderada")
	dnsFrequent := Is(lv.DNSErrors, "frecuente")
	dnsOccasional := Is(lv.DNSErrors, "ocasional")
	uploadLow := Is(lv.UploadSpeed, "baja")
	uploadMedium := Is(lv.UploadSpeed, "media")
	uploadHigh := Is(lv.UploadSpeed, "alta")
	wifiWeak := Is(lv.WiFiSignal, "debil")
	wifiMedium := Is(lv.WiFiSignal, "media")
	wifiStrong := Is(lv.WiFiSignal, "fuerte")
	connDown := Is(lv.Connection, "inexistente")
	connFlaky := Is(lv.Connection, "intermitente")
	connStable := Is(lv.Connection, "estable")

	return []Rule{
		// single symptom
		{ID: "R1", Description: "R1: IF packet loss IS alta THEN router failure IS probable",
			When: lossHigh, Then: then(lv.RouterFailure, lv.Probable)},
		{ID: "R2", Description: "R2: IF packet loss IS alta THEN ISP failure IS probable",
			When: lossHigh, Then: then(lv.ISPFailure, lv.Probable)},
		{ID: "R3", Description: "R3: IF packet loss IS moderada THEN local congestion IS possible",
			When: lossModerate, Then: then(lv.LocalCongestion, lv.Possible)},
		{ID: "R4", Description: "R4: IF DNS errors IS frecuente THEN DNS problem IS probable",
			When: dnsFrequent, Then: then(lv.DNSProblem, lv.Probable)},
		{ID: "R5", Description: "R5: IF DNS errors IS ocasional THEN DNS problem IS possible",
			When: dnsOccasional, Then: then(lv.DNSProblem, lv.Possible)},
		{ID: "R6", Description: "R6: IF upload speed IS baja THEN server saturation IS probable",
			When: uploadLow, Then: then(lv.ServerSaturation, lv.Probable)},
		{ID: "R7", Description: "R7: IF upload speed IS media THEN server saturation IS possible",
			When: uploadMedium, Then: then(lv.ServerSaturation, lv.Possible)},
		{ID: "R8", Description: "R8: IF Wi-Fi signal IS debil THEN weak Wi-Fi IS probable",
			When: wifiWeak, Then: then(lv.WeakWiFi, lv.Probable)},
		{ID: "R9", Description: "R9: IF Wi-Fi signal IS media THEN weak Wi-Fi IS possible",
			When: wifiMedium, Then: then(lv.WeakWiFi, lv.Possible)},
		{ID: "R10", Description: "R10: IF connection IS intermitente THEN ISP failure IS possible",
			When: connFlaky, Then: then(lv.ISPFailure, lv.Possible)},
		{ID: "R11", Description: "R11: IF connection IS inexistente THEN ISP failure IS probable",
			When: connDown, Then: then(lv.ISPFailure, lv.Probable)},
		{ID: "R12", Description: "R12: IF connection IS estable THEN no fault IS probable",
			When: connStable, Then: then(lv.NoFault, lv.Probable)},

		// two symptoms
		{ID: "R13", Description: "R13: IF packet loss IS alta AND connection IS intermitente THEN ISP failure IS probable",
			When: All(lossHigh, connFlaky), Then: then(lv.ISPFailure, lv.Probable)},
		{ID: "R14", Description: "R14: IF packet loss IS alta AND upload speed IS baja THEN ISP failure IS probable",
			When: All(lossHigh, uploadLow), Then: then(lv.ISPFailure, lv.Probable)},
		{ID: "R15", Description: "R15: IF packet loss IS alta AND Wi-Fi signal IS debil THEN router failure IS probable",
			When: All(lossHigh, wifiWeak), Then: then(lv.RouterFailure, lv.Probable)},
		{ID: "R16", Description: "R16: IF upload speed IS baja AND DNS errors IS frecuente THEN DNS problem IS possible",
			When: All(uploadLow, dnsFrequent), Then: then(lv.DNSProblem, lv.Possible)},
		{ID: "R17", Description: "R17: IF upload speed IS baja AND Wi-Fi signal IS debil THEN weak Wi-Fi IS probable",
			When: All(uploadLow, wifiWeak), Then: then(lv.WeakWiFi, lv.Probable)},
		{ID: "R18", Description: "R18: IF upload speed IS baja AND connection IS intermitente THEN ISP failure IS probable",
			When: All(uploadLow, connFlaky), Then: then(lv.ISPFailure, lv.Probable)},
		{ID: "R19", Description: "R19: IF DNS errors IS frecuente AND connection IS intermitente THEN DNS problem IS probable",
			When: All(dnsFrequent, connFlaky), Then: then(lv.DNSProblem, lv.Probable)},
		{ID: "R20", Description: "R20: IF Wi-Fi signal IS debil AND connection IS intermitente THEN weak Wi-Fi IS probable",
			When: All(wifiWeak, connFlaky), Then: then(lv.WeakWiFi, lv.Probable)},
		{ID: "R21", Description: "R21: IF Wi-Fi signal IS debil AND packet loss IS moderada THEN local congestion IS possible",
			When: All(wifiWeak, lossModerate), Then: then(lv.LocalCongestion, lv.Possible)},
		{ID: "R22", Description: "R22: IF connection IS inexistente AND DNS errors IS frecuente THEN DNS problem IS probable",
			When: All(connDown, dnsFrequent), Then: then(lv.DNSProblem, lv.Probable)},
		{ID: "R23", Description: "R23: IF connection IS inexistente AND packet loss IS alta THEN ISP failure IS probable",
			When: All(connDown, lossHigh), Then: then(lv.ISPFailure, lv.Probable)},
		{ID: "R24", Description: "R24: IF upload speed IS media AND Wi-Fi signal IS media THEN weak Wi-Fi IS possible",
			When: All(uploadMedium, wifiMedium), Then: then(lv.WeakWiFi, lv.Possible)},
		{ID: "R25", Description: "R25: IF upload speed IS media AND DNS errors IS ocasional THEN DNS problem IS possible",
			When: All(uploadMedium, dnsOccasional), Then: then(lv.DNSProblem, lv.Possible)},

		// three symptoms
		{ID: "R26", Description: "R26: IF packet loss IS alta AND upload speed IS baja AND connection IS intermitente THEN ISP failure IS probable",
			When: All(lossHigh, uploadLow, connFlaky), Then: then(lv.ISPFailure, lv.Probable)},
		{ID: "R27", Description: "R27: IF packet loss IS alta AND DNS errors IS frecuente AND connection IS intermitente THEN DNS problem IS probable",
			When: All(lossHigh, dnsFrequent, connFlaky), Then: then(lv.DNSProblem, lv.Probable)},
		{ID: "R28", Description: "R28: IF Wi-Fi signal IS debil AND upload speed IS baja AND DNS errors IS ocasional THEN weak Wi-Fi IS possible",
			When: All(wifiWeak, uploadLow, dnsOccasional), Then: then(lv.WeakWiFi, lv.Possible)},
		{ID: "R29", Description: "R29: IF packet loss IS moderada AND upload speed IS media AND connection IS intermitente THEN local congestion IS possible",
			When: All(lossModerate, uploadMedium, connFlaky), Then: then(lv.LocalCongestion, lv.Possible)},
		{ID: "R30", Description: "R30: IF DNS errors IS frecuente AND upload speed IS baja AND Wi-Fi signal IS debil THEN DNS problem IS probable",
			When: All(dnsFrequent, uploadLow, wifiWeak), Then: then(lv.DNSProblem, lv.Probable)},
		{ID: "R31", Description: "R31: IF connection IS estable AND upload speed IS alta AND Wi-Fi signal IS fuerte THEN no fault IS probable",
			When: All(connStable, uploadHigh, wifiStrong), Then: then(lv.NoFault, lv.Probable)},
	}
}
