package domain

// bandRange is a half-open frequency range [Low, High) in MHz.
type bandRange struct {
	Low   float64
	High  float64
	Label string
}

// bandPlan lists amateur allocations in ascending order. The first range that
// contains a frequency wins.
var bandPlan = []bandRange{
	{Low: 0.136, High: 0.137, Label: "2200m"},
	{Low: 0.472, High: 0.479, Label: "630m"},
	{Low: 1.8, High: 2, Label: "160m"},
	{Low: 3.5, High: 4, Label: "80m"},
	{Low: 5.2, High: 5.5, Label: "60m"},
	{Low: 7.0, High: 7.3, Label: "40m"},
	{Low: 10.1, High: 10.15, Label: "30m"}, // WARC
	{Low: 14.0, High: 14.35, Label: "20m"},
	{Low: 18.068, High: 18.168, Label: "17m"}, // WARC
	{Low: 21.0, High: 21.45, Label: "15m"},
	{Low: 24.89, High: 24.99, Label: "12m"}, // WARC
	{Low: 28.0, High: 29.7, Label: "10m"},
	{Low: 50.0, High: 54.0, Label: "6m"},
	{Low: 144.0, High: 148.0, Label: "2m"},
}

// ClassifyBand maps a frequency in MHz to its band label, e.g. 14.097 -> "20m".
// Frequencies outside every allocation (including NaN) return Unknown.
func ClassifyBand(freqMHz float64) string {
	for _, b := range bandPlan {
		if freqMHz >= b.Low && freqMHz < b.High {
			return b.Label
		}
	}
	return Unknown
}
