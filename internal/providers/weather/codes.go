package weather

import "fmt"

var codeText = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Light rain",
	63: "Moderate rain",
	65: "Heavy rain",
	80: "Showers",
	81: "Moderate showers",
	82: "Violent showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Describe maps a WMO weather code to text.
func Describe(code int) string {
	if s, ok := codeText[code]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code %d", code)
}
