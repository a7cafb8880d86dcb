package models

// WeatherKind is the small fixed classification derived from WMO weather codes.
type WeatherKind string

const (
	WeatherClear        WeatherKind = "clear"
	WeatherPartlyCloudy WeatherKind = "partly_cloudy"
	WeatherRain         WeatherKind = "rain"
	WeatherSnow         WeatherKind = "snow"
	WeatherWindy        WeatherKind = "windy"
)

// WeatherReport is the condensed current-weather answer shown next to the
// directory.
type WeatherReport struct {
	Temperature float64     `json:"temperature"`
	WeatherCode int         `json:"weathercode"`
	WindSpeed   float64     `json:"windspeed"`
	VisibilityM float64     `json:"visibility_m"`
	Kind        WeatherKind `json:"kind"`
}
