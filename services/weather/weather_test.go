package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopspotlight/config"
	"shopspotlight/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		code int
		want models.WeatherKind
	}{
		{0, models.WeatherClear},
		{1, models.WeatherPartlyCloudy},
		{3, models.WeatherPartlyCloudy},
		{45, models.WeatherRain},
		{61, models.WeatherRain},
		{67, models.WeatherRain},
		{71, models.WeatherSnow},
		{77, models.WeatherSnow},
		{95, models.WeatherWindy},
	}
	for _, tc := range cases {
		if got := Classify(tc.code); got != tc.want {
			t.Errorf("Classify(%d) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestCurrentParsesForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("current_weather") != "true" {
			t.Errorf("missing current_weather param in %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current_weather": {"temperature": 18.5, "windspeed": 12.3, "weathercode": 2},
			"hourly": {"visibility": [24000]}
		}`))
	}))
	defer srv.Close()

	config.AppConfig.WeatherBaseURL = srv.URL
	svc := &OpenMeteoService{Client: &http.Client{Timeout: 2 * time.Second}}

	report, err := svc.Current(context.Background(), 51.5074, -0.1278)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if report.Temperature != 18.5 || report.WindSpeed != 12.3 {
		t.Fatalf("unexpected report values: %+v", report)
	}
	if report.Kind != models.WeatherPartlyCloudy {
		t.Fatalf("expected partly_cloudy, got %s", report.Kind)
	}
	if report.VisibilityM != 24000 {
		t.Fatalf("expected visibility 24000, got %f", report.VisibilityM)
	}
}

func TestCurrentDefaultsVisibility(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_weather": {"temperature": 2.0, "windspeed": 40.0, "weathercode": 99}}`))
	}))
	defer srv.Close()

	config.AppConfig.WeatherBaseURL = srv.URL
	svc := &OpenMeteoService{Client: &http.Client{Timeout: 2 * time.Second}}

	report, err := svc.Current(context.Background(), 51.5074, -0.1278)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if report.VisibilityM != defaultVisibilityM {
		t.Fatalf("expected default visibility, got %f", report.VisibilityM)
	}
	if report.Kind != models.WeatherWindy {
		t.Fatalf("expected windy for code 99, got %s", report.Kind)
	}
}

func TestCurrentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	config.AppConfig.WeatherBaseURL = srv.URL
	svc := &OpenMeteoService{Client: &http.Client{Timeout: 2 * time.Second}}

	if _, err := svc.Current(context.Background(), 51.5074, -0.1278); err == nil {
		t.Fatal("expected an error on upstream failure")
	}
}
