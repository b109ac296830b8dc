package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wwo-weather/internal/collector"
	"wwo-weather/internal/storage"
	"wwo-weather/internal/weather"
)

type fakeCollector struct {
	err   error
	query weather.Query
}

func (f *fakeCollector) Collect(ctx context.Context, q weather.Query) (*collector.Result, error) {
	f.query = q
	if f.err != nil {
		return nil, f.err
	}
	return &collector.Result{
		Query: q,
		Label: "Paris, France",
		Record: &weather.Record{
			CurrentCondition: []weather.CurrentCondition{{
				TempC:       "20",
				TempF:       "68",
				WeatherDesc: []weather.Description{{Value: "Sunny"}},
			}},
			Weather: []weather.DayForecast{{
				Date:     "2024-01-01",
				MaxTempC: "22",
				MinTempC: "15",
				Hourly: []weather.HourlyData{{
					WeatherDesc: []weather.Description{{Value: "Sunny"}},
				}},
			}},
		},
	}, nil
}

type fakeLister []storage.SavedLocation

func (f fakeLister) ListLocations() ([]storage.SavedLocation, error) {
	return f, nil
}

func doRequest(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := NewServer(ServerConfig{Collector: &fakeCollector{}})

	w := doRequest(t, s, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}

func TestWeatherHandler(t *testing.T) {
	fc := &fakeCollector{}
	s := NewServer(ServerConfig{Collector: fc, APIKey: "k"})

	w := doRequest(t, s, "/api/v1/weather?location=Paris&days=3")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body weatherResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Label != "Paris, France" || body.Location != "Paris" || body.Days != 3 {
		t.Errorf("body = %+v", body)
	}
	if body.Current.TempC != "20" || len(body.Forecast) != 1 {
		t.Errorf("body = %+v", body)
	}
	if fc.query.APIKey != "k" {
		t.Errorf("APIKey = %q, want k", fc.query.APIKey)
	}
}

func TestWeatherHandler_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		location string
		days     int
	}{
		{"no params", "/api/v1/weather", "London", 5},
		{"days only", "/api/v1/weather?days=2", "London", 2},
		{"bad days", "/api/v1/weather?location=Rome&days=abc", "Rome", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCollector{}
			s := NewServer(ServerConfig{Collector: fc})

			w := doRequest(t, s, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if fc.query.Location != tt.location || fc.query.Days != tt.days {
				t.Errorf("query = %+v, want %s/%d", fc.query, tt.location, tt.days)
			}
			if fc.query.APIKey != weather.SentinelAPIKey {
				t.Errorf("APIKey = %q, want sentinel", fc.query.APIKey)
			}
		})
	}
}

func TestWeatherHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"config", &weather.ConfigError{Reason: "no key"}, http.StatusServiceUnavailable},
		{"transport", &weather.TransportError{Err: errors.New("timeout")}, http.StatusGatewayTimeout},
		{"status", &weather.HTTPStatusError{StatusCode: 403, Status: "403 Forbidden"}, http.StatusBadGateway},
		{"decode", &weather.DecodeError{Err: errors.New("eof")}, http.StatusBadGateway},
		{"api", &weather.APIError{Message: "no location"}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(ServerConfig{Collector: &fakeCollector{err: tt.err}})

			w := doRequest(t, s, "/api/v1/weather?location=x")
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["kind"] != weather.Kind(tt.err) {
				t.Errorf("kind = %q, want %q", body["kind"], weather.Kind(tt.err))
			}
		})
	}
}

func TestReportHandler(t *testing.T) {
	s := NewServer(ServerConfig{Collector: &fakeCollector{}})

	w := doRequest(t, s, "/api/v1/report?location=Paris")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, want := range []string{"Paris, France — Right Now", "2024-01-01", "22°C", "N/A"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestLocationsHandler(t *testing.T) {
	s := NewServer(ServerConfig{
		Collector: &fakeCollector{},
		Locations: fakeLister{{Name: "home", Query: "48.85,2.35"}},
	})

	w := doRequest(t, s, "/api/v1/locations")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body []storage.SavedLocation
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0].Name != "home" {
		t.Errorf("body = %+v", body)
	}
}

func TestLocationsHandler_NoDatabase(t *testing.T) {
	s := NewServer(ServerConfig{Collector: &fakeCollector{}})

	w := doRequest(t, s, "/api/v1/locations")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer(ServerConfig{Collector: &fakeCollector{}})

	w := doRequest(t, s, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "wwo_app_start_time_seconds") {
		t.Error("metrics output missing wwo_app_start_time_seconds")
	}
}
