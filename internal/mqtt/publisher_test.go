package mqtt

import (
	"testing"

	"wwo-weather/internal/weather"
)

func TestTopic(t *testing.T) {
	tests := []struct {
		label string
		field string
		want  string
	}{
		{"Paris, France", "temperature_c", "wwo/paris_france/temperature_c"},
		{"New York, United States of America", "status", "wwo/new_york_united_states_of_america/status"},
		{"48.85,2.35", "humidity", "wwo/48_85_2_35/humidity"},
		{"  São Paulo  ", "uv_index", "wwo/são_paulo/uv_index"},
		{"", "status", "wwo/unknown/status"},
		{"---", "status", "wwo/unknown/status"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Topic("wwo", tt.label, tt.field); got != tt.want {
				t.Errorf("Topic(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestDisabledPublisher(t *testing.T) {
	p, err := NewPublisher(PublisherConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}

	record := &weather.Record{
		CurrentCondition: []weather.CurrentCondition{{
			WeatherDesc: []weather.Description{{Value: "Sunny"}},
		}},
	}
	if err := p.Publish("London", record); err != nil {
		t.Errorf("Publish() on disabled publisher = %v, want nil", err)
	}
	if p.IsConnected() {
		t.Error("disabled publisher should not report connected")
	}
	p.Close()
}
