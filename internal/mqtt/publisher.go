package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"wwo-weather/internal/weather"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	enabled     bool
}

type PublisherConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	Enabled     bool
}

type statusPayload struct {
	Location  string                   `json:"location"`
	Current   weather.CurrentCondition `json:"current"`
	Forecast  []weather.DayForecast    `json:"forecast"`
	Published time.Time                `json:"published"`
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return &Publisher{enabled: false}, nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(5 * time.Second).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			log.Printf("MQTT connection lost: %v", err)
		}).
		SetOnConnectHandler(func(c mqtt.Client) {
			log.Println("MQTT connected")
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: cfg.TopicPrefix,
		enabled:     true,
	}, nil
}

// Topic returns "<prefix>/<slug>/<field>" where slug is the label lower-cased
// with every run of non-alphanumerics collapsed to "_".
func Topic(prefix, label, field string) string {
	return fmt.Sprintf("%s/%s/%s", prefix, slug(label), field)
}

func slug(label string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

func (p *Publisher) Publish(label string, record *weather.Record) error {
	if !p.enabled {
		return nil
	}

	current := record.Current()
	topics := []struct {
		field string
		value string
	}{
		{"temperature_c", current.TempC},
		{"temperature_f", current.TempF},
		{"feels_like_c", current.FeelsLikeC},
		{"humidity", current.Humidity},
		{"wind_speed_mph", current.WindspeedMiles},
		{"wind_direction", current.Winddir16Point},
		{"uv_index", current.UVIndex},
		{"visibility_km", current.Visibility},
		{"description", current.Description()},
	}

	for _, t := range topics {
		topic := Topic(p.topicPrefix, label, t.field)
		token := p.client.Publish(topic, 0, false, t.value)
		token.Wait()
		if token.Error() != nil {
			log.Printf("Failed to publish to %s: %v", topic, token.Error())
		}
	}

	statusJSON, err := json.Marshal(statusPayload{
		Location:  label,
		Current:   current,
		Forecast:  record.Weather,
		Published: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	statusTopic := Topic(p.topicPrefix, label, "status")
	token := p.client.Publish(statusTopic, 0, true, statusJSON)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish status: %w", token.Error())
	}

	return nil
}

func (p *Publisher) IsConnected() bool {
	if !p.enabled {
		return false
	}
	return p.client.IsConnected()
}

func (p *Publisher) Close() {
	if p.enabled && p.client != nil {
		p.client.Disconnect(1000)
	}
}
