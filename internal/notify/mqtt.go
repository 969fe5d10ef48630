// Package notify pushes schedule-change events to interested consumers
// over MQTT. The publisher is optional: a nil *Publisher is a no-op, so
// callers never need to branch on whether a broker is configured.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

type Publisher struct {
	client mqtt.Client
}

type scheduleChangedEvent struct {
	Kind        string `json:"kind"`
	ID          string `json:"id"`
	Description string `json:"description"`
	ChangedAt   string `json:"changed_at"`
}

func NewPublisher(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker: %w", token.Error())
	}
	return &Publisher{client: client}, nil
}

// ScheduleChanged publishes the new human-readable description for an
// entity whose stored schedule changed during a sync.
func (p *Publisher) ScheduleChanged(kind, id, description string) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(scheduleChangedEvent{
		Kind:        kind,
		ID:          id,
		Description: description,
		ChangedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	topic := fmt.Sprintf("stratus/%ss/%s/schedule", kind, id)
	token := p.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Warn().Err(token.Error()).Str("topic", topic).Msg("failed to publish schedule change")
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.client.Disconnect(250)
}
