package mqtt

import (
	"fmt"

	"github.com/WardenStudios/WardenBotGo/pkg/logger"
	"github.com/WardenStudios/WardenBotGo/pkg/models"
)

// TelemetrySink publishes escalation events to the MQTT broker so
// external consumers (dashboards, alerting) can follow moderation
// activity per guild.
type TelemetrySink struct {
	mc *MqttCommunicator
}

// NewTelemetrySink creates a TelemetrySink over the communicator
func NewTelemetrySink(mc *MqttCommunicator) *TelemetrySink {
	return &TelemetrySink{mc: mc}
}

// PublishEscalation publishes one escalation event. Publishing never
// fails the caller; broker errors are logged and dropped.
func (t *TelemetrySink) PublishEscalation(event models.EscalationEvent) {
	if t.mc == nil || !t.mc.IsConnected() {
		return
	}

	topic := fmt.Sprintf("wardenbot/escalations/%s", event.GuildID)
	if err := t.mc.Publish(topic, event); err != nil {
		logger.Error(fmt.Sprintf("Failed to publish escalation event: %v", err), "MQTT")
	}
}

// PublishStatus publishes the bot's lifecycle status ("online",
// "offline") to the shared status topic.
func (t *TelemetrySink) PublishStatus(status string) {
	if t.mc == nil || !t.mc.IsConnected() {
		return
	}

	if err := t.mc.Publish("wardenbot/status", map[string]string{"status": status}); err != nil {
		logger.Error(fmt.Sprintf("Failed to publish status: %v", err), "MQTT")
	}
}
