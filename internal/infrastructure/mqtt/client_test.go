package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quennell/appliancelink/internal/infrastructure/config"
)

// Tests in this file require a Mosquitto broker at 127.0.0.1:1883.

// brokerConfig returns a broker configuration with the given client id.
func brokerConfig(clientID string) config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: clientID,
			TLS:      false,
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

// connectTestClient connects a client and closes it when the test ends.
func connectTestClient(t *testing.T, clientID string) *Client {
	t.Helper()
	client, err := Connect(brokerConfig(clientID))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { client.Close() }) //nolint:errcheck // Test cleanup
	return client
}

func TestConnect(t *testing.T) {
	t.Run("connects to local broker", func(t *testing.T) {
		client := connectTestClient(t, "al-test-connect")
		if !client.IsConnected() {
			t.Error("IsConnected() = false after Connect()")
		}
	})

	t.Run("refused port", func(t *testing.T) {
		cfg := brokerConfig("al-test-refused")
		cfg.Broker.Port = 19999
		_, err := Connect(cfg)
		if !errors.Is(err, ErrConnectionFailed) {
			t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
		}
	})
}

func TestClose(t *testing.T) {
	t.Run("disconnects", func(t *testing.T) {
		client, err := Connect(brokerConfig("al-test-close"))
		if err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		if err := client.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
		if client.IsConnected() {
			t.Error("IsConnected() = true after Close()")
		}
	})

	t.Run("zero client is a no-op", func(t *testing.T) {
		if err := (&Client{}).Close(); err != nil {
			t.Errorf("Close() on zero client error = %v", err)
		}
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy while connected", func(t *testing.T) {
		client := connectTestClient(t, "al-test-health")
		if err := client.HealthCheck(context.Background()); err != nil {
			t.Errorf("HealthCheck() error = %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := connectTestClient(t, "al-test-health-ctx")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := client.HealthCheck(ctx); err == nil {
			t.Error("HealthCheck() should fail for cancelled context")
		}
	})

	t.Run("fails after close", func(t *testing.T) {
		client, err := Connect(brokerConfig("al-test-health-closed"))
		if err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		client.Close() //nolint:errcheck // Closing on purpose
		if err := client.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
			t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
		}
	})
}

func TestPublish(t *testing.T) {
	client := connectTestClient(t, "al-test-publish")

	t.Run("command payload", func(t *testing.T) {
		topic := Topics{}.ApplianceCommand("wm-1")
		err := client.Publish(topic, []byte(`{"entity":"wm-1_switch_uilockmode","action":"on"}`), 1, false)
		if err != nil {
			t.Errorf("Publish() error = %v", err)
		}
	})

	t.Run("retained snapshot at default QoS", func(t *testing.T) {
		topic := Topics{}.ApplianceState("wm-1")
		if err := client.PublishRetained(topic, []byte(`{"connectionState":"connected"}`)); err != nil {
			t.Errorf("PublishRetained() error = %v", err)
		}
	})

	t.Run("empty payload is valid", func(t *testing.T) {
		if err := client.Publish(Topics{}.ApplianceConnection("wm-1"), nil, 1, false); err != nil {
			t.Errorf("Publish() with nil payload error = %v", err)
		}
	})

	t.Run("empty topic", func(t *testing.T) {
		if err := client.Publish("", []byte("x"), 1, false); !errors.Is(err, ErrInvalidTopic) {
			t.Errorf("Publish() error = %v, want ErrInvalidTopic", err)
		}
	})

	t.Run("QoS out of range", func(t *testing.T) {
		if err := client.Publish(Topics{}.Appliances(), []byte("x"), 3, false); !errors.Is(err, ErrInvalidQoS) {
			t.Errorf("Publish() error = %v, want ErrInvalidQoS", err)
		}
	})

	t.Run("oversized payload", func(t *testing.T) {
		huge := make([]byte, maxPayloadSize+1)
		if err := client.Publish(Topics{}.Appliances(), huge, 1, false); !errors.Is(err, ErrPublishFailed) {
			t.Errorf("Publish() error = %v, want ErrPublishFailed", err)
		}
	})
}

func TestPublishDisconnected(t *testing.T) {
	client, err := Connect(brokerConfig("al-test-pub-closed"))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	client.Close() //nolint:errcheck // Closing on purpose

	err = client.Publish(Topics{}.ApplianceState("wm-1"), []byte("{}"), 1, false)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Publish() error = %v, want ErrNotConnected", err)
	}
}

func TestSubscribe(t *testing.T) {
	client := connectTestClient(t, "al-test-subscribe")
	noop := func(string, []byte) error { return nil }

	t.Run("command wildcard", func(t *testing.T) {
		if err := client.Subscribe(Topics{}.AllApplianceCommands(), 1, noop); err != nil {
			t.Errorf("Subscribe() error = %v", err)
		}
	})

	t.Run("empty topic", func(t *testing.T) {
		if err := client.Subscribe("", 1, noop); !errors.Is(err, ErrInvalidTopic) {
			t.Errorf("Subscribe() error = %v, want ErrInvalidTopic", err)
		}
	})

	t.Run("QoS out of range", func(t *testing.T) {
		if err := client.Subscribe(Topics{}.AllApplianceStates(), 3, noop); !errors.Is(err, ErrInvalidQoS) {
			t.Errorf("Subscribe() error = %v, want ErrInvalidQoS", err)
		}
	})

	t.Run("nil handler", func(t *testing.T) {
		if err := client.Subscribe(Topics{}.AllApplianceStates(), 1, nil); !errors.Is(err, ErrSubscribeFailed) {
			t.Errorf("Subscribe() error = %v, want ErrSubscribeFailed", err)
		}
	})
}

func TestSubscribeDisconnected(t *testing.T) {
	client, err := Connect(brokerConfig("al-test-sub-closed"))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	client.Close() //nolint:errcheck // Closing on purpose

	err = client.Subscribe(Topics{}.AllApplianceCommands(), 1, func(string, []byte) error { return nil })
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Subscribe() error = %v, want ErrNotConnected", err)
	}
}

func TestCommandRoundtrip(t *testing.T) {
	gateway := connectTestClient(t, "al-test-gw")
	host := connectTestClient(t, "al-test-host")

	received := make(chan string, 1)
	err := gateway.Subscribe(Topics{}.AllApplianceCommands(), 1, func(topic string, payload []byte) error {
		select {
		case received <- string(payload):
		default:
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	command := `{"entity":"wm-1_number_remindertime","action":"set","value":45}`
	if err := host.Publish(Topics{}.ApplianceCommand("wm-1"), []byte(command), 1, false); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case got := <-received:
		if got != command {
			t.Errorf("received = %q, want %q", got, command)
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for command")
	}
}

func TestWildcardStateFanIn(t *testing.T) {
	gateway := connectTestClient(t, "al-test-fan-gw")
	host := connectTestClient(t, "al-test-fan-host")

	var mu sync.Mutex
	seen := make(map[string]bool)
	err := host.Subscribe(Topics{}.AllApplianceStates(), 1, func(topic string, payload []byte) error {
		mu.Lock()
		seen[topic] = true
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	for _, id := range []string{"wm-1", "ov-1", "dw-1"} {
		if err := gateway.PublishRetained(Topics{}.ApplianceState(id), []byte(`{"connectionState":"connected"}`)); err != nil {
			t.Fatalf("PublishRetained(%s) error = %v", id, err)
		}
	}
	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, id := range []string{"wm-1", "ov-1", "dw-1"} {
		if !seen[Topics{}.ApplianceState(id)] {
			t.Errorf("no state received for %s", id)
		}
	}
}

func TestHandlerFailureLogged(t *testing.T) {
	client := connectTestClient(t, "al-test-handler-err")
	logger := &mockLogger{}
	client.SetLogger(logger)

	topic := Topics{}.ApplianceCommand("wm-err")
	handled := make(chan struct{}, 1)
	err := client.Subscribe(topic, 1, func(string, []byte) error {
		select {
		case handled <- struct{}{}:
		default:
		}
		return errors.New("malformed command")
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := client.Publish(topic, []byte("not json"), 1, false); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}

	// The warn is written after the handler returns; give it a moment.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if logger.warnCount() > 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("handler error was not logged")
}

func TestStatusPayload(t *testing.T) {
	var msg statusMessage
	if err := json.Unmarshal(statusPayload("offline", "al-gw", "graceful_shutdown"), &msg); err != nil {
		t.Fatalf("unmarshalling status: %v", err)
	}
	if msg.Status != "offline" || msg.ClientID != "al-gw" || msg.Reason != "graceful_shutdown" {
		t.Errorf("status = %+v", msg)
	}
	if _, err := time.Parse(time.RFC3339, msg.Timestamp); err != nil {
		t.Errorf("timestamp %q not RFC3339: %v", msg.Timestamp, err)
	}

	online := statusPayload("online", "al-gw", "")
	if string(online) == "" {
		t.Fatal("empty online payload")
	}
	var raw map[string]any
	if err := json.Unmarshal(online, &raw); err != nil {
		t.Fatalf("unmarshalling online status: %v", err)
	}
	if _, ok := raw["reason"]; ok {
		t.Error("online status should omit the reason field")
	}
}

func TestIsConnectedZeroClient(t *testing.T) {
	if (&Client{}).IsConnected() {
		t.Error("IsConnected() should be false for a zero client")
	}
}

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ApplianceState", Topics{}.ApplianceState("wm-1"), "appliancelink/appliance/wm-1/state"},
		{"ApplianceConnection", Topics{}.ApplianceConnection("wm-1"), "appliancelink/appliance/wm-1/connection"},
		{"EntityState", Topics{}.EntityState("wm-1", "wm-1_number_timetoend"), "appliancelink/appliance/wm-1/entity/wm-1_number_timetoend/state"},
		{"ApplianceCommand", Topics{}.ApplianceCommand("wm-1"), "appliancelink/appliance/wm-1/command"},
		{"Appliances", Topics{}.Appliances(), "appliancelink/appliances"},
		{"SystemStatus", Topics{}.SystemStatus(), "appliancelink/system/status"},
		{"AllApplianceStates", Topics{}.AllApplianceStates(), "appliancelink/appliance/+/state"},
		{"AllApplianceCommands", Topics{}.AllApplianceCommands(), "appliancelink/appliance/+/command"},
		{"AllTopics", Topics{}.AllTopics(), "appliancelink/#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
}

// mockLogger captures handler error logging.
type mockLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
}

func (l *mockLogger) Error(msg string, args ...any) {
	l.mu.Lock()
	l.errors = append(l.errors, msg)
	l.mu.Unlock()
}

func (l *mockLogger) Warn(msg string, args ...any) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}

func (l *mockLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}
