package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/infrastructure/config"
)

// testConfig returns a valid MQTT configuration for testing.
func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "graylogic-access-test",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := testConfig()
	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 || opts.Servers[0].String() != "tcp://127.0.0.1:1883" {
		t.Errorf("Servers = %v, want [tcp://127.0.0.1:1883]", opts.Servers)
	}
	if opts.ClientID != "graylogic-access-test" {
		t.Errorf("ClientID = %q", opts.ClientID)
	}
	if opts.Username != "" {
		t.Errorf("Username = %q, want empty", opts.Username)
	}
	if !opts.CleanSession || !opts.AutoReconnect {
		t.Error("expected clean session with auto reconnect")
	}
	if opts.MaxReconnectInterval != 5*time.Second {
		t.Errorf("MaxReconnectInterval = %v, want 5s", opts.MaxReconnectInterval)
	}
	if opts.TLSConfig != nil && opts.TLSConfig.MinVersion != 0 {
		t.Error("TLS configured for a plain connection")
	}
}

func TestBuildClientOptions_AuthAndTLS(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.TLS = true
	cfg.Broker.Port = 8883
	cfg.Auth.Username = "door"
	cfg.Auth.Password = "secret"

	opts := buildClientOptions(cfg)

	if opts.Servers[0].String() != "ssl://127.0.0.1:8883" {
		t.Errorf("Server = %v, want ssl://127.0.0.1:8883", opts.Servers[0])
	}
	if opts.Username != "door" || opts.Password != "secret" {
		t.Errorf("credentials = %q/%q", opts.Username, opts.Password)
	}
	if opts.TLSConfig == nil || opts.TLSConfig.MinVersion != tlsMinVersion {
		t.Errorf("TLSConfig = %+v, want MinVersion TLS1.2", opts.TLSConfig)
	}
}

func TestConfigureLWT(t *testing.T) {
	cfg := testConfig()
	c := newClient(cfg, "front")

	if !c.options.WillEnabled {
		t.Fatal("LWT not enabled")
	}
	if c.options.WillTopic != "graylogic/access/front/status" {
		t.Errorf("WillTopic = %q", c.options.WillTopic)
	}
	if !c.options.WillRetained || c.options.WillQos != 1 {
		t.Errorf("Will retained=%v qos=%d, want true/1", c.options.WillRetained, c.options.WillQos)
	}

	var got statusPayload
	if err := json.Unmarshal(c.options.WillPayload, &got); err != nil {
		t.Fatalf("will payload not JSON: %v", err)
	}
	if got.Status != statusOffline || got.Reason != "unexpected_disconnect" {
		t.Errorf("will payload = %+v", got)
	}
}

func TestBuildStatusPayload(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := buildStatusPayload(statusOnline, `quote"id`, "", at)

	var got statusPayload
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("payload not JSON: %v (%s)", err, raw)
	}
	if got.ClientID != `quote"id` {
		t.Errorf("ClientID = %q", got.ClientID)
	}
	if got.Timestamp != "2026-03-01T12:00:00Z" {
		t.Errorf("Timestamp = %q", got.Timestamp)
	}
	if strings.Contains(raw, "reason") {
		t.Errorf("empty reason should be omitted: %s", raw)
	}
}

func TestValidatePublish(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{"ok", "a/b", []byte("x"), 1, nil},
		{"nil payload", "a/b", nil, 0, nil},
		{"empty topic", "", nil, 0, ErrInvalidTopic},
		{"bad qos", "a/b", nil, 3, ErrInvalidQoS},
		{"too large", "a/b", make([]byte, maxPayloadSize+1), 0, ErrPublishFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePublish(tt.topic, tt.payload, tt.qos)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validatePublish() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validatePublish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPublishDisconnected(t *testing.T) {
	c := newClient(testConfig(), "front")

	err := c.Publish("graylogic/access/front/door", []byte("{}"), 1, true)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Publish() error = %v, want ErrNotConnected", err)
	}
}

func TestIsConnected_InitialState(t *testing.T) {
	client := &Client{}

	if client.IsConnected() {
		t.Error("IsConnected() should be false for uninitialised client")
	}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}

	if err := client.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	c := newClient(testConfig(), "front")

	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck() cancelled error = %v, want context.Canceled", err)
	}
}

func TestDisconnectCallback(t *testing.T) {
	c := newClient(testConfig(), "front")
	c.setConnected(true)

	var gotErr error
	c.SetOnDisconnect(func(err error) { gotErr = err })
	c.SetLogger(nil)

	lost := errors.New("broker gone")
	c.handleDisconnect(lost)

	if !errors.Is(gotErr, lost) {
		t.Errorf("callback error = %v, want %v", gotErr, lost)
	}
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	if c.connected {
		t.Error("connected still true after disconnect")
	}
}
