package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/emisense/ldarsim/core/model"
	"github.com/emisense/ldarsim/infra/logger"
)

type fakeToken struct{ err error }

func (t fakeToken) Wait() bool                     { return true }
func (t fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t fakeToken) Error() error { return t.err }

type fakeClient struct {
	connected bool
	pubErr    error
	topics    []string
	payloads  [][]byte
}

func (f *fakeClient) IsConnected() bool       { return f.connected }
func (f *fakeClient) Connect() paho.Token     { f.connected = true; return fakeToken{} }
func (f *fakeClient) Disconnect(quiesce uint) { f.connected = false }
func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload.([]byte))
	return fakeToken{err: f.pubErr}
}

func testPublisher(cli pahoClient) *Publisher {
	return &Publisher{cli: cli, prefix: "ldar/tags", qos: 1, timeout: time.Second, log: logger.NopLogger{}}
}

func TestPublishTag(t *testing.T) {
	cli := &fakeClient{connected: true}
	p := testPublisher(cli)
	leak := &model.Leak{ID: "L1", FacilityID: "F42", RateKgPerDay: 3.2}
	leak.Tag(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), "acme", "OGI-crew-1")

	if err := p.PublishTag(leak); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(cli.topics) != 1 || cli.topics[0] != "ldar/tags/F42" {
		t.Fatalf("topics = %v", cli.topics)
	}
	var msg tagMessage
	if err := json.Unmarshal(cli.payloads[0], &msg); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if msg.LeakID != "L1" || msg.Company != "acme" || msg.CrewID != "OGI-crew-1" {
		t.Fatalf("payload = %+v", msg)
	}
}

func TestPublishTagError(t *testing.T) {
	cli := &fakeClient{connected: true, pubErr: errors.New("broker gone")}
	p := testPublisher(cli)
	if err := p.PublishTag(&model.Leak{ID: "L1", FacilityID: "F1"}); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestClose(t *testing.T) {
	cli := &fakeClient{connected: true}
	p := testPublisher(cli)
	p.Close()
	if cli.connected {
		t.Fatalf("still connected after close")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("disabled config must validate: %v", err)
	}
	if err := (Config{Enabled: true}).Validate(); err == nil {
		t.Fatalf("missing broker accepted")
	}
	if err := (Config{Enabled: true, Broker: "tcp://x:1883", QoS: 3}).Validate(); err == nil {
		t.Fatalf("qos 3 accepted")
	}
	if err := (Config{Enabled: true, Broker: "tcp://x:1883", UseTLS: true, ClientCert: "c.pem"}).Validate(); err == nil {
		t.Fatalf("cert without key accepted")
	}
}
