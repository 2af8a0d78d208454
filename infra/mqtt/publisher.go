// Package mqtt publishes newly tagged leaks to an MQTT broker so downstream
// repair queues can react without polling exported results. Publishing is
// fire and forget: the in-memory tag pool stays the source of truth and a
// broker outage never alters simulation results.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/emisense/ldarsim/core/model"
	"github.com/emisense/ldarsim/infra/logger"
)

// pahoClient is the subset of the paho API the publisher uses; tests
// substitute a fake.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// Publisher sends one retained message per newly tagged leak to
// <topic_prefix>/<facility_id>.
type Publisher struct {
	cli     pahoClient
	prefix  string
	qos     byte
	timeout time.Duration
	log     logger.Logger
}

// tagMessage is the wire format of a tag event.
type tagMessage struct {
	LeakID       string    `json:"leak_id"`
	FacilityID   string    `json:"facility_id"`
	RateKgPerDay float64   `json:"rate_kg_per_day"`
	DateFound    time.Time `json:"date_found"`
	Company      string    `json:"company"`
	CrewID       string    `json:"crew_id"`
}

// NewPublisher connects to the broker described by cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	if cfg.UseTLS {
		tlsCfg, err := newTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	p := &Publisher{
		cli:     paho.NewClient(opts),
		prefix:  cfg.TopicPrefix,
		qos:     cfg.QoS,
		timeout: time.Duration(cfg.ConnectTimeoutMS) * time.Millisecond,
		log:     logger.New("mqtt-tags"),
	}
	token := p.cli.Connect()
	if !token.WaitTimeout(p.timeout) {
		return nil, fmt.Errorf("mqtt connect timeout after %v", p.timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return p, nil
}

// PublishTag sends the leak's discovery record to its facility topic.
func (p *Publisher) PublishTag(l *model.Leak) error {
	payload, err := json.Marshal(tagMessage{
		LeakID:       l.ID,
		FacilityID:   l.FacilityID,
		RateKgPerDay: l.RateKgPerDay,
		DateFound:    l.DateFound,
		Company:      l.FoundByCompany,
		CrewID:       l.FoundByCrew,
	})
	if err != nil {
		return fmt.Errorf("encode tag: %w", err)
	}
	topic := p.prefix + "/" + l.FacilityID
	token := p.cli.Publish(topic, p.qos, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}

func newTLSConfig(cfg Config) (*tls.Config, error) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.CABundle != "" {
		pem, err := os.ReadFile(cfg.CABundle)
		if err != nil {
			return nil, fmt.Errorf("read ca bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.CABundle)
		}
		tlsCfg.RootCAs = pool
	}
	if cfg.ClientCert != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	return tlsCfg, nil
}
