package mqtt

import "fmt"

// Config defines the connection parameters for the tag publisher.
type Config struct {
	// Enabled switches tag publishing on; a disabled config yields a nop
	// publisher.
	Enabled    bool   `json:"enabled"`
	Broker     string `json:"broker"`
	ClientID   string `json:"client_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	// TopicPrefix is prepended to the facility ID, e.g. "ldar/tags".
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
	UseTLS      bool   `json:"use_tls"`
	ClientCert  string `json:"client_cert"`
	ClientKey   string `json:"client_key"`
	CABundle    string `json:"ca_bundle"`
	// ConnectTimeoutMS bounds the initial broker handshake.
	ConnectTimeoutMS int `json:"connect_timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "ldarsim"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "ldar/tags"
	}
	if c.ConnectTimeoutMS == 0 {
		c.ConnectTimeoutMS = 5000
	}
}

// Validate checks mandatory fields when publishing is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2")
	}
	if c.UseTLS && (c.ClientCert == "") != (c.ClientKey == "") {
		return fmt.Errorf("mqtt client cert and key must be provided together")
	}
	return nil
}
