package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the endpoint and bridge read at startup.
// Pointer fields are nil when the file omits them, letting the Resolved*
// accessors fill in the documented default without masking an explicit
// zero the operator actually wrote.
type Config struct {
	RendezvousPrefix string `yaml:"rendezvous_prefix,omitempty"`

	Endpoint struct {
		MarshalTimeoutMS       *int `yaml:"marshal_timeout_ms,omitempty"`
		BindingErrorBufferSize *int `yaml:"binding_error_buffer_size,omitempty"`
		NotificationQueueDepth *int `yaml:"notification_queue_depth,omitempty"`
	} `yaml:"endpoint,omitempty"`

	Bridge struct {
		ConnectTimeoutMS *int `yaml:"connect_timeout_ms,omitempty"`
		RequestTimeoutMS *int `yaml:"request_timeout_ms,omitempty"`
	} `yaml:"bridge,omitempty"`
}

const (
	DefaultRendezvousPrefix       = "wpf_inspector"
	DefaultMarshalTimeout         = 10 * time.Second
	DefaultBindingErrorBufferSize = 1000
	DefaultNotificationQueueDepth = 256
	DefaultConnectTimeout         = 5 * time.Second
	DefaultRequestTimeout         = 30 * time.Second
)

// Load reads and parses a YAML config file at path. A missing file is not
// an error: every inspector and bridge component is expected to run with
// just its compiled-in defaults, so Load returns a zero Config rather than
// forcing every caller to special-case os.IsNotExist.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &c, nil
}

func (c *Config) ResolvedRendezvousPrefix() string {
	if c.RendezvousPrefix != "" {
		return c.RendezvousPrefix
	}
	return DefaultRendezvousPrefix
}

func (c *Config) ResolvedMarshalTimeout() time.Duration {
	if c.Endpoint.MarshalTimeoutMS != nil {
		return time.Duration(*c.Endpoint.MarshalTimeoutMS) * time.Millisecond
	}
	return DefaultMarshalTimeout
}

func (c *Config) ResolvedBindingErrorBufferSize() int {
	if c.Endpoint.BindingErrorBufferSize != nil {
		return *c.Endpoint.BindingErrorBufferSize
	}
	return DefaultBindingErrorBufferSize
}

func (c *Config) ResolvedNotificationQueueDepth() int {
	if c.Endpoint.NotificationQueueDepth != nil {
		return *c.Endpoint.NotificationQueueDepth
	}
	return DefaultNotificationQueueDepth
}

func (c *Config) ResolvedConnectTimeout() time.Duration {
	if c.Bridge.ConnectTimeoutMS != nil {
		return time.Duration(*c.Bridge.ConnectTimeoutMS) * time.Millisecond
	}
	return DefaultConnectTimeout
}

func (c *Config) ResolvedRequestTimeout() time.Duration {
	if c.Bridge.RequestTimeoutMS != nil {
		return time.Duration(*c.Bridge.RequestTimeoutMS) * time.Millisecond
	}
	return DefaultRequestTimeout
}
