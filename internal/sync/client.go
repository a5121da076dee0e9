// Package sync publishes LGU reports to the municipal broker over MQTT and
// records the sync outcome back into the record store.
package sync

import (
	"context"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/conf"
	"github.com/cvsuagritech/agrisight-go/internal/errors"
	"github.com/cvsuagritech/agrisight-go/internal/logging"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Config holds broker connection parameters.
type Config struct {
	Broker            string
	ClientID          string
	Username          string
	Password          string
	Topic             string
	ReconnectCooldown time.Duration
}

// Client is the broker connection used by the publisher.
type Client interface {
	Connect(ctx context.Context) error
	Publish(ctx context.Context, topic, payload string) error
	IsConnected() bool
	Disconnect()
}

type client struct {
	config          Config
	internalClient  mqtt.Client
	lastConnAttempt time.Time
	mu              sync.Mutex
}

// NewClient builds a broker client from settings.
func NewClient(settings *conf.Settings) Client {
	return &client{
		config: Config{
			Broker:            settings.Sync.MQTT.Broker,
			ClientID:          settings.Main.Name,
			Username:          settings.Sync.MQTT.Username,
			Password:          settings.Sync.MQTT.Password,
			Topic:             settings.Sync.MQTT.Topic,
			ReconnectCooldown: 5 * time.Second,
		},
	}
}

// Connect establishes the broker connection. Repeated attempts inside the
// cooldown window are rejected so a flapping broker is not hammered.
func (c *client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Since(c.lastConnAttempt) < c.config.ReconnectCooldown {
		return errors.Newf("connection attempt too recent, last attempt was %v ago", time.Since(c.lastConnAttempt)).
			Component("sync").
			Category(errors.CategoryMQTTConn).
			Build()
	}
	c.lastConnAttempt = time.Now()

	u, err := url.Parse(c.config.Broker)
	if err != nil {
		return errors.Newf("invalid broker URL: %w", err).
			Component("sync").
			Category(errors.CategoryConfiguration).
			Context("broker", c.config.Broker).
			Build()
	}

	if host := u.Hostname(); net.ParseIP(host) == nil {
		if _, err := net.DefaultResolver.LookupHost(ctx, host); err != nil {
			return errors.Newf("failed to resolve broker hostname %s: %w", host, err).
				Component("sync").
				Category(errors.CategoryMQTTConn).
				Build()
		}
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(c.config.Broker)
	opts.SetClientID(c.config.ClientID)
	opts.SetUsername(c.config.Username)
	opts.SetPassword(c.config.Password)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logging.ForService("sync").Warn("broker connection lost", "broker", c.config.Broker, "error", err)
	})

	c.internalClient = mqtt.NewClient(opts)

	token := c.internalClient.Connect()
	if !token.WaitTimeout(30 * time.Second) {
		return errors.Newf("broker connection timeout").
			Component("sync").
			Category(errors.CategoryMQTTConn).
			Context("broker", c.config.Broker).
			Build()
	}
	if err := token.Error(); err != nil {
		return errors.New(err).
			Component("sync").
			Category(errors.CategoryMQTTConn).
			Context("broker", c.config.Broker).
			Build()
	}
	return nil
}

// Publish sends one payload to the topic.
func (c *client) Publish(_ context.Context, topic, payload string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.IsConnected() {
		return errors.Newf("not connected to broker").
			Component("sync").
			Category(errors.CategoryMQTTPublish).
			Build()
	}

	token := c.internalClient.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(10 * time.Second) {
		return errors.Newf("publish timeout").
			Component("sync").
			Category(errors.CategoryMQTTPublish).
			Context("topic", topic).
			Build()
	}
	if err := token.Error(); err != nil {
		return errors.New(err).
			Component("sync").
			Category(errors.CategoryMQTTPublish).
			Context("topic", topic).
			Build()
	}
	return nil
}

// IsConnected reports the broker connection state.
func (c *client) IsConnected() bool {
	return c.internalClient != nil && c.internalClient.IsConnected()
}

// Disconnect closes the broker connection.
func (c *client) Disconnect() {
	if c.internalClient != nil && c.internalClient.IsConnected() {
		c.internalClient.Disconnect(250)
	}
}
