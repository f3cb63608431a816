// Package messaging wraps the NATS connection used to push realtime
// events to the delivery edge. The API emits; socket gateways subscribe.
package messaging

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/swolemates/backend/internal/config"
)

// SubjectNotifyPrefix is the per-user notification subject. The full
// subject is "notify.<userID>".
const SubjectNotifyPrefix = "notify."

// NATSClient wraps the NATS connection with publish helpers.
type NATSClient struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewNATSClient connects to NATS with the given config and returns a ready client.
func NewNATSClient(cfg config.NATSConfig, logger *zap.Logger) (*NATSClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, err
	}

	return &NATSClient{conn: conn, logger: logger}, nil
}

// PublishNotify pushes a payload onto the target user's notify subject.
func (c *NATSClient) PublishNotify(userID string, payload interface{}) error {
	if c == nil || c.conn == nil {
		return nats.ErrConnectionClosed
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.conn.Publish(SubjectNotifyPrefix+userID, data)
}

// IsConnected reports broker connectivity for the health monitor.
func (c *NATSClient) IsConnected() bool {
	return c != nil && c.conn != nil && c.conn.IsConnected()
}

// Close drains and closes the connection.
func (c *NATSClient) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
		return err
	}
	return nil
}
