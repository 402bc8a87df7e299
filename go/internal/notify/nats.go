package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "clubmanager.notifications",
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// natsConn is the part of *nats.Conn the publisher uses
type natsConn interface {
	PublishMsg(m *nats.Msg) error
	Close()
}

// NATSPublisher publishes notifications to NATS subjects <prefix>.<level>
type NATSPublisher struct {
	nc     natsConn
	prefix string
}

func NewNATSPublisher(cfg NATSConfig) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("clubmanager"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return newNATSPublisher(nc, cfg.SubjectPrefix), nil
}

func newNATSPublisher(nc natsConn, prefix string) *NATSPublisher {
	return &NATSPublisher{nc: nc, prefix: prefix}
}

// Subject returns the subject a notification of the given level is published on
func (p *NATSPublisher) Subject(level Level) string {
	return fmt.Sprintf("%s.%s", p.prefix, level)
}

func (p *NATSPublisher) Notify(_ context.Context, n Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Error().Err(err).Msg("marshal notification")
		return
	}

	msg := &nats.Msg{
		Subject: p.Subject(n.Level),
		Data:    data,
		Header: nats.Header{
			"Notification-ID": []string{n.ID.String()},
		},
	}
	if err := p.nc.PublishMsg(msg); err != nil {
		log.Error().Err(err).Str("subject", msg.Subject).Msg("failed to publish notification")
		return
	}

	log.Debug().
		Str("subject", msg.Subject).
		Str("notification_id", n.ID.String()).
		Msg("published notification to NATS")
}

func (p *NATSPublisher) Close() error {
	if p.nc != nil {
		p.nc.Close()
	}
	return nil
}
