// Package app wires configuration into the transports and shells the CLI
// runs.
package app

import (
	"fmt"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/transport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Runtime owns the transport selected by configuration and whatever it had
// to start to serve it.
type Runtime struct {
	Transport wizard.Transport

	logger *zap.Logger
	conn   *nats.Conn
	server *server.Server
	sub    *nats.Subscription
}

// Open builds the transport named by cfg.Transport. For nats without a URL it
// starts an embedded server with a local receiver that logs each record.
func Open(cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &Runtime{logger: logger}

	switch cfg.Transport {
	case config.TransportDelay:
		rt.Transport = transport.NewDelay(
			transport.WithDelay(cfg.SubmitDelay),
			transport.WithDelayLogger(logger),
		)
	case config.TransportHTTP:
		t, err := transport.NewHTTP(cfg.HTTPEndpoint,
			transport.WithHTTPTimeout(cfg.HTTPTimeout),
			transport.WithHTTPLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		rt.Transport = t
	case config.TransportNATS:
		if err := rt.openNATS(cfg); err != nil {
			rt.Close()
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: transport %q", config.ErrInvalid, cfg.Transport)
	}
	return rt, nil
}

func (rt *Runtime) openNATS(cfg *config.Config) error {
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("formwizard"))
		if err != nil {
			return fmt.Errorf("app: connect %s: %w", cfg.NATSURL, err)
		}
		rt.conn = nc
	} else {
		ns, nc, err := transport.StartEmbedded()
		if err != nil {
			return err
		}
		rt.server, rt.conn = ns, nc
		sub, err := transport.Receive(nc, cfg.NATSSubject, rt.logger.Named("receiver"), func(wizard.FormRecord) error {
			return nil
		})
		if err != nil {
			return fmt.Errorf("app: subscribe receiver: %w", err)
		}
		rt.sub = sub
		rt.logger.Info("embedded nats started", zap.String("subject", cfg.NATSSubject))
	}

	t, err := transport.NewNATS(rt.conn,
		transport.WithSubject(cfg.NATSSubject),
		transport.WithRequestReply(cfg.NATSRequestReply),
		transport.WithNATSLogger(rt.logger),
	)
	if err != nil {
		return err
	}
	rt.Transport = t
	return nil
}

// Close releases the NATS connection and embedded server, if any.
func (rt *Runtime) Close() {
	if rt == nil {
		return
	}
	if rt.sub != nil {
		_ = rt.sub.Unsubscribe()
		rt.sub = nil
	}
	if rt.conn != nil || rt.server != nil {
		transport.Shutdown(rt.conn, rt.server)
		rt.conn, rt.server = nil, nil
	}
}
