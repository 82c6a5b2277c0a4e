package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// StartEmbedded starts an in-process NATS server that listens on no network
// port and returns a connection to it. Callers own both and should release
// them with Shutdown.
func StartEmbedded() (*server.Server, *nats.Conn, error) {
	ns, err := server.NewServer(&server.Options{DontListen: true})
	if err != nil {
		return nil, nil, fmt.Errorf("transport: create nats server: %w", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(4 * time.Second) {
		ns.Shutdown()
		return nil, nil, errors.New("transport: nats server failed to start within timeout")
	}
	nc, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		ns.Shutdown()
		return nil, nil, fmt.Errorf("transport: connect in-process: %w", err)
	}
	return ns, nc, nil
}

// Shutdown drains nc and stops ns. Either may be nil.
func Shutdown(nc *nats.Conn, ns *server.Server) {
	if nc != nil {
		if err := nc.Drain(); err != nil {
			nc.Close()
		}
		for i := 0; i < 20 && !nc.IsClosed(); i++ {
			time.Sleep(50 * time.Millisecond)
		}
		if !nc.IsClosed() {
			nc.Close()
		}
	}
	if ns != nil {
		ns.Shutdown()
		ns.WaitForShutdown()
	}
}

// Receive subscribes handle to subject and answers each request with a
// Reply. Records that fail to decode are rejected with a form-level message.
// A handler error that implements wizard.FieldReporter is sent back as field
// errors.
func Receive(nc *nats.Conn, subject string, logger *zap.Logger, handle func(wizard.FormRecord) error) (*nats.Subscription, error) {
	if nc == nil {
		return nil, errors.New("transport: nats connection is required")
	}
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return nc.Subscribe(subject, func(msg *nats.Msg) {
		reply := Reply{OK: true}
		var record wizard.FormRecord
		if err := json.Unmarshal(msg.Data, &record); err != nil {
			reply = Reply{Message: "Malformed submission"}
		} else if handle != nil {
			if err := handle(record); err != nil {
				reply = Reply{Message: err.Error()}
				var report wizard.FieldReporter
				if errors.As(err, &report) {
					reply.Errors = report.FieldMessages()
				}
			}
		}
		logger.Info("submission received",
			zap.String("subject", msg.Subject),
			zap.Bool("ok", reply.OK),
			zap.String("email", record.Email),
		)
		if msg.Reply == "" {
			return
		}
		data, err := json.Marshal(reply)
		if err != nil {
			logger.Error("encode reply", zap.Error(err))
			return
		}
		if err := msg.Respond(data); err != nil {
			logger.Warn("send reply", zap.Error(err))
		}
	})
}
