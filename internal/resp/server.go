// Package resp serves rings over the redis serialization protocol.
package resp

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Avik32223/ringd/internal/store"
	"github.com/Avik32223/ringd/internal/transport"
)

type servermode string

const standalone servermode = "standalone"

type Server struct {
	id        string
	mode      servermode
	Transport transport.Transport
	log       *slog.Logger

	keyspace *store.Keyspace
}

func NewServer(addr string, ks *store.Keyspace, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	t := transport.NewTCPTransport(addr)
	t.Split = splitMessages
	t.Logger = log

	id := uuid.NewString()
	s := Server{
		id:        id,
		mode:      standalone,
		Transport: t,
		log:       log.With("server", id),
		keyspace:  ks,
	}
	return &s
}

func (s *Server) ID() string { return s.id }

func (s *Server) Listen() error {
	if err := s.Transport.Listen(); err != nil {
		return err
	}
	s.log.Info("resp: listening", "addr", s.Transport.Addr(), "mode", s.mode)
	return nil
}

// Serve handles messages one at a time until ctx is done, then closes the
// transport. Listen must have been called.
func (s *Server) Serve(ctx context.Context) error {
	defer s.Transport.Close()
	for {
		select {
		case msg := <-s.Transport.Consume():
			if err := s.HandleMessage(msg); err != nil {
				s.log.Warn("resp: reply failed", "peer", msg.Peer.ID(), "error", err)
			}

		case <-ctx.Done():
			s.log.Info("resp: stopped")
			return nil
		}
	}
}

func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

func (s *Server) HandleMessage(m transport.Message) error {
	x, err := RunCommand(s.keyspace, m.Payload)
	if err != nil {
		s.log.Debug("resp: command failed", "peer", m.Peer.ID(), "error", err)
		x, _ := Serialize(err, nil)
		return m.Peer.Send([]byte(x))
	}
	res, err := Serialize(x, nil)
	if err != nil {
		x, _ := Serialize(err, nil)
		return m.Peer.Send([]byte(x))
	}
	return m.Peer.Send([]byte(res))
}
