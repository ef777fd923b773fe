package transport

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"
)

type TCPPeer struct {
	net.Conn
	id string
	mu sync.Mutex
}

func (t *TCPPeer) ID() string { return t.id }

func (t *TCPPeer) Close() error {
	if t.Conn != nil {
		return t.Conn.Close()
	}
	return nil
}

func (t *TCPPeer) Send(b []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.Conn.Write(b)
	return err
}

// TCPTransport implements Transport
type TCPTransport struct {
	listener     net.Listener
	listenerAddr string
	consumeCh    chan Message
	doneCh       chan struct{}
	closeOnce    sync.Once

	// Split cuts the byte stream of a connection into messages.
	Split     bufio.SplitFunc
	Handshake HandshakeFunc
	Logger    *slog.Logger
}

func NewTCPTransport(addr string) *TCPTransport {
	return &TCPTransport{
		listenerAddr: addr,
		consumeCh:    make(chan Message),
		doneCh:       make(chan struct{}),
		Split:        bufio.ScanLines,
		Handshake:    NoOpHandshake,
		Logger:       slog.Default(),
	}
}

// Addr returns the bound address once listening, the configured one before.
func (t *TCPTransport) Addr() string {
	if t.listener != nil {
		return t.listener.Addr().String()
	}
	return t.listenerAddr
}

func (t *TCPTransport) Consume() <-chan Message {
	return t.consumeCh
}

func (t *TCPTransport) Listen() error {
	var err error
	t.listener, err = net.Listen("tcp", t.listenerAddr)
	if err != nil {
		return err
	}

	go t.startListening()
	return nil
}

func (t *TCPTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.doneCh)
		if t.listener != nil {
			err = t.listener.Close()
		}
	})
	return err
}

func (t *TCPTransport) startListening() {
	for {
		conn, err := t.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			t.Logger.Error("tcp: accept failed", "error", err)
			continue
		}

		go t.handleConnection(conn)
	}
}

func (t *TCPTransport) handleConnection(c net.Conn) {
	peer := &TCPPeer{Conn: c, id: uuid.NewString()}
	defer peer.Close()
	log := t.Logger.With("peer", peer.id, "remote", c.RemoteAddr().String())
	log.Debug("tcp: new connection")
	defer log.Debug("tcp: closed connection")

	if err := t.Handshake(peer); err != nil {
		peer.Send([]byte(err.Error()))
		return
	}

	scanner := bufio.NewScanner(c)
	scanner.Split(t.Split)
	for scanner.Scan() {
		b := make([]byte, len(scanner.Bytes()))
		copy(b, scanner.Bytes())
		msg := Message{
			Peer:    peer,
			Payload: b,
		}
		select {
		case t.consumeCh <- msg:
		case <-t.doneCh:
			return
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warn("tcp: read failed", "error", err)
	}
}
