package transport

import (
	"bufio"
	"errors"
	"net"
	"testing"
	"time"
)

func TestTCPTransportRoundTrip(t *testing.T) {
	tr := NewTCPTransport("127.0.0.1:0")
	if err := tr.Listen(); err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	conn, err := net.DialTimeout("tcp", tr.Addr(), 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	if _, err := conn.Write([]byte("first\r\nsecond\n")); err != nil {
		t.Fatal(err)
	}

	var ids []string
	for _, want := range []string{"first", "second"} {
		select {
		case msg := <-tr.Consume():
			if string(msg.Payload) != want {
				t.Errorf("payload = %q, want %q", msg.Payload, want)
			}
			ids = append(ids, msg.Peer.ID())
			if err := msg.Peer.Send([]byte(want + "!\n")); err != nil {
				t.Fatal(err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("no message for %q", want)
		}
	}
	if ids[0] == "" || ids[0] != ids[1] {
		t.Errorf("peer ids = %q, want one stable id", ids)
	}

	r := bufio.NewReader(conn)
	for _, want := range []string{"first!\n", "second!\n"} {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatal(err)
		}
		if line != want {
			t.Errorf("reply = %q, want %q", line, want)
		}
	}
}

func TestTCPTransportHandshake(t *testing.T) {
	tr := NewTCPTransport("127.0.0.1:0")
	tr.Handshake = func(Peer) error { return errors.New("go away\n") }
	if err := tr.Listen(); err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	conn, err := net.DialTimeout("tcp", tr.Addr(), 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if line != "go away\n" {
		t.Errorf("handshake reply = %q", line)
	}
}

func TestTCPTransportCloseTwice(t *testing.T) {
	tr := NewTCPTransport("127.0.0.1:0")
	if err := tr.Listen(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
