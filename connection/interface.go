/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package connection implements a single full-duplex, pipelined session with
// a SSDB server.
//
// A connection owns one TCP socket and one reader goroutine. Commands are
// written to the socket as they are submitted; each submission enqueues a
// pending completion at the tail of a FIFO, and the reader loop matches each
// decoded reply to the head of that FIFO. Replies are therefore delivered in
// the exact order commands were written (pipelining), and a reply is
// dispatched to its pending entry exactly once.
//
// The connection state only moves forward: open, closing, closed. Every
// transition out of open resolves all queued pending requests, as cancelled
// when the close has no cause (local close, EOF or a read failure), or as
// failed with the fatal cause when a protocol violation, a reply with no
// pending request, or a socket write failure triggered the close.
//
// Basic usage:
//
//	cfg := &connection.Config{
//	    Endpoint: "127.0.0.1:8888",
//	    Timeout:  5 * time.Second,
//	}
//
//	con, err := connection.New(cfg)
//	if err != nil {
//	    return err
//	}
//	defer con.Close()
//
//	fut, err := con.Execute("set", "a", "1")
//	if err != nil {
//	    return err
//	}
//
//	if _, err := fut.Wait(ctx); err != nil {
//	    return err
//	}
package connection

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	liberr "github.com/nabbar/golib/errors"
	libptc "github.com/nabbar/golib/network/protocol"
	libssp "github.com/nabbar/ssdb/protocol"
)

// Connection is one pipelined session with the server.
//
// Execute and Auth may be called from any goroutine; submissions are
// serialized internally and keep their write order on the wire.
type Connection interface {
	// Execute validates the command and its arguments, writes the encoded
	// frame to the socket and returns the pending result. It fails
	// synchronously with ErrorCommandEmpty or ErrorParamsInvalid when the
	// arguments are malformed (nothing is written; a nil byte slice argument
	// fails with protocol.ErrorTokenInvalid instead), and with
	// ErrorConnectionClosed when the connection left the open state.
	Execute(command string, args ...interface{}) (Future, liberr.Error)

	// Auth submits the auth command with the given password.
	Auth(password string) (Future, liberr.Error)

	// Close requests the shutdown of the connection. It is idempotent and
	// returns without waiting: the socket is closed, the reader loop ends,
	// and every queued pending request is cancelled.
	Close()

	// WaitClosed blocks until the reader loop has fully terminated. A ctx
	// expiry abandons the wait without aborting the shutdown.
	WaitClosed(ctx context.Context) error

	// IsClosed reports whether the connection left the open state.
	IsClosed() bool

	// Address returns the remote endpoint of the connection.
	Address() string

	// String implements fmt.Stringer.
	String() string
}

// New establishes a TCP connection to the configured endpoint, applies the
// socket options (TCP_NODELAY, and SO_REUSEADDR unless disabled), starts the
// reader loop, and authenticates when a password is configured.
//
// The dial is bound by cfg.Timeout and fails with ErrorConnectTimeout when
// the handshake does not complete in time. On authentication failure the
// connection is closed and the failure is returned with ErrorCredentials.
func New(cfg *Config) (Connection, liberr.Error) {
	if cfg == nil {
		return nil, ErrorParamsEmpty.Error(nil)
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prs, err := libssp.New(cfg.Charset)
	if err != nil {
		return nil, err
	}

	dlr := net.Dialer{}

	// net.Dialer treats a negative timeout as already expired
	if cfg.Timeout > 0 {
		dlr.Timeout = cfg.Timeout
	}

	if !cfg.DisableReuseAddr {
		dlr.Control = reuseAddrControl
	}

	sck, e := dlr.Dial(libptc.NetworkTCP.Code(), cfg.Endpoint)
	if e != nil {
		if n, ok := e.(net.Error); ok && n.Timeout() {
			return nil, ErrorConnectTimeout.Error(e)
		}
		return nil, ErrorDialConnection.Error(e)
	}

	if tcp, ok := sck.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}

	siz := cfg.BufferRead.Int()
	if siz <= 0 {
		siz = defaultBufferRead
	}

	o := &conn{
		m:   sync.Mutex{},
		s:   sck,
		p:   prs,
		w:   make(chan struct{}),
		adr: sck.RemoteAddr().String(),
		log: new(atomic.Value),
	}

	if cfg.flog != nil {
		o.log.Store(cfg.flog)
	}

	go o.reader(sck, siz)

	if cfg.Password != "" {
		if err = o.authenticate(cfg.Password); err != nil {
			o.Close()
			_ = o.WaitClosed(context.Background())
			return nil, err
		}
	}

	return o, nil
}

func (o *conn) authenticate(password string) liberr.Error {
	fut, err := o.Auth(password)
	if err != nil {
		return err
	}

	if _, e := fut.Wait(context.Background()); e != nil {
		return ErrorCredentials.Error(e)
	}

	return nil
}
