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

package connection

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	liberr "github.com/nabbar/golib/errors"
	libssp "github.com/nabbar/ssdb/protocol"
)

// conn is the internal implementation of the Connection interface.
//
// The mutex guards the socket reference, the FIFO and the state flags.
// The FIFO is mutated from three places only: Execute appends at the tail,
// the reader loop pops from the head, and the close path drains it.
type conn struct {
	m   sync.Mutex
	s   net.Conn
	p   libssp.Parser
	q   []*completion
	adr string

	closing bool
	closed  bool

	w   chan struct{} // closed when the reader loop has terminated
	log *atomic.Value // FuncLog
}

func (o *conn) Execute(command string, args ...interface{}) (Future, liberr.Error) {
	command = strings.ToLower(strings.TrimSpace(command))

	if command == "" {
		return nil, ErrorCommandEmpty.Error(nil)
	}

	for _, a := range args {
		if a == nil {
			return nil, ErrorParamsInvalid.Error(nil)
		}
	}

	buf, err := libssp.Encode(command, args...)
	if err != nil {
		return nil, err
	}

	o.m.Lock()
	defer o.m.Unlock()

	if o.closing || o.closed || o.s == nil {
		return nil, ErrorConnectionClosed.Error(nil)
	}

	if _, e := o.s.Write(buf); e != nil {
		err = ErrorSocketWrite.Error(e)
		o.doCloseLocked(err)
		return nil, err
	}

	// enqueue under the same lock as the write: the reader cannot pop a
	// reply for this command before the entry is at the tail
	fut := newCompletion(command)
	o.q = append(o.q, fut)

	return fut, nil
}

func (o *conn) Auth(password string) (Future, liberr.Error) {
	return o.Execute("auth", password)
}

func (o *conn) Close() {
	o.m.Lock()
	defer o.m.Unlock()

	o.doCloseLocked(nil)
}

// doCloseLocked advances the state to closed, releases the socket and drains
// the FIFO. With no cause, queued requests are cancelled; with a cause they
// fail with it. Idempotent; the caller holds the mutex.
func (o *conn) doCloseLocked(cause liberr.Error) {
	if o.closed {
		return
	}

	o.closing = true
	o.closed = true

	if o.s != nil {
		_ = o.s.Close()
		o.s = nil
	}

	for _, f := range o.q {
		if cause == nil {
			f.cancel()
		} else if f.setError(cause) {
			o.logError("completing a pending request already done", nil)
		}
	}

	o.q = nil
}

func (o *conn) WaitClosed(ctx context.Context) error {
	select {
	case <-o.w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *conn) IsClosed() bool {
	o.m.Lock()
	defer o.m.Unlock()

	return o.closing || o.closed
}

func (o *conn) Address() string {
	return o.adr
}

func (o *conn) String() string {
	h, p, e := net.SplitHostPort(o.adr)
	if e != nil {
		return fmt.Sprintf("<SSDBConnection [%s]>", o.adr)
	}

	return fmt.Sprintf("<SSDBConnection [host:%s-port:%s]>", h, p)
}

// popPending removes and returns the head of the FIFO.
func (o *conn) popPending() *completion {
	o.m.Lock()
	defer o.m.Unlock()

	if len(o.q) == 0 {
		return nil
	}

	f := o.q[0]
	o.q = o.q[1:]

	return f
}
