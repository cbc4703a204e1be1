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

package pool

import (
	"context"
	"fmt"
	"sync"

	liberr "github.com/nabbar/golib/errors"
	libcnn "github.com/nabbar/ssdb/connection"
	libssp "github.com/nabbar/ssdb/protocol"
)

// pl is the internal implementation of the Pool interface.
//
// The mutex guards the free deque, the used set, the password and the state
// flags; the condition (sharing the mutex) carries the wait-on-exhaustion of
// Acquire. Invariants: len(fr)+len(us) never exceeds MaxSize, and a
// connection appears in at most one of the two.
type pl struct {
	m   sync.Mutex
	cnd *sync.Cond
	cfg Config
	pwd string

	fr []libcnn.Connection
	us map[libcnn.Connection]struct{}

	closing bool
	closed  bool
	w       chan struct{} // closed once the shutdown task completed
}

func (p *pl) Execute(ctx context.Context, command string, args ...interface{}) (libssp.Reply, error) {
	con, _, err := p.Acquire(ctx)
	if err != nil {
		return libssp.Reply{}, err
	}

	var (
		rep libssp.Reply
		rer error
	)

	fut, err := con.Execute(command, args...)
	if err == nil {
		rep, rer = fut.Wait(ctx)
	}

	if e := p.Release(con); e != nil {
		p.logDebug("releasing connection after execute: %v", e)
	}

	if err != nil {
		return libssp.Reply{}, err
	}

	return rep, rer
}

func (p *pl) Acquire(ctx context.Context) (libcnn.Connection, string, liberr.Error) {
	p.m.Lock()

	// sweep the free deque from the head, dropping closed entries
	for len(p.fr) > 0 {
		con := p.fr[0]
		p.fr = p.fr[1:]

		if con.IsClosed() {
			p.logDebug("dropping closed connection from free deque")
			continue
		}

		p.us[con] = struct{}{}
		p.m.Unlock()
		return con, con.Address(), nil
	}

	return p.newConnection(ctx)
}

// newConnection grows the pool or waits for a release. Called with the mutex
// held; releases it before returning.
func (p *pl) newConnection(ctx context.Context) (libcnn.Connection, string, liberr.Error) {
	defer p.m.Unlock()

	for {
		if p.closing || p.closed {
			return nil, "", ErrorPoolClosed.Error(nil)
		}

		if e := ctx.Err(); e != nil {
			return nil, "", ErrorAcquireAborted.Error(e)
		}

		derr := p.fillFreeLocked(true)

		for len(p.fr) > 0 {
			con := p.fr[0]
			p.fr = p.fr[1:]

			if con.IsClosed() {
				continue
			} else if _, ok := p.us[con]; ok {
				p.logError("free connection already leased", nil)
				continue
			}

			p.us[con] = struct{}{}
			return con, con.Address(), nil
		}

		if derr != nil {
			// under the ceiling but the server cannot be dialed:
			// surface the failure instead of waiting for a release
			// that may never come
			return nil, "", derr
		}

		// ceiling reached with every connection leased: wait for a
		// release, then re-check the deque (another waiter may have
		// claimed the connection first)
		p.cnd.Wait()
	}
}

// fillFreeLocked implements the growth policy. It first compacts both sets,
// then opens connections until the minimum is reached (each missing slot is
// attempted once, failures are logged), then, when growth is requested and
// the free deque is still empty, keeps opening until a connection is free or
// the ceiling is reached. The returned error is the growth-phase dial
// failure, nil otherwise.
func (p *pl) fillFreeLocked(growth bool) liberr.Error {
	p.compactLocked()

	for siz := len(p.fr) + len(p.us); siz < p.cfg.MinSize; siz++ {
		con, err := p.dial()
		if err != nil {
			p.logError("opening connection for pool minimum", err)
			continue
		}

		p.fr = append(p.fr, con)
	}

	if len(p.fr) > 0 || !growth {
		return nil
	}

	for len(p.fr) == 0 && len(p.fr)+len(p.us) < p.cfg.MaxSize {
		con, err := p.dial()
		if err != nil {
			p.logError("growing connection pool", err)
			return err
		}

		p.fr = append(p.fr, con)
	}

	return nil
}

func (p *pl) dial() (libcnn.Connection, liberr.Error) {
	cfg := &libcnn.Config{
		Endpoint:         p.cfg.Endpoint,
		Password:         p.pwd,
		Charset:          p.cfg.Charset,
		Timeout:          p.cfg.Timeout,
		DisableReuseAddr: p.cfg.DisableReuseAddr,
	}

	if p.cfg.flog != nil {
		cfg.RegisterLogger(p.cfg.flog)
	}

	if p.cfg.fdial != nil {
		return p.cfg.fdial(cfg)
	}

	return libcnn.New(cfg)
}

func (p *pl) Release(con libcnn.Connection) liberr.Error {
	p.m.Lock()
	defer p.m.Unlock()

	if p.closing || p.closed {
		return ErrorPoolClosed.Error(nil)
	}

	if _, ok := p.us[con]; !ok {
		return ErrorInvalidRelease.Error(nil)
	}

	delete(p.us, con)

	if !con.IsClosed() {
		p.fr = append(p.fr, con)
	} else {
		p.logDebug("dropping closed connection on release")
	}

	// one release, one wake-up: a woken waiter re-checks the deque
	p.cnd.Signal()

	return nil
}

// compactLocked drops closed connections from the free deque and the used
// set. The caller holds the mutex.
func (p *pl) compactLocked() {
	var fr = p.fr[:0]

	for _, con := range p.fr {
		if con.IsClosed() {
			p.logDebug("compacting closed connection from free deque")
			continue
		}

		fr = append(fr, con)
	}

	p.fr = fr

	for con := range p.us {
		if con.IsClosed() {
			delete(p.us, con)
		}
	}
}

func (p *pl) Compact() {
	p.m.Lock()
	defer p.m.Unlock()

	p.compactLocked()
}

func (p *pl) Auth(ctx context.Context, password string) liberr.Error {
	p.m.Lock()
	defer p.m.Unlock()

	p.pwd = password

	for _, con := range p.fr {
		fut, err := con.Auth(password)
		if err != nil {
			return err
		}

		if _, e := fut.Wait(ctx); e != nil {
			return libcnn.ErrorCredentials.Error(e)
		}
	}

	return nil
}

func (p *pl) Close() {
	p.m.Lock()

	if p.closing || p.closed {
		p.m.Unlock()
		return
	}

	p.closing = true
	p.m.Unlock()

	go p.doClose()
}

// doClose is the background shutdown task: it drains both sets, closes every
// connection, waits for all of them, then flips the pool to closed.
func (p *pl) doClose() {
	p.m.Lock()

	var lst = make([]libcnn.Connection, 0, len(p.fr)+len(p.us))

	lst = append(lst, p.fr...)
	p.fr = nil

	for con := range p.us {
		lst = append(lst, con)
	}
	p.us = make(map[libcnn.Connection]struct{})

	// wake every blocked acquirer so it observes the closed pool
	p.cnd.Broadcast()
	p.m.Unlock()

	for _, con := range lst {
		con.Close()
	}

	for _, con := range lst {
		_ = con.WaitClosed(context.Background())
	}

	p.m.Lock()
	p.closed = true
	p.m.Unlock()

	close(p.w)
}

func (p *pl) WaitClosed(ctx context.Context) error {
	select {
	case <-p.w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pl) IsClosed() bool {
	p.m.Lock()
	defer p.m.Unlock()

	return p.closing || p.closed
}

func (p *pl) MinSize() int {
	return p.cfg.MinSize
}

func (p *pl) MaxSize() int {
	return p.cfg.MaxSize
}

func (p *pl) FreeSize() int {
	p.m.Lock()
	defer p.m.Unlock()

	return len(p.fr)
}

func (p *pl) Size() int {
	p.m.Lock()
	defer p.m.Unlock()

	return len(p.fr) + len(p.us)
}

func (p *pl) String() string {
	return fmt.Sprintf("<SSDBConnectionPool [size:[%d:%d], free:%d]>", p.MinSize(), p.MaxSize(), p.FreeSize())
}
