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

// Package pool implements a bounded multiplexer of SSDB connections shared
// across concurrent callers.
//
// The pool keeps a free deque of idle connections and a set of leased ones.
// Acquire lends the oldest healthy free connection, lazily opening new ones
// up to the configured ceiling; when the ceiling is reached, callers block
// until a lease is released. Every release wakes exactly one waiter, and the
// woken waiter re-checks the free deque before claiming a connection, so a
// release can never be lost to a stolen wake-up.
//
// Acquire drops closed connections from the free deque before lending, so a
// server-side disconnect is absorbed on the next Acquire instead of being
// handed to a caller. Closed connections are removed from both sets
// (Compact) when Acquire has to grow the pool, or when Compact is called.
//
// Basic usage:
//
//	cfg := &pool.Config{
//	    Endpoint: "127.0.0.1:8888",
//	    MinSize:  1,
//	    MaxSize:  10,
//	}
//
//	p, err := pool.New(cfg)
//	if err != nil {
//	    return err
//	}
//	defer func() {
//	    p.Close()
//	    _ = p.WaitClosed(context.Background())
//	}()
//
//	rep, err := p.Execute(ctx, "get", "a")
package pool

import (
	"context"
	"fmt"
	"sync"

	liberr "github.com/nabbar/golib/errors"
	montps "github.com/nabbar/golib/monitor/types"
	libver "github.com/nabbar/golib/version"
	libcnn "github.com/nabbar/ssdb/connection"
	libssp "github.com/nabbar/ssdb/protocol"
)

// Pool is a bounded set of connections to one SSDB endpoint.
//
// All methods are safe for concurrent use.
type Pool interface {
	// Execute acquires a connection, submits the command, awaits the reply
	// and releases the connection, whatever the outcome.
	Execute(ctx context.Context, command string, args ...interface{}) (libssp.Reply, error)

	// Acquire obtains an exclusive lease on a connection, opening a new one
	// when none is free and the pool is under its ceiling. At the ceiling,
	// Acquire blocks until a release or Close wakes it. ctx is checked
	// before each wait; a wait in progress is not interrupted by ctx expiry.
	// The returned string is the remote endpoint of the leased connection.
	Acquire(ctx context.Context) (libcnn.Connection, string, liberr.Error)

	// Release returns a leased connection to the pool. Releasing a
	// connection not leased from this pool fails with ErrorInvalidRelease.
	// A released connection observed closed is dropped instead of being
	// put back on the free deque.
	Release(con libcnn.Connection) liberr.Error

	// Auth re-authenticates every currently free connection with the given
	// password and uses it for every connection opened afterwards.
	Auth(ctx context.Context, password string) liberr.Error

	// Compact drops closed connections from the free deque and the leased
	// set.
	Compact()

	// Close requests the shutdown of the pool: a background task closes
	// every connection, free and leased, and waits for all of them. Close
	// is idempotent and returns without waiting.
	Close()

	// WaitClosed blocks until the shutdown task completes. A ctx expiry
	// abandons the wait without aborting the shutdown.
	WaitClosed(ctx context.Context) error

	// IsClosed reports whether Close has been requested.
	IsClosed() bool

	// MinSize returns the configured minimum number of connections.
	MinSize() int

	// MaxSize returns the configured ceiling of connections.
	MaxSize() int

	// FreeSize returns the current number of idle connections.
	FreeSize() int

	// Size returns the current number of connections, free and leased.
	Size() int

	// String implements fmt.Stringer.
	String() string

	// HealthCheck verifies that a connection can be leased from the pool.
	HealthCheck(ctx context.Context) error

	// Monitor creates and starts a monitor instance checking this pool.
	Monitor(ctx context.Context, vrs libver.Version) (montps.Monitor, error)
}

// New creates a pool and pre-fills the free deque up to cfg.MinSize. When
// the minimum cannot be reached, the partially built pool is closed and the
// failure is returned with ErrorPrefillFailed.
func New(cfg *Config) (Pool, liberr.Error) {
	if cfg == nil {
		return nil, ErrorParamsEmpty.Error(nil)
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &pl{
		cfg: *cfg,
		pwd: cfg.Password,
		us:  make(map[libcnn.Connection]struct{}),
		w:   make(chan struct{}),
	}
	p.cnd = sync.NewCond(&p.m)

	p.m.Lock()
	_ = p.fillFreeLocked(false)
	siz := len(p.fr) + len(p.us)
	p.m.Unlock()

	if siz < cfg.MinSize {
		p.Close()
		_ = p.WaitClosed(context.Background())
		//nolint #goerr113
		return nil, ErrorPrefillFailed.Error(fmt.Errorf("opened %d connection(s) of %d", siz, cfg.MinSize))
	}

	return p, nil
}
