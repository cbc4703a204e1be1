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
	"sync"

	libssp "github.com/nabbar/ssdb/protocol"
)

// Future is the pending result of one submitted command.
//
// A caller that stops waiting (context cancellation) does not withdraw the
// request: the entry stays in the connection FIFO and the reply, when it
// arrives, completes the Future and is silently retained. Result and Wait
// may be called by any number of goroutines.
type Future interface {
	// Command returns the name of the command this future answers.
	Command() string

	// Done returns a channel closed once the future is completed.
	Done() <-chan struct{}

	// Result returns the reply or the failure of a completed future. Before
	// completion it returns a zero reply and no error; use Done or Wait to
	// synchronize. The error is either a *protocol.ReplyError (server
	// answered with a non-ok status) or a liberr.Error: a code of this
	// package, or the protocol package error that closed the connection.
	Result() (libssp.Reply, error)

	// Wait blocks until the future completes or ctx expires, then returns
	// as Result does. A ctx expiry abandons the wait only: the pending
	// entry is untouched and a later Wait can still observe the reply.
	Wait(ctx context.Context) (libssp.Reply, error)
}

// completion is the single-assignment backing store of a Future. The
// connection resolves it exactly once: from the reader loop on reply
// dispatch, or from the close path when draining the FIFO.
type completion struct {
	m sync.Mutex
	d chan struct{}
	r libssp.Reply
	e error

	cmd string
	don bool
	cnl bool
}

func newCompletion(command string) *completion {
	return &completion{
		d:   make(chan struct{}),
		cmd: command,
	}
}

func (f *completion) Command() string {
	return f.cmd
}

func (f *completion) Done() <-chan struct{} {
	return f.d
}

func (f *completion) Result() (libssp.Reply, error) {
	f.m.Lock()
	defer f.m.Unlock()

	return f.r, f.e
}

func (f *completion) Wait(ctx context.Context) (libssp.Reply, error) {
	select {
	case <-f.d:
		return f.Result()
	case <-ctx.Done():
		return libssp.Reply{}, ctx.Err()
	}
}

// setResult completes the future with a reply. A future already completed is
// tolerated only when the prior completion was a cancellation; any other
// prior state is a dispatch bug and is reported through the returned flag.
func (f *completion) setResult(r libssp.Reply) (prior bool) {
	f.m.Lock()
	defer f.m.Unlock()

	if f.don {
		return !f.cnl
	}

	f.r = r
	f.don = true
	close(f.d)

	return false
}

// setError completes the future with a failure, under the same defensive
// rule as setResult.
func (f *completion) setError(e error) (prior bool) {
	f.m.Lock()
	defer f.m.Unlock()

	if f.don {
		return !f.cnl
	}

	f.e = e
	f.don = true
	close(f.d)

	return false
}

// cancel completes the future as cancelled by a local close with no cause.
func (f *completion) cancel() {
	f.m.Lock()
	defer f.m.Unlock()

	if f.don {
		return
	}

	f.e = ErrorRequestCancelled.Error(nil)
	f.don = true
	f.cnl = true
	close(f.d)
}
