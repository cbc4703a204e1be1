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
	"errors"
	"io"
	"net"

	libsiz "github.com/nabbar/golib/size"
	libssp "github.com/nabbar/ssdb/protocol"
)

var defaultBufferRead = int(64 * libsiz.SizeKilo)

// reader is the single read loop of the connection. It runs until the socket
// reaches EOF, the parser reports a protocol violation, or the socket is
// closed locally. On return the connection is closed and the close waiter is
// released.
func (o *conn) reader(sck net.Conn, size int) {
	defer close(o.w)

	var buf = make([]byte, size)

	for {
		n, err := sck.Read(buf)

		if n > 0 {
			o.p.Feed(buf[:n])

			for {
				rep, ok, per := o.p.Get()

				if per != nil {
					// structurally invalid bytes: fatal, every queued
					// request fails with the cause
					o.m.Lock()
					o.doCloseLocked(per)
					o.m.Unlock()
					return
				}

				if !ok {
					break
				}

				o.dispatch(rep)
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				o.logDebug("connection has been closed by server")
			} else if !errors.Is(err, net.ErrClosed) {
				o.logError("reading from ssdb server", err)
			}
			break
		}
	}

	o.m.Lock()
	o.doCloseLocked(nil)
	o.m.Unlock()
}

// dispatch resolves the head of the FIFO with one decoded reply. A reply
// with no pending request means the stream is desynchronized; the connection
// is closed with the mismatch as cause.
func (o *conn) dispatch(rep libssp.Reply) {
	f := o.popPending()

	if f == nil {
		err := ErrorPendingMismatch.Error(nil)
		o.logError("dispatching ssdb reply", err)

		o.m.Lock()
		o.doCloseLocked(err)
		o.m.Unlock()
		return
	}

	if rep.IsOK() {
		if f.setResult(rep) {
			o.logError("completing a pending request already done", nil)
		}
		return
	}

	if f.setError(&libssp.ReplyError{Status: rep.Status, Command: f.Command()}) {
		o.logError("completing a pending request already done", nil)
	}
}
