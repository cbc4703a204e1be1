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

package protocol

import (
	liberr "github.com/nabbar/golib/errors"
	"golang.org/x/text/encoding/htmlindex"
)

// Parser is a restartable incremental decoder for SSDB replies.
//
// Feed appends bytes as they arrive from the socket; Get attempts to decode
// the next complete reply. When the buffered input ends in the middle of a
// frame, Get reports that more bytes are needed and preserves its position,
// so the next Feed + Get continues at the same byte.
//
// A Parser is owned by a single connection and is not safe for concurrent
// use.
type Parser interface {
	// Feed appends p to the internal buffer. The slice is copied and may be
	// reused by the caller.
	Feed(p []byte)

	// Get decodes the next reply from the buffered input. The boolean result
	// is false when more bytes are needed. A non-nil error is a protocol
	// violation and is fatal to the stream: the parser state is undefined
	// afterwards and the owning connection must be closed.
	Get() (Reply, bool, liberr.Error)
}

// New returns a Parser. A non-empty charset names the text encoding of data
// tokens (looked up by IANA / W3C name, e.g. "latin1"); tokens are then
// transcoded to UTF-8 as they are decoded. An empty charset leaves tokens as
// raw bytes. An unknown charset fails with ErrorCharsetInvalid.
func New(charset string) (Parser, liberr.Error) {
	var p = &prs{
		buf: make([]byte, 0, 512),
		stp: stateSizeStatus,
	}

	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, ErrorCharsetInvalid.Error(err)
		}

		p.dec = enc.NewDecoder()
	}

	return p, nil
}
