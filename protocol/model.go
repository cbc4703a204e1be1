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
	"bytes"
	"strconv"

	liberr "github.com/nabbar/golib/errors"
	"golang.org/x/text/encoding"
)

type state uint8

// Named continuation states of the decoder: the position inside a frame at
// which input may run out and decoding must later resume.
const (
	stateSizeStatus state = iota // awaiting the size line of the status token
	stateDataStatus              // awaiting the status token bytes + LF
	stateSizeData                // awaiting a data size line, or the reply terminator
	stateData                    // awaiting a data token bytes + LF
)

// prs is the internal implementation of the Parser interface.
// It keeps a single append-only byte buffer consumed from the head, the
// current continuation state and the partially decoded reply.
type prs struct {
	buf []byte
	stp state
	siz int      // expected token length while in a data state
	sts string   // decoded status token of the reply in progress
	tok [][]byte // decoded data tokens of the reply in progress
	dec *encoding.Decoder
}

func (o *prs) Feed(p []byte) {
	o.buf = append(o.buf, p...)
}

func (o *prs) Get() (Reply, bool, liberr.Error) {
	for {
		switch o.stp {
		case stateSizeStatus, stateSizeData:
			idx := bytes.IndexByte(o.buf, '\n')
			if idx < 0 {
				return Reply{}, false, nil
			}

			line := o.buf[:idx]
			o.buf = o.buf[idx+1:]

			siz, err := strconv.Atoi(string(line))
			if err != nil || siz < 0 {
				if o.stp == stateSizeStatus {
					// a reply must open with a valid status size
					return Reply{}, false, ErrorProtocolSize.Error(err)
				}

				// the size line did not parse: the reply is complete,
				// the consumed line is the terminator
				rep := Reply{Status: o.sts, Data: o.tok}
				o.reset()
				return rep, true, nil
			}

			o.siz = siz
			if o.stp == stateSizeStatus {
				o.stp = stateDataStatus
			} else {
				o.stp = stateData
			}

		case stateDataStatus, stateData:
			if len(o.buf) < o.siz+1 {
				return Reply{}, false, nil
			}

			if o.buf[o.siz] != '\n' {
				return Reply{}, false, ErrorProtocolDelim.Error(nil)
			}

			tok := make([]byte, o.siz)
			copy(tok, o.buf[:o.siz])
			o.buf = o.buf[o.siz+1:]

			if o.stp == stateDataStatus {
				o.sts = string(tok)
			} else {
				if o.dec != nil {
					d, err := o.dec.Bytes(tok)
					if err != nil {
						return Reply{}, false, ErrorCharsetDecode.Error(err)
					}
					tok = d
				}

				o.tok = append(o.tok, tok)
			}

			o.stp = stateSizeData
		}
	}
}

func (o *prs) reset() {
	o.stp = stateSizeStatus
	o.sts = ""
	o.tok = nil

	// release the consumed head of the backing array
	if len(o.buf) == 0 {
		o.buf = o.buf[:0:0]
	}
}
