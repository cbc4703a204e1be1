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
	"errors"
	"fmt"
)

// Reply statuses returned by a SSDB server. Any status other than StatusOK is
// a reply error; the list below covers the kinds the server emits, but a
// server-supplied status outside of it is carried through unchanged.
const (
	StatusOK          = "ok"
	StatusNotFound    = "not_found"
	StatusError       = "error"
	StatusFail        = "fail"
	StatusClientError = "client_error"
)

// Reply is one decoded server response: a status token followed by zero or
// more data tokens, in wire order. Data tokens are raw bytes unless the
// parser was built with a charset, in which case they have been transcoded
// to UTF-8.
type Reply struct {
	Status string
	Data   [][]byte
}

// IsOK reports whether the reply status is the literal "ok".
func (r Reply) IsOK() bool {
	return r.Status == StatusOK
}

// Len returns the number of data tokens carried by the reply.
func (r Reply) Len() int {
	return len(r.Data)
}

// Bytes returns the data token at index i, or nil when out of range.
func (r Reply) Bytes(i int) []byte {
	if i < 0 || i >= len(r.Data) {
		return nil
	}

	return r.Data[i]
}

// Value returns the data token at index i as a string, or the empty string
// when out of range.
func (r Reply) Value(i int) string {
	if i < 0 || i >= len(r.Data) {
		return ""
	}

	return string(r.Data[i])
}

// Strings returns all data tokens as strings, preserving order.
func (r Reply) Strings() []string {
	var res = make([]string, 0, len(r.Data))

	for _, d := range r.Data {
		res = append(res, string(d))
	}

	return res
}

// ReplyError is the error returned when a server answers a command with a
// status other than "ok". It is a value coming from the server, not a
// transport failure: the connection that received it stays usable.
type ReplyError struct {
	// Status is the reply error kind: the raw status token of the reply.
	Status string

	// Command is the name of the command the reply answers.
	Command string
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("ssdb: command '%s' failed with status '%s'", e.Command, e.Status)
}

// Kind returns the reply error kind, one of the Status constants for a
// well-behaved server.
func (e *ReplyError) Kind() string {
	return e.Status
}

// AsReplyError extracts a ReplyError from err, unwrapping if needed.
func AsReplyError(err error) (*ReplyError, bool) {
	var re *ReplyError

	if errors.As(err, &re) {
		return re, true
	}

	return nil, false
}

// IsNotFound reports whether err is a reply error with the "not_found" kind.
func IsNotFound(err error) bool {
	if re, ok := AsReplyError(err); ok {
		return re.Status == StatusNotFound
	}

	return false
}
