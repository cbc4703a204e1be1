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
	"fmt"

	liberr "github.com/nabbar/golib/errors"
)

const (
	ErrorParamsEmpty liberr.CodeError = iota + liberr.MinAvailable + 20
	ErrorValidatorError
	ErrorCommandEmpty
	ErrorParamsInvalid
	ErrorDialConnection
	ErrorConnectTimeout
	ErrorConnectionClosed
	ErrorSocketWrite
	ErrorRequestCancelled
	ErrorCredentials
	ErrorPendingMismatch
)

func init() {
	if liberr.ExistInMapMessage(ErrorParamsEmpty) {
		panic(fmt.Errorf("error code collision with package ssdb/connection"))
	}
	liberr.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorParamsEmpty:
		return "given parameters is empty"
	case ErrorValidatorError:
		return "ssdb connection : invalid config"
	case ErrorCommandEmpty:
		return "ssdb connection : command must not be empty"
	case ErrorParamsInvalid:
		return "ssdb connection : arguments must not contain a nil value"
	case ErrorDialConnection:
		return "ssdb connection : cannot dial to server"
	case ErrorConnectTimeout:
		return "ssdb connection : dial to server has timed out"
	case ErrorConnectionClosed:
		return "ssdb connection : connection closed or corrupted"
	case ErrorSocketWrite:
		return "ssdb connection : cannot write command to socket"
	case ErrorRequestCancelled:
		return "ssdb connection : request cancelled by connection close"
	case ErrorCredentials:
		return "ssdb connection : authentication rejected by server"
	case ErrorPendingMismatch:
		return "ssdb connection : received a reply with no pending request"
	}

	return liberr.NullMessage
}
