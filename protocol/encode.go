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
	"fmt"
	"strconv"

	liberr "github.com/nabbar/golib/errors"
)

// Encode serializes a command and its arguments to the SSDB request framing:
// one size-prefixed block per token, terminated by a blank line.
//
// A command token equal to "delete" is rewritten to "del" before encoding;
// no other aliasing is applied. String and []byte arguments are written
// verbatim, numeric arguments are rendered in their decimal ASCII form, any
// other non-nil argument is rendered with the fmt package. A nil argument
// fails with ErrorTokenInvalid and nothing is encoded.
func Encode(command string, args ...interface{}) ([]byte, liberr.Error) {
	if command == "delete" {
		command = "del"
	}

	var buf bytes.Buffer

	writeToken(&buf, []byte(command))

	for _, a := range args {
		tok, err := encodeToken(a)
		if err != nil {
			return nil, err
		}

		writeToken(&buf, tok)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func writeToken(buf *bytes.Buffer, tok []byte) {
	buf.WriteString(strconv.Itoa(len(tok)))
	buf.WriteByte('\n')
	buf.Write(tok)
	buf.WriteByte('\n')
}

func encodeToken(a interface{}) ([]byte, liberr.Error) {
	switch v := a.(type) {
	case nil:
		return nil, ErrorTokenInvalid.Error(nil)
	case string:
		return []byte(v), nil
	case []byte:
		if v == nil {
			return nil, ErrorTokenInvalid.Error(nil)
		}
		return v, nil
	case int:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int8:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int16:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int32:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int64:
		return strconv.AppendInt(nil, v, 10), nil
	case uint:
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case uint8:
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case uint16:
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case uint32:
		return strconv.AppendUint(nil, uint64(v), 10), nil
	case uint64:
		return strconv.AppendUint(nil, v, 10), nil
	case float32:
		return strconv.AppendFloat(nil, float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
	default:
		return []byte(fmt.Sprint(v)), nil
	}
}
