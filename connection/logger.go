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
	liblog "github.com/nabbar/golib/logger"
	loglvl "github.com/nabbar/golib/logger/level"
)

func (o *conn) logger() liblog.Logger {
	if i := o.log.Load(); i == nil {
		return nil
	} else if f, ok := i.(FuncLog); !ok || f == nil {
		return nil
	} else {
		return f()
	}
}

func (o *conn) logError(msg string, err error) {
	if l := o.logger(); l != nil {
		l.Entry(loglvl.ErrorLevel, msg).ErrorAdd(true, err).FieldAdd("endpoint", o.adr).Log()
	}
}

func (o *conn) logDebug(msg string, args ...interface{}) {
	if l := o.logger(); l != nil {
		l.Entry(loglvl.DebugLevel, msg, args...).FieldAdd("endpoint", o.adr).Log()
	}
}
