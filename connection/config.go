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
	"time"

	libval "github.com/go-playground/validator/v10"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"
	libsiz "github.com/nabbar/golib/size"
)

// FuncLog returns the logger instance a connection must use. A nil function
// or a nil result disables logging.
type FuncLog func() liblog.Logger

type Config struct {
	// Endpoint define the host/port to connect to the SSDB server.
	Endpoint string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint" toml:"endpoint" validate:"required,hostname_port"`

	// Password define the password sent with the auth command once the
	// connection is established. Empty disables authentication.
	Password string `mapstructure:"password" json:"password" yaml:"password" toml:"password"`

	// Charset names the text encoding of data tokens returned by the
	// server. When set, tokens are transcoded to UTF-8. Empty leaves
	// tokens as raw bytes.
	Charset string `mapstructure:"charset" json:"charset" yaml:"charset" toml:"charset"`

	// Timeout bounds the TCP handshake. Zero or negative disables the
	// limit. It does not apply to established connections.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" toml:"timeout"`

	// BufferRead define the size of the chunks read from the socket by the
	// reader loop. Zero applies the default of 64 KiB.
	BufferRead libsiz.Size `mapstructure:"buffer_read" json:"buffer_read" yaml:"buffer_read" toml:"buffer_read"`

	// DisableReuseAddr skips setting SO_REUSEADDR on the outbound socket.
	DisableReuseAddr bool `mapstructure:"disable_reuse_addr" json:"disable_reuse_addr" yaml:"disable_reuse_addr" toml:"disable_reuse_addr"`

	flog FuncLog
}

// Validate allow checking if the config' struct is valid with the awaiting model
func (c *Config) Validate() liberr.Error {
	var e = ErrorValidatorError.Error(nil)

	if err := libval.New().Struct(c); err != nil {
		if er, ok := err.(*libval.InvalidValidationError); ok {
			e.Add(er)
		}

		for _, er := range err.(libval.ValidationErrors) {
			//nolint #goerr113
			e.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", er.Namespace(), er.ActualTag()))
		}
	}

	if !e.HasParent() {
		e = nil
	}

	return e
}

// RegisterLogger registers the function returning the logger used by
// connections opened with this config.
func (c *Config) RegisterLogger(fct FuncLog) {
	c.flog = fct
}
