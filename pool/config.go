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

package pool

import (
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"
	liberr "github.com/nabbar/golib/errors"
	libcnn "github.com/nabbar/ssdb/connection"
)

// FuncDial opens one connection for the pool. The pool registers a dialer to
// replace the default connection.New, mainly as a test seam.
type FuncDial func(cfg *libcnn.Config) (libcnn.Connection, liberr.Error)

type Config struct {
	// Endpoint define the host/port to connect to the SSDB server.
	Endpoint string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint" toml:"endpoint" validate:"required,hostname_port"`

	// MinSize define the number of connections opened at construction and
	// maintained while the pool is open.
	MinSize int `mapstructure:"min_size" json:"min_size" yaml:"min_size" toml:"min_size" validate:"gte=0"`

	// MaxSize define the ceiling of opened connections, free and leased
	// together. Must be greater than or equal to MinSize.
	MaxSize int `mapstructure:"max_size" json:"max_size" yaml:"max_size" toml:"max_size" validate:"gtefield=MinSize"`

	// Password define the password used to authenticate every connection
	// opened by the pool. Empty disables authentication.
	Password string `mapstructure:"password" json:"password" yaml:"password" toml:"password"`

	// Charset names the text encoding of data tokens, see connection.Config.
	Charset string `mapstructure:"charset" json:"charset" yaml:"charset" toml:"charset"`

	// Timeout bounds the TCP handshake of every connection opened by the
	// pool. Zero disables the limit.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" toml:"timeout"`

	// DisableReuseAddr skips setting SO_REUSEADDR on outbound sockets.
	DisableReuseAddr bool `mapstructure:"disable_reuse_addr" json:"disable_reuse_addr" yaml:"disable_reuse_addr" toml:"disable_reuse_addr"`

	fdial FuncDial
	flog  libcnn.FuncLog
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

// RegisterDialer registers the function used to open new connections in
// place of the default dialer.
func (c *Config) RegisterDialer(fct FuncDial) {
	c.fdial = fct
}

// RegisterLogger registers the function returning the logger used by the
// pool and propagated to every connection it opens.
func (c *Config) RegisterLogger(fct libcnn.FuncLog) {
	c.flog = fct
}
