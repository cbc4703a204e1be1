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

// Package client provides a typed convenience façade over the connection
// pool for the common SSDB command set.
//
// Every command helper except Auth is a thin wrapper around Do, which itself
// forwards to pool.Execute: acquire a connection, submit, await, release.
// Auth forwards to the pool's Auth. Commands not covered by a helper can be
// issued with Do directly.
package client

import (
	"context"

	liberr "github.com/nabbar/golib/errors"
	libcnp "github.com/nabbar/ssdb/pool"
	libssp "github.com/nabbar/ssdb/protocol"
)

// Client is a typed SSDB command surface backed by a connection pool.
type Client interface {
	// Do submits an arbitrary command through the pool.
	Do(ctx context.Context, command string, args ...interface{}) (libssp.Reply, error)

	// Get returns the value stored at key. A missing key surfaces the
	// server reply error with the "not_found" kind.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value at key.
	Set(ctx context.Context, key, value string) error

	// Del removes key.
	Del(ctx context.Context, key string) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Incr adds delta to the integer value stored at key and returns the
	// new value.
	Incr(ctx context.Context, key string, delta int64) (int64, error)

	// Expire sets the time to live of key, in seconds.
	Expire(ctx context.Context, key string, ttl int64) (bool, error)

	// TTL returns the remaining time to live of key, in seconds.
	TTL(ctx context.Context, key string) (int64, error)

	// HSet stores a value at key inside the named hashmap.
	HSet(ctx context.Context, name, key, value string) error

	// HGet returns the value stored at key inside the named hashmap.
	HGet(ctx context.Context, name, key string) (string, error)

	// HDel removes key from the named hashmap.
	HDel(ctx context.Context, name, key string) error

	// HClear removes every key of the named hashmap.
	HClear(ctx context.Context, name string) error

	// HSize returns the number of keys of the named hashmap.
	HSize(ctx context.Context, name string) (int64, error)

	// Keys returns at most limit keys in the (start, end] range.
	Keys(ctx context.Context, start, end string, limit int64) ([]string, error)

	// DBSize returns the approximate size of the server dataset in bytes.
	DBSize(ctx context.Context) (int64, error)

	// Auth re-authenticates the pool with the given password.
	Auth(ctx context.Context, password string) error

	// Pool exposes the underlying connection pool.
	Pool() libcnp.Pool

	// Close requests the shutdown of the underlying pool.
	Close()

	// WaitClosed blocks until the underlying pool completed its shutdown.
	WaitClosed(ctx context.Context) error
}

// New creates a Client backed by a pool built from cfg.
func New(cfg *libcnp.Config) (Client, liberr.Error) {
	p, err := libcnp.New(cfg)
	if err != nil {
		return nil, err
	}

	return &cli{p: p}, nil
}
