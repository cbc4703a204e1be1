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

package client

import (
	"context"
	"strconv"

	libcnp "github.com/nabbar/ssdb/pool"
	libssp "github.com/nabbar/ssdb/protocol"
)

// cli is the internal implementation of the Client interface.
type cli struct {
	p libcnp.Pool
}

func (c *cli) Do(ctx context.Context, command string, args ...interface{}) (libssp.Reply, error) {
	return c.p.Execute(ctx, command, args...)
}

// first returns the first data token of a reply, or ErrorReplyEmpty.
func (c *cli) first(rep libssp.Reply) (string, error) {
	if rep.Len() < 1 {
		return "", ErrorReplyEmpty.Error(nil)
	}

	return rep.Value(0), nil
}

// firstInt returns the first data token of a reply parsed as an integer.
func (c *cli) firstInt(rep libssp.Reply) (int64, error) {
	s, err := c.first(rep)
	if err != nil {
		return 0, err
	}

	i, e := strconv.ParseInt(s, 10, 64)
	if e != nil {
		return 0, ErrorReplyParse.Error(e)
	}

	return i, nil
}

func (c *cli) Get(ctx context.Context, key string) (string, error) {
	rep, err := c.Do(ctx, "get", key)
	if err != nil {
		return "", err
	}

	return c.first(rep)
}

func (c *cli) Set(ctx context.Context, key, value string) error {
	_, err := c.Do(ctx, "set", key, value)
	return err
}

func (c *cli) Del(ctx context.Context, key string) error {
	_, err := c.Do(ctx, "del", key)
	return err
}

func (c *cli) Exists(ctx context.Context, key string) (bool, error) {
	rep, err := c.Do(ctx, "exists", key)
	if err != nil {
		return false, err
	}

	i, err := c.firstInt(rep)
	if err != nil {
		return false, err
	}

	return i == 1, nil
}

func (c *cli) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	rep, err := c.Do(ctx, "incr", key, delta)
	if err != nil {
		return 0, err
	}

	return c.firstInt(rep)
}

func (c *cli) Expire(ctx context.Context, key string, ttl int64) (bool, error) {
	rep, err := c.Do(ctx, "expire", key, ttl)
	if err != nil {
		return false, err
	}

	i, err := c.firstInt(rep)
	if err != nil {
		return false, err
	}

	return i == 1, nil
}

func (c *cli) TTL(ctx context.Context, key string) (int64, error) {
	rep, err := c.Do(ctx, "ttl", key)
	if err != nil {
		return 0, err
	}

	return c.firstInt(rep)
}

func (c *cli) HSet(ctx context.Context, name, key, value string) error {
	_, err := c.Do(ctx, "hset", name, key, value)
	return err
}

func (c *cli) HGet(ctx context.Context, name, key string) (string, error) {
	rep, err := c.Do(ctx, "hget", name, key)
	if err != nil {
		return "", err
	}

	return c.first(rep)
}

func (c *cli) HDel(ctx context.Context, name, key string) error {
	_, err := c.Do(ctx, "hdel", name, key)
	return err
}

func (c *cli) HClear(ctx context.Context, name string) error {
	_, err := c.Do(ctx, "hclear", name)
	return err
}

func (c *cli) HSize(ctx context.Context, name string) (int64, error) {
	rep, err := c.Do(ctx, "hsize", name)
	if err != nil {
		return 0, err
	}

	return c.firstInt(rep)
}

func (c *cli) Keys(ctx context.Context, start, end string, limit int64) ([]string, error) {
	rep, err := c.Do(ctx, "keys", start, end, limit)
	if err != nil {
		return nil, err
	}

	return rep.Strings(), nil
}

func (c *cli) DBSize(ctx context.Context) (int64, error) {
	rep, err := c.Do(ctx, "dbsize")
	if err != nil {
		return 0, err
	}

	return c.firstInt(rep)
}

func (c *cli) Auth(ctx context.Context, password string) error {
	return c.p.Auth(ctx, password)
}

func (c *cli) Pool() libcnp.Pool {
	return c.p
}

func (c *cli) Close() {
	c.p.Close()
}

func (c *cli) WaitClosed(ctx context.Context) error {
	return c.p.WaitClosed(ctx)
}
