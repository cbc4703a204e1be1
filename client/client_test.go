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

package client_test

import (
	liberr "github.com/nabbar/golib/errors"
	libcli "github.com/nabbar/ssdb/client"
	libcnp "github.com/nabbar/ssdb/pool"
	libssp "github.com/nabbar/ssdb/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client", func() {
	var (
		srv *fakeServer
		cli libcli.Client
	)

	BeforeEach(func() {
		srv = newFakeServer()

		var err liberr.Error
		cli, err = libcli.New(&libcnp.Config{Endpoint: srv.Addr(), MinSize: 1, MaxSize: 10})
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		if cli != nil {
			cli.Close()
			_ = cli.WaitClosed(globalCtx)
		}
		srv.Stop()
	})

	Context("key/value commands", func() {
		It("should set, get and delete a key", func() {
			Expect(cli.Set(globalCtx, "a", "1")).ToNot(HaveOccurred())

			v, err := cli.Get(globalCtx, "a")
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal("1"))

			Expect(cli.Del(globalCtx, "a")).ToNot(HaveOccurred())

			_, err = cli.Get(globalCtx, "a")
			Expect(err).To(HaveOccurred())
			Expect(libssp.IsNotFound(err)).To(BeTrue())
		})

		It("should report key existence", func() {
			ok, err := cli.Exists(globalCtx, "a")
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeFalse())

			Expect(cli.Set(globalCtx, "a", "1")).ToNot(HaveOccurred())

			ok, err = cli.Exists(globalCtx, "a")
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("should increment a counter", func() {
			n, err := cli.Incr(globalCtx, "cnt", 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(int64(2)))

			n, err = cli.Incr(globalCtx, "cnt", 3)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(int64(5)))
		})

		It("should list keys in a range", func() {
			Expect(cli.Set(globalCtx, "k1", "a")).ToNot(HaveOccurred())
			Expect(cli.Set(globalCtx, "k2", "b")).ToNot(HaveOccurred())
			Expect(cli.Set(globalCtx, "k3", "c")).ToNot(HaveOccurred())

			keys, err := cli.Keys(globalCtx, "", "", 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(keys).To(Equal([]string{"k1", "k2", "k3"}))
		})

		It("should return the dataset size", func() {
			Expect(cli.Set(globalCtx, "a", "1")).ToNot(HaveOccurred())

			n, err := cli.DBSize(globalCtx)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(BeNumerically(">=", 1))
		})
	})

	Context("hashmap commands", func() {
		It("should set, get and clear a hashmap", func() {
			Expect(cli.HSet(globalCtx, "hname", "hkey", "1")).ToNot(HaveOccurred())

			v, err := cli.HGet(globalCtx, "hname", "hkey")
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal("1"))

			n, err := cli.HSize(globalCtx, "hname")
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(int64(1)))

			Expect(cli.HClear(globalCtx, "hname")).ToNot(HaveOccurred())

			_, err = cli.HGet(globalCtx, "hname", "hkey")
			Expect(err).To(HaveOccurred())
			Expect(libssp.IsNotFound(err)).To(BeTrue())
		})

		It("should delete one hashmap key", func() {
			Expect(cli.HSet(globalCtx, "hname", "k1", "1")).ToNot(HaveOccurred())
			Expect(cli.HSet(globalCtx, "hname", "k2", "2")).ToNot(HaveOccurred())
			Expect(cli.HDel(globalCtx, "hname", "k1")).ToNot(HaveOccurred())

			n, err := cli.HSize(globalCtx, "hname")
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(int64(1)))
		})
	})

	Context("raw commands", func() {
		It("should forward any command through Do", func() {
			rep, err := cli.Do(globalCtx, "set", "a", "1")
			Expect(err).ToNot(HaveOccurred())
			Expect(rep.IsOK()).To(BeTrue())
		})

		It("should expose the underlying pool", func() {
			Expect(cli.Pool()).ToNot(BeNil())
			Expect(cli.Pool().MinSize()).To(Equal(1))
		})
	})
})
