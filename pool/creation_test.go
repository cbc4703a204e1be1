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

package pool_test

import (
	"time"

	libcnp "github.com/nabbar/ssdb/pool"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pool Creation", func() {
	var srv *fakeServer

	BeforeEach(func() {
		srv = newFakeServer()
	})

	AfterEach(func() {
		srv.Stop()
	})

	It("should pre-fill the free deque up to the minimum", func() {
		p, err := libcnp.New(&libcnp.Config{Endpoint: srv.Addr(), MinSize: 1, MaxSize: 10})
		Expect(err).To(BeNil())

		Expect(p.MinSize()).To(Equal(1))
		Expect(p.MaxSize()).To(Equal(10))
		Expect(p.Size()).To(Equal(1))
		Expect(p.FreeSize()).To(Equal(1))
		Expect(p.IsClosed()).To(BeFalse())

		p.Close()
		Expect(p.WaitClosed(globalCtx)).ToNot(HaveOccurred())
	})

	It("should render its string form", func() {
		p, err := libcnp.New(&libcnp.Config{Endpoint: srv.Addr(), MinSize: 1, MaxSize: 10})
		Expect(err).To(BeNil())

		Expect(p.String()).To(Equal("<SSDBConnectionPool [size:[1:10], free:1]>"))

		p.Close()
		Expect(p.WaitClosed(globalCtx)).ToNot(HaveOccurred())
	})

	It("should allow a zero minimum and stay empty until first acquire", func() {
		p, err := libcnp.New(&libcnp.Config{Endpoint: srv.Addr(), MinSize: 0, MaxSize: 3})
		Expect(err).To(BeNil())

		Expect(p.Size()).To(Equal(0))
		Expect(p.FreeSize()).To(Equal(0))

		p.Close()
		Expect(p.WaitClosed(globalCtx)).ToNot(HaveOccurred())
	})

	It("should reject a nil config", func() {
		p, err := libcnp.New(nil)
		Expect(p).To(BeNil())
		Expect(err).ToNot(BeNil())
		Expect(err.HasCode(libcnp.ErrorParamsEmpty)).To(BeTrue())
	})

	It("should reject a maximum lower than the minimum", func() {
		p, err := libcnp.New(&libcnp.Config{Endpoint: srv.Addr(), MinSize: 5, MaxSize: 2})
		Expect(p).To(BeNil())
		Expect(err).ToNot(BeNil())
		Expect(err.HasCode(libcnp.ErrorValidatorError)).To(BeTrue())
	})

	It("should close the partially built pool when the minimum cannot be opened", func() {
		adr := srv.Addr()
		srv.Stop()

		p, err := libcnp.New(&libcnp.Config{
			Endpoint: adr,
			MinSize:  2,
			MaxSize:  4,
			Timeout:  time.Second,
		})
		Expect(p).To(BeNil())
		Expect(err).ToNot(BeNil())
		Expect(err.HasCode(libcnp.ErrorPrefillFailed)).To(BeTrue())
	})
})
