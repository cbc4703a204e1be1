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

package connection_test

import (
	"context"
	"time"

	liberr "github.com/nabbar/golib/errors"
	libcnn "github.com/nabbar/ssdb/connection"
	libssp "github.com/nabbar/ssdb/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Connection Lifecycle", func() {
	var (
		srv *fakeServer
		con libcnn.Connection
	)

	BeforeEach(func() {
		srv = newFakeServer("")

		var err liberr.Error
		con, err = libcnn.New(&libcnn.Config{Endpoint: srv.Addr()})
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		if con != nil {
			con.Close()
			_ = con.WaitClosed(globalCtx)
		}
		if srv != nil {
			srv.Stop()
		}
	})

	Context("local close", func() {
		It("should reject new commands synchronously after close", func() {
			con.Close()

			_, err := con.Execute("get", "a")
			Expect(err).ToNot(BeNil())
			Expect(err.HasCode(libcnn.ErrorConnectionClosed)).To(BeTrue())
		})

		It("should be idempotent", func() {
			con.Close()
			con.Close()

			Expect(con.IsClosed()).To(BeTrue())
			Expect(con.WaitClosed(globalCtx)).ToNot(HaveOccurred())
		})

		It("should cancel a pending request on close", func() {
			fut, err := con.Execute("mute")
			Expect(err).To(BeNil())

			con.Close()

			_, e := fut.Wait(globalCtx)
			Expect(e).To(HaveOccurred())

			le, ok := e.(liberr.Error)
			Expect(ok).To(BeTrue())
			Expect(le.HasCode(libcnn.ErrorRequestCancelled)).To(BeTrue())
		})

		It("should reach closed even when a wait is abandoned", func() {
			ctx, cnl := context.WithCancel(globalCtx)
			cnl()

			con.Close()

			Expect(con.WaitClosed(ctx)).To(HaveOccurred())
			Expect(con.WaitClosed(globalCtx)).ToNot(HaveOccurred())
			Expect(con.IsClosed()).To(BeTrue())
		})
	})

	Context("server close", func() {
		It("should transition to closed on EOF and cancel pending requests", func() {
			mut, err := con.Execute("mute")
			Expect(err).To(BeNil())

			_, err = con.Execute("quit")
			Expect(err).To(BeNil())

			Eventually(con.IsClosed, 2*time.Second, 10*time.Millisecond).Should(BeTrue())

			_, e := mut.Wait(globalCtx)
			Expect(e).To(HaveOccurred())

			le, ok := e.(liberr.Error)
			Expect(ok).To(BeTrue())
			Expect(le.HasCode(libcnn.ErrorRequestCancelled)).To(BeTrue())
		})
	})

	Context("protocol violation", func() {
		It("should fail every pending request with the cause and close", func() {
			fut, err := con.Execute("garbage")
			Expect(err).To(BeNil())

			_, e := fut.Wait(globalCtx)
			Expect(e).To(HaveOccurred())

			le, ok := e.(liberr.Error)
			Expect(ok).To(BeTrue())
			Expect(le.HasCode(libssp.ErrorProtocolSize)).To(BeTrue())

			Eventually(con.IsClosed, 2*time.Second, 10*time.Millisecond).Should(BeTrue())

			_, err = con.Execute("get", "a")
			Expect(err).ToNot(BeNil())
			Expect(err.HasCode(libcnn.ErrorConnectionClosed)).To(BeTrue())
		})
	})

	Context("dialing", func() {
		It("should fail with a timeout when the handshake cannot complete in time", func() {
			cfg := &libcnn.Config{
				Endpoint: srv.Addr(),
				Timeout:  time.Nanosecond,
			}

			c, err := libcnn.New(cfg)
			Expect(c).To(BeNil())
			Expect(err).ToNot(BeNil())
			Expect(err.HasCode(libcnn.ErrorConnectTimeout)).To(BeTrue())
		})

		It("should fail with a dial error on a closed port", func() {
			adr := srv.Addr()
			srv.Stop()
			srv = nil

			Eventually(func() bool {
				c, err := libcnn.New(&libcnn.Config{Endpoint: adr, Timeout: time.Second})
				if c != nil {
					c.Close()
					return false
				}
				return err != nil && err.HasCode(libcnn.ErrorDialConnection)
			}, 2*time.Second, 50*time.Millisecond).Should(BeTrue())
		})

		It("should reject an invalid config", func() {
			c, err := libcnn.New(&libcnn.Config{Endpoint: "not an endpoint"})
			Expect(c).To(BeNil())
			Expect(err).ToNot(BeNil())
			Expect(err.HasCode(libcnn.ErrorValidatorError)).To(BeTrue())
		})

		It("should reject a nil config", func() {
			c, err := libcnn.New(nil)
			Expect(c).To(BeNil())
			Expect(err).ToNot(BeNil())
			Expect(err.HasCode(libcnn.ErrorParamsEmpty)).To(BeTrue())
		})
	})
})
