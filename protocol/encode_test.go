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

package protocol_test

import (
	libssp "github.com/nabbar/ssdb/protocol"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Command Encoder", func() {
	Context("framing", func() {
		It("should frame a command with one argument", func() {
			buf, err := libssp.Encode("get", "a")
			Expect(err).To(BeNil())
			Expect(string(buf)).To(Equal("3\nget\n1\na\n\n"))
		})

		It("should frame a command with no argument", func() {
			buf, err := libssp.Encode("ping")
			Expect(err).To(BeNil())
			Expect(string(buf)).To(Equal("4\nping\n\n"))
		})

		It("should use the byte length of each token as size", func() {
			buf, err := libssp.Encode("set", "hello world", "héllo")
			Expect(err).To(BeNil())
			Expect(string(buf)).To(Equal("3\nset\n11\nhello world\n6\nhéllo\n\n"))
		})

		It("should render numeric arguments in decimal ASCII", func() {
			buf, err := libssp.Encode("incr", "a", 42)
			Expect(err).To(BeNil())
			Expect(string(buf)).To(Equal("4\nincr\n1\na\n2\n42\n\n"))
		})

		It("should write byte slice arguments verbatim", func() {
			buf, err := libssp.Encode("set", "a", []byte{0x00, 0xff})
			Expect(err).To(BeNil())
			Expect(buf).To(Equal([]byte("3\nset\n1\na\n2\n\x00\xff\n\n")))
		})
	})

	Context("aliasing", func() {
		It("should rewrite delete to del", func() {
			buf, err := libssp.Encode("delete", "a")
			Expect(err).To(BeNil())
			Expect(string(buf)).To(Equal("3\ndel\n1\na\n\n"))
		})

		It("should not alias any other command", func() {
			buf, err := libssp.Encode("deleted", "a")
			Expect(err).To(BeNil())
			Expect(string(buf)).To(Equal("7\ndeleted\n1\na\n\n"))
		})
	})

	Context("invalid arguments", func() {
		It("should reject a nil argument", func() {
			buf, err := libssp.Encode("set", "a", nil)
			Expect(buf).To(BeNil())
			Expect(err).ToNot(BeNil())
			Expect(err.HasCode(libssp.ErrorTokenInvalid)).To(BeTrue())
		})

		It("should reject a nil byte slice argument", func() {
			var tok []byte

			buf, err := libssp.Encode("set", "a", tok)
			Expect(buf).To(BeNil())
			Expect(err).ToNot(BeNil())
			Expect(err.HasCode(libssp.ErrorTokenInvalid)).To(BeTrue())
		})
	})
})
