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

// Package protocol implements the SSDB wire protocol: the request encoder and
// an incremental, restartable reply parser.
//
// Wire format, client to server (one block per token, blank-line terminated):
//
//	<len(tok0)>\n<tok0>\n<len(tok1)>\n<tok1>\n ... \n
//
// Wire format, server to client (one reply):
//
//	<size>\n<status>\n(<size>\n<data>\n)*\n
//
// Sizes are ASCII decimal byte lengths. The token stream of a reply ends when
// the next size line does not parse as an integer (for a well-behaved server,
// the bare newline terminating the reply). A status token equal to "ok" marks
// a success; any other status is a reply error whose kind is the status
// string.
//
// The parser is fed arbitrary byte slices as they arrive from the socket and
// preserves its position across calls, so a reply split over any number of
// reads is decoded exactly as a reply fed whole.
package protocol
