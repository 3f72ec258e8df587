//
// connectfour - a perfect-play Connect Four solver written in Go
//
// MIT License
//
// Copyright (c) 2024 the connectfour contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package openingbook

import "fmt"

// BookIOError wraps an underlying file or encoding failure from Save,
// Load, SaveCache or LoadCache. It is the only error kind those four
// functions return: a malformed book file and a missing one are both,
// from the caller's perspective, "the book could not be read". Build
// returns the solver's errors (such as a cancelled context) unwrapped.
type BookIOError struct {
	Path string
	Op   string
	Err  error
}

func (e *BookIOError) Error() string {
	return fmt.Sprintf("openingbook: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *BookIOError) Unwrap() error { return e.Err }
