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

package board

import "fmt"

// InvalidCharError is returned by FromText when a character is not a
// decimal digit.
type InvalidCharError struct {
	Char  rune
	Index int
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("invalid character %q at index %d", e.Char, e.Index)
}

// OutOfRangeError is returned by FromText when a digit is not in 1..7.
type OutOfRangeError struct {
	Digit int
	Index int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("column digit %d at index %d is out of range 1..%d", e.Digit, e.Index, Width)
}

// IllegalMoveError is returned when a column is full or the game has
// already ended.
type IllegalMoveError struct {
	Column int
	Index  int // -1 when not produced while replaying text
}

func (e *IllegalMoveError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("column %d is not playable", e.Column+1)
	}
	return fmt.Sprintf("move at index %d: column %d is not playable", e.Index, e.Column+1)
}

// OverflowError is returned by FromText when moves continue past the
// point the game already ended.
type OverflowError struct {
	Index int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("move at index %d played after the game was already over", e.Index)
}
