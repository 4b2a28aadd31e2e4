// This file is part of Dosaudio.
//
// Dosaudio is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dosaudio is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dosaudio.  If not, see <https://www.gnu.org/licenses/>.

// Package test contains helper functions to remove common boilerplate from
// the package tests.
//
// The Expect*() functions report a failure with t.Errorf() and allow the test
// to continue. The Demand*() functions use t.Fatalf() and are for conditions
// that make the rest of the test meaningless.
//
// It is worth describing how the success/failure functions handle nil because
// it is not obvious. The nil value is considered a success and so will cause
// ExpectFailure() to fail and ExpectSuccess() to succeed. This is because of
// how errors usually work in Go (nil indicating no error).
//
// The CappedWriter and RingWriter types implement io.Writer and are useful for
// capturing output from functions that write to a supplied io.Writer.
package test
