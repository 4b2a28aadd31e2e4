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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/dosaudio/environment"
	"github.com/jetsetilly/dosaudio/mixer"
	"github.com/jetsetilly/dosaudio/test"
	"github.com/jetsetilly/dosaudio/wavwriter"
)

func TestWrite(t *testing.T) {
	env := newEnv(t)
	fn := filepath.Join(t.TempDir(), "out.wav")

	_, err := wavwriter.New(env, fn, 0)
	test.ExpectFailure(t, err)

	aw, err := wavwriter.New(env, fn, 22050)
	test.DemandSuccess(t, err)

	frames := []mixer.Frame{{0, 0}, {1000, -1000}, {32767, -32768}}
	test.ExpectSuccess(t, aw.Write(frames))
	test.ExpectSuccess(t, aw.Write(frames))
	test.ExpectEquality(t, aw.Len(), 6)
	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandEquality(t, dec.IsValidFile(), true)
	test.ExpectEquality(t, dec.SampleRate, uint32(22050))
	test.ExpectEquality(t, dec.NumChans, uint16(2))
	test.ExpectEquality(t, dec.BitDepth, uint16(16))

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(buf.Data), 12)
	test.ExpectEquality(t, buf.Data[2], 1000)
	test.ExpectEquality(t, buf.Data[3], -1000)
	test.ExpectEquality(t, buf.Data[4], 32767)
	test.ExpectEquality(t, buf.Data[5], -32768)
}

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)
	return env
}
