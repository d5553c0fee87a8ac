/* Copyright (C) 2016 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package chromdiff

/* -------------------------------------------------------------------------- */

import "math/rand"
import "testing"

import "github.com/matryer/is"

/* -------------------------------------------------------------------------- */

func TestVersionCompare(t *testing.T) {
  for _, test := range []struct {
    a, b string
    r    int
  }{
    {"chr1",  "chr2",   -1},
    {"chr2",  "chr10",  -1},
    {"chr10", "chr2",    1},
    {"chr9",  "chrX",   -1},
    {"chrM",  "chrX",   -1},
    {"chrX",  "chrY",   -1},
    {"chr1",  "chr1",    0},
    {"chr1",  "chr1_KI270706v1_random", -1},
    {"chr01", "chr1",    0},
    {"chr01", "chr2",   -1},
  } {
    r := VersionCompare(test.a, test.b)
    if (r < 0 && test.r >= 0) || (r > 0 && test.r <= 0) || (r == 0 && test.r != 0) {
      t.Errorf("TestVersionCompare failed for `%s' and `%s'", test.a, test.b)
    }
  }
}

func TestSortVersion1(t *testing.T) {
  is := is.New(t)

  r := NewGRanges(
    []string{"chrX", "chr10", "chr2", "chr1", "chrM", "chr2", "chrY"},
    []int{10, 10, 500, 10, 10, 20, 10},
    []int{20, 20, 600, 20, 20, 30, 20},
    []byte{})
  r.AddMeta("name", []string{"a", "b", "c", "d", "e", "f", "g"})

  s := r.SortVersion()

  is.Equal(s.Seqnames, []string{"chr1", "chr2", "chr2", "chr10", "chrM", "chrX", "chrY"})
  is.Equal(s.GetMetaStr("name"), []string{"d", "f", "c", "b", "e", "a", "g"})
  is.True(s.IsSortedVersion())
  is.True(!r.IsSortedVersion())
}

func TestSortVersionLeadingZeros(t *testing.T) {
  is := is.New(t)

  // equal version keys fall through to the start position
  r := NewGRanges(
    []string{"chr1", "chr01", "chr1", "chr2"},
    []int{100, 50, 10, 5},
    []int{200, 60, 20, 6},
    []byte{})
  r.AddMeta("name", []string{"a", "b", "c", "d"})

  s := r.SortVersion()
  is.Equal(s.GetMetaStr("name"), []string{"c", "b", "a", "d"})
  is.True(s.IsSortedVersion())
}

func TestSortVersion2(t *testing.T) {
  is  := is.New(t)
  rng := rand.New(rand.NewSource(3))

  for k := 0; k < 10; k++ {
    r := randomGRanges(rng, 100)
    s := r.SortVersion()
    is.Equal(s.Length(), r.Length())
    is.True(s.IsSortedVersion())
    // sorting is deterministic
    u := s.SortVersion()
    is.Equal(u.Seqnames, s.Seqnames)
    is.Equal(u.Ranges,   s.Ranges)
  }
}
