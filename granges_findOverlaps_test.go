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

func TestOverlaps1(t *testing.T) {

  rSubjects := NewGRanges(
    []string{"chr4", "chr4", "chr4", "chr4"},
    []int{100, 200, 300, 400},
    []int{150, 250, 350, 450},
    []byte{})
  rQuery := NewGRanges(
    []string{"chr1", "chr4", "chr4", "chr4", "chr4", "chr4"},
    []int{100, 110, 190, 340, 390, 450},
    []int{150, 120, 220, 360, 400, 500},
    []byte{})

  queryHits, subjectHits := FindOverlaps(rQuery, rSubjects)

  if len(queryHits) != 3 {
    t.Fatal("TestOverlaps1 failed!")
  }
  if   queryHits[0] != 1 ||   queryHits[1] != 2 ||   queryHits[2] != 3 ||
    (subjectHits[0] != 0 || subjectHits[1] != 1 || subjectHits[2] != 2) {
    t.Error("TestOverlaps1 failed!")
  }
}

func TestOverlaps2(t *testing.T) {

  rSubjects := NewGRanges(
    []string{"chr4", "chr4", "chr4", "chr4"},
    []int{100, 200, 300, 400},
    []int{900, 800, 700, 600},
    []byte{})
  rQuery := NewGRanges(
    []string{"chr4", "chr4"},
    []int{600, 850},
    []int{950, 950},
    []byte{})

  queryHits, subjectHits := FindOverlaps(rQuery, rSubjects)

  if len(queryHits) != 4 {
    t.Fatal("TestOverlaps2 failed!")
  }
  if   queryHits[0] != 0 ||   queryHits[1] != 0 ||   queryHits[2] != 0 ||   queryHits[3] != 1 ||
    (subjectHits[0] != 0 || subjectHits[1] != 1 || subjectHits[2] != 2 || subjectHits[3] != 0) {
    t.Error("TestOverlaps2 failed!")
  }
}

// touching ranges do not overlap
func TestOverlaps3(t *testing.T) {
  is := is.New(t)

  rSubjects := NewGRanges(
    []string{"chr1", "chr1"},
    []int{100, 300},
    []int{200, 400},
    []byte{})
  rQuery := NewGRanges(
    []string{"chr1", "chr1", "chr1"},
    []int{200,  50, 199},
    []int{300, 100, 201},
    []byte{})

  queryHits, subjectHits := FindOverlaps(rQuery, rSubjects)

  is.Equal(queryHits,   []int{2})
  is.Equal(subjectHits, []int{0})
}

/* -------------------------------------------------------------------------- */

func randomGRanges(rng *rand.Rand, n int) GRanges {
  seqnames := make([]string, n)
  from     := make([]int, n)
  to       := make([]int, n)
  for i := 0; i < n; i++ {
    seqnames[i] = []string{"chr1", "chr2", "chrX"}[rng.Intn(3)]
    from    [i] = rng.Intn(1000)
    to      [i] = from[i] + 1 + rng.Intn(100)
  }
  return NewGRanges(seqnames, from, to, []byte{})
}

func bruteForceOverlaps(query, subject GRanges) ([]int, []int) {
    queryHits := []int{}
  subjectHits := []int{}
  for i := 0; i < query.Length(); i++ {
    for j := 0; j < subject.Length(); j++ {
      if query.Seqnames[i] == subject.Seqnames[j] &&
        query.Ranges[i].From < subject.Ranges[j].To &&
        query.Ranges[i].To   > subject.Ranges[j].From {
          queryHits = append(  queryHits, i)
        subjectHits = append(subjectHits, j)
      }
    }
  }
  return queryHits, subjectHits
}

func TestOverlapsRandom(t *testing.T) {
  is  := is.New(t)
  rng := rand.New(rand.NewSource(1))

  for k := 0; k < 20; k++ {
    query   := randomGRanges(rng, 50)
    subject := randomGRanges(rng, 60)

    q1, s1 := bruteForceOverlaps(query, subject)
    q2, s2 := FindOverlaps(query, subject)
    q3, s3 := TreeJoiner{}.Join(query, subject)

    is.Equal(q1, q2)
    is.Equal(s1, s2)
    is.Equal(q1, q3)
    is.Equal(s1, s3)
  }
}

/* -------------------------------------------------------------------------- */

func TestIntersect(t *testing.T) {
  is  := is.New(t)
  rng := rand.New(rand.NewSource(2))

  for k := 0; k < 20; k++ {
    a := randomGRanges(rng, 40)
    b := randomGRanges(rng, 40)

    r := a.Intersect(b, true)
    is.True(r.Length() <= a.Length())

    // a row is part of the result iff it overlaps some row of b
    q, _ := bruteForceOverlaps(a, b)
    expected := []int{}
    for k, i := range q {
      if k == 0 || q[k-1] != i {
        expected = append(expected, i)
      }
    }
    is.Equal(r.Length(), len(expected))
    for k, i := range expected {
      is.Equal(r.Seqnames[k], a.Seqnames[i])
      is.Equal(r.Ranges  [k], a.Ranges  [i])
    }
    // every overlapping pair is reported without uniqueness
    ab := a.Intersect(b, false)
    is.Equal(ab.Length(), len(q))
    // removal is the complement of the unique intersection
    av := a.RemoveOverlapsWith(b)
    is.Equal(av.Length(), a.Length()-r.Length())
  }
}

func TestIntersectUnique(t *testing.T) {
  is := is.New(t)

  a := NewGRanges(
    []string{"chr1", "chr1"},
    []int{100, 1000},
    []int{500, 1100},
    []byte{})
  a.AddMeta("name", []string{"TssA", "Tx"})
  b := NewGRanges(
    []string{"chr1", "chr1", "chr1"},
    []int{100, 200, 300},
    []int{150, 250, 350},
    []byte{})

  r := a.Intersect(b, true)
  is.Equal(r.Length(), 1)
  is.Equal(r.GetMetaStr("name"), []string{"TssA"})

  r = a.Intersect(b, false)
  is.Equal(r.Length(), 3)
}
