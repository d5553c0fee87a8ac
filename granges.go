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

import "bytes"
import "fmt"
import "sort"
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// GRanges is an ordered collection of genomic intervals. Rows are stored
// column-wise; labels and any further columns of an interval file are kept
// as meta columns. GRanges objects are treated as immutable: all
// operations below return new objects.
type GRanges struct {
  Seqnames   []string
  Ranges     []Range
  Strand     []byte
  Meta
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewGRanges(seqnames []string, from, to []int, strand []byte) GRanges {
  n := len(seqnames)
  if len(  from) != n || len(    to) != n ||
    (len(strand) != 0 && len(strand) != n) {
    panic("NewGRanges(): invalid arguments!")
  }
  if len(strand) == 0 {
    strand = make([]byte, n)
    for i := 0; i < n; i++ {
      strand[i] = '*'
    }
  }
  ranges := make([]Range, n)
  for i := 0; i < n; i++ {
    // create range
    ranges[i] = NewRange(from[i], to[i])
    // check if strand is valid
    if strand[i] != '+' && strand[i] != '-' && strand[i] != '*' {
      panic("NewGRanges(): Invalid strand!")
    }
  }
  return GRanges{seqnames, ranges, strand, Meta{}}
}

func NewEmptyGRanges(n int) GRanges {
  seqnames := make([]string, n)
  ranges   := make([]Range, n)
  strand   := make([]byte, n)
  for i := 0; i < n; i++ {
    strand[i] = '*'
  }
  return GRanges{seqnames, ranges, strand, Meta{}}
}

func (r *GRanges) Clone() GRanges {
  result := GRanges{}
  n := r.Length()
  result.Seqnames = make([]string, n)
  result.Ranges   = make([]Range, n)
  result.Strand   = make([]byte, n)
  copy(result.Seqnames, r.Seqnames)
  copy(result.Ranges,   r.Ranges)
  copy(result.Strand,   r.Strand)
  result.Meta = r.Meta.Clone()
  return result
}

/* -------------------------------------------------------------------------- */

func (r *GRanges) Length() int {
  return len(r.Ranges)
}

func (r1 *GRanges) Append(r2 GRanges) GRanges {
  result := GRanges{}

  result.Seqnames = append(append([]string{}, r1.Seqnames...), r2.Seqnames...)
  result.Ranges   = append(append([]Range {}, r1.Ranges  ...), r2.Ranges  ...)
  result.Strand   = append(append([]byte  {}, r1.Strand  ...), r2.Strand  ...)

  result.Meta = r1.Meta.Append(r2.Meta)

  return result
}

func (r *GRanges) Subset(indices []int) GRanges {
  n := len(indices)
  seqnames := make([]string, n)
  ranges   := make([]Range,  n)
  strand   := make([]byte,   n)

  for i := 0; i < n; i++ {
    seqnames[i] = r.Seqnames[indices[i]]
    ranges  [i] = r.Ranges  [indices[i]]
    strand  [i] = r.Strand  [indices[i]]
  }
  result := GRanges{seqnames, ranges, strand, Meta{}}
  result.Meta = r.Meta.Subset(indices)

  return result
}

// Remove the given rows. Indices may contain duplicates and need not be
// sorted.
func (r *GRanges) Remove(indices []int) GRanges {
  if len(indices) == 0 {
    return r.Clone()
  }
  del := make(map[int]struct{}, len(indices))
  for _, i := range indices {
    del[i] = struct{}{}
  }
  idx := []int{}
  for i := 0; i < r.Length(); i++ {
    if _, ok := del[i]; !ok {
      idx = append(idx, i)
    }
  }
  return r.Subset(idx)
}

// Return the rows for which f returns true. The relative order of rows is
// preserved, an empty result is valid.
func (r *GRanges) Filter(f func(i int) bool) GRanges {
  idx := []int{}
  for i := 0; i < r.Length(); i++ {
    if f(i) {
      idx = append(idx, i)
    }
  }
  return r.Subset(idx)
}

// Return the rows whose string meta column `name' satisfies f.
func (r *GRanges) FilterMetaStr(name string, f func(string) bool) GRanges {
  values := r.GetMetaStr(name)
  if len(values) != r.Length() {
    return r.Filter(func(i int) bool { return false })
  }
  return r.Filter(func(i int) bool { return f(values[i]) })
}

// Group rows by the value of a string meta column. Keys are returned in
// sorted order, each group preserves the relative order of its rows.
func (r *GRanges) SplitMetaStr(name string) ([]string, map[string]GRanges) {
  values := r.GetMetaStr(name)
  index  := make(map[string][]int)
  for i, v := range values {
    index[v] = append(index[v], i)
  }
  keys   := make([]string, 0, len(index))
  groups := make(map[string]GRanges, len(index))
  for k, idx := range index {
    keys      = append(keys, k)
    groups[k] = r.Subset(idx)
  }
  sort.Strings(keys)
  return keys, groups
}

/* -------------------------------------------------------------------------- */

// Fields returns row i as it appears in an interval file: seqname, start,
// end followed by all meta columns. The strand is not part of the row.
func (r *GRanges) Fields(i int) []string {
  fields := make([]string, 0, 3+r.MetaLength())
  fields  = append(fields, r.Seqnames[i])
  fields  = append(fields, strconv.Itoa(r.Ranges[i].From))
  fields  = append(fields, strconv.Itoa(r.Ranges[i].To))
  return r.Meta.appendFields(fields, i)
}

// Line returns row i as a tab separated line without newline.
func (r *GRanges) Line(i int) string {
  return strings.Join(r.Fields(i), "\t")
}

/* convert to string
 * -------------------------------------------------------------------------- */

func (granges GRanges) PrettyPrint(n int) string {
  var buffer bytes.Buffer
  for i := 0; i < granges.Length() && i < n; i++ {
    if i != 0 {
      buffer.WriteString("\n")
    }
    fmt.Fprintf(&buffer, "%6d %s", i+1, strings.Join(granges.Fields(i), " "))
  }
  if granges.Length() > n {
    fmt.Fprintf(&buffer, "\n%6s ... (%d rows)", "", granges.Length())
  }
  return buffer.String()
}

func (granges GRanges) String() string {
  return granges.PrettyPrint(10)
}
