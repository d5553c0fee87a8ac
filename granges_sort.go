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

import "sort"

/* version order
 * -------------------------------------------------------------------------- */

func isDigit(c byte) bool {
  return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
  return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func versionOrder(s string, i int) int {
  if i >= len(s) {
    return 0
  }
  switch c := s[i]; {
  case isDigit(c):
    return 0
  case isAlpha(c):
    return int(c)
  case c == '~':
    return -1
  default:
    return int(c) + 256
  }
}

// Compare two strings in natural version order, i.e. the order used by
// `sort -V': non-digit runs are compared character by character with
// letters sorting before other characters, digit runs are compared
// numerically. Strings that only differ in leading zeros compare equal.
func VersionCompare(a, b string) int {
  i, j := 0, 0
  for i < len(a) || j < len(b) {
    firstDiff := 0
    for (i < len(a) && !isDigit(a[i])) || (j < len(b) && !isDigit(b[j])) {
      ac := versionOrder(a, i)
      bc := versionOrder(b, j)
      if ac != bc {
        return ac - bc
      }
      i++
      j++
    }
    for i < len(a) && a[i] == '0' {
      i++
    }
    for j < len(b) && b[j] == '0' {
      j++
    }
    for i < len(a) && j < len(b) && isDigit(a[i]) && isDigit(b[j]) {
      if firstDiff == 0 {
        firstDiff = int(a[i]) - int(b[j])
      }
      i++
      j++
    }
    if i < len(a) && isDigit(a[i]) {
      return 1
    }
    if j < len(b) && isDigit(b[j]) {
      return -1
    }
    if firstDiff != 0 {
      return firstDiff
    }
  }
  return 0
}

/* -------------------------------------------------------------------------- */

type grangesSort struct {
  GRanges
  lines   []string
  indices []int
}

func newGRangesSort(g GRanges) grangesSort {
  indices := make([]int, g.Length())
  lines   := make([]string, g.Length())
  for i := 0; i < len(indices); i++ {
    indices[i] = i
    lines  [i] = g.Line(i)
  }
  return grangesSort{g, lines, indices}
}

func (r grangesSort) Len() int {
  return r.Length()
}

// Rows are ordered as `sort -k1,1V -k2,2n' orders them in the C locale:
// seqnames in version order, then start positions numerically. Rows with
// equal keys are ordered by comparing the whole line.
func (r grangesSort) Less(i, j int) bool {
  ii := r.indices[i]
  jj := r.indices[j]
  if c := VersionCompare(r.Seqnames[ii], r.Seqnames[jj]); c != 0 {
    return c < 0
  }
  fi := r.Ranges[ii].From
  fj := r.Ranges[jj].From
  if fi != fj {
    return fi < fj
  }
  return r.lines[ii] < r.lines[jj]
}

func (r grangesSort) Swap(i, j int) {
  r.indices[i], r.indices[j] = r.indices[j], r.indices[i]
}

/* -------------------------------------------------------------------------- */

// Sort rows by seqname in version order and by start position.
func (r *GRanges) SortVersion() GRanges {
  s := newGRangesSort(*r)
  sort.Sort(s)
  return r.Subset(s.indices)
}

// Check that rows are sorted by seqname in version order and by start
// position.
func (r *GRanges) IsSortedVersion() bool {
  for i := 1; i < r.Length(); i++ {
    c := VersionCompare(r.Seqnames[i-1], r.Seqnames[i])
    if c > 0 || (c == 0 && r.Ranges[i-1].From > r.Ranges[i].From) {
      return false
    }
  }
  return true
}
