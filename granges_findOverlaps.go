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

import "fmt"
import "sort"

/* -------------------------------------------------------------------------- */

type endPoint struct {
  position  int
  isStart   bool
  isQuery   bool
  srcIdx    int
}

func (obj endPoint) String() string {
  if obj.isStart {
    return fmt.Sprintf("<%d,", obj.position)
  } else {
    return fmt.Sprintf(",%d>", obj.position)
  }
}

/* endPointList
 * -------------------------------------------------------------------------- */

type endPointList []endPoint

func (r endPointList) Len() int {
  return len(r)
}

func (r endPointList) Less(i, j int) bool {
  if r[i].position != r[j].position {
    return r[i].position < r[j].position
  }
  // ranges are half-open, hence at equal positions the end of a range
  // must be processed before the beginning of the next range
  if r[i].isStart != r[j].isStart {
    return !r[i].isStart
  }
  if r[i].isQuery != r[j].isQuery {
    return r[i].isQuery
  }
  return r[i].srcIdx < r[j].srcIdx
}

func (r endPointList) Swap(i, j int) {
  r[i], r[j] = r[j], r[i]
}

/* active set of ranges during the sweep
 * -------------------------------------------------------------------------- */

type activeSet struct {
  items []int
  pos   map[int]int
}

func newActiveSet() activeSet {
  return activeSet{pos: make(map[int]int)}
}

func (s *activeSet) Insert(i int) {
  s.pos[i] = len(s.items)
  s.items  = append(s.items, i)
}

func (s *activeSet) Remove(i int) {
  k, ok := s.pos[i]
  if !ok {
    return
  }
  last := s.items[len(s.items)-1]
  s.items[k] = last
  s.pos[last] = k
  s.items = s.items[:len(s.items)-1]
  delete(s.pos, i)
}

/* FindOverlaps
 * -------------------------------------------------------------------------- */

type overlapPairs struct {
  queryHits   []int
  subjectHits []int
}

func (obj overlapPairs) Len() int {
  return len(obj.queryHits)
}

func (obj overlapPairs) Less(i, j int) bool {
  if obj.queryHits[i] != obj.queryHits[j] {
    return obj.queryHits[i] < obj.queryHits[j]
  }
  return obj.subjectHits[i] < obj.subjectHits[j]
}

func (obj overlapPairs) Swap(i, j int) {
  obj.  queryHits[i], obj.  queryHits[j] = obj.  queryHits[j], obj.  queryHits[i]
  obj.subjectHits[i], obj.subjectHits[j] = obj.subjectHits[j], obj.subjectHits[i]
}

func findOverlapsEntry(queryHits, subjectHits []int, entry endPointList) ([]int, []int) {
    queryList := newActiveSet()
  subjectList := newActiveSet()
  for _, r := range entry {
    if r.isQuery {
      if r.isStart {
        queryList.Insert(r.srcIdx)
        // all ranges in subjectList overlap with this position
        for _, j := range subjectList.items {
            queryHits = append(  queryHits, r.srcIdx)
          subjectHits = append(subjectHits, j)
        }
      } else {
        queryList.Remove(r.srcIdx)
      }
    } else {
      if r.isStart {
        subjectList.Insert(r.srcIdx)
        // all ranges in queryList overlap with this position
        for _, i := range queryList.items {
            queryHits = append(  queryHits, i)
          subjectHits = append(subjectHits, r.srcIdx)
        }
      } else {
        subjectList.Remove(r.srcIdx)
      }
    }
  }
  return queryHits, subjectHits
}

// Find all pairs of overlapping ranges between query and subject. Two
// ranges overlap if they are on the same sequence and share at least one
// position. Pairs are sorted by query index and then by subject index.
// Empty ranges never overlap.
func FindOverlaps(query, subject GRanges) ([]int, []int) {

  n :=   query.Length()
  m := subject.Length()

    queryHits := []int{}
  subjectHits := []int{}

  rmap := make(map[string]endPointList)
  // fill map
  for i := 0; i < n; i++ {
    if query.Ranges[i].From >= query.Ranges[i].To {
      continue
    }
    entry := rmap[query.Seqnames[i]]
    entry  = append(entry, endPoint{query.Ranges[i].From, true,  true, i})
    entry  = append(entry, endPoint{query.Ranges[i].To,   false, true, i})
    rmap[query.Seqnames[i]] = entry
  }
  for i := 0; i < m; i++ {
    if subject.Ranges[i].From >= subject.Ranges[i].To {
      continue
    }
    // skip sequences without any query ranges
    entry, ok := rmap[subject.Seqnames[i]]
    if !ok {
      continue
    }
    entry  = append(entry, endPoint{subject.Ranges[i].From, true,  false, i})
    entry  = append(entry, endPoint{subject.Ranges[i].To,   false, false, i})
    rmap[subject.Seqnames[i]] = entry
  }
  // sort map entries and find overlaps
  for _, entry := range rmap {
    sort.Sort(entry)
    queryHits, subjectHits = findOverlapsEntry(queryHits, subjectHits, entry)
  }
  sort.Sort(overlapPairs{queryHits, subjectHits})

  return queryHits, subjectHits
}

/* -------------------------------------------------------------------------- */

// Return all rows of r that overlap at least one row of subject. If
// unique is true, each row appears at most once, otherwise a row appears
// once for every subject row it overlaps. Rows keep their relative order.
func (r *GRanges) Intersect(subject GRanges, unique bool) GRanges {
  queryHits, _ := FindOverlaps(*r, subject)
  if !unique {
    return r.Subset(queryHits)
  }
  idx := []int{}
  for k, i := range queryHits {
    if k == 0 || queryHits[k-1] != i {
      idx = append(idx, i)
    }
  }
  return r.Subset(idx)
}

// Return all rows of r that do not overlap any row of subject.
func (r *GRanges) RemoveOverlapsWith(subject GRanges) GRanges {
  queryHits, _ := FindOverlaps(*r, subject)
  return r.Remove(queryHits)
}
