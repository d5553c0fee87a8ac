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
import "io"
import "os"
import "os/exec"
import "sort"

import "github.com/biogo/store/interval"

/* -------------------------------------------------------------------------- */

// SortedWriter persists intervals to a file sorted by natural chromosome
// order and numeric start.
type SortedWriter interface {
  WriteSorted(filename string, granges GRanges) error
}

// Compressor gzip compresses a file and returns the name of the
// compressed file. The uncompressed file is removed on success.
type Compressor interface {
  Compress(filename string) (string, error)
}

// IntervalJoiner returns all pairs of overlapping rows between query and
// subject, sorted by query index and then subject index.
type IntervalJoiner interface {
  Join(query, subject GRanges) ([]int, []int)
}

/* -------------------------------------------------------------------------- */

func runTool(tool string, env []string, args ...string) error {
  var stderr bytes.Buffer
  cmd := exec.Command(tool, args...)
  cmd.Stderr = &stderr
  if len(env) > 0 {
    cmd.Env = append(os.Environ(), env...)
  }
  if err := cmd.Run(); err != nil {
    return &ExternalToolError{Tool: tool, Args: args, Stderr: stderr.String(), Err: err}
  }
  return nil
}

/* native implementations
 * -------------------------------------------------------------------------- */

type NativeSorter struct{}

func (NativeSorter) WriteSorted(filename string, granges GRanges) error {
  s := granges.SortVersion()
  return s.ExportBed(filename, false)
}

type NativeCompressor struct{}

func (NativeCompressor) Compress(filename string) (string, error) {
  target := filename + ".gz"
  f, err := openFile(filename)
  if err != nil {
    return "", err
  }
  defer f.Close()
  if err := writeFileAtomic(target, true, func(w io.Writer) error {
    _, err := io.Copy(w, f)
    return err
  }); err != nil {
    return "", fmt.Errorf("compressing `%s' failed: %w", filename, err)
  }
  return target, os.Remove(filename)
}

/* subprocess implementations
 * -------------------------------------------------------------------------- */

// ExternalSorter writes rows in input order and sorts the file in place
// with `sort -k1,1V -k2,2n' in the C locale.
type ExternalSorter struct {
  Command string
}

func (obj ExternalSorter) WriteSorted(filename string, granges GRanges) error {
  tool := obj.Command
  if tool == "" {
    tool = "sort"
  }
  tmp := filename + ".unsorted"
  if err := granges.ExportBed(tmp, false); err != nil {
    return err
  }
  defer os.Remove(tmp)
  if err := runTool(tool, []string{"LC_ALL=C"}, "-k1,1V", "-k2,2n", "-o", filename+".tmp", tmp); err != nil {
    os.Remove(filename+".tmp")
    return err
  }
  return os.Rename(filename+".tmp", filename)
}

type ExternalCompressor struct {
  Command string
}

func (obj ExternalCompressor) Compress(filename string) (string, error) {
  tool := obj.Command
  if tool == "" {
    tool = "gzip"
  }
  if err := runTool(tool, nil, "-f", filename); err != nil {
    return "", err
  }
  return filename + ".gz", nil
}

/* joiners
 * -------------------------------------------------------------------------- */

// SweepJoiner joins intervals with a sorted endpoint sweep.
type SweepJoiner struct{}

func (SweepJoiner) Join(query, subject GRanges) ([]int, []int) {
  return FindOverlaps(query, subject)
}

// TreeJoiner joins intervals by querying one interval tree per sequence
// built from the subject rows.
type TreeJoiner struct{}

type treeInterval struct {
  r   Range
  idx int
}

func (obj treeInterval) Overlap(b interval.IntRange) bool {
  return obj.r.From < b.End && obj.r.To > b.Start
}

func (obj treeInterval) ID() uintptr {
  return uintptr(obj.idx)
}

func (obj treeInterval) Range() interval.IntRange {
  return interval.IntRange{Start: obj.r.From, End: obj.r.To}
}

func (TreeJoiner) Join(query, subject GRanges) ([]int, []int) {
  trees := make(map[string]*interval.IntTree)
  for i := 0; i < subject.Length(); i++ {
    if subject.Ranges[i].From >= subject.Ranges[i].To {
      continue
    }
    t, ok := trees[subject.Seqnames[i]]
    if !ok {
      t = &interval.IntTree{}
      trees[subject.Seqnames[i]] = t
    }
    // ids are unique, hence insertion never fails
    t.Insert(treeInterval{subject.Ranges[i], i}, true)
  }
  for _, t := range trees {
    t.AdjustRanges()
  }
    queryHits := []int{}
  subjectHits := []int{}
  for i := 0; i < query.Length(); i++ {
    t, ok := trees[query.Seqnames[i]]
    if !ok || query.Ranges[i].From >= query.Ranges[i].To {
      continue
    }
    hits := []int{}
    for _, h := range t.Get(treeInterval{query.Ranges[i], -1}) {
      s := h.(treeInterval)
      if s.r.Overlaps(query.Ranges[i]) {
        hits = append(hits, s.idx)
      }
    }
    sort.Ints(hits)
    for _, j := range hits {
        queryHits = append(  queryHits, i)
      subjectHits = append(subjectHits, j)
    }
  }
  return queryHits, subjectHits
}

/* -------------------------------------------------------------------------- */

// ExportConfig selects how artifacts are sorted and compressed. The zero
// value uses the native implementations.
type ExportConfig struct {
  Sorter     SortedWriter
  Compressor Compressor
}

func (config ExportConfig) sorter() SortedWriter {
  if config.Sorter == nil {
    return NativeSorter{}
  }
  return config.Sorter
}

func (config ExportConfig) compressor() Compressor {
  if config.Compressor == nil {
    return NativeCompressor{}
  }
  return config.Compressor
}

// Export writes granges sorted to filename and compresses the result.
// The name of the compressed file is returned.
func (config ExportConfig) Export(filename string, granges GRanges) (string, error) {
  if err := config.sorter().WriteSorted(filename, granges); err != nil {
    return "", err
  }
  return config.compressor().Compress(filename)
}

func NewExportConfig(external bool) ExportConfig {
  if external {
    return ExportConfig{ExternalSorter{}, ExternalCompressor{}}
  }
  return ExportConfig{NativeSorter{}, NativeCompressor{}}
}
