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

import "bufio"
import "fmt"
import "io"
import "sort"

/* -------------------------------------------------------------------------- */

// Meta columns of a change artifact. The family is the state of the
// interval in the first segmentation, the change is the category name of
// the form "Before-After".
var ChangeColumns = []string{"family", "change"}

func NewEmptyChanges() GRanges {
  r := GRanges{}
  r.Meta = NewMeta(
    []string     {"family",   "change",   "extra"},
    []interface{}{[]string{}, []string{}, [][]string{}})
  return r
}

// Import a change artifact. Every change tag must be a valid category
// name.
func ImportChanges(filename string) (GRanges, error) {
  r := GRanges{}
  if err := r.ImportBed(filename, ChangeColumns); err != nil {
    return GRanges{}, err
  }
  for i, name := range r.GetMetaStr("change") {
    if _, _, err := ParseCategory(name); err != nil {
      return GRanges{}, newFormatError(filename, 0, "row %d: invalid change category `%s'", i+1, name)
    }
  }
  return r, nil
}

/* -------------------------------------------------------------------------- */

type CategoryCount struct {
  Category string
  Count    int
}

// Count records per change category. The result is sorted by descending
// count, ties are sorted by name.
func CategoryFrequencies(changes GRanges) []CategoryCount {
  m := make(map[string]int)
  for _, name := range changes.GetMetaStr("change") {
    m[name]++
  }
  r := make([]CategoryCount, 0, len(m))
  for name, n := range m {
    r = append(r, CategoryCount{name, n})
  }
  sort.Slice(r, func(i, j int) bool {
    if r[i].Count != r[j].Count {
      return r[i].Count > r[j].Count
    }
    return r[i].Category < r[j].Category
  })
  return r
}

func WriteFrequencies(w io.Writer, counts []CategoryCount) error {
  bw := bufio.NewWriter(w)
  for _, c := range counts {
    if _, err := fmt.Fprintf(bw, "%s\t%d\n", c.Category, c.Count); err != nil {
      return err
    }
  }
  return bw.Flush()
}

func ExportFrequencies(filename string, counts []CategoryCount) error {
  return writeFileAtomic(filename, false, func(w io.Writer) error {
    return WriteFrequencies(w, counts)
  })
}

/* -------------------------------------------------------------------------- */

// Write the sorted change artifact to filename, compress it and write the
// frequency table to summaryFilename. The name of the compressed artifact
// is returned.
func (config ExportConfig) ExportChanges(filename, summaryFilename string, changes GRanges) (string, []CategoryCount, error) {
  result, err := config.Export(filename, changes)
  if err != nil {
    return "", nil, err
  }
  counts := CategoryFrequencies(changes)
  if summaryFilename != "" {
    if err := ExportFrequencies(summaryFilename, counts); err != nil {
      return "", nil, err
    }
  }
  return result, counts, nil
}
