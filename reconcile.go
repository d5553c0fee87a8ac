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

import "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

type FilterCounts struct {
  Change   string
  Original int
  Filtered int
}

func (obj FilterCounts) Removed() int {
  return obj.Original - obj.Filtered
}

func (obj FilterCounts) RemovalRate() float64 {
  if obj.Original == 0 {
    return 0.0
  }
  return float64(obj.Removed())/float64(obj.Original)
}

// FilterSummary holds counts for each change category sorted by name
// and the total over all categories.
type FilterSummary struct {
  Counts []FilterCounts
  Total  FilterCounts
}

func newFilterSummary(original, filtered map[string]int) FilterSummary {
  r := FilterSummary{}
  r.Total.Change = "TOTAL"
  for name, n := range original {
    c := FilterCounts{name, n, filtered[name]}
    r.Counts = append(r.Counts, c)
    r.Total.Original += c.Original
    r.Total.Filtered += c.Filtered
  }
  sort.Slice(r.Counts, func(i, j int) bool {
    return r.Counts[i].Change < r.Counts[j].Change
  })
  return r
}

func (obj FilterSummary) Write(w io.Writer) error {
  bw := bufio.NewWriter(w)
  fmt.Fprintf(bw, "Change\tOriginal\tFiltered\tRemoved\tRemoval_Rate\n")
  for _, c := range append(obj.Counts, obj.Total) {
    fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%.1f%%\n", c.Change, c.Original, c.Filtered, c.Removed(), 100.0*c.RemovalRate())
  }
  return bw.Flush()
}

func (obj FilterSummary) Export(filename string) error {
  return writeFileAtomic(filename, false, obj.Write)
}

/* -------------------------------------------------------------------------- */

// Reconciler removes changed records that overlap an unchanged record of
// the same family.
type Reconciler struct {
  Joiner IntervalJoiner
  Logger logrus.FieldLogger
}

func NewReconciler(logger logrus.FieldLogger) Reconciler {
  return Reconciler{Joiner: SweepJoiner{}, Logger: logger}
}

// Reconcile groups changes by family and splits each family into self
// records (Before == After) and changed records. Changed records that
// overlap at least one self record of their family are removed. Families
// without self records pass unfiltered, families without changed records
// contribute nothing. Counts refer to change categories. The surviving
// records are returned in sorted order.
func (obj Reconciler) Reconcile(changes GRanges) (GRanges, FilterSummary, error) {
  logger := loggerOrDiscard(obj.Logger)
  joiner := obj.Joiner
  if joiner == nil {
    joiner = SweepJoiner{}
  }
  if n := len(changes.GetMetaStr("family")); n != changes.Length() {
    return GRanges{}, FilterSummary{}, fmt.Errorf("changes have no family column")
  }
  if n := len(changes.GetMetaStr("change")); n != changes.Length() {
    return GRanges{}, FilterSummary{}, fmt.Errorf("changes have no change column")
  }
  original := make(map[string]int)
  filtered := make(map[string]int)

  result := changes.Subset([]int{})

  families, groups := changes.SplitMetaStr("family")
  for _, family := range families {
    group := groups[family]
    names := group.GetMetaStr("change")
    isSelf := make([]bool, group.Length())
    for i, name := range names {
      before, after, err := ParseCategory(name)
      if err != nil {
        return GRanges{}, FilterSummary{}, err
      }
      isSelf[i] = before == after
    }
    self    := group.Filter(func(i int) bool { return  isSelf[i] })
    changed := group.Filter(func(i int) bool { return !isSelf[i] })

    for _, name := range changed.GetMetaStr("change") {
      original[name]++
    }
    l := logger.WithField("family", family)
    switch {
    case changed.Length() == 0:
      l.Debugf("family has %d unchanged records only", self.Length())
      continue
    case self.Length() == 0:
      l.Debugf("family has no unchanged records, keeping all %d changed records", changed.Length())
    default:
      queryHits, _ := joiner.Join(changed, self)
      n := changed.Length()
      changed = changed.Remove(queryHits)
      l.Debugf("removed %d of %d changed records", n-changed.Length(), n)
    }
    for _, name := range changed.GetMetaStr("change") {
      filtered[name]++
    }
    result = result.Append(changed)
  }
  if len(families) == 0 {
    warnEmpty(logger, "family", "*")
  }
  summary := newFilterSummary(original, filtered)
  for _, c := range summary.Counts {
    logger.WithField("category", c.Change).Infof("kept %d of %d records (%.1f%% removed)", c.Filtered, c.Original, 100.0*c.RemovalRate())
  }
  logger.Infof("kept %d of %d changed records in total", summary.Total.Filtered, summary.Total.Original)

  return result.SortVersion(), summary, nil
}
