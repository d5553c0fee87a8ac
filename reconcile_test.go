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
import "math/rand"
import "os"
import "path/filepath"
import "testing"

import "github.com/matryer/is"

/* -------------------------------------------------------------------------- */

func newChanges(seqnames []string, from, to []int, families, changes []string) GRanges {
  r := NewGRanges(seqnames, from, to, []byte{})
  r.AddMeta("family", families)
  r.AddMeta("change", changes)
  r.AddMeta("extra",  make([][]string, len(changes)))
  return r
}

func findCounts(summary FilterSummary, change string) (FilterCounts, bool) {
  for _, c := range summary.Counts {
    if c.Change == change {
      return c, true
    }
  }
  return FilterCounts{}, false
}

/* -------------------------------------------------------------------------- */

func TestReconcileOverlap(t *testing.T) {
  is := is.New(t)

  changes := newChanges(
    []string{"chr1", "chr1"},
    []int{100, 150},
    []int{200, 250},
    []string{"TssA", "TssA"},
    []string{"TssA-ReprPC", "TssA-TssA"})

  r, summary, err := NewReconciler(nil).Reconcile(changes)
  is.NoErr(err)
  is.Equal(r.Length(), 0)

  c, ok := findCounts(summary, "TssA-ReprPC")
  is.True(ok)
  is.Equal(c.Original, 1)
  is.Equal(c.Filtered, 0)
  is.Equal(c.Removed(), 1)
  is.Equal(summary.Total.Change, "TOTAL")
  is.Equal(summary.Total.Filtered, 0)
}

func TestReconcileNoOverlap(t *testing.T) {
  is := is.New(t)

  changes := newChanges(
    []string{"chr1", "chr1"},
    []int{100, 300},
    []int{200, 400},
    []string{"TssA", "TssA"},
    []string{"TssA-ReprPC", "TssA-TssA"})

  r, summary, err := NewReconciler(nil).Reconcile(changes)
  is.NoErr(err)
  is.Equal(r.Length(), 1)
  is.Equal(r.Line(0), "chr1\t100\t200\tTssA\tTssA-ReprPC")

  c, ok := findCounts(summary, "TssA-ReprPC")
  is.True(ok)
  is.Equal(c.Filtered, 1)
  is.Equal(c.RemovalRate(), 0.0)
}

func TestReconcileFamilies(t *testing.T) {
  is := is.New(t)

  changes := newChanges(
    []string{"chr1", "chr1", "chr2", "chr2", "chr3", "chr1"},
    []int{100, 100, 100, 500, 100, 150},
    []int{200, 200, 200, 600, 200, 160},
    []string{"Tx", "Tx", "Het", "Het", "EnhA1", "TssA"},
    []string{"Tx-Tx", "Tx-TxWk", "Het-Tx", "Het-TxWk", "EnhA1-EnhA1", "TssA-Het"})

  r, summary, err := NewReconciler(nil).Reconcile(changes)
  is.NoErr(err)

  // the TssA record overlaps the Tx-Tx record but belongs to another family,
  // the Het family has no self records and passes unfiltered and the EnhA1
  // family has self records only
  is.Equal(r.GetMetaStr("change"), []string{"TssA-Het", "Het-Tx", "Het-TxWk"})
  is.True(r.IsSortedVersion())

  is.Equal(len(summary.Counts), 4)
  _, ok := findCounts(summary, "EnhA1-EnhA1")
  is.True(!ok)
  c, _ := findCounts(summary, "Tx-TxWk")
  is.Equal(c, FilterCounts{"Tx-TxWk", 1, 0})
  is.Equal(summary.Total, FilterCounts{"TOTAL", 4, 3})
}

func TestReconcileSelfOnly(t *testing.T) {
  is := is.New(t)

  changes := newChanges(
    []string{"chr1", "chr1"},
    []int{100, 300},
    []int{200, 400},
    []string{"Quies", "Quies"},
    []string{"Quies-Quies", "Quies-Quies"})

  r, summary, err := NewReconciler(nil).Reconcile(changes)
  is.NoErr(err)
  is.Equal(r.Length(), 0)
  is.Equal(len(summary.Counts), 0)
  is.Equal(summary.Total, FilterCounts{"TOTAL", 0, 0})
}

func TestReconcileRandom(t *testing.T) {
  is  := is.New(t)
  rng := rand.New(rand.NewSource(4))

  names := []string{"TssA-TssA", "TssA-ReprPC", "TssA-Het", "Tx-Tx", "Tx-Het"}
  for k := 0; k < 10; k++ {
    r := randomGRanges(rng, 200)
    families := make([]string, r.Length())
    changes  := make([]string, r.Length())
    for i := range changes {
      changes [i] = names[rng.Intn(len(names))]
      families[i], _, _ = ParseCategory(changes[i])
    }
    r.AddMeta("family", families)
    r.AddMeta("change", changes)

    s1, summary1, err := Reconciler{Joiner: SweepJoiner{}}.Reconcile(r)
    is.NoErr(err)
    s2, summary2, err := Reconciler{Joiner: TreeJoiner{}}.Reconcile(r)
    is.NoErr(err)
    is.Equal(summary1, summary2)
    is.Equal(s1.Length(), s2.Length())

    for _, c := range summary1.Counts {
      is.True(c.Filtered <= c.Original)
      is.True(c.Removed() >= 0)
    }
    is.Equal(s1.Length(), summary1.Total.Filtered)
    for _, name := range s1.GetMetaStr("change") {
      is.True(!IsSelfCategory(name))
    }
  }
}

func TestFilterSummary(t *testing.T) {
  is := is.New(t)

  summary := newFilterSummary(
    map[string]int{"Tx-Het": 4, "TssA-Het": 3, "Het-Tx": 0},
    map[string]int{"Tx-Het": 1, "TssA-Het": 3})

  var buffer bytes.Buffer
  is.NoErr(summary.Write(&buffer))
  is.Equal(buffer.String(),
    "Change\tOriginal\tFiltered\tRemoved\tRemoval_Rate\n" +
    "Het-Tx\t0\t0\t0\t0.0%\n" +
    "TssA-Het\t3\t3\t0\t0.0%\n" +
    "Tx-Het\t4\t1\t3\t75.0%\n" +
    "TOTAL\t7\t4\t3\t42.9%\n")

  filename := filepath.Join(t.TempDir(), "summary.tsv")
  is.NoErr(summary.Export(filename))
  b, err := os.ReadFile(filename)
  is.NoErr(err)
  is.Equal(string(b), buffer.String())
}
