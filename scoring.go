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

import "io"
import "sort"

import "github.com/go-gota/gota/dataframe"
import "github.com/go-gota/gota/series"
import "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

// Returns a new copy of the scores of the strict change categories. The
// magnitude encodes the severity of the change, the sign its direction.
func StrictChangeScores() map[string]int {
  return map[string]int{
    "Tx-Het"      : -4,
    "Tx-ReprPC"   : -3,
    "Tx-ReprPCWk" : -2,
    "Tx-Quies"    : -1,
    "Het-Tx"      :  4,
    "ReprPC-Tx"   :  3,
    "ReprPCWk-Tx" :  2,
    "Quies-Tx"    :  1,
  }
}

/* -------------------------------------------------------------------------- */

type GeneChange struct {
  Gene   string
  Change string
  Score  int
}

type GeneChanges []GeneChange

func (obj GeneChanges) DataFrame() dataframe.DataFrame {
  genes   := make([]string, len(obj))
  changes := make([]string, len(obj))
  scores  := make([]int,    len(obj))
  for i, r := range obj {
    genes  [i] = r.Gene
    changes[i] = r.Change
    scores [i] = r.Score
  }
  return dataframe.New(
    series.New(genes,   series.String, "gene"),
    series.New(changes, series.String, "chromatin_change"),
    series.New(scores,  series.Int,    "change_score"))
}

// Write a comma separated table with columns gene, chromatin_change and
// change_score.
func (obj GeneChanges) WriteCSV(w io.Writer) error {
  return obj.DataFrame().WriteCSV(w)
}

func (obj GeneChanges) ExportCSV(filename string) error {
  return writeFileAtomic(filename, false, obj.WriteCSV)
}

/* -------------------------------------------------------------------------- */

// GeneScorer attributes changes to overlapping genes.
type GeneScorer struct {
  Scores map[string]int
  Joiner IntervalJoiner
  Logger logrus.FieldLogger
}

func NewGeneScorer(logger logrus.FieldLogger) GeneScorer {
  return GeneScorer{Scores: StrictChangeScores(), Joiner: SweepJoiner{}, Logger: logger}
}

// Join returns one row for every pair of overlapping change and gene
// annotation. Rows contain all columns of the change followed by the
// coordinates and name of the gene.
func (obj GeneScorer) Join(changes GRanges, genes Genes) GRanges {
  joiner := obj.Joiner
  if joiner == nil {
    joiner = SweepJoiner{}
  }
  queryHits, subjectHits := joiner.Join(changes, genes.GRanges)

  r := changes.Subset(queryHits)
  n := len(subjectHits)
  seqnames := make([]string, n)
  from     := make([]int,    n)
  to       := make([]int,    n)
  names    := make([]string, n)
  for k, j := range subjectHits {
    seqnames[k] = genes.Seqnames[j]
    from    [k] = genes.Ranges[j].From
    to      [k] = genes.Ranges[j].To
    names   [k] = genes.Names[j]
  }
  r.AddMeta("gene_chrom", seqnames)
  r.AddMeta("gene_start", from)
  r.AddMeta("gene_end",   to)
  r.AddMeta("gene",       names)
  return r
}

// Select joined rows of strict categories and drop all genes that occur in
// more than one of these rows. The remaining genes keep the order of the
// joined table.
func (obj GeneScorer) Select(joined GRanges) GeneChanges {
  logger := loggerOrDiscard(obj.Logger)

  genes   := joined.GetMetaStr("gene")
  changes := joined.GetMetaStr("change")

  candidates := GeneChanges{}
  for i := 0; i < joined.Length(); i++ {
    if score, ok := obj.Scores[changes[i]]; ok {
      candidates = append(candidates, GeneChange{genes[i], changes[i], score})
    }
  }
  counts := make(map[string]int)
  for _, r := range candidates {
    counts[r.Gene]++
  }
  result := GeneChanges{}
  for _, r := range candidates {
    if counts[r.Gene] == 1 {
      result = append(result, r)
    }
  }
  if len(candidates) == 0 {
    warnEmpty(logger, "category", "strict")
  }
  logger.Infof("%d of %d candidate genes have a unique change", len(result), len(counts))
  return result
}

// Score joins changes with genes and returns the joined table and the
// unambiguous gene changes.
func (obj GeneScorer) Score(changes GRanges, genes Genes) (GRanges, GeneChanges) {
  joined := obj.Join(changes, genes)
  return joined, obj.Select(joined)
}

/* -------------------------------------------------------------------------- */

// Names of the strict categories sorted by score.
func StrictCategories(scores map[string]int) []string {
  r := make([]string, 0, len(scores))
  for name := range scores {
    r = append(r, name)
  }
  sort.Slice(r, func(i, j int) bool {
    if scores[r[i]] != scores[r[j]] {
      return scores[r[i]] < scores[r[j]]
    }
    return r[i] < r[j]
  })
  return r
}
