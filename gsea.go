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
import "math"
import "os"
import "path/filepath"
import "sort"
import "strconv"
import "strings"

import "github.com/go-gota/gota/dataframe"
import "github.com/sirupsen/logrus"

/* ranked gene lists
 * -------------------------------------------------------------------------- */

// RankedList is a list of genes sorted by descending score.
type RankedList struct {
  Name   string
  Genes  []string
  Scores []float64
}

// Create a ranked list from the given columns of a table. Rows with a
// missing score are dropped, rows with equal scores keep their order.
func NewRankedList(name string, df dataframe.DataFrame, geneColumn, scoreColumn string) (RankedList, error) {
  if err := requireColumns(df, "", geneColumn, scoreColumn); err != nil {
    return RankedList{}, err
  }
  genes  := df.Col(geneColumn ).Records()
  scores := df.Col(scoreColumn).Float()

  r := RankedList{Name: name}
  for i := range genes {
    if math.IsNaN(scores[i]) {
      continue
    }
    r.Genes  = append(r.Genes,  genes[i])
    r.Scores = append(r.Scores, scores[i])
  }
  sort.Stable(r)
  return r, nil
}

func (obj RankedList) Len() int {
  return len(obj.Genes)
}

func (obj RankedList) Less(i, j int) bool {
  return obj.Scores[i] > obj.Scores[j]
}

func (obj RankedList) Swap(i, j int) {
  obj.Genes [i], obj.Genes [j] = obj.Genes [j], obj.Genes [i]
  obj.Scores[i], obj.Scores[j] = obj.Scores[j], obj.Scores[i]
}

// Write the list in two column rnk format.
func (obj RankedList) WriteRnk(w io.Writer) error {
  bw := bufio.NewWriter(w)
  for i := range obj.Genes {
    if _, err := fmt.Fprintf(bw, "%s\t%s\n", obj.Genes[i], strconv.FormatFloat(obj.Scores[i], 'g', -1, 64)); err != nil {
      return err
    }
  }
  return bw.Flush()
}

func (obj RankedList) ExportRnk(filename string) error {
  return writeFileAtomic(filename, false, obj.WriteRnk)
}

/* gene sets
 * -------------------------------------------------------------------------- */

type GeneSet struct {
  Name        string
  Description string
  Genes       []string
}

type GeneSetCollection struct {
  // file the collection was read from, if any
  Filename string
  Sets     []GeneSet
}

// Read gene sets in GMT format. Each line holds the name of a set, a
// description and one or more genes separated by tabs.
func ReadGMT(r io.Reader, filename string) (GeneSetCollection, error) {
  scanner := bufio.NewScanner(r)
  scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

  result := GeneSetCollection{}
  for line := 1; scanner.Scan(); line++ {
    text := strings.TrimRight(scanner.Text(), "\r")
    if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
      continue
    }
    fields := strings.Split(text, "\t")
    if len(fields) < 3 || fields[0] == "" {
      return GeneSetCollection{}, newFormatError(filename, line, "gene set must have a name, a description and at least one gene")
    }
    set := GeneSet{Name: fields[0], Description: fields[1]}
    for _, g := range fields[2:] {
      if g != "" {
        set.Genes = append(set.Genes, g)
      }
    }
    result.Sets = append(result.Sets, set)
  }
  if err := scanner.Err(); err != nil {
    return GeneSetCollection{}, fmt.Errorf("reading `%s' failed: %w", filename, err)
  }
  return result, nil
}

func ImportGMT(filename string) (GeneSetCollection, error) {
  f, err := openFile(filename)
  if err != nil {
    return GeneSetCollection{}, err
  }
  defer f.Close()
  r, err := ReadGMT(f, filename)
  if err != nil {
    return r, err
  }
  r.Filename = filename
  return r, nil
}

func (obj GeneSetCollection) WriteGMT(w io.Writer) error {
  bw := bufio.NewWriter(w)
  for _, set := range obj.Sets {
    fields := append([]string{set.Name, set.Description}, set.Genes...)
    if _, err := fmt.Fprintln(bw, strings.Join(fields, "\t")); err != nil {
      return err
    }
  }
  return bw.Flush()
}

// Returns for each gene set the number of its genes that are part of the
// ranked list.
func (obj GeneSetCollection) Coverage(ranked RankedList) []int {
  genes := make(map[string]struct{}, ranked.Len())
  for _, g := range ranked.Genes {
    genes[g] = struct{}{}
  }
  r := make([]int, len(obj.Sets))
  for i, set := range obj.Sets {
    for _, g := range set.Genes {
      if _, ok := genes[g]; ok {
        r[i]++
      }
    }
  }
  return r
}

/* prerank enrichment
 * -------------------------------------------------------------------------- */

type PrerankConfig struct {
  Permutations int
  OutDir       string
  Format       string
  Seed         int
}

func NewPrerankConfig(outDir string) PrerankConfig {
  return PrerankConfig{Permutations: 250, OutDir: outDir, Format: "pdf", Seed: 17}
}

// EnrichmentReport points to the results of a prerank run. If the
// enrichment routine produced a result table, it is loaded into Table.
type EnrichmentReport struct {
  Name       string
  OutDir     string
  ReportFile string
  Table      dataframe.DataFrame
}

// Preranker runs a gene set enrichment analysis on a ranked list.
type Preranker interface {
  Prerank(ranked RankedList, geneSets GeneSetCollection, config PrerankConfig) (EnrichmentReport, error)
}

// ExternalPreranker calls the prerank command of gseapy.
type ExternalPreranker struct {
  Command string
  Logger  logrus.FieldLogger
}

// Name of the result table written by gseapy.
const PrerankReportFile = "gseapy.gene_set.prerank.report.csv"

func (obj ExternalPreranker) Prerank(ranked RankedList, geneSets GeneSetCollection, config PrerankConfig) (EnrichmentReport, error) {
  logger := loggerOrDiscard(obj.Logger).WithField("ranking", ranked.Name)
  tool   := obj.Command
  if tool == "" {
    tool = "gseapy"
  }
  if ranked.Len() == 0 {
    warnEmpty(logger, "ranking", ranked.Name)
    return EnrichmentReport{}, fmt.Errorf("ranked list `%s' is empty", ranked.Name)
  }
  if err := os.MkdirAll(config.OutDir, 0755); err != nil {
    return EnrichmentReport{}, err
  }
  rnk := filepath.Join(config.OutDir, ranked.Name + ".rnk")
  if err := ranked.ExportRnk(rnk); err != nil {
    return EnrichmentReport{}, err
  }
  gmt := geneSets.Filename
  if gmt == "" {
    gmt = filepath.Join(config.OutDir, "gene_sets.gmt")
    if err := writeFileAtomic(gmt, false, geneSets.WriteGMT); err != nil {
      return EnrichmentReport{}, err
    }
  }
  covered := 0
  for _, n := range geneSets.Coverage(ranked) {
    if n > 0 {
      covered++
    }
  }
  logger.Infof("%d of %d gene sets share genes with the ranked list", covered, len(geneSets.Sets))

  args := []string{"prerank",
    "-r", rnk,
    "-g", gmt,
    "-o", config.OutDir,
    "-n", strconv.Itoa(config.Permutations),
    "-f", config.Format,
    "-s", strconv.Itoa(config.Seed) }
  logger.Debugf("running %s %s", tool, strings.Join(args, " "))
  if err := runTool(tool, nil, args...); err != nil {
    return EnrichmentReport{}, err
  }
  report := EnrichmentReport{Name: ranked.Name, OutDir: config.OutDir}
  filename := filepath.Join(config.OutDir, PrerankReportFile)
  if _, err := os.Stat(filename); err == nil {
    if table, err := importTable(filename, "", nil); err != nil {
      logger.Warnf("could not read enrichment report: %v", err)
    } else {
      report.ReportFile = filename
      report.Table      = table
    }
  }
  return report, nil
}
