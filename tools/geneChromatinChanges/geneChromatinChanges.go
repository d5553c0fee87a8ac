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

package main

/* -------------------------------------------------------------------------- */

import   "fmt"
import   "os"
import   "path/filepath"
import   "strings"

import   "github.com/pborman/getopt"
import   "github.com/sirupsen/logrus"

import . "github.com/matthall1797/chromdiff"

/* -------------------------------------------------------------------------- */

type Config struct {
  Format      string
  Attribute   string
  FeatureType string
  Joiner      IntervalJoiner
  External    bool
  Metrics     string
  Logger      *logrus.Logger
}

/* -------------------------------------------------------------------------- */

func importGenes(config Config, source string) Genes {
  var genes Genes
  var err   error
  config.Logger.Infof("Reading genes from `%s'", source)
  switch config.Format {
  case "gff":
    genes, err = ReadGFFGenes(source, config.Attribute, config.FeatureType)
  case "table":
    err = genes.ImportTable(source)
  case "ucsc-file":
    genes, err = ReadUCSCGenes(source)
  case "ucsc":
    // genome:table[:column]
    s := strings.Split(source, ":")
    if len(s) < 2 || len(s) > 3 {
      config.Logger.Fatalf("invalid UCSC table `%s'", source)
    }
    column := "name2"
    if len(s) == 3 {
      column = s[2]
    }
    genes, err = ImportGenesFromUCSC(s[0], s[1], column)
  default:
    err = fmt.Errorf("invalid gene format `%s'", config.Format)
  }
  if err != nil {
    config.Logger.Fatal(err)
  }
  config.Logger.Debugf("Read %d gene annotations", genes.Length())
  return genes
}

/* -------------------------------------------------------------------------- */

func geneChromatinChanges(config Config, filenameChanges, geneSource, outDir string) {
  config.Logger.Infof("Reading changes `%s'", filenameChanges)
  changes, err := ImportChanges(filenameChanges)
  if err != nil {
    config.Logger.Fatal(err)
  }
  genes := importGenes(config, geneSource)

  scorer := NewGeneScorer(config.Logger)
  scorer.Joiner = config.Joiner

  joined, result := scorer.Score(changes, genes)

  if err := os.MkdirAll(outDir, 0755); err != nil {
    config.Logger.Fatal(err)
  }
  filename, err := NewExportConfig(config.External).Export(filepath.Join(outDir, "gene_chromatin_changes.bed"), joined)
  if err != nil {
    config.Logger.Fatal(err)
  }
  config.Logger.Infof("Wrote %d change/gene pairs to `%s'", joined.Length(), filename)

  filename = filepath.Join(outDir, "changed_genes_chromatin.csv")
  if err := result.ExportCSV(filename); err != nil {
    config.Logger.Fatal(err)
  }
  config.Logger.Infof("Wrote %d gene changes to `%s'", len(result), filename)

  counts := make(map[string]int)
  for _, r := range result {
    counts[r.Change]++
  }
  for _, name := range StrictCategories(scorer.Scores) {
    fmt.Fprintf(os.Stdout, "%s\t%d\n", name, counts[name])
  }
  if config.Metrics != "" {
    metrics := NewMetrics("geneChromatinChanges")
    metrics.SetGeneChanges(result)
    if err := metrics.Export(config.Metrics); err != nil {
      config.Logger.Fatal(err)
    }
  }
}

/* -------------------------------------------------------------------------- */

func main() {

  config  := Config{}
  options := getopt.New()

  optFormat      := options. StringLong("format",       0 , "gff",       "format of the gene annotation [gff, table, ucsc-file, ucsc]")
  optAttribute   := options. StringLong("attribute",    0 , DefaultGeneAttribute, "GFF attribute holding the gene name")
  optFeatureType := options. StringLong("feature-type", 0 , "",          "use only GFF features of this type (e.g. gene)")
  optJoiner      := options. StringLong("joiner",       0 , "sweep",     "overlap join [sweep, tree]")
  optExternal    := options.   BoolLong("external",     0 ,              "sort and compress with external sort and gzip")
  optMetrics     := options. StringLong("metrics",      0 , "",          "export run metrics in Prometheus text format to the given file")
  optVerbose     := options.CounterLong("verbose",     'v',              "verbose level [-v or -vv]")
  optHelp        := options.   BoolLong("help",        'h',              "print help")

  options.SetParameters("<FINAL_CHROMATIN_CHANGES.bed.gz> <GENES.gff | GENOME:TABLE[:COLUMN]> <OUTPUT_DIRECTORY>")
  options.Parse(os.Args)

  // parse options
  //////////////////////////////////////////////////////////////////////////////
  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 3 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  switch *optJoiner {
  case "sweep": config.Joiner = SweepJoiner{}
  case "tree":  config.Joiner = TreeJoiner{}
  default:
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Format      = *optFormat
  config.Attribute   = *optAttribute
  config.FeatureType = *optFeatureType
  config.External    = *optExternal
  config.Metrics     = *optMetrics
  config.Logger      = NewLogger(*optVerbose)

  geneChromatinChanges(config, options.Args()[0], options.Args()[1], options.Args()[2])
}
