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

import   "os"
import   "path/filepath"

import   "github.com/go-gota/gota/dataframe"
import   "github.com/pborman/getopt"
import   "github.com/sirupsen/logrus"

import . "github.com/matthall1797/chromdiff"

/* -------------------------------------------------------------------------- */

type Config struct {
  Prerank     PrerankConfig
  Command     string
  SkipPrerank bool
  Metrics     string
  Logger      *logrus.Logger
}

/* -------------------------------------------------------------------------- */

func rankedList(config Config, name string, df dataframe.DataFrame, column string) RankedList {
  r, err := NewRankedList(name, df, "gene", column)
  if err != nil {
    config.Logger.Fatal(err)
  }
  config.Logger.Infof("Ranked list `%s' has %d genes", name, r.Len())
  return r
}

func chromatinGsea(config Config, filenameDESeq2, filenameChanges, filenameGmt, outDir string) {
  config.Logger.Infof("Reading DESeq2 results `%s'", filenameDESeq2)
  deseq2, err := ImportDESeq2(filenameDESeq2)
  if err != nil {
    config.Logger.Fatal(err)
  }
  config.Logger.Infof("Reading gene changes `%s'", filenameChanges)
  geneChanges, err := ImportGeneChanges(filenameChanges)
  if err != nil {
    config.Logger.Fatal(err)
  }
  if err := os.MkdirAll(outDir, 0755); err != nil {
    config.Logger.Fatal(err)
  }
  overlap, counts, err := OverlapExpression(deseq2, geneChanges, config.Logger)
  if err != nil {
    config.Logger.Fatal(err)
  }
  if err := ExportDataFrame(filepath.Join(outDir, "overlap_deseq2_chromatin.csv"), overlap); err != nil {
    config.Logger.Fatal(err)
  }
  rankings := []RankedList{
    rankedList(config, "deseq2", deseq2, "log2FoldChange") }
  // the expression table is not needed anymore
  deseq2 = dataframe.DataFrame{}

  rankings = append(rankings,
    rankedList(config, "chromatin", geneChanges, "change_score"),
    rankedList(config, "overlap",   overlap,     "combined_score"))

  if config.Metrics != "" {
    metrics := NewMetrics("chromatinGsea")
    metrics.SetOverlapCounts(counts)
    if err := metrics.Export(config.Metrics); err != nil {
      config.Logger.Fatal(err)
    }
  }
  if config.SkipPrerank {
    for _, r := range rankings {
      if err := r.ExportRnk(filepath.Join(outDir, r.Name + ".rnk")); err != nil {
        config.Logger.Fatal(err)
      }
    }
    return
  }
  geneSets, err := ImportGMT(filenameGmt)
  if err != nil {
    config.Logger.Fatal(err)
  }
  preranker := ExternalPreranker{Command: config.Command, Logger: config.Logger}
  for _, r := range rankings {
    if r.Len() == 0 {
      config.Logger.WithField("ranking", r.Name).Warn("Skipping empty ranked list")
      continue
    }
    cfg := config.Prerank
    cfg.OutDir = filepath.Join(outDir, r.Name)
    report, err := preranker.Prerank(r, geneSets, cfg)
    if err != nil {
      config.Logger.Fatal(err)
    }
    if report.ReportFile != "" {
      config.Logger.Infof("Wrote %d enrichment results to `%s'", report.Table.Nrow(), report.ReportFile)
    }
  }
}

/* -------------------------------------------------------------------------- */

func main() {

  config  := Config{}
  options := getopt.New()

  optPermutations := options.    IntLong("permutations",  0 , 250,      "number of permutations")
  optFormat       := options. StringLong("format",        0 , "pdf",    "format of enrichment plots")
  optSeed         := options.    IntLong("seed",          0 , 17,       "random seed")
  optCommand      := options. StringLong("gseapy",        0 , "gseapy", "gseapy executable")
  optSkipPrerank  := options.   BoolLong("skip-prerank",  0 ,           "only write ranked lists")
  optMetrics      := options. StringLong("metrics",       0 , "",       "export run metrics in Prometheus text format to the given file")
  optVerbose      := options.CounterLong("verbose",      'v',           "verbose level [-v or -vv]")
  optHelp         := options.   BoolLong("help",         'h',           "print help")

  options.SetParameters("<DESEQ2.csv> <CHANGED_GENES_CHROMATIN.csv> <GENE_SETS.gmt> <OUTPUT_DIRECTORY>")
  options.Parse(os.Args)

  // parse options
  //////////////////////////////////////////////////////////////////////////////
  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 4 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.Prerank              = NewPrerankConfig("")
  config.Prerank.Permutations = *optPermutations
  config.Prerank.Format       = *optFormat
  config.Prerank.Seed         = *optSeed
  config.Command     = *optCommand
  config.SkipPrerank = *optSkipPrerank
  config.Metrics     = *optMetrics
  config.Logger      = NewLogger(*optVerbose)

  chromatinGsea(config, options.Args()[0], options.Args()[1], options.Args()[2], options.Args()[3])
}
