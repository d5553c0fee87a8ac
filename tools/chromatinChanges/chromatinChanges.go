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

import   "github.com/pborman/getopt"
import   "github.com/sirupsen/logrus"

import . "github.com/matthall1797/chromdiff"

/* -------------------------------------------------------------------------- */

type Config struct {
  Threads  int
  External bool
  Metrics  string
  Logger   *logrus.Logger
}

/* -------------------------------------------------------------------------- */

func importSegmentation(config Config, filename string) GRanges {
  granges := GRanges{}
  config.Logger.Infof("Reading segmentation `%s'", filename)
  if err := granges.ImportBed(filename, IntervalColumns); err != nil {
    config.Logger.Fatal(err)
  }
  config.Logger.Debugf("Read %d intervals from `%s'", granges.Length(), filename)
  return granges
}

/* -------------------------------------------------------------------------- */

func chromatinChanges(config Config, filenameBefore, filenameAfter, outDir string) {
  before := importSegmentation(config, filenameBefore)
  after  := importSegmentation(config, filenameAfter)

  caller := NewChangeCaller(config.Logger)
  caller.Threads = config.Threads

  changes, _, err := caller.Call(before, after)
  if err != nil {
    config.Logger.Fatal(err)
  }
  if err := os.MkdirAll(outDir, 0755); err != nil {
    config.Logger.Fatal(err)
  }
  filename := filepath.Join(outDir, "all_chromatin_changes.bed")
  summary  := filepath.Join(outDir, "chromatin_changes_summary.tsv")

  result, counts, err := NewExportConfig(config.External).ExportChanges(filename, summary, changes)
  if err != nil {
    config.Logger.Fatal(err)
  }
  config.Logger.Infof("Wrote %d change records to `%s'", changes.Length(), result)

  if err := WriteFrequencies(os.Stdout, counts); err != nil {
    config.Logger.Fatal(err)
  }
  if config.Metrics != "" {
    metrics := NewMetrics("chromatinChanges")
    metrics.SetCategoryCounts(counts)
    if err := metrics.Export(config.Metrics); err != nil {
      config.Logger.Fatal(err)
    }
  }
}

/* -------------------------------------------------------------------------- */

func main() {

  config  := Config{}
  options := getopt.New()

  optThreads  := options.    IntLong("threads",   't',  1, "number of threads")
  optExternal := options.   BoolLong("external",   0 ,     "sort and compress with external sort and gzip")
  optMetrics  := options. StringLong("metrics",    0 , "", "export run metrics in Prometheus text format to the given file")
  optVerbose  := options.CounterLong("verbose",   'v',     "verbose level [-v or -vv]")
  optHelp     := options.   BoolLong("help",      'h',     "print help")

  options.SetParameters("<HEALTHY_SEGMENTATION.bed.gz> <CANCER_SEGMENTATION.bed.gz> <OUTPUT_DIRECTORY>")
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
  if *optThreads < 1 {
    fmt.Fprintf(os.Stderr, "invalid number of threads `%d'\n", *optThreads)
    os.Exit(1)
  }
  config.Threads  = *optThreads
  config.External = *optExternal
  config.Metrics  = *optMetrics
  config.Logger   = NewLogger(*optVerbose)

  chromatinChanges(config, options.Args()[0], options.Args()[1], options.Args()[2])
}
