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

import   "github.com/pborman/getopt"
import   "github.com/sirupsen/logrus"

import . "github.com/matthall1797/chromdiff"

/* -------------------------------------------------------------------------- */

type Config struct {
  External bool
  Plot     string
  Metrics  string
  Logger   *logrus.Logger
}

/* -------------------------------------------------------------------------- */

func chromatinChangesFilter(config Config, filenameIn, outDir string) {
  config.Logger.Infof("Reading changes `%s'", filenameIn)
  changes, err := ImportChanges(filenameIn)
  if err != nil {
    config.Logger.Fatal(err)
  }
  result, summary, err := NewReconciler(config.Logger).Reconcile(changes)
  if err != nil {
    config.Logger.Fatal(err)
  }
  if err := os.MkdirAll(outDir, 0755); err != nil {
    config.Logger.Fatal(err)
  }
  filename, err := NewExportConfig(config.External).Export(filepath.Join(outDir, "final_chromatin_changes.bed"), result)
  if err != nil {
    config.Logger.Fatal(err)
  }
  config.Logger.Infof("Wrote %d change records to `%s'", result.Length(), filename)

  if err := summary.Export(filepath.Join(outDir, "filtered_chromatin_changes_summary.tsv")); err != nil {
    config.Logger.Fatal(err)
  }
  if err := summary.Write(os.Stdout); err != nil {
    config.Logger.Fatal(err)
  }
  if config.Plot != "" {
    if err := PlotFilterSummary(summary, config.Plot); err != nil {
      config.Logger.Warnf("Plotting filter summary failed: %v", err)
    }
  }
  if config.Metrics != "" {
    metrics := NewMetrics("chromatinChangesFilter")
    metrics.SetFilterSummary(summary)
    if err := metrics.Export(config.Metrics); err != nil {
      config.Logger.Fatal(err)
    }
  }
}

/* -------------------------------------------------------------------------- */

func main() {

  config  := Config{}
  options := getopt.New()

  optExternal := options.   BoolLong("external",  0 ,     "sort and compress with external sort and gzip")
  optPlot     := options. StringLong("plot",      0 , "", "plot removal rates to the given file (pdf, png or svg)")
  optMetrics  := options. StringLong("metrics",   0 , "", "export run metrics in Prometheus text format to the given file")
  optVerbose  := options.CounterLong("verbose",  'v',     "verbose level [-v or -vv]")
  optHelp     := options.   BoolLong("help",     'h',     "print help")

  options.SetParameters("<ALL_CHROMATIN_CHANGES.bed.gz> <OUTPUT_DIRECTORY>")
  options.Parse(os.Args)

  // parse options
  //////////////////////////////////////////////////////////////////////////////
  if *optHelp {
    options.PrintUsage(os.Stdout)
    os.Exit(0)
  }
  if len(options.Args()) != 2 {
    options.PrintUsage(os.Stderr)
    os.Exit(1)
  }
  config.External = *optExternal
  config.Plot     = *optPlot
  config.Metrics  = *optMetrics
  config.Logger   = NewLogger(*optVerbose)

  chromatinChangesFilter(config, options.Args()[0], options.Args()[1])
}
