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

import "encoding/csv"
import "fmt"
import "io"

import "github.com/go-gota/gota/dataframe"
import "github.com/go-gota/gota/series"
import "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

// Load a comma separated table. Column names must be unique and non-empty,
// except for the first column, which is renamed to firstColumn if it is
// not empty. Columns listed in types are parsed with the given type, all
// other types are detected.
func readTable(r io.Reader, filename, firstColumn string, types map[string]series.Type) (dataframe.DataFrame, error) {
  reader := csv.NewReader(r)
  reader.FieldsPerRecord = -1
  records, err := reader.ReadAll()
  if err != nil {
    return dataframe.DataFrame{}, fmt.Errorf("reading `%s' failed: %w", filename, err)
  }
  if len(records) == 0 {
    return dataframe.DataFrame{}, newFormatError(filename, 1, "table has no header")
  }
  header := records[0]
  if firstColumn != "" && len(header) > 0 {
    header[0] = firstColumn
  }
  seen := make(map[string]struct{}, len(header))
  for _, name := range header {
    if name == "" {
      return dataframe.DataFrame{}, newFormatError(filename, 1, "table has an empty column name")
    }
    if _, ok := seen[name]; ok {
      return dataframe.DataFrame{}, newFormatError(filename, 1, "column `%s' is not unique", name)
    }
    seen[name] = struct{}{}
  }
  for i := 1; i < len(records); i++ {
    if len(records[i]) != len(header) {
      return dataframe.DataFrame{}, newFormatError(filename, i+1, "expected %d fields but found %d", len(header), len(records[i]))
    }
  }
  if len(records) == 1 {
    // empty table
    columns := make([]series.Series, len(header))
    for i, name := range header {
      t, ok := types[name]
      if !ok {
        t = series.String
      }
      columns[i] = series.New([]string{}, t, name)
    }
    return dataframe.New(columns...), nil
  }
  df := dataframe.LoadRecords(records, dataframe.WithTypes(types))
  if df.Err != nil {
    return dataframe.DataFrame{}, fmt.Errorf("reading `%s' failed: %w", filename, df.Err)
  }
  return df, nil
}

func importTable(filename, firstColumn string, types map[string]series.Type) (dataframe.DataFrame, error) {
  f, err := openFile(filename)
  if err != nil {
    return dataframe.DataFrame{}, err
  }
  defer f.Close()
  return readTable(f, filename, firstColumn, types)
}

func requireColumns(df dataframe.DataFrame, filename string, names ...string) error {
  for _, name := range names {
    found := false
    for _, s := range df.Names() {
      if s == name {
        found = true
      }
    }
    if !found {
      return newFormatError(filename, 1, "column `%s' is missing", name)
    }
  }
  return nil
}

/* -------------------------------------------------------------------------- */

// Read a DESeq2 result table. The first column holds gene names and is
// renamed to `gene'.
func ReadDESeq2(r io.Reader, filename string) (dataframe.DataFrame, error) {
  df, err := readTable(r, filename, "gene", map[string]series.Type{
    "gene"           : series.String,
    "log2FoldChange" : series.Float })
  if err != nil {
    return df, err
  }
  return df, requireColumns(df, filename, "gene", "log2FoldChange")
}

func ImportDESeq2(filename string) (dataframe.DataFrame, error) {
  f, err := openFile(filename)
  if err != nil {
    return dataframe.DataFrame{}, err
  }
  defer f.Close()
  return ReadDESeq2(f, filename)
}

// Read a gene change table as written by GeneChanges.WriteCSV.
func ImportGeneChanges(filename string) (dataframe.DataFrame, error) {
  df, err := importTable(filename, "", map[string]series.Type{
    "gene"             : series.String,
    "chromatin_change" : series.String,
    "change_score"     : series.Int })
  if err != nil {
    return df, err
  }
  return df, requireColumns(df, filename, "gene", "chromatin_change", "change_score")
}

/* -------------------------------------------------------------------------- */

type OverlapCounts struct {
  Original int
  Kept     int
}

func (obj OverlapCounts) Removed() int {
  return obj.Original - obj.Kept
}

// OverlapExpression joins a DESeq2 table with a gene change table on the
// gene column and keeps genes where the sign of the fold change agrees
// with the sign of the change score. A column combined_score holding the
// mean of both values is added.
func OverlapExpression(deseq2, geneChanges dataframe.DataFrame, logger logrus.FieldLogger) (dataframe.DataFrame, OverlapCounts, error) {
  logger = loggerOrDiscard(logger)
  if err := requireColumns(deseq2, "", "gene", "log2FoldChange"); err != nil {
    return dataframe.DataFrame{}, OverlapCounts{}, err
  }
  if err := requireColumns(geneChanges, "", "gene", "change_score"); err != nil {
    return dataframe.DataFrame{}, OverlapCounts{}, err
  }
  // restrict the expression table to genes with a change before joining
  genes := make(map[string]struct{})
  for _, g := range geneChanges.Col("gene").Records() {
    genes[g] = struct{}{}
  }
  idx := []int{}
  for i, g := range deseq2.Col("gene").Records() {
    if _, ok := genes[g]; ok {
      idx = append(idx, i)
    }
  }
  joined := deseq2.Subset(idx).InnerJoin(geneChanges, "gene")
  if joined.Err != nil {
    return dataframe.DataFrame{}, OverlapCounts{}, joined.Err
  }
  lfc   := joined.Col("log2FoldChange").Float()
  score := joined.Col("change_score"  ).Float()

  keep     := []int{}
  combined := []float64{}
  for i := range lfc {
    // NaN values never agree
    if lfc[i]*score[i] > 0 {
      keep     = append(keep, i)
      combined = append(combined, 0.5*lfc[i] + 0.5*score[i])
    }
  }
  result := joined.Subset(keep).Mutate(series.New(combined, series.Float, "combined_score"))
  if result.Err != nil {
    return dataframe.DataFrame{}, OverlapCounts{}, result.Err
  }
  counts := OverlapCounts{joined.Nrow(), result.Nrow()}
  logger.Infof("kept %d of %d genes with agreeing expression and chromatin change", counts.Kept, counts.Original)
  return result, counts, nil
}

func ExportDataFrame(filename string, df dataframe.DataFrame) error {
  return writeFileAtomic(filename, false, func(w io.Writer) error {
    return df.WriteCSV(w)
  })
}
