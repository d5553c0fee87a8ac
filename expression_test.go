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
import "errors"
import "math"
import "strings"
import "testing"

import "github.com/matryer/is"

/* -------------------------------------------------------------------------- */

var testDESeq2 = "" +
  ",baseMean,log2FoldChange,lfcSE,stat,pvalue,padj\n" +
  "BRCA1,100.5,-1.5,0.2,-7.5,1e-10,1e-8\n" +
  "GENE1,20.0,2.0,0.3,6.6,1e-8,1e-6\n" +
  "GENE2,10.0,NA,NA,NA,NA,NA\n" +
  "GENE3,15.0,0.5,0.1,5.0,1e-4,1e-3\n" +
  "GENE4,15.0,-0.5,0.1,-5.0,1e-4,1e-3\n"

func testGeneChanges() GeneChanges {
  return GeneChanges{
    {"BRCA1", "Tx-Het",    -4},
    {"GENE1", "ReprPC-Tx",  3},
    {"GENE2", "Het-Tx",     4},
    {"GENE3", "Tx-Quies",  -1},
    {"GENE5", "Quies-Tx",   1},
  }
}

/* -------------------------------------------------------------------------- */

func TestReadDESeq2(t *testing.T) {
  is := is.New(t)

  df, err := ReadDESeq2(strings.NewReader(testDESeq2), "deseq2.csv")
  is.NoErr(err)
  is.Equal(df.Nrow(), 5)
  is.Equal(df.Names()[0], "gene")
  is.Equal(df.Col("gene").Records(), []string{"BRCA1", "GENE1", "GENE2", "GENE3", "GENE4"})
  is.True(math.IsNaN(df.Col("log2FoldChange").Float()[2]))

  for _, input := range []string{
    "gene,a,a\nX,1,2\n",
    "gene,baseMean\nX,1\n",
    "gene,log2FoldChange\nX,1,2\n",
    "",
  } {
    _, err := ReadDESeq2(strings.NewReader(input), "deseq2.csv")
    var e *FormatError
    is.True(errors.As(err, &e))
  }
}

func TestOverlapExpression(t *testing.T) {
  is := is.New(t)

  deseq2, err := ReadDESeq2(strings.NewReader(testDESeq2), "deseq2.csv")
  is.NoErr(err)

  result, counts, err := OverlapExpression(deseq2, testGeneChanges().DataFrame(), nil)
  is.NoErr(err)
  is.Equal(counts, OverlapCounts{4, 2})
  is.Equal(counts.Removed(), 2)
  is.Equal(result.Col("gene").Records(), []string{"BRCA1", "GENE1"})
  is.Equal(result.Col("combined_score").Float(), []float64{-2.75, 2.5})

  names := result.Names()
  is.Equal(names[0], "gene")
  is.Equal(names[len(names)-3], "chromatin_change")
  is.Equal(names[len(names)-1], "combined_score")

  var buffer bytes.Buffer
  is.NoErr(result.WriteCSV(&buffer))
  lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
  is.Equal(len(lines), 3)
  is.Equal(lines[0], "gene,baseMean,log2FoldChange,lfcSE,stat,pvalue,padj,chromatin_change,change_score,combined_score")
}

func TestOverlapExpressionEmpty(t *testing.T) {
  is := is.New(t)

  deseq2, err := ReadDESeq2(strings.NewReader(",baseMean,log2FoldChange\n"), "deseq2.csv")
  is.NoErr(err)
  is.Equal(deseq2.Nrow(), 0)

  result, counts, err := OverlapExpression(deseq2, testGeneChanges().DataFrame(), nil)
  is.NoErr(err)
  is.Equal(result.Nrow(), 0)
  is.Equal(counts, OverlapCounts{0, 0})
}
