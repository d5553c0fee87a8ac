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
import "database/sql"
import "regexp"
import "strconv"
import "strings"

import _ "github.com/go-sql-driver/mysql"

/* -------------------------------------------------------------------------- */

// Data source of the public UCSC MySQL server, %s is replaced by the
// genome assembly.
var UCSCDataSource = "genome@tcp(genome-mysql.cse.ucsc.edu:3306)/%s"

var ucscIdentifier = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

/* import genes from ucsc
 * -------------------------------------------------------------------------- */

// Import genes from UCSC text files. The format is a whitespace separated
// table with columns: Name, Seqname, Strand, TranscriptStart and
// TranscriptEnd. Further columns are ignored.
func ReadUCSCGenes(filename string) (Genes, error) {
  f, err := openFile(filename)
  if err != nil {
    return Genes{}, err
  }
  defer f.Close()

  scanner := bufio.NewScanner(f)

  names    := []string{}
  seqnames := []string{}
  txFrom   := []int{}
  txTo     := []int{}
  strand   := []byte{}

  for line := 1; scanner.Scan(); line++ {
    fields := strings.Fields(scanner.Text())
    if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
      continue
    }
    if len(fields) < 5 {
      return Genes{}, newFormatError(filename, line, "expected at least five columns")
    }
    t1, e := strconv.ParseInt(fields[3], 10, 64)
    if e != nil {
      return Genes{}, newFormatError(filename, line, "invalid start coordinate `%s'", fields[3])
    }
    t2, e := strconv.ParseInt(fields[4], 10, 64)
    if e != nil {
      return Genes{}, newFormatError(filename, line, "invalid end coordinate `%s'", fields[4])
    }
    if t1 < 0 || t1 > t2 {
      return Genes{}, newFormatError(filename, line, "invalid interval [%d, %d)", t1, t2)
    }
    if s := fields[2]; s != "+" && s != "-" {
      return Genes{}, newFormatError(filename, line, "invalid strand `%s'", s)
    }
    names    = append(names,    fields[0])
    seqnames = append(seqnames, fields[1])
    txFrom   = append(txFrom,   int(t1))
    txTo     = append(txTo,     int(t2))
    strand   = append(strand,   fields[2][0])
  }
  if err := scanner.Err(); err != nil {
    return Genes{}, err
  }
  return NewGenes(names, seqnames, txFrom, txTo, strand), nil
}

// Import transcripts of the given table from the UCSC genome browser
// database. The gene name is taken from nameColumn, e.g. `name2' for
// RefSeq tables.
func ImportGenesFromUCSC(genome, table, nameColumn string) (Genes, error) {
  if nameColumn == "" {
    nameColumn = "name"
  }
  for _, s := range []string{genome, table, nameColumn} {
    if !ucscIdentifier.MatchString(s) {
      return Genes{}, fmt.Errorf("invalid UCSC identifier `%s'", s)
    }
  }
  /* variables for storing a single database row */
  var i_name, i_seqname, i_strand string
  var i_txFrom, i_txTo int

  names    := []string{}
  seqnames := []string{}
  txFrom   := []int{}
  txTo     := []int{}
  strand   := []byte{}

  /* open connection */
  db, err := sql.Open("mysql", fmt.Sprintf(UCSCDataSource, genome))
  if err != nil {
    return Genes{}, err
  }
  defer db.Close()

  if err := db.Ping(); err != nil {
    return Genes{}, err
  }

  /* receive data */
  rows, err := db.Query(
    fmt.Sprintf("SELECT %s, chrom, strand, txStart, txEnd FROM %s", nameColumn, table))
  if err != nil {
    return Genes{}, err
  }
  defer rows.Close()
  for rows.Next() {
    if err := rows.Scan(&i_name, &i_seqname, &i_strand, &i_txFrom, &i_txTo); err != nil {
      return Genes{}, err
    }
    if i_strand == "" || i_txFrom > i_txTo {
      return Genes{}, fmt.Errorf("table `%s' has invalid row for `%s'", table, i_name)
    }
    names    = append(names,    i_name)
    seqnames = append(seqnames, i_seqname)
    txFrom   = append(txFrom,   i_txFrom)
    txTo     = append(txTo,     i_txTo)
    strand   = append(strand,   i_strand[0])
  }
  if err := rows.Err(); err != nil {
    return Genes{}, err
  }
  return NewGenes(names, seqnames, txFrom, txTo, strand), nil
}
