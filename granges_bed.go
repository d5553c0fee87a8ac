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
import "strconv"
import "strings"

/* -------------------------------------------------------------------------- */

// Meta columns of a segmentation interval file.
var IntervalColumns = []string{"name"}

/* -------------------------------------------------------------------------- */

func isBedHeader(line string) bool {
  return strings.HasPrefix(line, "#") ||
    strings.HasPrefix(line, "track") ||
    strings.HasPrefix(line, "browser")
}

// Read tab separated intervals. Each row must have the three coordinate
// fields followed by one field for each of the given column names, which
// are stored as string meta columns. Any further fields of a row are kept
// in a meta column named "extra". The filename is only used in error
// messages.
func (g *GRanges) ReadBed(r io.Reader, filename string, columns []string) error {
  scanner := bufio.NewScanner(r)
  scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

  seqnames := []string{}
  ranges   := []Range{}
  strand   := []byte{}
  named    := make([][]string, len(columns))
  extra    := [][]string{}

  for line := 1; scanner.Scan(); line++ {
    text := strings.TrimRight(scanner.Text(), "\r")
    if text == "" || isBedHeader(text) {
      continue
    }
    fields := strings.Split(text, "\t")
    if len(fields) < 3+len(columns) {
      return newFormatError(filename, line, "expected at least %d fields but found %d", 3+len(columns), len(fields))
    }
    t1, err := strconv.ParseInt(fields[1], 10, 64)
    if err != nil {
      return newFormatError(filename, line, "invalid start coordinate `%s'", fields[1])
    }
    t2, err := strconv.ParseInt(fields[2], 10, 64)
    if err != nil {
      return newFormatError(filename, line, "invalid end coordinate `%s'", fields[2])
    }
    if t1 < 0 || t1 >= t2 {
      return newFormatError(filename, line, "invalid interval [%d, %d)", t1, t2)
    }
    seqnames = append(seqnames, fields[0])
    ranges   = append(ranges,   Range{int(t1), int(t2)})
    strand   = append(strand,   '*')
    for j := range columns {
      named[j] = append(named[j], fields[3+j])
    }
    extra = append(extra, fields[3+len(columns):])
  }
  if err := scanner.Err(); err != nil {
    return fmt.Errorf("reading `%s' failed: %w", filename, err)
  }
  result := GRanges{seqnames, ranges, strand, Meta{}}
  for j, name := range columns {
    result.AddMeta(name, named[j])
  }
  result.AddMeta("extra", extra)

  *g = result
  return nil
}

// Import intervals from a plain or gzip compressed file.
func (g *GRanges) ImportBed(filename string, columns []string) error {
  f, err := openFile(filename)
  if err != nil {
    return err
  }
  defer f.Close()
  return g.ReadBed(f, filename, columns)
}

/* -------------------------------------------------------------------------- */

// Write all rows as tab separated lines.
func (granges GRanges) WriteBed(w io.Writer) error {
  bw := bufio.NewWriter(w)
  for i := 0; i < granges.Length(); i++ {
    if _, err := bw.WriteString(granges.Line(i)); err != nil {
      return err
    }
    if err := bw.WriteByte('\n'); err != nil {
      return err
    }
  }
  return bw.Flush()
}

// Export rows to filename. The file only appears once all rows have been
// written.
func (granges GRanges) ExportBed(filename string, compress bool) error {
  return writeFileAtomic(filename, compress, granges.WriteBed)
}
