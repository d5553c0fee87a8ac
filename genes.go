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
import "strings"

import "github.com/biogo/biogo/io/featio"
import "github.com/biogo/biogo/io/featio/gff"

/* -------------------------------------------------------------------------- */

// Container for gene annotations. Each row is one annotated region, a
// gene may occur in several rows.
type Genes struct {
  GRanges
  // pointer to the gene meta column
  Names []string
}

/* constructors
 * -------------------------------------------------------------------------- */

func newGenes(granges GRanges) Genes {
  names := granges.GetMetaStr("gene")
  if len(names) != granges.Length() {
    panic("NewGenes(): gene column is missing")
  }
  return Genes{granges, names}
}

func NewGenes(names, seqnames []string, from, to []int, strand []byte) Genes {
  granges := NewGRanges(seqnames, from, to, strand)
  granges.AddMeta("gene", names)
  return newGenes(granges)
}

func (g *Genes) Clone() Genes {
  return newGenes(g.GRanges.Clone())
}

/* -------------------------------------------------------------------------- */

func (obj Genes) Subset(indices []int) Genes {
  r := obj.GRanges.Subset(indices)
  return newGenes(r)
}

func (obj Genes) Remove(indices []int) Genes {
  r := obj.GRanges.Remove(indices)
  return newGenes(r)
}

/* gene tables
 * -------------------------------------------------------------------------- */

// Read a tab separated gene table with columns chromosome, start, end and
// gene name. Further columns are ignored.
func (g *Genes) ReadTable(r io.Reader, filename string) error {
  granges := GRanges{}
  if err := granges.ReadBed(r, filename, []string{"gene"}); err != nil {
    return err
  }
  granges.DeleteMeta("extra")
  *g = newGenes(granges)
  return nil
}

func (g *Genes) ImportTable(filename string) error {
  f, err := openFile(filename)
  if err != nil {
    return err
  }
  defer f.Close()
  return g.ReadTable(f, filename)
}

/* gff
 * -------------------------------------------------------------------------- */

// Attribute holding the gene name in GFF files.
const DefaultGeneAttribute = "gene_name"

// Restrict a tag to the characters accepted by the GFF reader.
func gffTag(tag string) string {
  b := []byte(tag)
  for i, c := range b {
    if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_') {
      b[i] = '_'
    }
  }
  if len(b) == 0 {
    return "_"
  }
  return string(b)
}

// Rewrite an attribute column to `tag "value"' pairs. GTF items are kept,
// GFF3 `tag=value' items are converted and a bare gene name is stored
// under attribute.
func normalizeGffAttributes(column, attribute string) string {
  items := []string{}
  for _, item := range strings.Split(column, ";") {
    item = strings.TrimSpace(item)
    if item == "" || item == "." {
      continue
    }
    if k, v, ok := strings.Cut(item, "="); ok && !strings.ContainsAny(k, " \t\"") {
      items = append(items, fmt.Sprintf("%s \"%s\"", gffTag(k), strings.Trim(v, "\"")))
    } else if i := strings.IndexAny(item, " \t"); i >= 0 {
      items = append(items, gffTag(item[:i])+" "+strings.TrimSpace(item[i+1:]))
    } else {
      items = append(items, fmt.Sprintf("%s \"%s\"", gffTag(attribute), strings.Trim(item, "\"")))
    }
  }
  return strings.Join(items, "; ")
}

// Copy r to w skipping comment and pragma lines. The attribute column of
// each feature is normalized with normalizeGffAttributes.
func stripGffComments(w *io.PipeWriter, r io.Reader, attribute string) {
  scanner := bufio.NewScanner(r)
  scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
  bw := bufio.NewWriter(w)
  for scanner.Scan() {
    line := scanner.Text()
    if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
      continue
    }
    if fields := strings.SplitN(line, "\t", 10); len(fields) >= 9 {
      fields[8] = normalizeGffAttributes(fields[8], attribute)
      line = strings.Join(fields, "\t")
    }
    if _, err := bw.WriteString(line); err != nil {
      w.CloseWithError(err)
      return
    }
    if err := bw.WriteByte('\n'); err != nil {
      w.CloseWithError(err)
      return
    }
  }
  if err := scanner.Err(); err != nil {
    w.CloseWithError(err)
    return
  }
  w.CloseWithError(bw.Flush())
}

// Extract the gene name from the normalized attributes of a feature.
func gffGeneName(attributes gff.Attributes, tag string) (string, bool) {
  v := strings.Trim(attributes.Get(gffTag(tag)), "\"")
  return v, v != ""
}

// Read genes from a GFF/GTF file. The gene name is taken from the given
// attribute. If featureType is not empty, only features of this type are
// read.
func (g *Genes) ReadGFF(r io.Reader, filename, attribute, featureType string) error {
  if attribute == "" {
    attribute = DefaultGeneAttribute
  }
  pr, pw := io.Pipe()
  defer pr.Close()
  go stripGffComments(pw, r, attribute)

  names    := []string{}
  seqnames := []string{}
  from     := []int{}
  to       := []int{}
  strand   := []byte{}

  sc := featio.NewScanner(gff.NewReader(pr))
  for sc.Next() {
    f := sc.Feat().(*gff.Feature)
    if featureType != "" && f.Feature != featureType {
      continue
    }
    name, ok := gffGeneName(f.FeatAttributes, attribute)
    if !ok {
      continue
    }
    if f.FeatStart >= f.FeatEnd {
      return newFormatError(filename, 0, "feature `%s' has invalid range [%d, %d)", name, f.FeatStart, f.FeatEnd)
    }
    names    = append(names,    name)
    seqnames = append(seqnames, f.SeqName)
    from     = append(from,     f.FeatStart)
    to       = append(to,       f.FeatEnd)
    switch f.FeatStrand {
    case 1:  strand = append(strand, '+')
    case -1: strand = append(strand, '-')
    default: strand = append(strand, '*')
    }
  }
  if err := sc.Error(); err != nil {
    return fmt.Errorf("reading `%s' failed: %w", filename, err)
  }
  *g = NewGenes(names, seqnames, from, to, strand)
  return nil
}

// Import genes from a plain or gzip compressed GFF file.
func ReadGFFGenes(filename, attribute, featureType string) (Genes, error) {
  f, err := openFile(filename)
  if err != nil {
    return Genes{}, err
  }
  defer f.Close()
  genes := Genes{}
  if err := genes.ReadGFF(f, filename, attribute, featureType); err != nil {
    return Genes{}, err
  }
  return genes, nil
}

/* convert to string
 * -------------------------------------------------------------------------- */

func (genes Genes) String() string {
  return genes.GRanges.PrettyPrint(10)
}
