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

import "compress/gzip"
import "os"
import "path/filepath"
import "strings"
import "testing"

import "github.com/matryer/is"

/* -------------------------------------------------------------------------- */

func TestGenesGFF1(t *testing.T) {
  is := is.New(t)

  input := "##gff-version 2\n" +
    "# comment\n" +
    "chr17\tHAVANA\tgene\t43044295\t43125483\t.\t-\t.\tgene_id \"ENSG00000012048\"; gene_name \"BRCA1\";\n" +
    "chr17\tHAVANA\texon\t43044295\t43045802\t.\t-\t.\tgene_id \"ENSG00000012048\"; gene_name \"BRCA1\";\n" +
    "chr13\tHAVANA\tgene\t32315508\t32400268\t.\t+\t.\tgene_id \"ENSG00000139618\"; gene_name \"BRCA2\";\n"

  genes := Genes{}
  is.NoErr(genes.ReadGFF(strings.NewReader(input), "test.gtf", "", "gene"))
  is.Equal(genes.Length(), 2)
  is.Equal(genes.Names, []string{"BRCA1", "BRCA2"})
  is.Equal(genes.Seqnames, []string{"chr17", "chr13"})
  is.Equal(genes.Ranges[0], Range{43044294, 43125483})
  is.Equal(genes.Strand, []byte{'-', '+'})

  genes = Genes{}
  is.NoErr(genes.ReadGFF(strings.NewReader(input), "test.gtf", "gene_id", ""))
  is.Equal(genes.Names, []string{"ENSG00000012048", "ENSG00000012048", "ENSG00000139618"})
}

func TestGenesGFF2(t *testing.T) {
  is := is.New(t)

  // bare gene names in the attribute column
  input := "chr1\tsrc\tgene\t1001\t2000\t.\t+\t.\tGENE1\n" +
    "chr1\tsrc\tgene\t3001\t4000\t.\t+\t.\tGENE2\n"

  filename := filepath.Join(t.TempDir(), "genes.gff.gz")
  f, err := os.Create(filename)
  is.NoErr(err)
  w := gzip.NewWriter(f)
  _, err = w.Write([]byte(input))
  is.NoErr(err)
  is.NoErr(w.Close())
  is.NoErr(f.Close())

  genes, err := ReadGFFGenes(filename, DefaultGeneAttribute, "")
  is.NoErr(err)
  is.Equal(genes.Names, []string{"GENE1", "GENE2"})
  is.Equal(genes.Ranges[1], Range{3000, 4000})
}

func TestGffGeneName(t *testing.T) {
  is := is.New(t)

  input := "##gff-version 3\n" +
    "chr1\tsrc\tgene\t1001\t2000\t.\t+\t.\tID=gene1;gene_name=GENE1\n" +
    "chr17\tBestRefSeq\tgene\t43044295\t43125483\t.\t-\t.\tID=gene-BRCA1;Dbxref=GeneID:672,HGNC:HGNC:1100;Name=BRCA1;description=BRCA1 DNA repair associated;gene_name=BRCA1;gene_biotype=protein_coding\n" +
    "chr13\tsrc\tgene\t32315508\t32400268\t.\t+\t.\tBRCA2\n" +
    "chr13\tsrc\tgene\t32315508\t32400268\t.\t+\t.\tgene_id \"G1\"; gene_name \"BRCA2\";\n" +
    "chr2\tsrc\tgene\t101\t200\t.\t+\t.\t.\n"

  genes := Genes{}
  is.NoErr(genes.ReadGFF(strings.NewReader(input), "test.gff3", "gene_name", ""))
  is.Equal(genes.Names, []string{"GENE1", "BRCA1", "BRCA2", "BRCA2"})
  is.Equal(genes.Seqnames, []string{"chr1", "chr17", "chr13", "chr13"})

  genes = Genes{}
  is.NoErr(genes.ReadGFF(strings.NewReader(input), "test.gff3", "ID", ""))
  // a bare name is the gene name for any attribute
  is.Equal(genes.Names, []string{"gene1", "gene-BRCA1", "BRCA2"})
}

func TestNormalizeGffAttributes(t *testing.T) {
  is := is.New(t)

  is.Equal(normalizeGffAttributes("ID=gene1;gene_name=GENE1", "gene_name"), `ID "gene1"; gene_name "GENE1"`)
  is.Equal(normalizeGffAttributes(`gene_id "G1"; gene_name "BRCA1";`, "gene_name"), `gene_id "G1"; gene_name "BRCA1"`)
  is.Equal(normalizeGffAttributes("BRCA1", "gene_name"), `gene_name "BRCA1"`)
  is.Equal(normalizeGffAttributes("tag2=x", "gene_name"), `tag_ "x"`)
  is.Equal(normalizeGffAttributes(".", "gene_name"), "")
}

/* -------------------------------------------------------------------------- */

func TestGenesTable(t *testing.T) {
  is := is.New(t)

  input := "chr1\t100\t200\tGENE1\t0\t+\n" +
    "chr2\t300\t400\tGENE2\n"

  genes := Genes{}
  is.NoErr(genes.ReadTable(strings.NewReader(input), "genes.bed"))
  is.Equal(genes.Names, []string{"GENE1", "GENE2"})
  is.Equal(genes.MetaLength(), 1)

  s := genes.Subset([]int{1})
  is.Equal(s.Names, []string{"GENE2"})
}

func TestGenesUCSC(t *testing.T) {
  is := is.New(t)

  input := "NM_007294 chr17 - 43044294 43125483 43045677 43124096\n" +
    "NM_000059 chr13 + 32315507 32400268 32316421 32398770\n"

  filename := filepath.Join(t.TempDir(), "genes.txt")
  is.NoErr(os.WriteFile(filename, []byte(input), 0644))

  genes, err := ReadUCSCGenes(filename)
  is.NoErr(err)
  is.Equal(genes.Names, []string{"NM_007294", "NM_000059"})
  is.Equal(genes.Ranges[1], Range{32315507, 32400268})

  is.NoErr(os.WriteFile(filename, []byte("NM_007294 chr17 x 1 2\n"), 0644))
  _, err = ReadUCSCGenes(filename)
  is.True(err != nil)

  _, err = ImportGenesFromUCSC("hg38", "refGene; DROP TABLE x", "name2")
  is.True(err != nil)
}
