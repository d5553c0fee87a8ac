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

import "os"
import "path/filepath"
import "testing"

/* -------------------------------------------------------------------------- */

func TestPlotFilterSummary(t *testing.T) {
  summary := newFilterSummary(
    map[string]int{"Tx-Het": 4, "TssA-Het": 3},
    map[string]int{"Tx-Het": 1, "TssA-Het": 3})

  filename := filepath.Join(t.TempDir(), "summary.png")
  if err := PlotFilterSummary(summary, filename); err != nil {
    t.Fatal(err)
  }
  if info, err := os.Stat(filename); err != nil || info.Size() == 0 {
    t.Error("TestPlotFilterSummary failed!")
  }
  if err := PlotFilterSummary(FilterSummary{}, filename); err == nil {
    t.Error("TestPlotFilterSummary failed!")
  }
}
