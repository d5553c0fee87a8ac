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

import "fmt"
import "math"

import   "gonum.org/v1/plot"
import   "gonum.org/v1/plot/plotter"
import   "gonum.org/v1/plot/plotutil"
import   "gonum.org/v1/plot/vg"

/* -------------------------------------------------------------------------- */

// Plot the removal rate of each change category as a bar chart. The
// format is determined by the extension of filename.
func PlotFilterSummary(summary FilterSummary, filename string) error {
  if len(summary.Counts) == 0 {
    return fmt.Errorf("filter summary has no categories")
  }
  values := make(plotter.Values, len(summary.Counts))
  names  := make([]string, len(summary.Counts))
  for i, c := range summary.Counts {
    values[i] = 100.0*c.RemovalRate()
    names [i] = c.Change
  }
  p := plot.New()
  p.Title.Text = fmt.Sprintf("Removed changes (total %.1f%%)", 100.0*summary.Total.RemovalRate())
  p.Y.Label.Text = "Removal rate [%]"
  p.Y.Min = 0
  p.Y.Max = 100

  bars, err := plotter.NewBarChart(values, vg.Points(10))
  if err != nil {
    return err
  }
  bars.LineStyle.Width = vg.Length(0)
  bars.Color = plotutil.Color(0)

  p.Add(bars)
  p.NominalX(names...)
  p.X.Tick.Label.Rotation = math.Pi/2

  width := vg.Length(math.Max(6, 0.2*float64(len(names))))*vg.Inch
  if err := p.Save(width, 4*vg.Inch, filename); err != nil {
    return err
  }
  return nil
}
