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

import "time"

import "github.com/prometheus/client_golang/prometheus"

/* -------------------------------------------------------------------------- */

// Metrics collects counts of a single pipeline run. They are exported in
// the Prometheus text format, e.g. for the node exporter textfile
// collector.
type Metrics struct {
  registry  *prometheus.Registry
  changes   *prometheus.GaugeVec
  original  *prometheus.GaugeVec
  filtered  *prometheus.GaugeVec
  genes     *prometheus.GaugeVec
  overlap   *prometheus.GaugeVec
  duration  prometheus.Gauge
  start     time.Time
}

func NewMetrics(stage string) *Metrics {
  labels := prometheus.Labels{"stage": stage}
  m := &Metrics{registry: prometheus.NewRegistry(), start: time.Now()}
  m.changes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
    Name        : "chromdiff_change_records",
    Help        : "Number of change records per category.",
    ConstLabels : labels }, []string{"category"})
  m.original = prometheus.NewGaugeVec(prometheus.GaugeOpts{
    Name        : "chromdiff_filter_original_records",
    Help        : "Number of changed records per category before reconciliation.",
    ConstLabels : labels }, []string{"category"})
  m.filtered = prometheus.NewGaugeVec(prometheus.GaugeOpts{
    Name        : "chromdiff_filter_kept_records",
    Help        : "Number of changed records per category after reconciliation.",
    ConstLabels : labels }, []string{"category"})
  m.genes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
    Name        : "chromdiff_gene_changes",
    Help        : "Number of genes with a unique change per category.",
    ConstLabels : labels }, []string{"category"})
  m.overlap = prometheus.NewGaugeVec(prometheus.GaugeOpts{
    Name        : "chromdiff_expression_overlap_genes",
    Help        : "Number of genes in the expression overlap.",
    ConstLabels : labels }, []string{"state"})
  m.duration = prometheus.NewGauge(prometheus.GaugeOpts{
    Name        : "chromdiff_run_duration_seconds",
    Help        : "Duration of the run.",
    ConstLabels : labels })
  m.registry.MustRegister(m.changes, m.original, m.filtered, m.genes, m.overlap, m.duration)
  return m
}

func (m *Metrics) SetCategoryCounts(counts []CategoryCount) {
  for _, c := range counts {
    m.changes.WithLabelValues(c.Category).Set(float64(c.Count))
  }
}

func (m *Metrics) SetFilterSummary(summary FilterSummary) {
  for _, c := range append(summary.Counts, summary.Total) {
    m.original.WithLabelValues(c.Change).Set(float64(c.Original))
    m.filtered.WithLabelValues(c.Change).Set(float64(c.Filtered))
  }
}

func (m *Metrics) SetGeneChanges(changes GeneChanges) {
  for _, r := range changes {
    m.genes.WithLabelValues(r.Change).Inc()
  }
}

func (m *Metrics) SetOverlapCounts(counts OverlapCounts) {
  m.overlap.WithLabelValues("original").Set(float64(counts.Original))
  m.overlap.WithLabelValues("kept"    ).Set(float64(counts.Kept))
  m.overlap.WithLabelValues("removed" ).Set(float64(counts.Removed()))
}

func (m *Metrics) Gather() prometheus.Gatherer {
  return m.registry
}

// Export all metrics to filename.
func (m *Metrics) Export(filename string) error {
  m.duration.Set(time.Since(m.start).Seconds())
  return prometheus.WriteToTextfile(filename, m.registry)
}
