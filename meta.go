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
import "strconv"

/* -------------------------------------------------------------------------- */

// Meta holds named data columns attached to the rows of a GRanges
// object. Supported column types are []string, [][]string, []int and
// []float64. Columns are written to interval files in the order in which
// they were added, where a [][]string column contributes a variable
// number of fields.
type Meta struct {
  MetaName []string
  MetaData []interface{}
  rows int
}

/* constructors
 * -------------------------------------------------------------------------- */

func NewMeta(names []string, data []interface{}) Meta {
  meta := Meta{}
  if len(names) != len(data) {
    panic("NewMeta(): invalid parameters!")
  }
  for i := 0; i < len(names); i++ {
    meta.AddMeta(names[i], data[i])
  }
  return meta
}

// Deep copy the Meta object.
func (m *Meta) Clone() Meta {
  result := Meta{}
  for i := 0; i < m.MetaLength(); i++ {
    switch v := m.MetaData[i].(type) {
    case [][]string:
      r := make([][]string, len(v))
      for j := 0; j < len(v); j++ {
        r[j] = make([]string, len(v[j]))
        copy(r[j], v[j])
      }
      result.AddMeta(m.MetaName[i], r)
    case []string:
      r := make([]string, len(v))
      copy(r, v)
      result.AddMeta(m.MetaName[i], r)
    case []float64:
      r := make([]float64, len(v))
      copy(r, v)
      result.AddMeta(m.MetaName[i], r)
    case []int:
      r := make([]int, len(v))
      copy(r, v)
      result.AddMeta(m.MetaName[i], r)
    default: panic("Clone(): invalid type!")
    }
  }
  return result
}

/* -------------------------------------------------------------------------- */

func metaColumnLength(meta interface{}) int {
  switch v := meta.(type) {
  case [][]string: return len(v)
  case   []string: return len(v)
  case   []float64: return len(v)
  case   []int:     return len(v)
  default: panic(fmt.Sprintf("invalid meta column type `%T'", meta))
  }
}

// Returns the number of rows.
func (m *Meta) Length() int {
  return m.rows
}

// Returns the number of columns.
func (m *Meta) MetaLength() int {
  return len(m.MetaName)
}

func (m *Meta) AddMeta(name string, meta interface{}) {
  n := metaColumnLength(meta)
  if m.MetaLength() > 0 && n != m.rows {
    panic("AddMeta(): column has invalid length!")
  }
  // replace existing columns with the same name
  m.DeleteMeta(name)
  m.rows     = n
  m.MetaData = append(m.MetaData, meta)
  m.MetaName = append(m.MetaName, name)
}

func (m *Meta) DeleteMeta(name string) {
  for i := 0; i < m.MetaLength(); i++ {
    if m.MetaName[i] == name {
      m.MetaName = append(m.MetaName[:i:i], m.MetaName[i+1:]...)
      m.MetaData = append(m.MetaData[:i:i], m.MetaData[i+1:]...)
      i--
    }
  }
}

func (m *Meta) GetMeta(name string) interface{} {
  for i := 0; i < m.MetaLength(); i++ {
    if m.MetaName[i] == name {
      return m.MetaData[i]
    }
  }
  return nil
}

func (m *Meta) GetMetaStr(name string) []string {
  if r, ok := m.GetMeta(name).([]string); ok {
    return r
  }
  return []string{}
}

func (m *Meta) GetMetaStrSlice(name string) [][]string {
  if r, ok := m.GetMeta(name).([][]string); ok {
    return r
  }
  return [][]string{}
}

func (m *Meta) GetMetaFloat(name string) []float64 {
  if r, ok := m.GetMeta(name).([]float64); ok {
    return r
  }
  return []float64{}
}

func (m *Meta) GetMetaInt(name string) []int {
  if r, ok := m.GetMeta(name).([]int); ok {
    return r
  }
  return []int{}
}

/* -------------------------------------------------------------------------- */

// Concatenate the rows of two Meta objects. Both objects must have the
// same columns, unless one of them has no columns at all.
func (meta1 *Meta) Append(meta2 Meta) Meta {
  if meta1.MetaLength() == 0 {
    return meta2.Clone()
  }
  if meta2.MetaLength() == 0 {
    return meta1.Clone()
  }
  result := Meta{}

  // clone data so that nested slices are not shared
  m1 := meta1.Clone()
  m2 := meta2.Clone()

  for j := 0; j < m1.MetaLength(); j++ {
    var t interface{}

    name := m1.MetaName[j]
    dat1 := m1.MetaData[j]
    dat2 := m2.GetMeta(name)
    if dat2 == nil {
      panic(fmt.Sprintf("Append(): meta column `%s' is missing", name))
    }
    switch v := dat1.(type) {
    case [][]string:  t = append(v, dat2.([][]string)...)
    case   []string:  t = append(v, dat2.(  []string)...)
    case   []int:     t = append(v, dat2.(  []int)...)
    case   []float64: t = append(v, dat2.(  []float64)...)
    }
    result.AddMeta(name, t)
  }
  return result
}

// Return a new Meta object with a subset of the rows from
// this object.
func (meta *Meta) Subset(indices []int) Meta {
  n := len(indices)
  m := meta.MetaLength()
  data := []interface{}{}

  for j := 0; j < m; j++ {
    switch v := meta.MetaData[j].(type) {
    case [][]string:
      l := make([][]string, n)
      for i := 0; i < n; i++ {
        l[i] = v[indices[i]]
      }
      data = append(data, l)
    case []string :
      l := make([]string, n)
      for i := 0; i < n; i++ {
        l[i] = v[indices[i]]
      }
      data = append(data, l)
    case []float64:
      l := make([]float64, n)
      for i := 0; i < n; i++ {
        l[i] = v[indices[i]]
      }
      data = append(data, l)
    case []int    :
      l := make([]int, n)
      for i := 0; i < n; i++ {
        l[i] = v[indices[i]]
      }
      data = append(data, l)
    }
  }
  return NewMeta(meta.MetaName, data)
}

/* -------------------------------------------------------------------------- */

// Append the fields of row i to dst in column order.
func (meta *Meta) appendFields(dst []string, i int) []string {
  for j := 0; j < meta.MetaLength(); j++ {
    switch v := meta.MetaData[j].(type) {
    case [][]string: dst = append(dst, v[i]...)
    case   []string: dst = append(dst, v[i])
    case   []int:    dst = append(dst, strconv.Itoa(v[i]))
    case   []float64:
      dst = append(dst, strconv.FormatFloat(v[i], 'g', -1, 64))
    }
  }
  return dst
}
