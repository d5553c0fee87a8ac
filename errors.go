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
import "strings"

import "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

// FormatError reports malformed input, such as an interval row with too
// few fields, non-integer coordinates or an invalid change category.
type FormatError struct {
  File string
  Line int
  Msg  string
}

func (err *FormatError) Error() string {
  switch {
  case err.File != "" && err.Line > 0:
    return fmt.Sprintf("%s:%d: %s", err.File, err.Line, err.Msg)
  case err.File != "":
    return fmt.Sprintf("%s: %s", err.File, err.Msg)
  case err.Line > 0:
    return fmt.Sprintf("line %d: %s", err.Line, err.Msg)
  default:
    return err.Msg
  }
}

func newFormatError(file string, line int, format string, args ...interface{}) *FormatError {
  return &FormatError{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

/* -------------------------------------------------------------------------- */

// ExternalToolError is returned when a subprocess could not be started
// or exited with a non-zero status.
type ExternalToolError struct {
  Tool   string
  Args   []string
  Stderr string
  Err    error
}

func (err *ExternalToolError) Error() string {
  msg := fmt.Sprintf("%s %s: %v", err.Tool, strings.Join(err.Args, " "), err.Err)
  if s := strings.TrimSpace(err.Stderr); s != "" {
    msg += ": " + s
  }
  return msg
}

func (err *ExternalToolError) Unwrap() error {
  return err.Err
}

/* -------------------------------------------------------------------------- */

// EmptyInputWarning reports a transition rule or a family without any
// records. It never stops a run.
type EmptyInputWarning struct {
  Kind string
  Name string
}

func (w EmptyInputWarning) String() string {
  return fmt.Sprintf("%s `%s' has no records", w.Kind, w.Name)
}

func warnEmpty(logger logrus.FieldLogger, kind, name string) {
  w := EmptyInputWarning{kind, name}
  logger.WithField(kind, name).Warn(w.String())
}
