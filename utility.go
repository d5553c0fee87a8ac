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
import "compress/gzip"
import "fmt"
import "io"
import "os"

import "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

type readCloser struct {
  io.Reader
  closers []io.Closer
}

func (r readCloser) Close() error {
  var err error
  for i := len(r.closers)-1; i >= 0; i-- {
    if e := r.closers[i].Close(); e != nil && err == nil {
      err = e
    }
  }
  return err
}

// Open a file for reading. Gzip compressed files are detected by their
// magic number and decompressed transparently.
func openFile(filename string) (io.ReadCloser, error) {
  f, err := os.Open(filename)
  if err != nil {
    return nil, err
  }
  b := bufio.NewReader(f)
  if magic, err := b.Peek(2); err == nil && hasGzipMagic(magic) {
    g, err := gzip.NewReader(b)
    if err != nil {
      f.Close()
      return nil, fmt.Errorf("reading `%s' failed: %w", filename, err)
    }
    return readCloser{g, []io.Closer{f, g}}, nil
  }
  return readCloser{b, []io.Closer{f}}, nil
}

// Check for the gzip magic number.
func hasGzipMagic(b []byte) bool {
  return len(b) >= 2 && b[0] == 31 && b[1] == 139
}

/* -------------------------------------------------------------------------- */

// Create filename atomically. The content is written by f to a temporary
// file next to the target, which is renamed to filename only if f and all
// subsequent writes succeed. On failure the temporary file is removed.
func writeFileAtomic(filename string, compress bool, f func(w io.Writer) error) (err error) {
  tmp := filename + ".tmp"
  file, err := os.Create(tmp)
  if err != nil {
    return err
  }
  defer func() {
    if err != nil {
      file.Close()
      os.Remove(tmp)
    }
  }()
  buffered := bufio.NewWriter(file)

  var w io.Writer = buffered
  var g *gzip.Writer
  if compress {
    g = gzip.NewWriter(buffered)
    w = g
  }
  if err = f(w); err != nil {
    return err
  }
  if g != nil {
    if err = g.Close(); err != nil {
      return err
    }
  }
  if err = buffered.Flush(); err != nil {
    return err
  }
  if err = file.Close(); err != nil {
    return err
  }
  return os.Rename(tmp, filename)
}

/* -------------------------------------------------------------------------- */

// Return logger or, if logger is nil, a logger that discards everything.
func loggerOrDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
  if logger != nil {
    return logger
  }
  l := logrus.New()
  l.SetOutput(io.Discard)
  return l
}

// Create a logger writing to stderr. Verbose levels 0, 1 and 2 enable
// warnings, info and debug messages.
func NewLogger(verbose int) *logrus.Logger {
  logger := logrus.New()
  logger.SetOutput(os.Stderr)
  logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
  switch {
  case verbose >= 2: logger.SetLevel(logrus.DebugLevel)
  case verbose == 1: logger.SetLevel(logrus.InfoLevel)
  default:           logger.SetLevel(logrus.WarnLevel)
  }
  return logger
}
