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

import "github.com/pbenner/threadpool"
import "github.com/sirupsen/logrus"

/* -------------------------------------------------------------------------- */

// TransitionRule names the change from chromatin state Before in the first
// segmentation to state After in the second one. Name has the form
// "Before-After".
type TransitionRule struct {
  Before string
  After  string
  Name   string
}

func NewTransitionRule(before, after string) TransitionRule {
  return TransitionRule{before, after, before + "-" + after}
}

func (rule TransitionRule) IsSelf() bool {
  return rule.Before == rule.After
}

func (rule TransitionRule) String() string {
  return rule.Name
}

/* -------------------------------------------------------------------------- */

// Split a category name of the form "Before-After" into its states.
func ParseCategory(name string) (string, string, error) {
  t := strings.Split(name, "-")
  if len(t) != 2 || t[0] == "" || t[1] == "" {
    return "", "", newFormatError("", 0, "invalid change category `%s'", name)
  }
  return t[0], t[1], nil
}

// Returns true if the category describes a record whose state did not
// change.
func IsSelfCategory(name string) bool {
  before, after, err := ParseCategory(name)
  return err == nil && before == after
}

/* -------------------------------------------------------------------------- */

func appendTransitions(rules []TransitionRule, before []string, after []string) []TransitionRule {
  for _, b := range before {
    for _, a := range after {
      rules = append(rules, NewTransitionRule(b, a))
    }
  }
  return rules
}

// Returns a new copy of the default transition table. Rules cover the
// promoter, gene body and enhancer families.
func DefaultTransitionRules() []TransitionRule {
  rules := []TransitionRule{}
  // promoters
  for _, s := range []string{"TssA", "ReprPC", "ReprPCWk", "Het", "TssBiv", "Quies"} {
    rules = append(rules, NewTransitionRule(s, s))
  }
  rules = appendTransitions(rules,
    []string{"TssA"},
    []string{"ReprPC", "ReprPCWk", "Het", "TssBiv", "Quies"})
  rules = appendTransitions(rules,
    []string{"ReprPC", "ReprPCWk", "Het", "TssBiv", "Quies"},
    []string{"TssA"})
  // gene bodies
  rules = appendTransitions(rules,
    []string{"Tx"},
    []string{"Tx", "Het", "ReprPC", "ReprPCWk", "TxWk"})
  rules = appendTransitions(rules,
    []string{"TxWk"},
    []string{"TxWk", "Het", "ReprPC", "ReprPCWk"})
  rules = appendTransitions(rules,
    []string{"Het", "ReprPC", "ReprPCWk", "TxWk"},
    []string{"Tx"})
  rules = appendTransitions(rules,
    []string{"Het", "ReprPC", "ReprPCWk"},
    []string{"TxWk"})
  // enhancers
  for _, s := range []string{"EnhA1", "EnhA2", "EnhWk", "EnhBiv"} {
    rules = append(rules, NewTransitionRule(s, s))
  }
  repressed := []string{"EnhWk", "EnhBiv", "Quies", "ReprPCWk", "ReprPC", "Het"}
  rules = appendTransitions(rules, []string{"EnhA1"}, append([]string{"EnhA2"}, repressed...))
  rules = appendTransitions(rules, []string{"EnhA2"}, append([]string{"EnhA1"}, repressed...))
  rules = appendTransitions(rules, repressed, []string{"EnhA1"})
  rules = appendTransitions(rules, repressed, []string{"EnhA2"})
  return rules
}

// Check that rule names are unique and of the form "Before-After".
func ValidateTransitionRules(rules []TransitionRule) error {
  names := make(map[string]struct{}, len(rules))
  for _, rule := range rules {
    before, after, err := ParseCategory(rule.Name)
    if err != nil {
      return err
    }
    if before != rule.Before || after != rule.After {
      return fmt.Errorf("rule `%s' does not match states `%s' and `%s'", rule.Name, rule.Before, rule.After)
    }
    if _, ok := names[rule.Name]; ok {
      return fmt.Errorf("rule `%s' is defined more than once", rule.Name)
    }
    names[rule.Name] = struct{}{}
  }
  return nil
}

/* -------------------------------------------------------------------------- */

// TagTransition returns all intervals of the first segmentation labeled
// rule.Before that overlap at least one interval of the second segmentation
// labeled rule.After. Each interval appears at most once. The result has
// the change artifact layout: the before label as family, the rule name as
// change, followed by any extra columns of the first segmentation.
func TagTransition(before, after GRanges, rule TransitionRule) GRanges {
  sBefore := before.FilterMetaStr("name", func(s string) bool { return s == rule.Before })
  sAfter  :=  after.FilterMetaStr("name", func(s string) bool { return s == rule.After  })

  r := sBefore.Intersect(sAfter, true)
  n := r.Length()

  family := make([]string, n)
  change := make([]string, n)
  for i := 0; i < n; i++ {
    family[i] = rule.Before
    change[i] = rule.Name
  }
  extra := r.GetMetaStrSlice("extra")
  if len(extra) != n {
    extra = make([][]string, n)
  }
  r.Meta = NewMeta(
    []string     {"family", "change", "extra"},
    []interface{}{ family,   change,   extra })
  return r
}

/* -------------------------------------------------------------------------- */

// ChangeCaller enumerates state transitions between two segmentations.
// Rules are evaluated on a thread pool, results are always concatenated in
// table order.
type ChangeCaller struct {
  Rules   []TransitionRule
  Threads int
  Logger  logrus.FieldLogger
}

func NewChangeCaller(logger logrus.FieldLogger) ChangeCaller {
  return ChangeCaller{Rules: DefaultTransitionRules(), Threads: 1, Logger: logger}
}

// Call evaluates all rules and returns the concatenated unsorted changes
// together with the number of records found by each rule.
func (obj ChangeCaller) Call(before, after GRanges) (GRanges, []int, error) {
  logger := loggerOrDiscard(obj.Logger)
  if err := ValidateTransitionRules(obj.Rules); err != nil {
    return GRanges{}, nil, err
  }
  threads := obj.Threads
  if threads < 1 {
    threads = 1
  }
  results := make([]GRanges, len(obj.Rules))

  pool := threadpool.New(threads, 100*threads)
  if err := pool.RangeJob(0, len(obj.Rules), func(i int, pool threadpool.ThreadPool, erf func() error) error {
    results[i] = TagTransition(before, after, obj.Rules[i])
    return nil
  }); err != nil {
    return GRanges{}, nil, err
  }
  counts := make([]int, len(obj.Rules))
  result := NewEmptyChanges()
  for i, rule := range obj.Rules {
    counts[i] = results[i].Length()
    if counts[i] == 0 {
      warnEmpty(logger, "category", rule.Name)
    } else {
      logger.WithField("category", rule.Name).Debugf("found %d records", counts[i])
    }
    result = result.Append(results[i])
  }
  logger.Infof("found %d records for %d transition rules", result.Length(), len(obj.Rules))
  return result, counts, nil
}
