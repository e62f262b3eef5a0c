package tagging

import (
	"regexp"
	"strings"
)

// Predicate tests a lowercased input string.
type Predicate func(s string) bool

// Rule pairs a predicate with the value it yields on a match.
type Rule[T any] struct {
	Match  Predicate
	Result T
}

// FirstMatch evaluates rules in declared order and returns the result of the
// first matching rule.
func FirstMatch[T any](rules []Rule[T], s string) (T, bool) {
	for _, r := range rules {
		if r.Match(s) {
			return r.Result, true
		}
	}
	var zero T
	return zero, false
}

// AllMatches evaluates rules in declared order and collects the result of
// every matching rule, stopping once limit results are collected.
// A non-positive limit yields nil.
func AllMatches[T any](rules []Rule[T], s string, limit int) []T {
	if limit <= 0 {
		return nil
	}
	var out []T
	for _, r := range rules {
		if !r.Match(s) {
			continue
		}
		out = append(out, r.Result)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// containsAny matches when s contains any of the substrings.
func containsAny(subs ...string) Predicate {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// hasSuffixAny matches when s ends with any of the suffixes.
func hasSuffixAny(suffixes ...string) Predicate {
	return func(s string) bool {
		for _, suf := range suffixes {
			if strings.HasSuffix(s, suf) {
				return true
			}
		}
		return false
	}
}

// words matches when any of the terms appears on word boundaries.
// Terms may contain spaces ("machine learning").
func words(terms ...string) Predicate {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	re := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
	return re.MatchString
}

// hostIs matches a host equal to one of the domains or a subdomain of it.
func hostIs(domains ...string) Predicate {
	return func(s string) bool {
		for _, d := range domains {
			if s == d || strings.HasSuffix(s, "."+d) {
				return true
			}
		}
		return false
	}
}

// anyOf matches when any of the predicates matches.
func anyOf(preds ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}
