package command

import (
	"slices"
	"strconv"
	"strings"
)

type acceptKind int

const (
	acceptExactly acceptKind = iota
	acceptAtMost
	acceptSet
	acceptAll
)

// AcceptPolicy decides which exit statuses count as success.
// The zero value accepts only status 0.
type AcceptPolicy struct {
	kind  acceptKind
	limit int
	codes []int
}

// AcceptAll accepts every exit status.
func AcceptAll() AcceptPolicy {
	return AcceptPolicy{kind: acceptAll}
}

// AcceptAtMost accepts any status less than or equal to n.
func AcceptAtMost(n int) AcceptPolicy {
	return AcceptPolicy{kind: acceptAtMost, limit: n}
}

// AcceptSet accepts only the listed statuses.
func AcceptSet(codes ...int) AcceptPolicy {
	if len(codes) == 0 {
		return AcceptPolicy{kind: acceptSet}
	}
	return AcceptPolicy{kind: acceptSet, codes: slices.Clone(codes)}
}

// AcceptExactly accepts a single status.
func AcceptExactly(code int) AcceptPolicy {
	return AcceptPolicy{kind: acceptExactly, limit: code}
}

// AcceptBool maps true to AcceptAll and false to the default policy.
func AcceptBool(all bool) AcceptPolicy {
	if all {
		return AcceptAll()
	}
	return AcceptExactly(0)
}

// ParseAccept parses the textual acceptance grammar:
//
//	""  or "0"   only 0 is accepted
//	"*"          everything is accepted
//	"N"          anything <= N is accepted
//	"<=N"        anything <= N is accepted, including N = 0
//	"=N"         only N is accepted
//	"M,N,..."    exactly one of the listed codes
//	"N,"         only N, as a one-element list
func ParseAccept(spec string) (AcceptPolicy, error) {
	spec = strings.TrimSpace(spec)
	switch spec {
	case "":
		return AcceptExactly(0), nil
	case "*":
		return AcceptAll(), nil
	}

	invalid := &ConfigError{Spec: spec, Err: ErrInvalidAccept}
	if rest, ok := strings.CutPrefix(spec, "<="); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return AcceptPolicy{}, invalid
		}
		return AcceptAtMost(n), nil
	}
	if rest, ok := strings.CutPrefix(spec, "="); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return AcceptPolicy{}, invalid
		}
		return AcceptExactly(n), nil
	}

	list, trailing := strings.CutSuffix(spec, ",")
	if trailing && strings.TrimSpace(list) == "" {
		return AcceptSet(), nil
	}

	fields := strings.Split(list, ",")
	codes := make([]int, 0, len(fields))
	for _, field := range fields {
		code, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return AcceptPolicy{}, invalid
		}
		codes = append(codes, code)
	}

	if len(codes) > 1 || trailing {
		return AcceptSet(codes...), nil
	}
	if codes[0] == 0 {
		return AcceptExactly(0), nil
	}
	return AcceptAtMost(codes[0]), nil
}

// Acceptable reports whether status satisfies the policy.
func (p AcceptPolicy) Acceptable(status int) bool {
	switch p.kind {
	case acceptAll:
		return true
	case acceptAtMost:
		return status <= p.limit
	case acceptSet:
		return slices.Contains(p.codes, status)
	default:
		return status == p.limit
	}
}

// String renders the policy in the ParseAccept grammar; ParseAccept reads
// it back to an equal policy.
func (p AcceptPolicy) String() string {
	switch p.kind {
	case acceptAll:
		return "*"
	case acceptAtMost:
		if p.limit == 0 {
			return "<=0"
		}
		return strconv.Itoa(p.limit)
	case acceptSet:
		parts := make([]string, len(p.codes))
		for i, code := range p.codes {
			parts[i] = strconv.Itoa(code)
		}
		if len(parts) < 2 {
			return strings.Join(parts, "") + ","
		}
		return strings.Join(parts, ",")
	default:
		if p.limit == 0 {
			return "0"
		}
		return "=" + strconv.Itoa(p.limit)
	}
}
