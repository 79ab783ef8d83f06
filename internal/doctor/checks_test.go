package doctor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status   CheckStatus
		expected string
	}{
		{StatusPass, "pass"},
		{StatusWarn, "warn"},
		{StatusFail, "fail"},
		{CheckStatus(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

// mockCheck is a test implementation of Check.
type mockCheck struct {
	name     string
	category string
	results  []CheckResult
	runs     int
	fixErr   error
	fixCalls int
}

func (m *mockCheck) Name() string     { return m.name }
func (m *mockCheck) Category() string { return m.category }
func (m *mockCheck) Run() CheckResult {
	r := m.results[min(m.runs, len(m.results)-1)]
	m.runs++
	return r
}
func (m *mockCheck) Fix() error {
	m.fixCalls++
	return m.fixErr
}

func result(status CheckStatus, fixable bool) CheckResult {
	return CheckResult{Status: status, Fixable: fixable}
}

func TestRunAll(t *testing.T) {
	checks := []Check{
		&mockCheck{name: "a", category: CategoryConfig, results: []CheckResult{{Name: "a", Status: StatusPass}}},
		&mockCheck{name: "b", category: CategorySource, results: []CheckResult{{Name: "b", Status: StatusFail}}},
	}

	results := RunAll(checks)
	assert.Equal(t, []CheckResult{{Name: "a", Status: StatusPass}, {Name: "b", Status: StatusFail}}, results)
}

func TestApplyFixes(t *testing.T) {
	fixed := &mockCheck{results: []CheckResult{result(StatusWarn, true), result(StatusPass, false)}}
	broken := &mockCheck{results: []CheckResult{result(StatusFail, true)}, fixErr: errors.New("nope")}
	notFixable := &mockCheck{results: []CheckResult{result(StatusFail, false)}}
	passing := &mockCheck{results: []CheckResult{result(StatusPass, true)}}

	checks := []Check{fixed, broken, notFixable, passing}
	results := ApplyFixes(checks, RunAll(checks))

	assert.Equal(t, StatusPass, results[0].Status, "re-run after a successful fix")
	assert.Equal(t, StatusFail, results[1].Status)
	assert.Equal(t, 1, fixed.fixCalls)
	assert.Equal(t, 1, broken.fixCalls)
	assert.Equal(t, 0, notFixable.fixCalls)
	assert.Equal(t, 0, passing.fixCalls)
}

func TestGroupByCategory(t *testing.T) {
	checks := []Check{
		&mockCheck{category: CategoryConfig},
		&mockCheck{category: CategorySource},
		&mockCheck{category: CategoryConfig},
	}
	grouped := GroupByCategory(checks)
	assert.Equal(t, []int{0, 2}, grouped[CategoryConfig])
	assert.Equal(t, []int{1}, grouped[CategorySource])
}

func TestSummaryAndCounts(t *testing.T) {
	tests := []struct {
		name     string
		results  []CheckResult
		summary  string
		failures bool
		fixable  int
	}{
		{"all pass", []CheckResult{result(StatusPass, false)}, "Everything looks good", false, 0},
		{"one warning", []CheckResult{result(StatusPass, false), result(StatusWarn, true)}, "1 issue found", false, 1},
		{"mixed", []CheckResult{result(StatusWarn, false), result(StatusFail, true), result(StatusFail, false)}, "3 issues found", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.summary, Summary(tt.results))
			assert.Equal(t, tt.failures, HasFailures(tt.results))
			assert.Equal(t, tt.fixable, FixableCount(tt.results))
		})
	}

	counts := CountByStatus([]CheckResult{result(StatusPass, false), result(StatusFail, false), result(StatusFail, false)})
	assert.Equal(t, 1, counts[StatusPass])
	assert.Equal(t, 2, counts[StatusFail])
}
