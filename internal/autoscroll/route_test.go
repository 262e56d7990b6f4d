package autoscroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute_Covers(t *testing.T) {
	tests := []struct {
		name  string
		route Route
		dest  string
		want  bool
	}{
		{"exact same", Route{"/admin/jobs", MatchExact}, "/admin/jobs", true},
		{"exact trailing slash", Route{"/admin/jobs", MatchExact}, "/admin/jobs/", true},
		{"exact sub route", Route{"/admin/jobs", MatchExact}, "/admin/jobs/workers", false},
		{"exact query", Route{"/admin/jobs", MatchExact}, "/admin/jobs?page=2", true},
		{"prefix same", Route{"/admin/logs", MatchPrefix}, "/admin/logs", true},
		{"prefix sub route", Route{"/admin/logs", MatchPrefix}, "/admin/logs/filter", true},
		{"prefix segment boundary", Route{"/admin/logs", MatchPrefix}, "/admin/logsarchive", false},
		{"prefix other", Route{"/admin/logs", MatchPrefix}, "/admin/jobs", false},
		{"contains nested", Route{"/admin/jobs/workers", MatchContains}, "/tenant/a/admin/jobs/workers/7", true},
		{"contains other", Route{"/admin/jobs/workers", MatchContains}, "/admin/jobs", false},
		{"empty route", Route{}, "/admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.route.Covers(tt.dest))
		})
	}
}

func TestMatchRule_String(t *testing.T) {
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "prefix", MatchPrefix.String())
	assert.Equal(t, "contains", MatchContains.String())
	assert.Equal(t, "unknown", MatchRule(7).String())
}
