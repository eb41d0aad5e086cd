package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterExpr_ToSQL(t *testing.T) {
	tests := []struct {
		name     string
		expr     FilterExpr
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "simple equality",
			expr:     Eq("status", "active"),
			wantSQL:  "status = ?",
			wantArgs: []any{"active"},
		},
		{
			name:     "range bounds",
			expr:     And(Gte("grade", 6.0), Lte("grade", 10.0)),
			wantSQL:  "(grade >= ?) AND (grade <= ?)",
			wantArgs: []any{6.0, 10.0},
		},
		{
			name:     "in list",
			expr:     In("career_id", uint(1), uint(2), uint(3)),
			wantSQL:  "career_id IN (?,?,?)",
			wantArgs: []any{uint(1), uint(2), uint(3)},
		},
		{
			name:     "empty in matches nothing",
			expr:     In("career_id"),
			wantSQL:  "1 = 0",
			wantArgs: nil,
		},
		{
			name:     "null check",
			expr:     IsNull("grade"),
			wantSQL:  "grade IS NULL",
			wantArgs: nil,
		},
		{
			name:     "not null check",
			expr:     NotNull("grade"),
			wantSQL:  "grade IS NOT NULL",
			wantArgs: nil,
		},
		{
			name: "nested or inside and",
			expr: And(
				Eq("status", "enrolled"),
				Or(Eq("career_id", uint(1)), Eq("career_id", uint(2))),
			),
			wantSQL:  "(status = ?) AND ((career_id = ?) OR (career_id = ?))",
			wantArgs: []any{"enrolled", uint(1), uint(2)},
		},
		{
			name:     "negation",
			expr:     Not(Eq("status", "withdrawn")),
			wantSQL:  "NOT (status = ?)",
			wantArgs: []any{"withdrawn"},
		},
		{
			name:     "single-child combination collapses",
			expr:     And(Eq("subject_id", uint(5))),
			wantSQL:  "subject_id = ?",
			wantArgs: []any{uint(5)},
		},
		{
			name:     "empty and is always true",
			expr:     And(),
			wantSQL:  "1 = 1",
			wantArgs: nil,
		},
		{
			name:     "like is case-insensitive substring",
			expr:     Like("name", "prog"),
			wantSQL:  "name ILIKE ?",
			wantArgs: []any{"%prog%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.expr.ToSQL()
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
