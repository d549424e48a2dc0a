package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMigrateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: "file:local.db", want: "sqlite3://local.db"},
		{dsn: "data/pages.db", want: "sqlite3://data/pages.db"},
		{dsn: "sqlite3://already.db", want: "sqlite3://already.db"},
		{dsn: "file:local.db?_busy_timeout=5000", want: "sqlite3://local.db?_busy_timeout=5000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, buildMigrateURL(tt.dsn), tt.dsn)
	}
}
