package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TienDung030704/datlichkhambenh/internal/config"
)

func TestDSN(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		DBUser: "clinic", DBPass: "s3cret",
		DBHost: "db.internal", DBPort: "3307", DBName: "datlich",
	}

	parsed, err := mysql.ParseDSN(dsn(cfg))
	require.NoError(t, err)

	assert.Equal(t, "clinic", parsed.User)
	assert.Equal(t, "s3cret", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "datlich", parsed.DBName)
	assert.True(t, parsed.ParseTime, "DATETIME columns must scan into time.Time")
	assert.Equal(t, time.UTC, parsed.Loc)
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
}

func TestDSN_EmptyPassword(t *testing.T) {
	t.Parallel()

	cfg := config.Config{DBUser: "root", DBHost: "localhost", DBPort: "3306", DBName: "datlich"}

	parsed, err := mysql.ParseDSN(dsn(cfg))
	require.NoError(t, err)
	assert.Equal(t, "root", parsed.User)
	assert.Empty(t, parsed.Passwd)
}
