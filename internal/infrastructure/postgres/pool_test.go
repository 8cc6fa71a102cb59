package postgres

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/pkg/config"
)

func TestBuildPoolConfig_DesdeCampos(t *testing.T) {
	cfg := config.DBConfig{
		Driver:   config.DriverPostgres,
		Host:     "db.internal",
		Port:     5433,
		User:     "feeds",
		Password: "p@ss:word",
		DBName:   "warehouse",
		SSLMode:  "disable",
	}

	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.EqualValues(t, 5433, pc.ConnConfig.Port)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, "warehouse", pc.ConnConfig.Database)
	assert.EqualValues(t, 8, pc.MaxConns)
	assert.NotNil(t, pc.AfterConnect)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
}

func TestBuildPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@otro-host:6543/feeds?sslmode=disable",
		Host:        "ignorado",
		Port:        5432,
	}

	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "otro-host", pc.ConnConfig.Host)
	assert.Equal(t, "feeds", pc.ConnConfig.Database)
}

func TestBuildPoolConfig_DSNInvalido(t *testing.T) {
	_, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDialPreferIPv4_IPLiteral(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	conn, err := dialPreferIPv4(context.Background(), "tcp", ln.Addr().String())
	require.NoError(t, err)
	_ = conn.Close()
}
