package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitness-score-server/internal/domain"
)

func TestBuildDSN(t *testing.T) {
	config := domain.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Database: "fitness",
		Username: "scorer",
		Password: "secret",
		SSLMode:  "require",
	}

	dsn := BuildDSN(config)
	assert.Equal(t, "host=db.internal port=5433 dbname=fitness user=scorer password=secret sslmode=require", dsn)
}
