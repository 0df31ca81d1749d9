package pgdb

import (
	"github.com/sigasystems/digital-negotiation-book-api/pkg/postgres"
)

type DiagnosticsRepo struct {
	*postgres.Postgres
}

func NewDiagnosticsRepo(pgdb *postgres.Postgres) *DiagnosticsRepo {
	return &DiagnosticsRepo{pgdb}
}

func (dr *DiagnosticsRepo) Ping() error {
	if err := dr.Database.Ping(); err != nil {
		return err
	}

	return nil
}
