package pgdb

import (
	"freelance-market-api/pkg/postgres"
)

type DiagnosticsRepo struct {
	*postgres.Postgres
}

func NewDiagnosticsRepo(pg *postgres.Postgres) *DiagnosticsRepo {
	return &DiagnosticsRepo{pg}
}

func (r *DiagnosticsRepo) Ping() error {
	return r.Database.Ping()
}
