package appointment

import (
	"github.com/ekicare/ekicare-api/pkg/dbmetrics"
)

// DBExecutor supporté par *sql.DB, *dbmetrics.DB et leurs transactions
type DBExecutor = dbmetrics.DBExecutor
