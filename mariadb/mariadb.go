// Package mariadb provides the MariaDB dialect for condql.
//
// MariaDB shares MySQL's quoting and pagination and adds RETURNING on
// INSERT and DELETE (10.5+).
package mariadb

import (
	"github.com/zoobzio/condql/internal/render"
	"github.com/zoobzio/condql/mysql"
)

// Dialect implements the MariaDB dialect.
type Dialect struct {
	*render.Base
}

// New creates a new MariaDB dialect.
func New(opts ...render.Option) *Dialect {
	return &Dialect{Base: render.NewBase("mariadb", Capabilities(), opts...)}
}

// Capabilities returns the SQL features supported by MariaDB.
func Capabilities() render.Capabilities {
	caps := mysql.Capabilities()
	caps.Returning = true
	return caps
}
