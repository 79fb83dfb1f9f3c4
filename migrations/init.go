package migrations

import (
	"io/fs"

	contacts "github.com/goliatone/go-contacts"
)

func init() {
	coreFS, err := fs.Sub(contacts.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return
	}
	Register(coreFS)
}
