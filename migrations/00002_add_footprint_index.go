package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00002, Down00002)
}

//Up00002 adds the spatial index used by the bbox intersection search.
func Up00002(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX idx_s1_scenes_footprint
		ON public.s1_scenes USING gist
		(footprint);

		CREATE INDEX idx_s1_scenes_acquired_date
		ON public.s1_scenes
		(acquired_date);
		`)
	return err
}

//Down00002 undoes the db changes.
func Down00002(tx *sql.Tx) error {
	_, err := tx.Exec(`
		DROP INDEX IF EXISTS idx_s1_scenes_footprint;
		DROP INDEX IF EXISTS idx_s1_scenes_acquired_date;
		`)
	return err
}
