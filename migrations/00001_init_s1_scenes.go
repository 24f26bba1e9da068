package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

//Up00001 creates the Sentinel-1 scene index table.
func Up00001(tx *sql.Tx) error {
	// This code is executed when the migration is applied.
	_, err := tx.Exec(`
		CREATE TABLE public.s1_scenes
		(
			granule_id text COLLATE pg_catalog."default" NOT NULL,
			acquired_date timestamp without time zone NOT NULL,
			flight_direction text COLLATE pg_catalog."default" NOT NULL,
			platform text COLLATE pg_catalog."default" NOT NULL,
			footprint geometry NOT NULL,
			CONSTRAINT "s1_scenes_pk_granuleId" PRIMARY KEY (granule_id)
		)
		WITH (
			OIDS = FALSE
		);
		`)
	return err
}

//Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`DROP TABLE IF EXISTS public.s1_scenes;`)
	return err
}
