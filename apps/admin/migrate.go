package main

import (
	"github.com/pressly/goose/v3"

	"github.com/edutrack/backend/storage/database/migrations"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return gooseRunFunc(args[0], cli.db.DB, ".", args[1:]...)
}
