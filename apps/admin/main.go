package main

import (
	"context"
	"log"
	"os"

	"checkpoint/core"
	"checkpoint/core/roster"
	emailsvc "checkpoint/services/email"
	logsvc "checkpoint/services/logger"
	sheetsvc "checkpoint/services/sheets"
	"checkpoint/storage/database"
	mongorepos "checkpoint/storage/database/mongodb"
)

var std = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

func main() {
	defer os.Exit(0)

	conf, err := core.NewConfig()
	errAndDie(err)

	var logger core.Logger = logsvc.NewStdLogger(std, conf)
	if conf.RollbarToken != "" && !conf.Debug {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	ctx := context.Background()

	// set up DB & repos
	client, err := database.Open(ctx, conf)
	errAndDie(err)
	defer func() { _ = client.Disconnect(ctx) }()
	repo := mongorepos.NewRosterRepository(client, conf)

	// set up services
	var sheet core.SheetService
	if conf.Sheet.Enabled() {
		sheet, err = sheetsvc.NewGoogleService(ctx, conf)
		errAndDie(err)
	} else {
		logger.Info("sheet mirror not configured; sheet sync disabled")
	}

	var mailSvc core.EmailService
	if conf.SendgridAPIKey != "" {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	} else {
		mailSvc = emailsvc.NewConsoleService(conf)
	}

	svc := roster.NewService(repo, sheet, mailSvc, logger)

	// start CLI
	cli := commandLine{svc: svc, out: os.Stdout}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		std.Fatal(err)
	}
}
