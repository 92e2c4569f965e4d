package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"checkpoint/core/roster"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	svc *roster.Service
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  verify -id STUDENT_ID [-type barcode|manual] - verify a scanned student ID")
	fmt.Fprintln(cli.out, "  add -id STUDENT_ID -name NAME [-email EMAIL] [-age AGE] [-competition] - add a student")
	fmt.Fprintln(cli.out, "  sync - pull the sheet mirror into the roster")
	fmt.Fprintln(cli.out, "  seed - load sample students into an empty roster")
	fmt.Fprintln(cli.out, "  students - list the roster")
	fmt.Fprintln(cli.out, "  logs [-limit N] - show recent scan logs")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)
	verifyID := verifyCmd.String("id", "", "The scanned student ID.")
	verifyType := verifyCmd.String("type", roster.ScanTypeManual, "The scan channel: barcode or manual.")

	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	addID := addCmd.String("id", "", "The student's ID.")
	addName := addCmd.String("name", "", "The student's full name.")
	addEmail := addCmd.String("email", "", "The student's email address.")
	addAge := addCmd.Int("age", 0, "The student's age.")
	addCompetition := addCmd.Bool("competition", false, "Whether the student is in the competition.")

	logsCmd := flag.NewFlagSet("logs", flag.ExitOnError)
	logsLimit := logsCmd.Int("limit", 50, "Maximum number of entries to show.")

	switch args[1] {
	case "verify":
		if err := verifyCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *verifyID == "" {
			verifyCmd.Usage()
			return errHelp
		}
		return cli.verify(ctx, *verifyID, *verifyType)
	case "add":
		if err := addCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addID == "" || *addName == "" {
			addCmd.Usage()
			return errHelp
		}
		return cli.add(ctx, roster.NewStudent{
			StudentID:   *addID,
			Name:        *addName,
			Email:       *addEmail,
			Age:         *addAge,
			Competition: *addCompetition,
		})
	case "sync":
		return cli.sync(ctx)
	case "seed":
		return cli.seed(ctx)
	case "students":
		return cli.students(ctx)
	case "logs":
		if err := logsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.logs(ctx, *logsLimit)
	default:
		cli.printUsage()
		return errHelp
	}
}
