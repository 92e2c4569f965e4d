package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"log"
	"strings"
	"testing"

	"checkpoint/core"
	"checkpoint/core/roster"
	emailsvc "checkpoint/services/email"
	logsvc "checkpoint/services/logger"
	dummysheet "checkpoint/services/sheets/dummy"
	dummydb "checkpoint/storage/database/dummy"
)

func setup(t *testing.T, rows ...core.SheetRow) (*commandLine, *bytes.Buffer) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	conf := &core.Config{AppName: "checkpoint-test"}
	svc := roster.NewService(
		dummydb.NewRosterRepository(db),
		dummysheet.NewService(rows...),
		emailsvc.NewConsoleServiceMock(conf),
		logsvc.NewStdLogger(log.New(ioutil.Discard, "", 0), conf),
	)

	out := new(bytes.Buffer)
	return &commandLine{svc: svc, out: out}, out
}

func Test_commandLine_run(t *testing.T) {
	ctx := context.Background()
	sheetRows := []core.SheetRow{
		{"student_id", "name", "age", "competition", "registration_status"},
		{"S1", "Ann", "20", "TRUE", "FALSE"},
	}

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantOut string
	}{
		{name: "no command prints usage", args: []string{"admin"}, wantErr: errHelp, wantOut: "Usage:"},
		{name: "unknown command prints usage", args: []string{"admin", "nope"}, wantErr: errHelp, wantOut: "Usage:"},
		{name: "verify requires an ID", args: []string{"admin", "verify"}, wantErr: errHelp},
		{name: "add requires ID and name", args: []string{"admin", "add", "-id", "S2"}, wantErr: errHelp},
		{name: "sync", args: []string{"admin", "sync"}, wantOut: "synced 1 students from sheet"},
		{name: "verify registers", args: []string{"admin", "verify", "-id", "S1"}, wantOut: "action: registered"},
		{name: "verify unknown ID", args: []string{"admin", "verify", "-id", "Z9"}, wantOut: "action: not_found"},
		{name: "add", args: []string{"admin", "add", "-id", "S2", "-name", "Ben", "-age", "21"}, wantOut: "added Ben (S2)"},
		{name: "seed", args: []string{"admin", "seed"}, wantOut: "seeded 5 students"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t, sheetRows...)

			err := cli.run(ctx, tt.args)
			if err != tt.wantErr {
				t.Fatalf("run() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("run() output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_seed(t *testing.T) {
	ctx := context.Background()
	cli, out := setup(t)

	if err := cli.run(ctx, []string{"admin", "seed"}); err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if want := "seeded 5 students"; !strings.Contains(out.String(), want) {
		t.Errorf("run() output = %q, want it to contain %q", out.String(), want)
	}

	// a second seed leaves the roster alone
	out.Reset()
	if err := cli.run(ctx, []string{"admin", "seed"}); err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if want := "roster not empty; nothing seeded"; !strings.Contains(out.String(), want) {
		t.Errorf("run() output = %q, want it to contain %q", out.String(), want)
	}

	out.Reset()
	if err := cli.run(ctx, []string{"admin", "students"}); err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if want := "5 students"; !strings.Contains(out.String(), want) {
		t.Errorf("run() output = %q, want it to contain %q", out.String(), want)
	}
}

func Test_commandLine_logs(t *testing.T) {
	ctx := context.Background()
	cli, out := setup(t,
		core.SheetRow{"student_id", "name", "registration_status"},
		core.SheetRow{"S1", "Ann", "FALSE"},
	)

	for _, id := range []string{"S1", "S1", "Z9"} {
		if err := cli.run(ctx, []string{"admin", "verify", "-id", id}); err != nil {
			t.Fatalf("run() failed: %v", err)
		}
	}
	out.Reset()

	if err := cli.run(ctx, []string{"admin", "logs", "-limit", "2"}); err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("logs printed %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "not_found") {
		t.Errorf("lines[0] = %q, want the most recent scan first", lines[0])
	}
	if !strings.Contains(lines[1], "already_registered") {
		t.Errorf("lines[1] = %q, want the second scan", lines[1])
	}
}
