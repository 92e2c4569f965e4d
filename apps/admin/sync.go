package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) sync(ctx context.Context) error {
	synced, err := cli.svc.SyncFromSheet(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "synced %d students from sheet\n", synced)
	return nil
}
