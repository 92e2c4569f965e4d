package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) verify(ctx context.Context, studentID, scanType string) error {
	res, err := cli.svc.Verify(ctx, studentID, scanType)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, res.PopupMessage)
	fmt.Fprintf(cli.out, "action: %s\n", res.Action)
	return nil
}
