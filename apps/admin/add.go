package main

import (
	"context"
	"fmt"

	"checkpoint/core/roster"
)

func (cli *commandLine) add(ctx context.Context, ns roster.NewStudent) error {
	stu, err := cli.svc.Add(ctx, ns)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "added %s (%s)\n", stu.Name, stu.StudentID)
	return nil
}
