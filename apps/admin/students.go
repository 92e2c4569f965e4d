package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) students(ctx context.Context) error {
	students, err := cli.svc.QueryAll(ctx)
	if err != nil {
		return err
	}
	for _, stu := range students {
		reg := " "
		if stu.Registered {
			reg = "x"
		}
		fmt.Fprintf(cli.out, "[%s] %-20s %-25s age %-3d competition=%t\n",
			reg, stu.StudentID, stu.Name, stu.Age, stu.Competition)
	}
	fmt.Fprintf(cli.out, "%d students\n", len(students))
	return nil
}
