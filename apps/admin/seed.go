package main

import (
	"context"
	"fmt"

	"checkpoint/core/roster"
)

// sampleStudents is the development seed roster.
var sampleStudents = []roster.Student{
	{StudentID: "124BTEX2008", Name: "John Doe", Age: 25, Email: "john.doe@example.com", Registered: true, Competition: true},
	{StudentID: "22UF17309EC077", Name: "Sid", Age: 25, Email: "sid@example.com"},
	{StudentID: "23UF12345678EC076", Name: "Jane Smith", Age: 22, Email: "jane.smith@example.com", Competition: true},
	{StudentID: "123456789", Name: "Bob Johnson", Age: 21, Email: "bob.johnson@example.com"},
	{StudentID: "987654321", Name: "Alice Brown", Age: 24, Email: "alice.brown@example.com", Registered: true, Competition: true},
}

func (cli *commandLine) seed(ctx context.Context) error {
	n, err := cli.svc.Seed(ctx, sampleStudents)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(cli.out, "roster not empty; nothing seeded")
		return nil
	}
	fmt.Fprintf(cli.out, "seeded %d students\n", n)
	return nil
}
