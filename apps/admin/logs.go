package main

import (
	"context"
	"fmt"
	"time"
)

func (cli *commandLine) logs(ctx context.Context, limit int) error {
	entries, err := cli.svc.RecentScans(ctx, limit)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.StudentName.String
		if !entry.StudentName.Valid {
			name = "-"
		}
		fmt.Fprintf(cli.out, "%s  %-18s  %-20s  %s (%s)\n",
			entry.Timestamp.Format(time.RFC3339), entry.Status, entry.StudentID, name, entry.ScanType)
	}
	return nil
}
