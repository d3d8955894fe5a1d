package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"fitsync/internal/activity"
	"fitsync/internal/pipeline"
)

// renderActivityDetails produces the pre-upload summary block. A rounded
// table is used on interactive terminals; plain key/value lines otherwise so
// webhook logs stay grep-friendly.
func renderActivityDetails(act activity.Activity) string {
	rows := [][2]string{
		{"Name", act.Name},
		{"Type", fmt.Sprintf("%s (ID: %d)", act.Type.DisplayName(), act.Type.ID)},
		{"Duration", fmt.Sprintf("%d minutes", act.DurationSeconds/60)},
		{"Start Time", pipeline.FormatStartTime(act.StartTime)},
		{"Calories", fmt.Sprintf("%d", act.Calories)},
	}

	if stdoutIsTerminal() {
		return renderDetailsTable(rows)
	}

	var builder strings.Builder
	builder.WriteString("Activity details:")
	for _, row := range rows {
		builder.WriteString("\n  ")
		builder.WriteString(row[0])
		builder.WriteString(": ")
		builder.WriteString(row[1])
	}
	return builder.String()
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
