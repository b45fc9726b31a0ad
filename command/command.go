// Package command handles control commands from the console and the bot
package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"plate/entity"
	"plate/misc"

	"github.com/thoas/go-funk"
	"gorm.io/gorm"
)

// StatusTimeLayout formats the last update time
const StatusTimeLayout = "02.01.2006 15:04 (UTC)"

// Handler executes control commands, it holds no ingestion state
type Handler struct {
	DB   *gorm.DB
	Stop context.CancelFunc
}

// ExecCommand is exec command, stop reports whether the worker was asked to stop
func (h *Handler) ExecCommand(command string) (reply string, stop bool) {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "q", "exit", "stop":
		h.Stop()
		return "stopping", true
	case "status":
		audit, err := entity.LastAudit(h.DB)
		if err != nil {
			misc.Error("exec_command", "status", err)
			return "status unavailable", false
		}
		return FormatStatus(audit), false
	case "sites":
		sources, err := entity.ListSources(h.DB)
		if err != nil {
			misc.Error("exec_command", "sites", err)
			return "sites unavailable", false
		}
		if len(sources) == 0 {
			return "no sites", false
		}
		return strings.Join(funk.Map(sources, func(source entity.Source) string {
			return fmt.Sprintf("%d %s", source.ID, source.Name)
		}).([]string), "\n"), false
	case "help":
		return `commands: "status", "sites", "q" or "exit" to quit`, false
	default:
		return "", false
	}
}

// FormatStatus render the last pass
func FormatStatus(audit *entity.Audit) string {
	if audit == nil {
		return "last updated: Never"
	}
	updated := time.Unix(audit.UpdateTime, 0).UTC().Format(StatusTimeLayout)
	return fmt.Sprintf("last updated: %s, success: %t", updated, audit.Success)
}

// ReadConsole read commands line by line until a stop command, EOF or ctx is done
func ReadConsole(ctx context.Context, h *Handler, in io.Reader, out io.Writer) {
	fmt.Fprintln(out, `> Type "q" or "exit" to quit.`)
	scanner := bufio.NewScanner(in)
	for ctx.Err() == nil && scanner.Scan() {
		reply, stop := h.ExecCommand(scanner.Text())
		if reply != "" {
			fmt.Fprintln(out, reply)
		}
		if stop {
			return
		}
	}
}
