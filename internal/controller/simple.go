package controller

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "jsinline.dev/pkg/jsinline/internal/model"
)

// SimpleUI implements UI using cobra Command's output and input.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig
	input  *bufio.Reader
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, option := range options {
		option(&s.config)
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// AskUserInput reads one line from the command input. An empty line keeps
// the default; end of input means no answer.
func (s *SimpleUI) AskUserInput(ctx context.Context, defaultValue string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	if s.input == nil {
		s.input = bufio.NewReader(s.cmd.InOrStdin())
	}

	s.printf("New name [%s]: ", defaultValue)

	line, err := s.input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("read answer: %w", err)
	}

	if errors.Is(err, io.EOF) && line == "" {
		return "", false, nil
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return defaultValue, true, nil
	}

	return answer, true, nil
}

// DisplayOutcome prints a unified diff of the outcome, or a short summary
// when the file was written back.
func (s *SimpleUI) DisplayOutcome(ctx context.Context, outcome m.Outcome, written bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, warning := range outcome.Warnings {
		s.printf("%s: warning: %s\n", outcome.Path, warning.Error())
	}

	if written {
		s.printf("%s: %d edit(s) written\n", outcome.Path, outcome.Edits)
		return nil
	}

	diff, err := renderDiff(outcome)
	if err != nil {
		return err
	}

	s.printf("%s", s.colorize(diff))

	return nil
}

// DisplayRefusal prints why a refactoring did not happen.
func (s *SimpleUI) DisplayRefusal(ctx context.Context, path m.Path, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.printf("%s: %v\n", path, err)
}

// DisplayTargets prints the inline targets as a table.
func (s *SimpleUI) DisplayTargets(ctx context.Context, targets []m.Target, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("list error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderTargetTable(targets))

	return nil
}

// DisplayReports prints the batch reports as a table.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderReportTable(reports))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) colorize(diff string) string {
	if !s.config.color {
		return diff
	}

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	header := color.New(color.FgCyan)

	added.EnableColor()
	removed.EnableColor()
	header.EnableColor()

	lines := strings.SplitAfter(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			lines[i] = header.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Sprint(line)
		}
	}

	return strings.Join(lines, "")
}

func renderDiff(outcome m.Outcome) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(outcome.Before),
		B:        difflib.SplitLines(outcome.After),
		FromFile: "a/" + string(outcome.Path),
		ToFile:   "b/" + string(outcome.Path),
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("render diff: %w", err)
	}

	return diff, nil
}

func verdictLabel(target m.Target) string {
	if !target.IsInlinable() {
		return string(target.Reason)
	}

	if len(target.Warnings) > 0 {
		return "ok (" + string(target.Warnings[0]) + ")"
	}

	return "ok"
}

func renderTargetTable(targets []m.Target) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Position", "Kind", "Name", "References", "Verdict"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	inlinable := 0

	for _, target := range targets {
		table.Append([]string{
			string(target.Path),
			target.Position.String(),
			string(target.Kind),
			target.Name,
			strconv.Itoa(target.References),
			verdictLabel(target),
		})

		if target.IsInlinable() {
			inlinable++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Targets %d", len(targets)), "", "", "", "",
		fmt.Sprintf("%d inlinable", inlinable),
	})

	table.Render()

	return tableBuffer.String()
}

func renderReportTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Refactoring", "Position", "Status", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	counts := make(map[m.Status]int)

	for _, report := range reports {
		detail := string(report.Reason)
		if report.Error != "" {
			detail = report.Error
		}

		if detail == "" && len(report.Warnings) > 0 {
			detail = string(report.Warnings[0])
		}

		table.Append([]string{
			string(report.Request.Path),
			string(report.Request.Refactoring),
			fmt.Sprintf("%d:%d", report.Request.Line, report.Request.Character),
			string(report.Status),
			detail,
		})

		counts[report.Status]++
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Requests %d", len(reports)), "", "",
		fmt.Sprintf("%d applied", counts[m.Applied]),
		fmt.Sprintf("%d refused, %d failed", counts[m.Refused], counts[m.Failed]),
	})

	table.Render()

	return tableBuffer.String()
}
