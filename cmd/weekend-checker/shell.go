package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/weekend-checker/internal/calendar"
	"github.com/username/weekend-checker/internal/checker"
	"go.uber.org/zap"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Интерактивный режим: дата + Enter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				return runShell(cmd.InOrStdin(), cmd.OutOrStdout(), a.checker)
			})
		},
	}
}

// runShell reads one query per line until EOF or "exit".
// Lines go through the input mask, so "01012026" works as well as "01/01/2026".
// Storage errors are printed and the loop waits for the next line;
// only a failure to read input ends the session.
func runShell(in io.Reader, out io.Writer, c *checker.Checker) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "Введите дату в формате DD/MM/YYYY (history, clear, exit)")

	for {
		fmt.Fprint(out, "> ")

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		switch cmd := strings.TrimSpace(line); cmd {
		case "":
			if eof {
				fmt.Fprintln(out)
				return nil
			}
			printResult(out, checker.Result{Empty: true, InputError: true}, false)

		case "exit", "quit":
			return nil

		case "history":
			entries, err := c.History().Entries()
			if err != nil {
				printError(out, err)
				break
			}
			printHistory(out, entries)

		case "clear":
			if confirm(reader, out, clearPrompt) {
				if err := c.History().Clear(); err != nil {
					printError(out, err)
					break
				}
				fmt.Fprintln(out, "История очищена")
			}

		default:
			result, err := c.Check(calendar.FormatInput(cmd))
			if err != nil {
				printError(out, err)
				break
			}
			printResult(out, result, false)
			logger.Debug("Shell query handled", zap.String("input", cmd), zap.String("query", result.Query))
		}

		if eof {
			return nil
		}
	}
}

func printError(w io.Writer, err error) {
	logger.Warn("Shell command failed", zap.Error(err))
	fmt.Fprintf(w, "Error: %v\n", err)
}
