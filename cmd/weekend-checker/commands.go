package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/username/weekend-checker/internal/calendar"
	"github.com/username/weekend-checker/internal/checker"
	"github.com/username/weekend-checker/internal/history"
)

const clearPrompt = "Вы уверены, что хотите очистить всю историю?"

func checkCmd() *cobra.Command {
	var format bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check <DD/MM/YYYY>...",
		Short: "Проверить, выходной ли день",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				out := cmd.OutOrStdout()
				for _, arg := range args {
					if format {
						arg = calendar.FormatInput(arg)
					}
					result, err := a.checker.Check(arg)
					if err != nil {
						return err
					}
					printResult(out, result, verbose)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&format, "format", false, "Apply the input mask before checking")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show which rule decided the result")

	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Показать историю проверок",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				entries, err := a.checker.History().Entries()
				if err != nil {
					return err
				}
				printHistory(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}

	cmd.AddCommand(historyClearCmd())
	return cmd
}

func historyClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Очистить историю",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), clearPrompt) {
				fmt.Fprintln(cmd.OutOrStdout(), "Отменено")
				return nil
			}
			return withApp(func(a *app) error {
				return a.checker.History().Clear()
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func holidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays",
		Short: "Показать список праздников",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadHolidays(cfg)
			if err != nil {
				return err
			}
			printHolidays(cmd.OutOrStdout(), set)
			return nil
		},
	}
}

func formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <text>",
		Short: "Применить маску ввода DD/MM/YYYY",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), calendar.FormatInput(args[0]))
		},
	}
}

func printResult(w io.Writer, result checker.Result, verbose bool) {
	switch {
	case result.Empty:
		fmt.Fprintln(w, "❌ Введите дату")
	case result.InputError:
		fmt.Fprintf(w, "❌ %s: %s\n", result.Query, result.ErrorText)
	case verbose && result.HolidayNote != "":
		fmt.Fprintf(w, "%s: %s (%s: %s)\n", result.Query, result.Message, result.Verdict.Rule, result.HolidayNote)
	case verbose:
		fmt.Fprintf(w, "%s: %s (%s)\n", result.Query, result.Message, result.Verdict.Rule)
	default:
		fmt.Fprintf(w, "%s: %s\n", result.Query, result.Message)
	}
}

// printHistory prints nothing for an empty log
func printHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		return
	}

	fmt.Fprintln(w, "📋 История проверок")
	fmt.Fprintln(w, "═══════════════════════════════════════")
	for _, e := range entries {
		fmt.Fprintf(w, "  %-12s %s\n", e.Value, e.Timestamp)
	}
}

func printHolidays(w io.Writer, set *calendar.HolidaySet) {
	lines := lo.Map(set.List(), func(h calendar.Holiday, _ int) string {
		if h.Note == "" {
			return "  " + h.Date
		}
		return fmt.Sprintf("  %s  %s", h.Date, h.Note)
	})

	fmt.Fprintf(w, "📅 Праздники %d (%d)\n", set.Year(), set.Len())
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

// confirm asks a yes/no question; anything but an explicit yes is a no
func confirm(r *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)

	answer, err := r.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "д", "да":
		return true
	default:
		return false
	}
}
