package cli

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-analyzer/internal/config"
	"github.com/alvinbaena/pwd-analyzer/internal/report"
	"github.com/alvinbaena/pwd-analyzer/internal/util"
	"github.com/alvinbaena/pwd-analyzer/pkg/strength"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"io"
	"math"
	"os"
	"strings"
	"time"
)

var (
	errNoInput      = errors.New("provide --password, --batch or --interactive")
	errAmbiguousArg = errors.New("a PASSWORD argument cannot be combined with --password, --batch or --interactive")
)

var (
	analyzeCmd = &cobra.Command{
		Use:   "analyze [PASSWORD]",
		Short: "Analyze a password, or every password of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := passwordFromArgs(args); err != nil {
				return err
			}
			return analyzeCommand(cmd.OutOrStdout())
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	analyzeCmd.Flags().StringVarP(&password, "password", "p", "", "Password to analyze")
	analyzeCmd.Flags().StringVarP(&batchFile, "batch", "b", "", "File with one password to analyze per line")
	analyzeCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode. Passwords are typed masked")
	analyzeCmd.Flags().BoolVar(&showHash, "hash", false, "Display the SHA-256 hash of each password")
	analyzeCmd.Flags().BoolVar(&secondOpinion, "zxcvbn", false, "Also display the zxcvbn score of each password")
	analyzeCmd.MarkFlagsMutuallyExclusive("password", "batch", "interactive")

	rootCmd.AddCommand(analyzeCmd)
}

// passwordFromArgs takes the positional password, which is only valid when no
// other source is given.
func passwordFromArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	if password != "" || batchFile != "" || interactive {
		return errAmbiguousArg
	}

	password = args[0]
	return nil
}

// colorEnabled reports whether the strength label is colored: only when out
// is a terminal and colors were not turned off.
func colorEnabled(out io.Writer, noColor bool) bool {
	if noColor {
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func analyzeCommand(out io.Writer) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	if password == "" && batchFile == "" && !interactive {
		return errNoInput
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	evaluator := newEvaluator(cfg)
	printer := report.NewPrinter(out, report.Options{
		ShowHash: showHash,
		Zxcvbn:   secondOpinion,
		Color:    colorEnabled(out, cfg.NoColor),
	})

	switch {
	case interactive:
		return runInteractiveSession(evaluator, printer)
	case password != "":
		return analyze(password, evaluator, printer)
	default:
		return analyzeBatch(batchFile, out, evaluator, printer)
	}
}

func analyze(password string, evaluator *strength.Evaluator, printer *report.Printer) error {
	start := time.Now()
	result := evaluator.Evaluate(password)
	elapsed := time.Since(start)

	log.Debug().Msgf("classified by the %s phase", result.Estimate.Phase)
	return printer.Print(password, result, elapsed)
}

// analyzeBatch analyzes every line of fileName, surrounding whitespace
// removed. A missing file is reported and is not an error.
func analyzeBatch(fileName string, out io.Writer, evaluator *strength.Evaluator, printer *report.Printer) error {
	file, err := os.Open(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Error().Err(err).Msgf("batch file %s not found", fileName)
			_, err = fmt.Fprintln(out, "Batch file not found.")
			return err
		}
		return fmt.Errorf("error opening batch file: %w", err)
	}

	defer func(file *os.File) {
		if err = file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing batch file")
		}
	}(file)

	start := time.Now()
	count := 0

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	for scanner.Scan() {
		if err = analyze(strings.TrimSpace(scanner.Text()), evaluator, printer); err != nil {
			return err
		}
		count++
	}
	if err = scanner.Err(); err != nil {
		return fmt.Errorf("error reading batch file: %w", err)
	}

	return printer.Summary(count, time.Since(start))
}

func runInteractiveSession(evaluator *strength.Evaluator, printer *report.Printer) error {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
	}

	log.Info().Msgf("running interactive session. ^C to exit")
	for {
		result, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				log.Info().Msgf("goodbye")
				return nil
			}
			return fmt.Errorf("error during interactive session: %w", err)
		}

		if err = analyze(result, evaluator, printer); err != nil {
			return err
		}
	}
}
