// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/alvinbaena/pwd-analyzer/internal/config"
	"github.com/alvinbaena/pwd-analyzer/pkg/strength"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdanalyze [COMMAND] [OPTIONS]",
		Short: "Estimate how strong a password is against a realistic attacker",
		Long: "Analyze passwords the way an attacker would try them: dictionary words, mask attacks, " +
			"common patterns and leet speak before brute force. Each password gets an entropy estimate, " +
			"a score, a crack time estimate and suggestions to improve it.",
		SilenceUsage: true,
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	flags.BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	flags.Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
	flags.StringP("dictionary", "d", "common_passwords.txt", "Common passwords file, one per line. A missing file disables dictionary checks")
	flags.Float64("guesses-per-second", strength.DefaultGuessesPerSecond, "Guesses per second of the modelled attacker")
	flags.Bool("no-color", false, "Do not color the output")

	viper.BindPFlag("PWD_DICTIONARY", flags.Lookup("dictionary"))
	viper.BindPFlag("PWD_GUESSES_PER_SECOND", flags.Lookup("guesses-per-second"))
	viper.BindPFlag("PWD_NO_COLOR", flags.Lookup("no-color"))
}

func Execute() error {
	return rootCmd.Execute()
}

// newEvaluator loads the dictionary named by the configuration.
func newEvaluator(cfg config.Config) *strength.Evaluator {
	classifierCfg := strength.DefaultConfig()
	classifierCfg.GuessesPerSecond = cfg.GuessesPerSecond

	return strength.NewEvaluator(strength.LoadDictionary(cfg.Dictionary), classifierCfg)
}
