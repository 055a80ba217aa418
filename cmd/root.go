/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bgallie/enigma/cryptors/plugboard"
	"github.com/bgallie/enigma/machine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	verbose        bool
	logger         = slog.New(slog.NewTextHandler(os.Stderr, nil))
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

const (
	enigmaConfigFile = ".enigma"
	envPrefix        = "ENIGMA"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "A three rotor Enigma machine",
	Long: `enigma enciphers and deciphers text the way the three rotor Enigma I did.

The machine is set up with the rotor order, ring settings and start positions
written left to right as on the machine, e.g.

    enigma encrypt --rotors "I II III" --rings AAA --positions ADU --plugboard "QC AB"

Settings may also come from $HOME/.enigma.yaml or ENIGMA_* environment variables.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.Version = fmt.Sprintf("%s (commit %s, branch %s, %s, built %s)",
		Version, GitCommit, GitBranch, GitState, BuildDate)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to encrypt/decrypt.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file to write the result to.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the machine settings and progress to stderr")

	rootCmd.PersistentFlags().String("rotors", "I II III", "rotor order, left to right (I .. V)")
	rootCmd.PersistentFlags().String("rings", "AAA", "ring settings, left to right, as letters or numbers 1 .. 26")
	rootCmd.PersistentFlags().String("positions", "AAA", "start positions, left to right, as letters or numbers 1 .. 26")
	rootCmd.PersistentFlags().String("reflector", "B", "reflector (B or C)")
	rootCmd.PersistentFlags().String("plugboard", "", `plugboard pairs, e.g. "QC AB XZ" (at most 13)`)
	rootCmd.PersistentFlags().Bool("step-after", false, "step the rotors after each letter instead of before")

	for _, key := range []string{"rotors", "rings", "positions", "reflector", "plugboard"} {
		cobra.CheckErr(viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)))
	}
	cobra.CheckErr(viper.BindPFlag("stepafter", rootCmd.PersistentFlags().Lookup("step-after")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".enigma" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(enigmaConfigFile)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

// loadSettings builds the machine settings from, in increasing priority, the
// defaults, the "machine" section of the config file, and the rotors, rings,
// positions, reflector, plugboard and stepafter keys (flags, environment or
// config file).
func loadSettings(v *viper.Viper) (machine.Settings, error) {
	s := machine.DefaultSettings()
	if v.IsSet("machine") {
		if err := v.UnmarshalKey("machine", &s); err != nil {
			return s, fmt.Errorf("reading machine settings: %w", err)
		}
	}

	if v.IsSet("rotors") {
		if err := s.SetRotorOrder(v.GetString("rotors")); err != nil {
			return s, err
		}
	}
	if v.IsSet("rings") {
		if err := s.SetRings(v.GetString("rings")); err != nil {
			return s, err
		}
	}
	if v.IsSet("positions") {
		if err := s.SetPositions(v.GetString("positions")); err != nil {
			return s, err
		}
	}
	if v.IsSet("reflector") {
		s.Reflector = strings.ToUpper(v.GetString("reflector"))
		s.ReflectorWiring = ""
	}
	if v.IsSet("plugboard") {
		s.Plugboard = plugboard.Fields(v.GetString("plugboard"))
	}
	if v.IsSet("stepafter") {
		s.StepAfter = v.GetBool("stepafter")
	}
	return s, nil
}

// initMachine builds the machine described by the configuration.
func initMachine() *machine.Machine {
	s, err := loadSettings(viper.GetViper())
	cobra.CheckErr(err)
	m, err := machine.New(s)
	cobra.CheckErr(err)
	logger.Debug("machine ready",
		"rotors", fmt.Sprintf("%s %s %s", s.Left.Type, s.Middle.Type, s.Right.Type),
		"rings", machine.FormatLetters(s.Left.Ring, s.Middle.Ring, s.Right.Ring),
		"positions", m.Positions().String(),
		"reflector", s.Reflector,
		"plugboard", strings.Join(m.Settings().Plugboard, " "))
	return m
}

/*
getInputAndOutputFiles will return the input and output files to use while
encrypting/decrypting data.  If input and/or output files names were given,
then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles() (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 && outputFileName != "-" {
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		fout = os.Stdout
	}

	return fin, fout
}

// checkError checks for error that are not io.EOF and io.ErrUnexpectedEOF and logs them.
func checkError(e error) {
	if e != nil && e != io.EOF && e != io.ErrUnexpectedEOF {
		logger.Error("failed", "error", e)
		cobra.CheckErr(e)
	}
}
