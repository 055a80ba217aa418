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
	"strings"

	"github.com/spf13/cobra"
)

// traceCmd represents the trace command
var traceCmd = &cobra.Command{
	Use:   "trace message",
	Short: "Show the signal path of every letter",
	Long: `Encipher the message one letter at a time and print, for every key press,
the rotor positions and the letter after the plugboard, each rotor, the
reflector, each rotor on the way back and the plugboard again.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		trace(cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
}

func trace(w io.Writer, msg string) {
	m := initMachine()
	fmt.Fprint(w, m.String())
	var output strings.Builder
	for _, c := range letters([]byte(msg)) {
		out, t, err := m.EncryptCharTrace(c)
		cobra.CheckErr(err)
		fmt.Fprintln(w, t.String())
		output.WriteByte(out)
	}
	fmt.Fprintf(w, "Output: %s\n", output.String())
}
