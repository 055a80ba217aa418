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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective machine settings",
	Long: `Print the machine settings that result from the config file, environment
and flags as YAML.  The output can be used as the "machine" section of a
config file.`,
	Run: func(cmd *cobra.Command, args []string) {
		showSettings(cmd)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func showSettings(cmd *cobra.Command) {
	m := initMachine()
	out, err := yaml.Marshal(map[string]interface{}{"machine": m.Settings()})
	cobra.CheckErr(err)
	fmt.Fprint(cmd.OutOrStdout(), string(out))
}
