/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"os"

	"github.com/josephgoksu/dayplan/internal/config"
	"github.com/josephgoksu/dayplan/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging and technical error output.
	verbose bool
	// jsonOutput switches every command to JSON.
	jsonOutput bool
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dayplan",
	Short: "dayplan keeps your tasks ordered by deadline and your day planned.",
	Long: `dayplan is a personal task planner.

Tasks carry a deadline and are colored Rood, Geel or Groen by how close it is.
Each morning you pick tasks into a day plan, order them and lock it. Anything
left unfinished when the day changes moves to the overdue list.

Run without arguments to see today's plan.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(os.Stderr, viper.GetBool("verbose"))
		logger.SetVersion(version)
		logger.SetCommand(cmd.CommandPath())
		logger.SetBasePath(config.DataDir())
	},
	RunE: runPlanShow,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			PrintError(userMessage(err), err)
		}
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.dayplan/.dayplan.yaml or $HOME/.dayplan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}
