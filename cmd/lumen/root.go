package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "An animated liquid body renderer for the terminal",
	Long: `Lumen renders a translucent liquid body deformed by coherent noise,
shaded with an analytic multi-term surface model, and composited over a
procedural starfield, all inside your terminal using half-block cells.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "preset file (default is ./lumen.yaml)")
	rootCmd.PersistentFlags().String("model", "", "glTF binary to deform instead of the generated sphere")

	if err := viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("lumen")
	}

	viper.SetEnvPrefix("LUMEN")
	viper.AutomaticEnv()

	// A missing preset file is fine; defaults cover everything.
	_ = viper.ReadInConfig()
}
