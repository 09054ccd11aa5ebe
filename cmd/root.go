package cmd

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xetys/mesos-compose/pkg/composer"
	"github.com/xetys/mesos-compose/pkg/engine"
)

// rootCmd represents the base command; the whole CLI is one command over
// one configuration file
var rootCmd = &cobra.Command{
	Use:   "mesos-compose CONFIG",
	Short: "A CLI tool to run disposable Mesos clusters with docker-compose",
	Long: `mesos-compose generates a docker-compose manifest for a ZooKeeper +
Mesos + Marathon cluster from a flat key = value configuration file, then
starts and supervises it as one process group.

The simplest invocation is: mesos-compose cluster.cfg

Every configuration key can be overridden on the command line, for example:
	mesos-compose cluster.cfg --mesos_masters 3 --mesos_master_port 5050

	`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateRunFlags,
	Run:     RunCluster,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	for key := range composer.Schema {
		rootCmd.Flags().String(key, "", "override the "+key+" configuration key")
	}
	rootCmd.Flags().Bool("rm", false, "tear the cluster down and delete its working directory")
	rootCmd.Flags().Bool("reset", false, "wipe the persistent state directories before starting")
	rootCmd.Flags().BoolP("detach", "d", false, "start the cluster without blocking")
	rootCmd.Flags().String("docker-compose", "", "run the given arguments through the engine inside the working directory")
}

// initConfig reads the optional tool settings file and ENV variables.
func initConfig() {
	viper.SetDefault("compose-command", "docker-compose")
	viper.SetDefault("wait-timeout", 300)
	viper.SetDefault("wait-interval", 2)
	viper.SetDefault("open-browser", false)

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		viper.AddConfigPath(xdgConfig)
	}
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetConfigName(".mesos-compose")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using settings file:", viper.ConfigFileUsed())
	}
}

func validateRunFlags(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); os.IsNotExist(err) {
		return fmt.Errorf("configuration file '%s' not found", args[0])
	}

	compose := engine.NewCompose(viper.GetString("compose-command"), "", "")
	return compose.Check()
}
