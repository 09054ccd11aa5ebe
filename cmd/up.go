package cmd

import (
	"fmt"
	"log"
	"time"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xetys/mesos-compose/pkg/composer"
	"github.com/xetys/mesos-compose/pkg/engine"
)

// RunCluster resolves the configuration, synthesizes the manifest and
// drives the compose engine over it.
func RunCluster(cmd *cobra.Command, args []string) {
	overrides := map[string]string{}
	for key := range composer.Schema {
		if cmd.Flags().Changed(key) {
			value, _ := cmd.Flags().GetString(key)
			overrides[key] = value
		}
	}

	cfg, err := composer.Resolve(args[0], overrides)
	FatalOnError(err)
	FatalOnError(cfg.Validate())

	workdir := composer.NewWorkdir(args[0], cfg)
	compose := engine.NewCompose(viper.GetString("compose-command"), workdir.Path, "docker-compose.yml")

	if cmd.Flags().Changed("docker-compose") {
		passthrough, _ := cmd.Flags().GetString("docker-compose")
		tokens, err := shellwords.Parse(passthrough)
		FatalOnError(err)
		exitWith(compose.Run(tokens...))
	}

	if removeRequested, _ := cmd.Flags().GetBool("rm"); removeRequested {
		log.Printf("Tearing down cluster %s", workdir.Path)
		compose.Teardown()
		FatalOnError(workdir.Remove())
		return
	}

	FatalOnError(workdir.Create())
	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		log.Println("Wiping persistent state")
		FatalOnError(workdir.Reset())
	}

	manifest, err := composer.BuildManifest(cfg)
	FatalOnError(err)
	FatalOnError(manifest.Write(workdir))
	log.Printf("Manifest written to %s", workdir.ManifestPath())

	detach, _ := cmd.Flags().GetBool("detach")
	if !detach {
		if base, ok := cfg.PortBase("marathon_port"); ok {
			go waitForMarathon(base)
		}
	}
	exitWith(compose.Up(detach))
}

// waitForMarathon polls the scheduler's UI port while the engine holds the
// foreground, and opens a browser on it once it answers.
func waitForMarathon(port int) {
	url := fmt.Sprintf("http://localhost:%d", port)
	interval := time.Duration(viper.GetInt("wait-interval")) * time.Second
	timeout := time.Duration(viper.GetInt("wait-timeout")) * time.Second

	if err := engine.WaitHTTP(url+"/ping", interval, timeout); err != nil {
		log.Println(err)
		return
	}
	log.Printf("Marathon is up on %s", url)

	if viper.GetBool("open-browser") {
		var browser engine.Browser = engine.ExecBrowser{}
		if err := browser.Open(url); err != nil {
			log.Println(err)
		}
	}
}
