// Command antjump runs and inspects the AntJump environment.
//
// Physics backends are compiled in with build tags: build with
// -tags mujoco for the cgo MuJoCo backend, or with -tags gogym for the
// OpenAI Gym backend.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	seed    uint64
	verbose bool

	// finalizers run once the command has finished
	finalizers []func()
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "antjump",
		Short: "Run the AntJump MuJoCo environment",
		Long: "antjump runs the AntJump environment, in which the MuJoCo " +
			"Ant must jump as high as it can or as close as it can to a " +
			"goal height.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML environment config file")
	flags.Uint64Var(&seed, "seed", 0, "random seed")
	flags.String("backend", "mujoco", "physics backend")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every episode")
	v.BindPFlag("backend", flags.Lookup("backend"))

	root.AddCommand(
		newSmokeCmd(v),
		newPlotCmd(),
		newConfigCmd(v),
		newBackendsCmd(),
	)
	return root
}

func main() {
	log.SetPrefix("[antjump] ")

	// Environment variables may be given in a .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	err := newRootCmd(viper.New()).Execute()
	for _, f := range finalizers {
		f()
	}
	if err != nil {
		os.Exit(1)
	}
}
