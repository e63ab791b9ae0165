package main

import (
	"fmt"

	"github.com/samuelfneumann/antjump/environment/mujoco/physics"
	"github.com/spf13/cobra"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the physics backends compiled into this binary",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			backends := physics.Backends()
			if len(backends) == 0 {
				fmt.Println("no physics backends, rebuild with -tags " +
					"mujoco or -tags gogym")
				return
			}
			for _, name := range backends {
				fmt.Println(name)
			}
		},
	}
}
