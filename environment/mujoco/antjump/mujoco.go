//go:build mujoco

package antjump

import (
	"github.com/samuelfneumann/antjump/environment/mujoco/internal/mujocoenv"
	"github.com/samuelfneumann/antjump/environment/mujoco/physics"
)

func init() {
	physics.Register("mujoco", func(c physics.Config) (physics.Simulator,
		error) {
		sim, err := mujocoenv.New(c)
		if err != nil {
			return nil, err
		}
		return sim, nil
	})
}
