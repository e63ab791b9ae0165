package antjump

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/antjump/environment/mujoco/physics"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// MaxEpisodeSteps is the default episode step limit
	MaxEpisodeSteps int = 200

	// FallHeight is the torso height below which the Ant is considered
	// to have fallen over, ending the episode. It is independent of
	// Config.HealthyZRange.
	FallHeight float64 = 0.3

	// GoalMin and GoalMax bound the goal heights sampled in context
	// mode: goals are drawn uniformly from [GoalMin, GoalMax)
	GoalMin float64 = 1.0
	GoalMax float64 = 2.5

	// HeightOffset is subtracted from the episode's max height to build
	// the terminal reward when context mode is off
	HeightOffset float64 = 0.7

	// GoalDistanceScale scales the distance between the episode's max
	// height and the goal in context mode
	GoalDistanceScale float64 = 10.0

	// Torso is the name of the body whose height is tracked
	Torso string = "torso"
)

// Config configures an AntJump environment. A Config is fixed when the
// environment is constructed.
type Config struct {
	// Backend is the name of the registered physics backend
	Backend string `yaml:"backend" mapstructure:"backend"`

	XMLFile   string `yaml:"xml_file" mapstructure:"xml_file"`
	FrameSkip int    `yaml:"frame_skip" mapstructure:"frame_skip"`

	CtrlCostWeight         float64     `yaml:"ctrl_cost_weight" mapstructure:"ctrl_cost_weight"`
	ContactCostWeight      float64     `yaml:"contact_cost_weight" mapstructure:"contact_cost_weight"`
	HealthyReward          float64     `yaml:"healthy_reward" mapstructure:"healthy_reward"`
	TerminateWhenUnhealthy bool        `yaml:"terminate_when_unhealthy" mapstructure:"terminate_when_unhealthy"`
	HealthyZRange          r1.Interval `yaml:"healthy_z_range" mapstructure:"healthy_z_range"`
	ContactForceRange      r1.Interval `yaml:"contact_force_range" mapstructure:"contact_force_range"`
	ResetNoiseScale        float64     `yaml:"reset_noise_scale" mapstructure:"reset_noise_scale"`

	// NoisyReset perturbs the initial pose by uniform noise of
	// ResetNoiseScale at each reset. Resets are exact when false.
	NoisyReset bool `yaml:"noisy_reset" mapstructure:"noisy_reset"`

	// Context switches the terminal reward to a penalty on the
	// distance between the episode's max height and a per-episode
	// random goal height
	Context bool `yaml:"context" mapstructure:"context"`

	MaxEpisodeSteps         int     `yaml:"max_episode_steps" mapstructure:"max_episode_steps"`
	ExcludeCurrentPositions bool    `yaml:"exclude_current_positions" mapstructure:"exclude_current_positions"`
	Discount                float64 `yaml:"discount" mapstructure:"discount"`
}

// DefaultConfig returns the default AntJump configuration. Compared to
// the regular Ant, there is no healthy reward, no control or contact
// cost, and the healthy height range is (0.3, ∞).
func DefaultConfig() Config {
	return Config{
		Backend:                 "mujoco",
		XMLFile:                 "ant.xml",
		FrameSkip:               5,
		CtrlCostWeight:          0.0,
		ContactCostWeight:       0.0,
		HealthyReward:           0.0,
		TerminateWhenUnhealthy:  true,
		HealthyZRange:           r1.Interval{Min: 0.3, Max: math.Inf(1)},
		ContactForceRange:       r1.Interval{Min: -1.0, Max: 1.0},
		ResetNoiseScale:         0.1,
		NoisyReset:              false,
		Context:                 true,
		MaxEpisodeSteps:         MaxEpisodeSteps,
		ExcludeCurrentPositions: true,
		Discount:                1.0,
	}
}

// Validate returns an error if the Config cannot be used to construct
// an environment
func (c Config) Validate() error {
	if c.FrameSkip <= 0 {
		return fmt.Errorf("validate: frameSkip should be positive")
	}
	if c.MaxEpisodeSteps <= 0 {
		return fmt.Errorf("validate: maxEpisodeSteps should be positive")
	}
	if c.ContactForceRange.Min > c.ContactForceRange.Max {
		return fmt.Errorf("validate: empty contact force range [%v, %v]",
			c.ContactForceRange.Min, c.ContactForceRange.Max)
	}
	return nil
}

// Physics returns the part of the Config understood by the base
// locomotion environment
func (c Config) Physics(seed uint64) physics.Config {
	return physics.Config{
		XMLFile:                 c.XMLFile,
		FrameSkip:               c.FrameSkip,
		Seed:                    seed,
		CtrlCostWeight:          c.CtrlCostWeight,
		ContactCostWeight:       c.ContactCostWeight,
		HealthyReward:           c.HealthyReward,
		TerminateWhenUnhealthy:  c.TerminateWhenUnhealthy,
		HealthyZRange:           c.HealthyZRange,
		ContactForceRange:       c.ContactForceRange,
		ResetNoiseScale:         c.ResetNoiseScale,
		ExcludeCurrentPositions: c.ExcludeCurrentPositions,
	}
}
