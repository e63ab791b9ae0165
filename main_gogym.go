//go:build gogym

package main

import "github.com/samuelfneumann/antjump/environment/gym"

func init() {
	finalizers = append(finalizers, gym.Finalize)
}
