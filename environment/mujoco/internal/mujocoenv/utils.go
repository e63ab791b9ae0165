//go:build mujoco

package mujocoenv

// #cgo LDFLAGS: -lmujoco200nogl
// #include "mujoco.h"
// #include <stdlib.h>
import "C"

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"
)

const (
	// KeyEnv names the environment variable holding the path to the
	// MuJoCo activation key
	KeyEnv = "MUJOCO_KEY"

	// AssetsEnv names the environment variable holding the directory
	// that relative XML file names are resolved against
	AssetsEnv = "MUJOCO_ASSETS"

	defaultAssets = "environment/mujoco/assets"
)

// keyPath returns the path to the MuJoCo activation key
func keyPath() (string, error) {
	if key := os.Getenv(KeyEnv); key != "" {
		return key, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("$%v not set and no home directory: %v",
			KeyEnv, err)
	}
	return filepath.Join(home, ".mujoco", "mjkey.txt"), nil
}

// xmlPath resolves a model file name. Absolute paths and paths starting
// with ./ are used as is, other paths are resolved against the assets
// directory.
func xmlPath(file string) (string, error) {
	if filepath.IsAbs(file) || strings.HasPrefix(file, "./") {
		return file, nil
	}

	assets := os.Getenv(AssetsEnv)
	if assets == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current directory for "+
				"finding %v dir: %v", defaultAssets, err)
		}
		assets = filepath.Join(wd, defaultAssets)
	}
	return filepath.Join(assets, file), nil
}

func loadXML(file string) (*C.mjModel, *C.mjData, error) {
	// Create MjModel from XML
	modelName := C.CString(file)
	defer C.free(unsafe.Pointer(modelName))
	var err [1000]C.char
	model := C.mj_loadXML(
		modelName,
		nil,
		&err[0],
		C.int(len(err)),
	)
	goErr := C.GoString(&err[0])
	if model == nil || len(goErr) != 0 {
		return nil, nil, fmt.Errorf("could not construct model: %v", goErr)
	}

	// Create the MjData
	data := C.mj_makeData(model)
	if data == nil {
		C.mj_deleteModel(model)
		return nil, nil, fmt.Errorf("could not construct mjData")
	}

	return model, data, nil
}

// F64SliceC2Go converts a copy of a C mjtNum array to a Go []float64
//
// See https://github.com/golang/go/wiki/cgo#turning-c-arrays-into-go-slices
func F64SliceC2Go(array *C.mjtNum, len int) []float64 {
	if len == 0 {
		return []float64{}
	}
	list := unsafe.Slice((*float64)(unsafe.Pointer(array)), len)

	newList := make([]float64, len)
	copy(newList, list)

	return newList
}
