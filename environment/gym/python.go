//go:build gogym

package gym

import (
	"fmt"

	python "github.com/DataDog/go-python3"
)

// importModule imports a Python module, panicking if it cannot be
// imported
func importModule(name string) *python.PyObject {
	module := python.PyImport_ImportModule(name)
	if module == nil {
		printPyError()
		panic(fmt.Sprintf("init: could not import %v", name))
	}
	return module
}

// printPyError prints and clears the current Python error, if any
func printPyError() {
	if python.PyErr_Occurred() != nil {
		fmt.Println()
		fmt.Println("========== Python Error ==========")
		python.PyErr_Print()
		fmt.Println("==================================")
		fmt.Println()
	}
}

// pyError prints the current Python error and returns msg as an error
func pyError(msg string) error {
	printPyError()
	return fmt.Errorf("%v", msg)
}

func pyBool(b bool) *python.PyObject {
	if b {
		return python.PyBool_FromLong(1)
	}
	return python.PyBool_FromLong(0)
}

// pyTuple returns a Python tuple of floats
func pyTuple(values ...float64) *python.PyObject {
	tuple := python.PyTuple_New(len(values))
	for i, v := range values {
		// PyTuple_SetItem steals the reference to the float
		python.PyTuple_SetItem(tuple, i, python.PyFloat_FromDouble(v))
	}
	return tuple
}

// toNumpy returns a new numpy array holding a copy of data
func toNumpy(data []float64) *python.PyObject {
	list := python.PyList_New(len(data))
	defer list.DecRef()
	for i, v := range data {
		// PyList_SetItem steals the reference to the float
		python.PyList_SetItem(list, i, python.PyFloat_FromDouble(v))
	}

	return numpyModule.CallMethodArgs("array", list)
}

// fromNumpy copies a one-dimensional numpy array of floats into a
// []float64
func fromNumpy(array *python.PyObject) ([]float64, error) {
	list := array.CallMethodArgs("tolist")
	if list == nil {
		return nil, pyError("could not convert numpy array to list")
	}
	defer list.DecRef()

	size := python.PyList_Size(list)
	if size < 0 {
		return nil, pyError("numpy array is not one-dimensional")
	}

	data := make([]float64, size)
	for i := range data {
		data[i] = python.PyFloat_AsDouble(python.PyList_GetItem(list, i))
	}
	return data, nil
}
