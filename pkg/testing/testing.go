package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// tests run from the project root, so relative paths such as web.yaml and
	// logs/ resolve the same way they do for the binary. Usage:
	//
	//   import (
	//     _ "liyu1981.xyz/iot-dashboard/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)           // path of this file
	dir := path.Join(path.Dir(filename), "..", "..") // two levels up is the project root
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
