//go:build darwin || freebsd || linux

package discon

import (
	"github.com/ebitengine/purego"
)

type nativeLibrary struct {
	handle uintptr
	discon func(swap *float32, fail *int32, inFile, outName, msg *byte)
}

// Open loads a controller shared library and resolves its entry point.
func Open(path, symbol string) (Library, error) {
	if symbol == "" {
		symbol = DefaultSymbol
	}

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, &AcquireError{Path: path, Wrapped: err}
	}

	sym, err := purego.Dlsym(handle, symbol)
	if err != nil {
		purego.Dlclose(handle)
		return nil, &AcquireError{Path: path, Wrapped: err}
	}

	lib := &nativeLibrary{handle: handle}
	purego.RegisterFunc(&lib.discon, sym)
	return lib, nil
}

func (l *nativeLibrary) Discon(swap *float32, fail *int32, inFile, outName, msg *byte) {
	l.discon(swap, fail, inFile, outName, msg)
}

func (l *nativeLibrary) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := purego.Dlclose(l.handle)
	l.handle = 0
	return err
}
