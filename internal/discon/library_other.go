//go:build !(darwin || freebsd || linux)

package discon

func Open(path, symbol string) (Library, error) {
	return nil, &AcquireError{Path: path, Wrapped: ErrUnsupportedPlatform}
}
