package assets

// Store provides byte content by path. Implementations wrap failures with
// ErrAssetUnavailable and, for absent files, fs.ErrNotExist.
type Store interface {
	Read(path string) ([]byte, error)
}

// StoreFunc adapts a function to the Store interface.
type StoreFunc func(path string) ([]byte, error)

// Read calls f(path).
func (f StoreFunc) Read(path string) ([]byte, error) {
	return f(path)
}
