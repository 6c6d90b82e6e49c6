package storage

import (
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

// FileStore keeps the key-value map in memory and rewrites a single
// zstd-compressed JSON file on every Set. The replace is atomic
// (tmp + fsync + rename) so a crash leaves either the old or the new
// snapshot, never a torn file.
type FileStore struct {
	mu         sync.Mutex
	path       string
	data       map[string]string
	compressor CompressorInterface
}

func NewFileStore(path string) (*FileStore, error) {
	compressor, err := NewZstdCompressor()
	if err != nil {
		return nil, err
	}

	fs := &FileStore{
		path:       path,
		data:       make(map[string]string),
		compressor: compressor,
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := fs.compressor.Decompress(raw)
	if err != nil {
		// Older builds wrote plain JSON.
		decompressed = raw
	}

	var data map[string]string
	if err := json.Unmarshal(decompressed, &data); err != nil {
		return err
	}
	fs.data = data
	return nil
}

func (fs *FileStore) Get(key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	val, ok := fs.data[key]
	return val, ok, nil
}

func (fs *FileStore) Set(key string, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data[key] = value
	return fs.save()
}

func (fs *FileStore) save() error {
	jsonData, err := json.Marshal(fs.data)
	if err != nil {
		return err
	}
	data, err := fs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fs.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fs.path)
}

func (fs *FileStore) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.save()
}
