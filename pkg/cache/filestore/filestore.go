package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/ohler55/ojg/oj"

	"github.com/mpapenbr/f1replay-engine-go/log"
	"github.com/mpapenbr/f1replay-engine-go/pkg/cache"
)

const fileSuffix = ".json.gz"

type (
	Option[V any]    func(*fileStore[V])
	fileStore[V any] struct {
		dir string
		l   *log.Logger
	}
)

func WithLogger[V any](arg *log.Logger) Option[V] {
	return func(f *fileStore[V]) {
		f.l = arg
	}
}

// New creates a file backed cache below dir. Entries are stored as
// gzip compressed JSON, one file per key.
func New[V any](dir string, opts ...Option[V]) (cache.Cache[string, V], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create cache dir: %w", err)
	}
	ret := &fileStore[V]{
		dir: dir,
		l:   log.Default().Named("cache"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret, nil
}

func (f *fileStore[V]) Get(_ context.Context, key string) (*V, error) {
	fileName := filepath.Join(f.dir, key+fileSuffix)
	in, err := os.Open(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cache.ErrCacheMiss
		}
		return nil, err
	}
	defer in.Close()
	gz, err := gzip.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	defer gz.Close()
	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	ret := new(V)
	if err := oj.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("could not decode cache entry %s: %w", key, err)
	}
	f.l.Debug("cache hit", log.String("key", key))
	return ret, nil
}

// Put writes to a temp file first and renames it into place. The
// rename makes the write atomic at key level.
func (f *fileStore[V]) Put(_ context.Context, key string, value *V) error {
	data, err := oj.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode cache entry %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(f.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	tmpName := tmp.Name()
	gz := gzip.NewWriter(tmp)
	if _, err := gz.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not write cache entry %s: %w", key, err)
	}
	if err := gz.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not write cache entry %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not write cache entry %s: %w", key, err)
	}
	fileName := filepath.Join(f.dir, key+fileSuffix)
	if err := os.Rename(tmpName, fileName); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not store cache entry %s: %w", key, err)
	}
	f.l.Debug("cache entry written", log.String("key", key))
	return nil
}

func (f *fileStore[V]) Invalidate(_ context.Context, key string) error {
	fileName := filepath.Join(f.dir, key+fileSuffix)
	if err := os.Remove(fileName); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
