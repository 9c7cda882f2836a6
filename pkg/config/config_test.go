package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/formulabase/formulactl/pkg/config"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulactl.yaml")
	store := config.NewFileStore(path)

	in := &config.Settings{
		URI:        "mongodb://localhost:27017/",
		Database:   "equations_db",
		Collection: "formulas",
	}
	assert.NoError(t, store.Save(in))

	var out config.Settings
	assert.NoError(t, store.Load(&out))
	assert.Equal(t, *in, out)
}

func TestFileStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		store := config.NewFileStore(filepath.Join(dir, "nope.yaml"))
		var out config.Settings
		assert.Error(t, store.Load(&out))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		assert.NoError(t, os.WriteFile(path, nil, 0600))
		store := config.NewFileStore(path)
		var out config.Settings
		assert.Error(t, store.Load(&out))
	})

	t.Run("nil output", func(t *testing.T) {
		store := config.NewFileStore(filepath.Join(dir, "any.yaml"))
		assert.Error(t, store.Load(nil))
	})
}

func TestWatchRejectsNilCallback(t *testing.T) {
	store := config.NewFileStore(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, store.Watch(nil))
}

func TestWatchNotifiesOnRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulactl.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("uri: mongodb://localhost:27017/\n"), 0600))

	store := config.NewFileStore(path)
	changed := make(chan struct{}, 1)
	assert.NoError(t, store.Watch(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))

	assert.NoError(t, os.WriteFile(path, []byte("uri: mongodb://db.internal:27017/\n"), 0600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no notification after the file was rewritten")
	}
}
