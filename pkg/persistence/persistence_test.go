package persistence_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formulabase/formulactl/pkg/persistence"
)

const sampleJSON = "{\n    \"key\": \"value\"\n}"

type MockSerializer struct {
	Bytes []byte
	Err   error
}

func (s MockSerializer) Marshal(data any) ([]byte, error) {
	return s.Bytes, s.Err
}

type MockWriter struct {
	Data map[string][]byte
	Err  error
}

func (w *MockWriter) Write(filename string, data []byte) error {
	if w.Data == nil {
		w.Data = make(map[string][]byte)
	}
	w.Data[filename] = data
	return w.Err
}

func TestExport(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		data        any
		serializer  persistence.Serializer
		writer      persistence.Writer
		expectedErr bool
	}{
		{
			name:       "valid input",
			filename:   "formulas.json",
			data:       map[string]string{"key": "value"},
			serializer: MockSerializer{Bytes: []byte(sampleJSON)},
			writer:     &MockWriter{},
		},
		{
			name:        "empty filename",
			filename:    "",
			data:        map[string]string{"key": "value"},
			serializer:  MockSerializer{Bytes: []byte(sampleJSON)},
			writer:      &MockWriter{},
			expectedErr: true,
		},
		{
			name:        "serializer error",
			filename:    "formulas.json",
			data:        map[string]string{"key": "value"},
			serializer:  MockSerializer{Err: fmt.Errorf("serialization failed")},
			writer:      &MockWriter{},
			expectedErr: true,
		},
		{
			name:        "writer error",
			filename:    "formulas.json",
			data:        map[string]string{"key": "value"},
			serializer:  MockSerializer{Bytes: []byte(sampleJSON)},
			writer:      &MockWriter{Err: fmt.Errorf("write failed")},
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := persistence.Export(tt.data, tt.filename, tt.serializer, tt.writer)
			if tt.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if writer, ok := tt.writer.(*MockWriter); ok {
					assert.Equal(t, sampleJSON, string(writer.Data[tt.filename]))
				}
			}
		})
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulas.json")
	data := map[string]string{"key": "value"}

	assert.NoError(t, persistence.ExportJSON(data, path))

	written, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, sampleJSON, string(written))
}

func TestFileWriterRespectsOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulas.json")
	assert.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	w := persistence.FileWriter{Overwrite: false}
	assert.ErrorIs(t, w.Write(path, []byte("new")), os.ErrExist)

	w.Overwrite = true
	assert.NoError(t, w.Write(path, []byte("new")))
}
