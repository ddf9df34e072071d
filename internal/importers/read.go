package importers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/caravansite/internal/docshape"
)

// ReadFile decodes an export file. JSON and YAML are both accepted, in
// either of the shapes produced by store exports: a list of documents
// carrying an "id" field, or an object keyed by document id.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(bytes.NewReader(data))
	}
}

// DecodeJSON decodes an export from r. Numbers keep full precision.
func DecodeJSON(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding JSON export: %w", err)
	}
	return toRecords(v)
}

// DecodeYAML decodes a YAML content seed.
func DecodeYAML(data []byte) ([]Record, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding YAML export: %w", err)
	}
	return toRecords(v)
}

func toRecords(v any) ([]Record, error) {
	switch t := v.(type) {
	case []any:
		out := make([]Record, 0, len(t))
		for i, item := range t {
			doc, ok := asDocument(item)
			if !ok {
				return nil, fmt.Errorf("item %d is not an object", i)
			}
			out = append(out, Record{ID: doc.String("id"), Doc: doc})
		}
		return out, nil
	case map[string]any:
		if docs, ok := t["documents"]; ok {
			return toRecords(docs)
		}
		ids := make([]string, 0, len(t))
		for id := range t {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out := make([]Record, 0, len(t))
		for _, id := range ids {
			doc, ok := asDocument(t[id])
			if !ok {
				return nil, fmt.Errorf("document %q is not an object", id)
			}
			out = append(out, Record{ID: id, Doc: doc})
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported export shape %T", v)
}

func asDocument(v any) (docshape.Document, bool) {
	switch m := v.(type) {
	case map[string]any:
		return docshape.Document(m), true
	case map[any]any:
		doc := make(docshape.Document, len(m))
		for k, val := range m {
			doc[fmt.Sprint(k)] = val
		}
		return doc, true
	}
	return nil, false
}
