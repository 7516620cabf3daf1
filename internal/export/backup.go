package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"foodies/internal/model"
)

// ErrInvalidBackup is returned when an import file is not a usable backup.
var ErrInvalidBackup = errors.New("invalid backup file")

// requiredKeys must be present in a backup. trips is optional so older
// backups still import.
var requiredKeys = []string{"places", "shops", "foods"}

// BackupFileName returns the file name for a backup taken on now.
func BackupFileName(now time.Time) string {
	return "foodies-blog-backup-" + now.Format(model.DateLayout) + ".json"
}

// WriteBackup writes doc as indented JSON.
func WriteBackup(w io.Writer, doc model.Document) error {
	doc = doc.Clone()
	doc.Normalize()
	return writeJSON(w, doc)
}

// ParseBackup decodes a backup. It fails with ErrInvalidBackup when the JSON
// is malformed or a required collection is missing.
func ParseBackup(r io.Reader) (model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	var missing []string
	for _, k := range requiredKeys {
		if _, ok := keys[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return model.Document{}, fmt.Errorf("%w: missing %s", ErrInvalidBackup, strings.Join(missing, ", "))
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	doc.Normalize()
	return doc, nil
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// TripFileName derives a file name from a trip title.
func TripFileName(title string) string {
	name := nonAlnum.ReplaceAllString(title, "_")
	if name == "" {
		name = "trip"
	}
	return name + ".json"
}

// WriteTrip writes one trip as indented JSON.
func WriteTrip(w io.Writer, t model.Trip) error {
	return writeJSON(w, t)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
