// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Record is one data line of a delimited file.
type Record struct {
	// Line is the 1-based physical line number of the record.
	Line int

	// Fields holds the decoded values. The count is not checked. Fields
	// is nil when the line could not be decoded.
	Fields []string

	// Raw is the line as it appears in the file, without its line
	// terminator.
	Raw string
}

// ReadRecords reads path and returns its header and data records in
// file order. Every physical line is decoded on its own, so a quoting
// mistake never swallows the lines after it. Blank lines are skipped. A
// line that cannot be decoded at all is reported through skip when skip
// is non-nil and returned with nil Fields; it never fails the read.
//
// A missing file returns an error satisfying errors.Is(err,
// os.ErrNotExist). An empty file returns a nil header and no records.
func ReadRecords(path string, skip func(line int, err error)) ([]string, []Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var header []string
	var records []Record
	seenHeader := false
	for index, raw := range strings.Split(string(data), "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		line := index + 1
		fields, err := decodeLine(raw)
		if err != nil {
			if skip != nil {
				skip(line, err)
			}
		}
		if !seenHeader {
			header, seenHeader = fields, true
			continue
		}
		records = append(records, Record{Line: line, Fields: fields, Raw: raw})
	}
	return header, records, nil
}

// decodeLine decodes a single physical line. Quoted fields may not
// continue onto the next line.
func decodeLine(raw string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	fields, err := reader.Read()
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// Append writes one record to the end of path. When the file does not
// exist (or is empty) the header is written first. When the existing
// content does not end in a newline, one is inserted so the new record
// starts on its own line. The file is synced before returning.
func Append(path string, header, fields []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	switch {
	case info.Size() == 0:
		if err := writer.Write(header); err != nil {
			return err
		}
	default:
		terminated, err := endsWithNewline(file, info.Size())
		if err != nil {
			return err
		}
		if !terminated {
			buffer.WriteByte('\n')
		}
	}
	if err := writer.Write(fields); err != nil {
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	if _, err := file.Write(buffer.Bytes()); err != nil {
		return err
	}
	return file.Sync()
}

func endsWithNewline(file *os.File, size int64) (bool, error) {
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, size-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}

// Rewrite replaces the content of path with header followed by
// records. A record with non-nil Fields is encoded from them; any other
// record is written as its Raw text. The replacement is atomic: readers
// observe either the old file or the new one, never a partial write.
// The existing file's permission bits are preserved.
func Rewrite(path string, header []string, records []Record) error {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, record := range records {
		if record.Fields != nil {
			if err := writer.Write(record.Fields); err != nil {
				return err
			}
			continue
		}
		writer.Flush()
		buffer.WriteString(record.Raw)
		buffer.WriteByte('\n')
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return writeFileAtomicDurable(path, buffer.Bytes(), perm)
}

func writeFileAtomicDurable(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
