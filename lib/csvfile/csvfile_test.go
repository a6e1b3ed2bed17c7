// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package csvfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	writeFile(t, path, "code,name,status,assignedUserCode\n1,Design,0,42\n\n2,Build,1\n3,\"a, b\",2,7\n")

	header, records, err := ReadRecords(path, nil)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if want := []string{"code", "name", "status", "assignedUserCode"}; !reflect.DeepEqual(header, want) {
		t.Errorf("header = %v, want %v", header, want)
	}
	want := []Record{
		{Line: 2, Fields: []string{"1", "Design", "0", "42"}, Raw: "1,Design,0,42"},
		{Line: 4, Fields: []string{"2", "Build", "1"}, Raw: "2,Build,1"},
		{Line: 5, Fields: []string{"3", "a, b", "2", "7"}, Raw: `3,"a, b",2,7`},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %#v, want %#v", records, want)
	}
}

func TestReadRecordsConfinesQuoteToLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	writeFile(t, path, "code,name,status,assignedUserCode\n"+
		"1,Alpha,0,1\n"+
		"2,\"Bad,0,1\n"+
		"3,Gamma,0,42\n"+
		"4,Delta,1,1\n")

	_, records, err := ReadRecords(path, nil)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4: %#v", len(records), records)
	}
	if records[1].Line != 3 || records[1].Raw != `2,"Bad,0,1` {
		t.Errorf("stray-quote record = %#v", records[1])
	}
	want := Record{Line: 4, Fields: []string{"3", "Gamma", "0", "42"}, Raw: "3,Gamma,0,42"}
	if !reflect.DeepEqual(records[2], want) {
		t.Errorf("record after stray quote = %#v, want %#v", records[2], want)
	}
	if records[3].Line != 5 || len(records[3].Fields) != 4 {
		t.Errorf("last record = %#v", records[3])
	}
}

func TestReadRecordsCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	writeFile(t, path, "code,name,email,password\r\n7,Ann,ann@x,pw\r\n")

	_, records, err := ReadRecords(path, nil)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 1 || records[0].Fields[3] != "pw" {
		t.Errorf("records = %#v", records)
	}
}

func TestReadRecordsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	writeFile(t, path, "")

	header, records, err := ReadRecords(path, nil)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if header != nil || records != nil {
		t.Errorf("got header %v records %v, want nil", header, records)
	}
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, _, err := ReadRecords(filepath.Join(t.TempDir(), "absent.csv"), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "log.csv")
	header := []string{"taskCode", "status", "actorUserCode", "date"}

	if err := Append(path, header, []string{"1", "0", "42", "2024-05-01"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := Append(path, header, []string{"1", "1", "42", "2024-05-02"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	want := "taskCode,status,actorUserCode,date\n1,0,42,2024-05-01\n1,1,42,2024-05-02\n"
	if got := readFile(t, path); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestAppendTerminatesPreviousLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	writeFile(t, path, "code,name,status,assignedUserCode\n1,Design,0,42")

	if err := Append(path, nil, []string{"2", "Build", "0", "42"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	want := "code,name,status,assignedUserCode\n1,Design,0,42\n2,Build,0,42\n"
	if got := readFile(t, path); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestAppendQuotesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	header := []string{"code", "name", "status", "assignedUserCode"}
	if err := Append(path, header, []string{"1", `say "hi", bye`, "0", "42"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	_, records, err := ReadRecords(path, nil)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 1 || records[0].Fields[1] != `say "hi", bye` {
		t.Errorf("records = %#v", records)
	}
}

func TestRewriteReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.csv")
	writeFile(t, path, "code,name,status,assignedUserCode\n1,Design,0,42\n")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("Chmod: %v", err)
	}

	header := []string{"code", "name", "status", "assignedUserCode"}
	records := []Record{
		{Fields: []string{"1", "Design", "1", "42"}},
		{Fields: []string{"bogus"}},
		{Raw: `2,"Bad,0,1`},
		{Fields: []string{"3", "a, b", "0", "1"}},
	}
	if err := Rewrite(path, header, records); err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	want := "code,name,status,assignedUserCode\n1,Design,1,42\nbogus\n2,\"Bad,0,1\n3,\"a, b\",0,1\n"
	if got := readFile(t, path); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp.") {
			t.Errorf("temporary file left behind: %s", entry.Name())
		}
	}
}

func TestRewriteFailureLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the final rename fail.
	path := filepath.Join(dir, "tasks.csv")
	if err := os.MkdirAll(filepath.Join(path, "child"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if err := Rewrite(path, []string{"code"}, nil); err == nil {
		t.Fatal("Rewrite over a non-empty directory succeeded")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.csv" {
		t.Errorf("directory contents changed: %v", entries)
	}
}
