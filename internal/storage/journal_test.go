/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestOpenJournal_WALAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultJournalName)
	j, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if v, err := j.SchemaVersion(ctx); err != nil || v != schemaVersion {
		t.Fatalf("schema version %d %v", v, err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)", filepath.ToSlash(path)))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" && mode != "WAL" {
		t.Fatalf("expected WAL mode, got %s", mode)
	}
	var cnt int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('meta','version','renders')").Scan(&cnt); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if cnt != 3 {
		t.Fatalf("expected 3 tables, got %d", cnt)
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_renders_created'").Scan(&cnt); err != nil || cnt != 1 {
		t.Fatalf("migration index missing: %d %v", cnt, err)
	}
}

func TestJournal_RecordAndList(t *testing.T) {
	j, err := OpenJournal(filepath.Join(t.TempDir(), DefaultJournalName))
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()
	ctx := context.Background()

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	first := Entry{At: at, Source: "a.yaml", Title: "A", Theme: "grayscale", Format: "svg",
		Outputs: []string{"out/a.svg"}, Bars: 3, Tooltips: 1, Duration: 42 * time.Millisecond}
	id1, err := j.Record(ctx, first)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	id2, err := j.Record(ctx, Entry{Source: "b.yaml", Format: "png", Outputs: []string{"web/b.svg", "web/b.png"}, Err: "boom"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("ids not increasing: %d %d", id1, id2)
	}

	all, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != id2 || all[1].ID != id1 {
		t.Fatalf("list order %+v", all)
	}
	got := all[1]
	if !got.At.Equal(at) || got.Title != "A" || got.Bars != 3 || got.Tooltips != 1 || got.Duration != 42*time.Millisecond {
		t.Fatalf("round trip %+v", got)
	}
	if len(all[0].Outputs) != 2 || all[0].Outputs[1] != "web/b.png" || all[0].Err != "boom" || all[0].At.IsZero() {
		t.Fatalf("second entry %+v", all[0])
	}

	one, err := j.List(ctx, 1)
	if err != nil || len(one) != 1 || one[0].ID != id2 {
		t.Fatalf("limited list %+v %v", one, err)
	}
	if _, err := j.Record(ctx, Entry{Format: "svg"}); err == nil {
		t.Fatalf("expected error for missing source")
	}
}

func TestJournal_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultJournalName)
	j, err := OpenJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := j.Record(context.Background(), Entry{Source: "x.yaml", Format: "pdf"}); err != nil {
		t.Fatal(err)
	}
	_ = j.Close()

	j, err = OpenJournal(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j.Close()
	list, err := j.List(context.Background(), 10)
	if err != nil || len(list) != 1 || list[0].Source != "x.yaml" {
		t.Fatalf("after reopen %+v %v", list, err)
	}
	if _, err := OpenJournal("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
