package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"ntfsundeletetree/internal/application"
	"ntfsundeletetree/internal/domain"
)

func TestUndeleteCommand_Validate(t *testing.T) {
	existing := t.TempDir()

	tests := []struct {
		name    string
		dest    string
		wantErr error
		errMsg  string
	}{
		{name: "fresh destination", dest: filepath.Join(existing, "out")},
		{name: "empty destination", dest: "", errMsg: "destination is required"},
		{name: "existing destination", dest: existing, wantErr: application.ErrDestinationExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUndeleteCommand(&fakeWriter{}, sampleRecords(), tt.dest).Validate()
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.errMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
			default:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestUndeleteCommand_AllRoots(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	writer := &fakeWriter{}
	floor := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	cmd := NewUndeleteCommand(writer, sampleRecords(), dest)
	cmd.DateFloor = &floor
	res, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []int64{2, 5}; !reflect.DeepEqual(writer.roots, want) {
		t.Errorf("materialized roots %v, want %v", writer.roots, want)
	}
	for _, d := range writer.dests {
		if d != dest {
			t.Errorf("materialized under %s, want %s", d, dest)
		}
	}
	if writer.opts[0].DateFloor == nil || !writer.opts[0].DateFloor.Equal(floor) {
		t.Errorf("date floor not passed through")
	}
	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		t.Errorf("destination not created: %v", err)
	}
	if got := res.Report.Count(domain.OutcomeMaterialized); got != 2 {
		t.Errorf("materialized %d, want 2", got)
	}
	if res.UnknownRoot {
		t.Error("UnknownRoot should be false")
	}
	if !strings.Contains(res.Message, "Undeleted 2") {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestUndeleteCommand_SingleRoot(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	writer := &fakeWriter{}

	cmd := NewUndeleteCommand(writer, sampleRecords(), dest)
	cmd.RootID = domain.Int64(6)
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []int64{6}; !reflect.DeepEqual(writer.roots, want) {
		t.Errorf("materialized roots %v, want %v", writer.roots, want)
	}
}

func TestUndeleteCommand_UnknownRoot(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	writer := &fakeWriter{}

	cmd := NewUndeleteCommand(writer, sampleRecords(), dest)
	cmd.RootID = domain.Int64(404)
	res, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unknown root should not fail the run: %v", err)
	}
	if !res.UnknownRoot {
		t.Error("expected UnknownRoot")
	}
	if len(writer.roots) != 0 {
		t.Errorf("nothing should be materialized, got %v", writer.roots)
	}
	if len(res.Report.Results) != 0 {
		t.Errorf("expected empty report")
	}
}

func TestUndeleteCommand_ExistingDestinationIsFatal(t *testing.T) {
	writer := &fakeWriter{}
	_, err := NewUndeleteCommand(writer, sampleRecords(), t.TempDir()).Execute(context.Background())
	if !errors.Is(err, application.ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}
	if len(writer.roots) != 0 {
		t.Error("nothing should be materialized")
	}
}

func TestUndeleteCommand_CycleIsFatal(t *testing.T) {
	records := domain.NewRecordStore()
	records.Put(&domain.FileRecord{ID: 1, Kind: domain.KindDirectory, Name: "a", ParentID: domain.Int64(2)})
	records.Put(&domain.FileRecord{ID: 2, Kind: domain.KindDirectory, Name: "b", ParentID: domain.Int64(1)})
	dest := filepath.Join(t.TempDir(), "out")

	_, err := NewUndeleteCommand(&fakeWriter{}, records, dest).Execute(context.Background())
	if !errors.Is(err, application.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if _, statErr := os.Stat(dest); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("destination should not be created when the tree cannot be built")
	}
}

func TestBuildForestCommand_Validate(t *testing.T) {
	if err := NewBuildForestCommand(nil).Validate(); err == nil {
		t.Error("expected error for missing records")
	}
}

func TestRenderTree(t *testing.T) {
	records := sampleRecords()
	forest, err := NewBuildForestCommand(records).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "2: 2\n  1: a.txt\n5: docs\n  6: old\n    7: b.txt\n"
	if got := RenderTree(forest, nil); got != want {
		t.Errorf("RenderTree =\n%s\nwant\n%s", got, want)
	}

	want = "6: old\n  7: b.txt\n"
	if got := RenderTree(forest, domain.Int64(6)); got != want {
		t.Errorf("RenderTree(6) =\n%s\nwant\n%s", got, want)
	}
}
