package application

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "valid value",
			fieldName: "image",
			value:     "/dev/sdb1",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "destination",
			value:     "",
			wantErr:   true,
			errMsg:    "destination: destination is required",
		},
		{
			name:      "whitespace only",
			fieldName: "rootInode",
			value:     "   ",
			wantErr:   true,
			errMsg:    "rootInode: root inode is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if err.Error() != tt.errMsg {
					t.Errorf("expected %q, got %q", tt.errMsg, err.Error())
				}
			}
		})
	}
}

func TestParseDateFloor(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Time
		wantErr bool
	}{
		{value: "2023-04-01", want: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)},
		{value: "2023-04-01T13:45", want: time.Date(2023, 4, 1, 13, 45, 0, 0, time.UTC)},
		{value: "2023-04-01 13:45", want: time.Date(2023, 4, 1, 13, 45, 0, 0, time.UTC)},
		{value: "2023-04-01T13:45:10", want: time.Date(2023, 4, 1, 13, 45, 10, 0, time.UTC)},
		{value: "2023-04-01T13:45:10+02:00", want: time.Date(2023, 4, 1, 11, 45, 10, 0, time.UTC)},
		{value: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseDateFloor(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var valErr *ValidationError
				if !errors.As(err, &valErr) || valErr.Field != "fromDate" {
					t.Errorf("expected fromDate ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	scanErr := error(&ScanError{Image: "disk.img", ExitCode: 1, Stderr: "not an NTFS volume"})
	if !errors.Is(scanErr, ErrScanFailed) {
		t.Error("expected ScanError to match ErrScanFailed")
	}
	if !strings.Contains(scanErr.Error(), "not an NTFS volume") {
		t.Errorf("expected diagnostics in message, got %q", scanErr.Error())
	}

	recErr := error(&RecoveryError{ID: 42, Path: "/out/a", ExitCode: 2})
	if !errors.Is(recErr, ErrRecoveryFailed) {
		t.Error("expected RecoveryError to match ErrRecoveryFailed")
	}
	if recErr.Error() != "undeleting inode 42 to /out/a: exit code 2" {
		t.Errorf("unexpected message %q", recErr.Error())
	}
}
