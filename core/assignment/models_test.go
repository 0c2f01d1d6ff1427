package assignment

import (
	"testing"
	"time"
)

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		name     string
		deadline string
		want     time.Time
		wantErr  error
	}{
		{name: "ISO with UTC marker", deadline: "2099-01-01T10:30:00Z", want: time.Date(2099, 1, 1, 10, 30, 0, 0, time.UTC)},
		{name: "ISO without zone", deadline: "2099-01-01T10:30:00", want: time.Date(2099, 1, 1, 10, 30, 0, 0, time.Local)},
		{name: "ISO minutes only", deadline: "2099-01-01T10:30", want: time.Date(2099, 1, 1, 10, 30, 0, 0, time.Local)},
		{name: "legacy wall clock", deadline: "2099-01-01 10:30", want: time.Date(2099, 1, 1, 10, 30, 0, 0, time.Local)},
		{name: "date only", deadline: "2099-01-01", want: time.Date(2099, 1, 1, 0, 0, 0, 0, time.Local)},
		{name: "garbage", deadline: "next tuesday", wantErr: ErrBadDeadline},
		{name: "empty", deadline: "", wantErr: ErrBadDeadline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeadline(tt.deadline)
			if err != tt.wantErr {
				t.Fatalf("ParseDeadline() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("ParseDeadline() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2021, 6, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		deadline string
		want     bool
		wantErr  error
	}{
		{name: "future legacy format", deadline: "2099-01-01 00:00", want: false},
		{name: "past legacy format", deadline: "2000-01-01 00:00", want: true},
		{name: "future ISO format", deadline: "2099-01-01T00:00:00Z", want: false},
		{name: "past ISO format", deadline: "2000-01-01T00:00:00Z", want: true},
		{name: "future date only", deadline: "2099-01-01", want: false},
		{name: "past date only", deadline: "2000-01-01", want: true},
		{name: "unparseable", deadline: "whenever", wantErr: ErrBadDeadline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asg := Assignment{Deadline: tt.deadline}
			got, err := asg.IsExpired(now)
			if err != tt.wantErr {
				t.Fatalf("IsExpired() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderFileName(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
		wantOK bool
	}{
		{name: "all placeholders", format: "{studentId}_{studentName}_lab{assignmentId}.docx", want: "S1_Alice_lab7.docx", wantOK: true},
		{name: "partial placeholders", format: "{studentId}.txt", want: "S1.txt", wantOK: true},
		{name: "no placeholders", format: "report.pdf", want: "report.pdf", wantOK: true},
		{name: "unknown placeholder", format: "{group}_{studentId}.txt", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RenderFileName(tt.format, "S1", "Alice", 7)
			if ok != tt.wantOK {
				t.Fatalf("RenderFileName() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("RenderFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchesFileName(t *testing.T) {
	asg := Assignment{
		ID: 3,
		FileNameFormats: []string{
			"{studentId}_{studentName}.txt",
			"{studentId}_lab{assignmentId}.pdf",
			"{team}_{studentId}.zip", // unusable: unknown placeholder
		},
	}

	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{name: "first format", filename: "S1_Alice.txt", want: true},
		{name: "second format", filename: "S1_lab3.pdf", want: true},
		{name: "no match", filename: "S1_Alice.pdf", want: false},
		{name: "unusable format never matches", filename: "{team}_S1.zip", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asg.MatchesFileName(tt.filename, "S1", "Alice"); got != tt.want {
				t.Errorf("MatchesFileName(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestRenderExamples(t *testing.T) {
	formats := []string{
		"{studentId}_{studentName}.txt",
		"{team}_{studentId}.zip", // skipped
		"{studentId}_lab{assignmentId}.pdf",
	}
	got := RenderExamples(formats, "S1", "Alice", 3)
	want := []string{"S1_Alice.txt", "S1_lab3.pdf"}
	if len(got) != len(want) {
		t.Fatalf("RenderExamples() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RenderExamples()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
