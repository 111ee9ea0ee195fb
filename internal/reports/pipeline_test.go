package reports_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/internal/reports"
	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/report"
)

type failingRenderer struct{}

func (failingRenderer) Render(report.Report) ([]byte, error) {
	return nil, errors.New("layout exploded")
}

func TestPipelinePublish(t *testing.T) {
	up := &fakeUploader{}
	p := newPipeline(t, renderer(t), up)

	pub, err := p.Publish(context.Background(), submission())
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	wantName := "[DS] Tim Data Science_Maret 2025.pdf"
	if pub.Filename != wantName {
		t.Errorf("Filename = %q, want %q", pub.Filename, wantName)
	}
	if pub.Link != "https://blobs.test/reports/"+wantName {
		t.Errorf("Link = %q", pub.Link)
	}
	if !hasPrefix(pub.Data) {
		t.Error("published data is not a PDF")
	}
	if pub.PageCount == nil || *pub.PageCount < 1 {
		t.Errorf("PageCount = %v, want at least 1", pub.PageCount)
	}
	if pub.Team != "[DS] Tim Data Science" || pub.Period != "Maret 2025" {
		t.Errorf("Team/Period = %q/%q", pub.Team, pub.Period)
	}
	if len(pub.Report.Sections) != 11 {
		t.Errorf("sections = %d, want 11", len(pub.Report.Sections))
	}
	if len(up.names) != 1 || up.names[0] != wantName {
		t.Errorf("uploaded names = %v", up.names)
	}
}

func TestPipelineRenderIsStable(t *testing.T) {
	p := newPipeline(t, renderer(t), &fakeUploader{})

	a, err := p.Render(submission())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := p.Render(submission())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if string(a.Data) != string(b.Data) {
		t.Error("rendering the same submission twice produced different bytes")
	}
}

func TestPipelineErrors(t *testing.T) {
	tests := []struct {
		name     string
		renderer reports.Renderer
		uploader *fakeUploader
		modify   func(v map[string]string)
		want     []error
	}{
		{
			name:     "missing team",
			renderer: renderer(t),
			uploader: &fakeUploader{},
			modify:   func(v map[string]string) { delete(v, "team") },
			want:     []error{reports.ErrInvalidSubmission, form.ErrTeamRequired},
		},
		{
			name:     "invalid number",
			renderer: renderer(t),
			uploader: &fakeUploader{},
			modify:   func(v map[string]string) { v["members"] = "0" },
			want:     []error{reports.ErrInvalidSubmission, form.ErrInvalidNumber},
		},
		{
			name:     "render failure",
			renderer: failingRenderer{},
			uploader: &fakeUploader{},
			want:     []error{reports.ErrRenderFailed},
		},
		{
			name:     "text without glyph",
			renderer: renderer(t),
			uploader: &fakeUploader{},
			modify:   func(v map[string]string) { v["progress"] = "Rilis 中文 dashboard" },
			want:     []error{reports.ErrRenderFailed, pdf.ErrUnsupportedText},
		},
		{
			name:     "upload failure",
			renderer: renderer(t),
			uploader: &fakeUploader{err: errors.New("storage offline")},
			want:     []error{reports.ErrUploadFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(t, tt.renderer, tt.uploader)

			sub := submission()
			if tt.modify != nil {
				tt.modify(sub.Values)
			}

			_, err := p.Publish(context.Background(), sub)
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Publish() error = %v, want %v", err, want)
				}
			}
			if len(tt.uploader.names) != 0 {
				t.Errorf("failed cycle uploaded %v", tt.uploader.names)
			}
		})
	}
}

func TestPipelineOneCycleAtATime(t *testing.T) {
	up := &fakeUploader{gate: make(chan struct{})}
	p := newPipeline(t, renderer(t), up)

	done := make(chan error, 1)
	go func() {
		_, err := p.Publish(context.Background(), submission())
		done <- err
	}()

	// Wait until the first cycle holds the pipeline.
	deadline := time.Now().Add(5 * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		_, err := p.Publish(ctx, submission())
		cancel()
		if errors.Is(err, reports.ErrBusy) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("second cycle never observed the first: last error %v", err)
		}
	}

	close(up.gate)
	if err := <-done; err != nil {
		t.Fatalf("first cycle error = %v", err)
	}

	if len(up.names) != 1 {
		t.Errorf("uploads = %d, want 1", len(up.names))
	}
}

func TestPipelinePreview(t *testing.T) {
	p := newPipeline(t, renderer(t), &fakeUploader{})

	pv, err := p.Preview(submission())
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	if pv.Filename != "[DS] Tim Data Science_Maret 2025.pdf" {
		t.Errorf("Filename = %q", pv.Filename)
	}
	if !strings.Contains(pv.Markdown, "## Progress Bulanan\n\n1. Pipeline\n2. Prototype\n") {
		t.Errorf("Markdown missing numbered run:\n%s", pv.Markdown)
	}
	for _, want := range []string{"<h2>Nama Tim</h2>", "<ol>", "<ul>", "<li>Review</li>"} {
		if !strings.Contains(pv.HTML, want) {
			t.Errorf("HTML missing %q:\n%s", want, pv.HTML)
		}
	}

	sub := submission()
	delete(sub.Values, "team")
	if _, err := p.Preview(sub); !errors.Is(err, form.ErrTeamRequired) {
		t.Errorf("Preview() error = %v, want ErrTeamRequired", err)
	}
}
