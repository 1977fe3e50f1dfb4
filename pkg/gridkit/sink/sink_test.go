package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func artifact(name, text string) *models.Artifact {
	return &models.Artifact{Format: models.FormatCSV, Filename: name, Data: []byte(text)}
}

func TestClipboardSink(t *testing.T) {
	var got string
	s := &ClipboardSink{WriteAll: func(text string) error {
		got = text
		return nil
	}}

	err := <-s.Deliver(context.Background(), artifact("x.txt", "Name\tAge"))
	require.NoError(t, err)
	assert.Equal(t, "Name\tAge", got)
}

func TestClipboardSinkDenied(t *testing.T) {
	calls := 0
	s := &ClipboardSink{WriteAll: func(string) error {
		calls++
		return errors.New("permission denied")
	}}

	out := s.Deliver(context.Background(), artifact("x.txt", "data"))
	err := <-out
	assert.ErrorIs(t, err, ErrClipboardUnavailable)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, 1, calls)

	_, open := <-out
	assert.False(t, open)
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	var saved string
	s := &FileSink{Dir: dir, Saved: func(p string) { saved = p }}

	require.NoError(t, <-s.Deliver(context.Background(), artifact("Report_2024-06-01.csv", "a,b")))

	want := filepath.Join(dir, "Report_2024-06-01.csv")
	assert.Equal(t, want, saved)
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(data))
}

func TestFileSinkRejectsEscapingNames(t *testing.T) {
	s := &FileSink{Dir: t.TempDir()}
	for _, name := range []string{"", "../x.csv", "/etc/passwd"} {
		assert.Error(t, <-s.Deliver(context.Background(), artifact(name, "x")), name)
	}
}

type fakeOpener struct {
	err  error
	html []byte
}

func (f *fakeOpener) Open(_ context.Context, html []byte) error {
	f.html = html
	return f.err
}

func TestPrintSink(t *testing.T) {
	o := &fakeOpener{}
	s := &PrintSink{Opener: o}
	require.NoError(t, <-s.Deliver(context.Background(), artifact("p.html", "<html></html>")))
	assert.Equal(t, "<html></html>", string(o.html))
}

func TestPrintSinkBlocked(t *testing.T) {
	s := &PrintSink{Opener: &fakeOpener{err: errors.New("no display")}}
	assert.ErrorIs(t, <-s.Deliver(context.Background(), artifact("p.html", "x")), ErrPopupBlocked)

	assert.ErrorIs(t, <-(&PrintSink{}).Deliver(context.Background(), artifact("p.html", "x")), ErrPopupBlocked)
}

func TestReleaseAfterWaitsThenReleasesInReverse(t *testing.T) {
	gate := make(chan struct{})
	var order []string
	done := releaseAfter(func() { <-gate },
		func() { order = append(order, "process") },
		func() { order = append(order, "browser") },
	)

	select {
	case <-done:
		t.Fatal("released before the page closed")
	case <-time.After(20 * time.Millisecond):
	}
	close(gate)
	<-done
	assert.Equal(t, []string{"browser", "process"}, order)
}
