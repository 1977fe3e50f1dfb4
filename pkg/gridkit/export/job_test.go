package export

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

func TestJobCompletes(t *testing.T) {
	defer goleak.VerifyNone(t)

	j := testEngine().Start(context.Background(), Request{
		Rows: memberRows(), Columns: memberColumns(), Title: "Members", Format: models.FormatCSV,
	})
	assert.NotEmpty(t, j.ID)
	assert.Equal(t, models.FormatCSV, j.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a, err := j.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Members_2024-06-01.csv", a.Filename)

	select {
	case <-j.Done():
	default:
		t.Fatal("Done not closed after Wait returned")
	}
}

func TestJobCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	rows := make([]models.Row, 50000)
	for i := range rows {
		rows[i] = models.Row{"n": i}
	}
	e := NewEngine(Options{ChunkSize: 10, Workers: 1})
	j := e.Start(context.Background(), Request{
		Rows: rows, Columns: []models.ColumnSpec{{Key: "n", Label: "N"}}, Format: models.FormatPDF,
	})
	j.Cancel()

	<-j.Done()
	_, err := j.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJobIDsAreUnique(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := testEngine()
	req := Request{Rows: memberRows(), Columns: memberColumns(), Format: models.FormatClipboard}
	a, b := e.Start(context.Background(), req), e.Start(context.Background(), req)
	<-a.Done()
	<-b.Done()
	assert.NotEqual(t, a.ID, b.ID)
}
