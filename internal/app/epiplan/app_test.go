package epiplan

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epiplan/internal/app/epiplan/episode"
	"epiplan/internal/app/epiplan/export"
	"epiplan/internal/app/epiplan/form"
	"epiplan/internal/app/epiplan/nav"
	"epiplan/internal/app/epiplan/proc"
	"epiplan/internal/app/epiplan/render"
	"epiplan/internal/configs"
)

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type recorder struct {
	success []string
	alerts  []string
	busy    []bool
	confirm bool
	prompts []string
}

func (r *recorder) Success(msg string) { r.success = append(r.success, msg) }
func (r *recorder) Alert(msg string)   { r.alerts = append(r.alerts, msg) }
func (r *recorder) Busy(on bool)       { r.busy = append(r.busy, on) }
func (r *recorder) Confirm(prompt string) bool {
	r.prompts = append(r.prompts, prompt)
	return r.confirm
}

type fakeRaster struct {
	err  error
	docs []render.Document
}

func (f *fakeRaster) Rasterize(_ context.Context, doc render.Document, _ export.Layout, w io.Writer) error {
	f.docs = append(f.docs, doc)
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("%PDF-fake"))
	return err
}

type fakeMailer struct {
	urls []string
}

func (f *fakeMailer) Open(mailto string) error {
	f.urls = append(f.urls, mailto)
	return nil
}

type testApp struct {
	*App
	surface form.MapSurface
	rec     *recorder
	raster  *fakeRaster
	mailer  *fakeMailer
	store   *proc.Memory
	dir     string
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	return newTestAppWithStore(t, &proc.Memory{})
}

func newTestAppWithStore(t *testing.T, store *proc.Memory) testApp {
	t.Helper()
	conf := configs.Default()
	conf.Export.Folder = t.TempDir()
	conf.Autosave.Delay = time.Hour

	ta := testApp{
		surface: form.MapSurface{},
		rec:     &recorder{confirm: true},
		raster:  &fakeRaster{},
		mailer:  &fakeMailer{},
		store:   store,
		dir:     conf.Export.Folder,
	}
	for _, f := range form.Fields() {
		ta.surface[f] = ""
	}

	app, err := NewApplication(conf, Services{
		Store:      store,
		Surface:    ta.surface,
		Notifier:   ta.rec,
		Confirmer:  ta.rec,
		Rasterizer: ta.raster,
		Mailer:     ta.mailer,
	})
	require.NoError(t, err)
	app.SetClock(func() time.Time { return testNow })
	t.Cleanup(app.Close)
	ta.App = app
	return ta
}

func (ta testApp) fill(date, title string) {
	ta.surface[form.Date] = date
	ta.surface[form.Title] = title
}

func TestNewApplicationRequiresServices(t *testing.T) {
	_, err := NewApplication(configs.Default(), Services{})
	assert.Error(t, err)
}

func TestStartLoadsSampleWhenEmpty(t *testing.T) {
	ta := newTestApp(t)
	ta.Start()

	assert.Equal(t, "2026-10-15", ta.surface[form.Date], "sample gets today's date")
	assert.Equal(t, "SLICEIX LIVE - Episode October 15, 2026", ta.surface[form.Title])
	assert.Equal(t, episode.Sample("SLICEIX LIVE").HostNotes, ta.surface[form.HostNotes])
	assert.Equal(t, nav.Planner, ta.Nav().Active())
	assert.Equal(t, 0, ta.Repository().Len(), "sample is never stored")
}

func TestStartKeepsFormBlankWithStoredEpisodes(t *testing.T) {
	store := &proc.Memory{}
	require.NoError(t, store.Set("sliceix-episodes", `[{"date":"2025-01-01","title":"Old"}]`))
	ta := newTestAppWithStore(t, store)
	ta.Start()

	assert.Equal(t, "2026-10-15", ta.surface[form.Date])
	assert.Equal(t, "SLICEIX LIVE - Episode October 15, 2026", ta.surface[form.Title])
	assert.Empty(t, ta.surface[form.HostNotes])
	require.Len(t, ta.History().Cards, 1)
}

func TestSave(t *testing.T) {
	ta := newTestApp(t)

	assert.ErrorIs(t, ta.Save(), ErrMissingRequired)
	assert.Equal(t, []string{"Please fill in the episode date and title."}, ta.rec.alerts)
	assert.Equal(t, 0, ta.Repository().Len())

	ta.fill("2025-07-27", "Weekly")
	require.NoError(t, ta.Save())
	assert.Equal(t, []string{"Episode saved successfully!"}, ta.rec.success)
	assert.Equal(t, 1, ta.Repository().Len())
	require.Len(t, ta.History().Cards, 1)
	assert.Equal(t, "Weekly", ta.Table().Rows[0].Title)

	data, ok, err := ta.store.Get("sliceix-episodes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, data, `"title":"Weekly"`)

	ta.surface[form.Title] = "Weekly, revised"
	require.NoError(t, ta.Save())
	assert.Equal(t, 1, ta.Repository().Len(), "same date replaces")
	ep, _ := ta.Repository().Find("2025-07-27")
	assert.Equal(t, "Weekly, revised", ep.Title)
}

func TestAutoSaveOnlyUpdatesStored(t *testing.T) {
	ta := newTestApp(t)
	ta.fill("2025-07-27", "Draft")
	assert.False(t, ta.AutoSave())
	assert.Equal(t, 0, ta.Repository().Len())

	require.NoError(t, ta.Save())
	ta.surface[form.HostNotes] = "late change"
	assert.True(t, ta.AutoSave())
	ep, _ := ta.Repository().Find("2025-07-27")
	assert.Equal(t, "late change", ep.HostNotes)
	assert.Len(t, ta.rec.success, 1, "autosave is silent")
}

func TestDateChangedDerivesTitle(t *testing.T) {
	ta := newTestApp(t)
	ta.surface[form.Title] = "typed"
	ta.surface[form.Date] = "2025-08-03"
	ta.DateChanged("2025-08-03")
	assert.Equal(t, "SLICEIX LIVE - Episode August 3, 2025", ta.surface[form.Title])
}

func TestClear(t *testing.T) {
	ta := newTestApp(t)
	ta.fill("2025-07-27", "Weekly")
	ta.surface[form.HostNotes] = "notes"

	ta.rec.confirm = false
	assert.False(t, ta.Clear())
	assert.Equal(t, "notes", ta.surface[form.HostNotes])

	ta.rec.confirm = true
	assert.True(t, ta.Clear())
	assert.Empty(t, ta.surface[form.HostNotes])
	assert.Equal(t, "SLICEIX LIVE - Episode October 15, 2026", ta.surface[form.Title])
	assert.Equal(t, "2026-10-15", ta.surface[form.Date])
	assert.Equal(t, "15:00", ta.surface[form.NewsField(1, "timestamp")])
	assert.Len(t, ta.rec.prompts, 2)
}

func TestEditAndDuplicate(t *testing.T) {
	ta := newTestApp(t)
	ta.fill("2025-07-27", "Weekly")
	ta.surface[form.HostNotes] = "notes"
	require.NoError(t, ta.Save())
	ta.Blank()
	ta.ShowPanel("history")

	require.NoError(t, ta.Edit("2025-07-27"))
	assert.Equal(t, nav.Planner, ta.Nav().Active())
	assert.Equal(t, "Weekly", ta.surface[form.Title])

	require.NoError(t, ta.Duplicate("2025-07-27"))
	assert.Equal(t, "2026-10-15", ta.surface[form.Date])
	assert.Equal(t, "SLICEIX LIVE - Episode October 15, 2026", ta.surface[form.Title])
	assert.Equal(t, "notes", ta.surface[form.HostNotes])
	assert.Equal(t, 1, ta.Repository().Len(), "duplicate is not stored")

	assert.ErrorIs(t, ta.Edit("1999-01-01"), ErrNotFound)
	assert.ErrorIs(t, ta.Duplicate("1999-01-01"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	ta := newTestApp(t)
	ta.fill("2025-07-27", "Weekly")
	require.NoError(t, ta.Save())

	ta.rec.confirm = false
	assert.False(t, ta.Delete("2025-07-27"))
	assert.Equal(t, 1, ta.Repository().Len())

	ta.rec.confirm = true
	assert.True(t, ta.Delete("2025-07-27"))
	assert.Equal(t, 0, ta.Repository().Len())
	assert.NotNil(t, ta.History().Empty)
	assert.Equal(t, render.EmptyTable, ta.Table().Placeholder)
	assert.Contains(t, ta.rec.success, "Episode deleted successfully!")
}

func TestShowPanel(t *testing.T) {
	ta := newTestApp(t)
	assert.True(t, ta.ShowPanel("spreadsheet"))
	assert.Equal(t, nav.Spreadsheet, ta.Nav().Active())
	assert.False(t, ta.ShowPanel("settings"))
	assert.Equal(t, nav.Spreadsheet, ta.Nav().Active())
}

func TestExportCSV(t *testing.T) {
	ta := newTestApp(t)
	_, err := ta.ExportCSV(context.Background())
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Equal(t, []string{"No episodes to export. Create some episodes first."}, ta.rec.alerts)

	ta.fill("2025-07-27", "Weekly")
	require.NoError(t, ta.Save())
	path, err := ta.ExportCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ta.dir, "SLICEIX-Episodes-2026-10-15.csv"), path)

	data, err := os.ReadFile(path) // nolint
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], `"2025-07-27","Weekly"`))
	assert.Contains(t, ta.rec.success, "CSV exported successfully!")
}

func TestExportHTML(t *testing.T) {
	ta := newTestApp(t)
	path, err := ta.ExportHTML(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ta.dir, "SLICEIX-Episodes-2026-10-15.html"), path)

	data, err := os.ReadFile(path) // nolint
	require.NoError(t, err)
	assert.Contains(t, string(data), render.EmptyTable)
}

func TestExportPDF(t *testing.T) {
	ta := newTestApp(t)
	_, err := ta.ExportPDF(context.Background())
	assert.ErrorIs(t, err, ErrMissingRequired)
	assert.Equal(t, []string{"Please fill in the episode date and title before exporting."}, ta.rec.alerts)
	assert.Equal(t, []bool{true, false}, ta.rec.busy)

	ta.fill("2025-07-27", "Weekly")
	path, err := ta.ExportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ta.dir, "SLICEIX-Episode-2025-07-27.pdf"), path)
	assert.FileExists(t, path)
	require.Len(t, ta.raster.docs, 1)
	assert.Equal(t, "Weekly", ta.raster.docs[0].Title)
	assert.Equal(t, []bool{true, false, true, false}, ta.rec.busy)
	assert.Contains(t, ta.rec.success, "PDF exported successfully!")
}

func TestExportPDFFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.raster.err = errors.New("boom")
	ta.fill("2025-07-27", "Weekly")

	_, err := ta.ExportPDF(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"Error exporting PDF. Please try again."}, ta.rec.alerts)
	assert.Equal(t, []bool{true, false}, ta.rec.busy, "busy indicator always cleared")
	assert.NoFileExists(t, filepath.Join(ta.dir, "SLICEIX-Episode-2025-07-27.pdf"))
}

func TestStartPDFSingleFlight(t *testing.T) {
	ta := newTestApp(t)
	ta.fill("2025-07-27", "Weekly")

	job, err := ta.StartPDF()
	require.NoError(t, err)
	_, err = ta.StartPDF()
	assert.ErrorIs(t, err, ErrExportInFlight)

	path, err := job.Run(context.Background())
	ta.FinishPDF(context.Background(), job, path, err)
	require.NoError(t, err)

	job, err = ta.StartPDF()
	require.NoError(t, err, "released after finish")
	ta.FinishPDF(context.Background(), job, "", errors.New("cancelled"))
}

func TestShareEmail(t *testing.T) {
	ta := newTestApp(t)
	_, err := ta.ShareEmail()
	assert.ErrorIs(t, err, ErrMissingRequired)
	assert.Equal(t, []string{"Please fill in the episode date and title before sharing."}, ta.rec.alerts)
	assert.Empty(t, ta.mailer.urls)

	ta.fill("2025-07-27", "Weekly")
	mail, err := ta.ShareEmail()
	require.NoError(t, err)
	assert.Equal(t, "SLICEIX LIVE Episode Plan - Weekly", mail.Subject)
	require.Len(t, ta.mailer.urls, 1)
	assert.True(t, strings.HasPrefix(ta.mailer.urls[0], "mailto:?subject=SLICEIX%20LIVE%20Episode%20Plan%20-%20Weekly&body="))
}

func TestTagRecordingUnknownEpisode(t *testing.T) {
	ta := newTestApp(t)
	_, err := ta.TagRecording("2025-07-27", "missing.mp3")
	assert.ErrorIs(t, err, ErrNotFound)
}
