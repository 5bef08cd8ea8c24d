package epiplan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	log "github.com/go-pkgz/lgr"

	"epiplan/internal/app/epiplan/episode"
	"epiplan/internal/app/epiplan/export"
	"epiplan/internal/app/epiplan/form"
	"epiplan/internal/app/epiplan/nav"
	"epiplan/internal/app/epiplan/notify"
	"epiplan/internal/app/epiplan/proc"
	"epiplan/internal/app/epiplan/render"
	"epiplan/internal/configs"
)

// user facing errors
var (
	ErrMissingRequired = errors.New("episode date and title are required")
	ErrNothingToExport = errors.New("no episodes to export")
	ErrNotFound        = errors.New("episode not found")
	ErrExportInFlight  = export.ErrInFlight
)

// user facing messages
const (
	msgMissingRequired = "Please fill in the episode date and title."
	msgMissingExport   = "Please fill in the episode date and title before exporting."
	msgMissingShare    = "Please fill in the episode date and title before sharing."
	msgNothingToExport = "No episodes to export. Create some episodes first."
	msgPDFFailed       = "Error exporting PDF. Please try again."
	msgExportBusy      = "An export is already running, please wait."
	msgSaved           = "Episode saved successfully!"
	msgDeleted         = "Episode deleted successfully!"
	msgCSVExported     = "CSV exported successfully!"
	msgPDFExported     = "PDF exported successfully!"
	msgHTMLExported    = "Spreadsheet exported successfully!"
)

// Services are the collaborators of App. Cloud is optional.
type Services struct {
	Store      proc.Store
	Surface    form.Surface
	Notifier   notify.Notifier
	Confirmer  notify.Confirmer
	Rasterizer export.Rasterizer
	Mailer     export.Mailer
	Cloud      *proc.S3Store
}

// App is the planner: one repository, one open form and the views derived from them
type App struct {
	config   *configs.Conf
	show     render.Show
	repo     *proc.Repository
	form     *form.Binding
	nav      *nav.Controller
	notifier notify.Notifier
	confirm  notify.Confirmer
	raster   export.Rasterizer
	mailer   export.Mailer
	cloud    *proc.S3Store
	download export.Download
	guard    *export.Guard
	now      func() time.Time

	history render.HistoryView
	table   render.TableView
}

// NewApplication creates planner over services, the repository is loaded from store
func NewApplication(conf *configs.Conf, s Services) (*App, error) {
	if s.Store == nil || s.Surface == nil {
		return nil, errors.New("store and form surface are required")
	}
	if s.Notifier == nil || s.Confirmer == nil {
		return nil, errors.New("notifier and confirmer are required")
	}
	if s.Rasterizer == nil {
		s.Rasterizer = export.FPDF{}
	}
	if s.Mailer == nil {
		s.Mailer = export.SystemMailer{}
	}

	app := &App{
		config: conf,
		show: render.Show{
			Name:            conf.Show.Name,
			Tagline:         conf.Show.Tagline,
			Opening:         conf.Show.Opening,
			CommunityPrompt: conf.Show.CommunityPrompt,
			Signature:       conf.Show.Signature,
		},
		notifier: s.Notifier,
		confirm:  s.Confirmer,
		raster:   s.Rasterizer,
		mailer:   s.Mailer,
		cloud:    s.Cloud,
		download: export.Download{Dir: conf.Export.Folder},
		guard:    export.NewGuard(conf.Export.Folder),
		now:      time.Now,
	}

	app.repo = proc.NewRepository(s.Store, conf.Store.Key, conf.Show.Name)
	app.form = form.NewBinding(s.Surface, app.repo, conf.Show.Name, defaultTimestamps(conf), conf.Autosave.Delay)

	app.nav = nav.NewController()
	app.nav.OnEnter(nav.History, app.refreshHistory)
	app.nav.OnEnter(nav.Spreadsheet, app.refreshTable)
	app.RefreshViews()

	log.Printf("[DEBUG] planner ready, %d episodes in %s", app.repo.Len(), conf.Store.Key)
	return app, nil
}

// SetClock replaces time source of the app, repository and form
func (a *App) SetClock(now func() time.Time) {
	a.now = now
	a.repo.Now = now
	a.form.Now = now
}

// Start prepares the interactive form: sample content when nothing is stored yet,
// today's date and the planner panel
func (a *App) Start() {
	if a.repo.Len() == 0 {
		a.LoadSample()
	}
	a.form.SetToday()
	a.RefreshViews()
	a.nav.Show(nav.Planner)
}

// Form gives access to the form binding
func (a *App) Form() *form.Binding {
	return a.form
}

// Repository of episodes
func (a *App) Repository() *proc.Repository {
	return a.repo
}

// Nav is the panel controller
func (a *App) Nav() *nav.Controller {
	return a.nav
}

// Config the app was made with
func (a *App) Config() *configs.Conf {
	return a.config
}

// Show branding
func (a *App) Show() render.Show {
	return a.show
}

// Save stores current form as episode, replacing the one with the same date
func (a *App) Save() error {
	ep := a.form.Read()
	if !ep.HasRequired() {
		a.notifier.Alert(msgMissingRequired)
		return ErrMissingRequired
	}

	if a.repo.Upsert(ep) {
		log.Printf("[INFO] updated episode %s", ep.Date)
	} else {
		log.Printf("[INFO] created episode %s", ep.Date)
	}
	a.notifier.Success(msgSaved)
	a.RefreshViews()
	return nil
}

// Edited restarts autosave timer, call on every edit of a bound field
func (a *App) Edited() {
	a.form.Touch()
}

// AutoSave silently updates stored episode from the form, never creates one
func (a *App) AutoSave() bool {
	if !a.form.AutoSave() {
		return false
	}
	a.RefreshViews()
	return true
}

// DateChanged derives title for the new form date
func (a *App) DateChanged(date string) {
	a.form.DateChanged(date)
}

// Clear resets the form after confirmation
func (a *App) Clear() bool {
	if !a.confirm.Confirm(notify.PromptClear) {
		return false
	}
	a.form.Reset()
	return true
}

// Blank resets the form without asking, for a form nobody has typed into yet
func (a *App) Blank() {
	a.form.Reset()
}

// LoadSample fills the form with the demo episode, nothing is stored
func (a *App) LoadSample() {
	a.form.Write(episode.Sample(a.show.Name))
}

// Edit loads stored episode into the form and switches to planner
func (a *App) Edit(date string) error {
	ep, ok := a.repo.Find(date)
	if !ok {
		return fmt.Errorf("edit %s: %w", date, ErrNotFound)
	}
	a.form.Write(ep)
	a.nav.Show(nav.Planner)
	return nil
}

// Duplicate loads a copy of stored episode dated today into the form. The copy is
// stored only by a later Save.
func (a *App) Duplicate(date string) error {
	dup, ok := a.repo.Duplicate(date)
	if !ok {
		return fmt.Errorf("duplicate %s: %w", date, ErrNotFound)
	}
	a.form.Write(dup)
	a.nav.Show(nav.Planner)
	return nil
}

// Delete removes stored episode after confirmation, returns false if declined
func (a *App) Delete(date string) bool {
	if !a.confirm.Confirm(notify.PromptDelete) {
		return false
	}
	if !a.repo.Delete(date) {
		log.Printf("[INFO] nothing to delete for %s", date)
	}
	a.RefreshViews()
	a.notifier.Success(msgDeleted)
	return true
}

// ShowPanel switches panel by name, unknown names are ignored
func (a *App) ShowPanel(name string) bool {
	p, ok := nav.ParsePanel(name)
	if !ok {
		return false
	}
	return a.nav.Show(p)
}

// RefreshViews re-renders history and spreadsheet from the repository
func (a *App) RefreshViews() {
	a.refreshHistory()
	a.refreshTable()
}

// History view as of the last refresh
func (a *App) History() render.HistoryView {
	return a.history
}

// Table view as of the last refresh
func (a *App) Table() render.TableView {
	return a.table
}

func (a *App) refreshHistory() {
	a.history = render.History(a.repo.Sorted())
}

func (a *App) refreshTable() {
	a.table = render.Table(a.repo.Sorted())
}

// ExportCSV saves every stored episode, in insertion order, as csv file
func (a *App) ExportCSV(ctx context.Context) (string, error) {
	if a.repo.Len() == 0 {
		a.notifier.Alert(msgNothingToExport)
		return "", ErrNothingToExport
	}

	name := fmt.Sprintf("%s-Episodes-%s.csv", a.config.Show.FilePrefix, episode.Today(a.now()))
	path, err := a.download.Save(name, []byte(render.CSV(a.repo.All())))
	if err != nil {
		return "", err
	}
	a.upload(ctx, path)
	a.notifier.Success(msgCSVExported)
	return path, nil
}

// ExportHTML saves the spreadsheet view as html page
func (a *App) ExportHTML(ctx context.Context) (string, error) {
	a.refreshTable()
	page, err := a.table.Page(a.show.Name + " Episodes")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-Episodes-%s.html", a.config.Show.FilePrefix, episode.Today(a.now()))
	path, err := a.download.Save(name, []byte(page))
	if err != nil {
		return "", err
	}
	a.upload(ctx, path)
	a.notifier.Success(msgHTMLExported)
	return path, nil
}

// PDFJob is a started pdf export. Run may be called off the event loop,
// Start and Finish must not.
type PDFJob struct {
	Name     string
	Document render.Document

	layout  export.Layout
	raster  export.Rasterizer
	sink    export.Download
	release func()
}

// Run rasterizes the document into the export folder
func (j *PDFJob) Run(ctx context.Context) (string, error) {
	return j.sink.Write(j.Name, func(w io.Writer) error {
		return j.raster.Rasterize(ctx, j.Document, j.layout, w)
	})
}

// StartPDF validates the form, shows busy indicator and prepares the document.
// Only one pdf export may be in flight.
func (a *App) StartPDF() (*PDFJob, error) {
	release, err := a.guard.Acquire()
	if err != nil {
		if errors.Is(err, export.ErrInFlight) {
			a.notifier.Alert(msgExportBusy)
		}
		return nil, err
	}

	a.notifier.Busy(true)
	ep := a.form.Read()
	if !ep.HasRequired() {
		release()
		a.notifier.Busy(false)
		a.notifier.Alert(msgMissingExport)
		return nil, ErrMissingRequired
	}

	pdf := a.config.Export.PDF
	return &PDFJob{
		Name:     fmt.Sprintf("%s-Episode-%s.pdf", a.config.Show.FilePrefix, ep.Date),
		Document: render.PDF(ep, a.show),
		layout:   export.Layout{Margin: pdf.Margin, Unit: pdf.Unit, Page: pdf.Page, Orientation: pdf.Orientation},
		raster:   a.raster,
		sink:     a.download,
		release:  release,
	}, nil
}

// FinishPDF clears busy indicator and reports result of job run
func (a *App) FinishPDF(ctx context.Context, job *PDFJob, path string, err error) {
	job.release()
	a.notifier.Busy(false)
	if err != nil {
		log.Printf("[ERROR] pdf export of %s failed, %v", job.Name, err)
		a.notifier.Alert(msgPDFFailed)
		return
	}
	a.upload(ctx, path)
	a.notifier.Success(msgPDFExported)
}

// ExportPDF runs whole pdf export of the current form
func (a *App) ExportPDF(ctx context.Context) (string, error) {
	job, err := a.StartPDF()
	if err != nil {
		return "", err
	}
	path, err := job.Run(ctx)
	a.FinishPDF(ctx, job, path, err)
	return path, err
}

// ShareEmail opens mail composer with the plan of the current form
func (a *App) ShareEmail() (render.Email, error) {
	ep := a.form.Read()
	if !ep.HasRequired() {
		a.notifier.Alert(msgMissingShare)
		return render.Email{}, ErrMissingRequired
	}

	mail := render.EmailPlan(ep, a.show)
	if err := a.mailer.Open(export.MailtoURL(mail.Subject, mail.Body)); err != nil {
		return mail, fmt.Errorf("open mail composer: %w", err)
	}
	return mail, nil
}

// TagRecording writes the timeline of stored episode as chapters into mp3 file.
// Empty path means the recording is looked up by date in the recordings folder.
func (a *App) TagRecording(date, mp3Path string) ([]export.Chapter, error) {
	ep, ok := a.repo.Find(date)
	if !ok {
		return nil, fmt.Errorf("chapters for %s: %w", date, ErrNotFound)
	}
	if mp3Path == "" {
		path, err := proc.Recordings{Dir: a.config.Export.Recordings}.Find(date)
		if err != nil {
			return nil, err
		}
		mp3Path = path
	}
	return export.TagRecording(mp3Path, render.PDF(ep, a.show))
}

// Close stops pending autosave
func (a *App) Close() {
	a.form.Stop()
}

func (a *App) upload(ctx context.Context, path string) {
	if a.cloud == nil {
		return
	}
	location, err := a.cloud.UploadExport(ctx, path)
	if err != nil {
		log.Printf("[WARN] can't upload %s, %v", path, err)
		return
	}
	log.Printf("[INFO] uploaded %s to %s", path, location)
}

func defaultTimestamps(conf *configs.Conf) episode.Timestamps {
	ts := conf.Defaults.Timestamps
	res := episode.Timestamps{TechTalk: ts.TechTalk, Tutorial: ts.Tutorial, Community: ts.Community}
	copy(res.News[:], ts.News)
	return res
}
