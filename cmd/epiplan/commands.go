package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"epiplan/internal/app/epiplan/export"
	"epiplan/internal/app/epiplan/form"
	"epiplan/internal/app/epiplan/tui"
)

type dateArg struct {
	Date string `positional-arg-name:"date" required:"yes" description:"episode date, YYYY-MM-DD"`
}

type tuiCmd struct{}

// Execute runs the planner without signal handling
func (c *tuiCmd) Execute([]string) error {
	return c.run(context.Background(), nil)
}

func (c *tuiCmd) run(ctx context.Context, _ []string) error {
	w := tui.NewWidgets()
	app, closeFn, err := openApp(frontend{surface: w.Fields, notify: w.Feedback, confirm: w.Answer})
	if err != nil {
		return err
	}
	defer closeFn()
	return tui.Run(ctx, app, w, app.Config().Toast.Duration)
}

type listCmd struct{}

func (c *listCmd) Execute([]string) error {
	app, _, closeFn, err := openCLIApp(nil)
	if err != nil {
		return err
	}
	defer closeFn()
	fmt.Print(app.History().Text())
	return nil
}

type tableCmd struct {
	HTML bool `long:"html" description:"print html table body instead of text"`
}

func (c *tableCmd) Execute([]string) error {
	app, _, closeFn, err := openCLIApp(nil)
	if err != nil {
		return err
	}
	defer closeFn()

	if !c.HTML {
		fmt.Println(app.Table().Text())
		return nil
	}
	body, err := app.Table().HTML()
	if err != nil {
		return err
	}
	fmt.Println(body)
	return nil
}

type saveCmd struct {
	Set  []string `short:"s" long:"set" description:"field value as field=value, repeatable"`
	Edit string   `short:"e" long:"edit" description:"start from stored episode of this date"`
}

func (c *saveCmd) Execute([]string) error {
	app, surface, closeFn, err := openCLIApp(nil)
	if err != nil {
		return err
	}
	defer closeFn()

	if c.Edit != "" {
		if err := app.Edit(c.Edit); err != nil {
			return err
		}
	} else {
		app.Blank()
	}

	if err := applyAssignments(surface, c.Set); err != nil {
		return err
	}
	if _, titled := assigned(c.Set, form.Title); !titled {
		if date, dated := assigned(c.Set, form.Date); dated {
			app.DateChanged(date)
		}
	}
	return app.Save()
}

type deleteCmd struct {
	Args dateArg `positional-args:"yes" required:"yes"`
}

func (c *deleteCmd) Execute([]string) error {
	app, _, closeFn, err := openCLIApp(nil)
	if err != nil {
		return err
	}
	defer closeFn()

	if !app.Delete(c.Args.Date) {
		fmt.Println("cancelled")
	}
	return nil
}

type duplicateCmd struct {
	Save bool    `long:"save" description:"store the copy"`
	Args dateArg `positional-args:"yes" required:"yes"`
}

func (c *duplicateCmd) Execute([]string) error {
	app, _, closeFn, err := openCLIApp(nil)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := app.Duplicate(c.Args.Date); err != nil {
		return err
	}
	if c.Save {
		return app.Save()
	}

	data, err := json.MarshalIndent(app.Form().Read(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

type exportCmd struct {
	Format string `short:"f" long:"format" choice:"csv" choice:"pdf" choice:"html" default:"csv" description:"export format"`
	Date   string `long:"date" description:"episode date, required for pdf"`
}

func (c *exportCmd) Execute([]string) error {
	return c.run(context.Background(), nil)
}

func (c *exportCmd) run(ctx context.Context, _ []string) error {
	app, _, closeFn, err := openCLIApp(nil)
	if err != nil {
		return err
	}
	defer closeFn()

	var path string
	switch c.Format {
	case "pdf":
		if c.Date == "" {
			return fmt.Errorf("--date is required for pdf export")
		}
		if err = app.Edit(c.Date); err != nil {
			return err
		}
		path, err = app.ExportPDF(ctx)
	case "html":
		path, err = app.ExportHTML(ctx)
	default:
		path, err = app.ExportCSV(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

type emailCmd struct {
	Print bool    `short:"p" long:"print" description:"print mailto link instead of opening mail client"`
	Args  dateArg `positional-args:"yes" required:"yes"`
}

// printMailer writes mailto link to stdout
type printMailer struct{}

func (printMailer) Open(mailto string) error {
	_, err := fmt.Println(mailto)
	return err
}

func (c *emailCmd) Execute([]string) error {
	var mailer export.Mailer
	if c.Print {
		mailer = printMailer{}
	}
	app, _, closeFn, err := openCLIApp(mailer)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := app.Edit(c.Args.Date); err != nil {
		return err
	}
	mail, err := app.ShareEmail()
	if err != nil {
		return err
	}
	if c.Print {
		fmt.Printf("\nSubject: %s\n\n%s\n", mail.Subject, mail.Body)
	}
	return nil
}

type chaptersCmd struct {
	MP3  string  `short:"m" long:"mp3" description:"recorded episode mp3 file, found by date in recordings folder if not set"`
	Args dateArg `positional-args:"yes" required:"yes"`
}

func (c *chaptersCmd) Execute([]string) error {
	app, _, closeFn, err := openCLIApp(nil)
	if err != nil {
		return err
	}
	defer closeFn()

	chapters, err := app.TagRecording(c.Args.Date, c.MP3)
	if err != nil {
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Start", "End", "Title"})
	for _, ch := range chapters {
		tw.AppendRow(table.Row{ch.ID, clock(ch.Start), clock(ch.End), ch.Title})
	}
	tw.Render()
	return nil
}

func applyAssignments(surface form.MapSurface, sets []string) error {
	for _, s := range sets {
		f, v, err := form.ParseAssignment(s)
		if err != nil {
			return err
		}
		surface.SetValue(f, v)
	}
	return nil
}

// assigned returns the last value given to field f
func assigned(sets []string, f form.Field) (string, bool) {
	value, found := "", false
	for _, s := range sets {
		if field, v, err := form.ParseAssignment(s); err == nil && field == f {
			value, found = v, true
		}
	}
	return value, found
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return strings.TrimPrefix(fmt.Sprintf("%02d:%02d", m, s), "0")
}
