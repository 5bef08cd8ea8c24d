package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"epiplan/internal/app/epiplan"
	"epiplan/internal/app/epiplan/export"
	"epiplan/internal/app/epiplan/form"
	"epiplan/internal/app/epiplan/notify"
	"epiplan/internal/app/epiplan/proc"
	"epiplan/internal/configs"
)

var opts struct {
	Conf string `short:"c" long:"conf" env:"EPIPLAN_CONF" default:"epiplan.yml" description:"config file (yml)"`
	DB   string `short:"d" long:"db" env:"EPIPLAN_DB" description:"store file, overrides store.path of config"`
	Log  string `long:"log" env:"EPIPLAN_LOG" default:"var/epiplan.log" description:"log file of the interactive planner"`
	Yes  bool   `short:"y" long:"yes" description:"answer yes to confirmations"`
	Dbg  bool   `long:"dbg" env:"DEBUG" description:"show debug info"`

	TUI       tuiCmd       `command:"tui" description:"interactive planner (default)"`
	List      listCmd      `command:"list" description:"show episode history"`
	Table     tableCmd     `command:"table" description:"show episodes as spreadsheet"`
	Save      saveCmd      `command:"save" description:"save episode from field values"`
	Delete    deleteCmd    `command:"delete" description:"delete episode by date"`
	Duplicate duplicateCmd `command:"duplicate" description:"copy episode to today's date"`
	Export    exportCmd    `command:"export" description:"export episodes as csv, html or one episode as pdf"`
	Email     emailCmd     `command:"email" description:"share episode plan by e-mail"`
	Chapters  chaptersCmd  `command:"chapters" description:"write episode timeline as chapters into mp3 recording"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ran := false
	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	p.SubcommandsOptional = true
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		ran = true
		if cmd == nil {
			cmd = &opts.TUI
		}
		return execute(ctx, cmd, args)
	}

	_, err := p.Parse()
	if err == nil && !ran {
		err = execute(ctx, &opts.TUI, nil)
	}
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// ctxCommander is a command that needs the signal context
type ctxCommander interface {
	run(ctx context.Context, args []string) error
}

func execute(ctx context.Context, cmd flags.Commander, args []string) error {
	logOut := io.Writer(os.Stderr)
	if _, interactive := cmd.(*tuiCmd); interactive {
		f, err := openLogFile(opts.Log)
		if err != nil {
			return err
		}
		defer f.Close() // nolint
		logOut = f
	}
	setupLog(opts.Dbg, logOut)

	if c, ok := cmd.(ctxCommander); ok {
		return c.run(ctx, args)
	}
	return cmd.Execute(args)
}

func setupLog(dbg bool, out io.Writer) {
	logOpts := []log.Option{log.Msec, log.LevelBraces, log.Out(out), log.Err(out)}
	if dbg {
		logOpts = append(logOpts, log.Debug, log.CallerFile, log.CallerFunc)
	}
	log.SetupStdLogger(logOpts...)
	log.Setup(logOpts...)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("make log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // nolint
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

func checkFileExists(filepath string) bool {
	if _, err := os.Stat(filepath); errors.Is(err, os.ErrNotExist) {
		return false
	}
	return true
}

// loadConfig reads config file, falls back to configs/epiplan.yml and then to defaults
func loadConfig() (*configs.Conf, error) {
	configFile := opts.Conf
	if !checkFileExists(configFile) {
		configFile = "configs/epiplan.yml"
		if !checkFileExists(configFile) {
			log.Printf("[INFO] no config file, using defaults")
			return configs.Default(), nil
		}
	}

	conf, err := configs.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("can't load config %s: %w", configFile, err)
	}
	log.Printf("[DEBUG] loaded config %s", configFile)
	return conf, nil
}

// frontend is what the app shows its feedback on
type frontend struct {
	surface form.Surface
	notify  notify.Notifier
	confirm notify.Confirmer
	mailer  export.Mailer
}

// openApp makes planner app over configured store, call close when done
func openApp(fe frontend) (app *epiplan.App, closeFn func(), err error) {
	conf, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if opts.DB != "" {
		conf.Store.Path = opts.DB
	}

	store, closeStore, err := epiplan.NewStore(conf.Store.Driver, conf.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("can't open %s store: %w", conf.Store.Driver, err)
	}

	var cloud *proc.S3Store
	if conf.CloudStorage.Enabled {
		client, err := epiplan.NewS3Client(
			conf.CloudStorage.EndPointURL,
			conf.CloudStorage.Secrets.Key,
			conf.CloudStorage.Secrets.Secret,
			conf.CloudStorage.UseSSL)
		if err != nil {
			_ = closeStore()
			return nil, nil, err
		}
		cloud = &proc.S3Store{Client: client, Location: conf.CloudStorage.Region, Bucket: conf.CloudStorage.Bucket}
	}

	app, err = epiplan.NewApplication(conf, epiplan.Services{
		Store:     store,
		Surface:   fe.surface,
		Notifier:  fe.notify,
		Confirmer: fe.confirm,
		Mailer:    fe.mailer,
		Cloud:     cloud,
	})
	if err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("can't create app: %w", err)
	}

	return app, func() {
		app.Close()
		if err := closeStore(); err != nil {
			log.Printf("[WARN] can't close store, %v", err)
		}
	}, nil
}

// openCLIApp makes app over an in-memory form with terminal feedback, nil mailer
// opens the system mail client
func openCLIApp(mailer export.Mailer) (*epiplan.App, form.MapSurface, func(), error) {
	surface := form.MapSurface{}
	for _, f := range form.Fields() {
		surface[f] = ""
	}
	term := notify.NewTerminal(opts.Yes)
	app, closeFn, err := openApp(frontend{surface: surface, notify: term, confirm: term, mailer: mailer})
	if err != nil {
		return nil, nil, nil, err
	}
	return app, surface, closeFn, nil
}
