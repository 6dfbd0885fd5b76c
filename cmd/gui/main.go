package main

import (
	"errors"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/jaywantadh/DuoView/config"
	"github.com/jaywantadh/DuoView/internal/app"
	"github.com/jaywantadh/DuoView/internal/session"
	"github.com/jaywantadh/DuoView/pkg/env"
	"github.com/jaywantadh/DuoView/pkg/logging"
)

func main() {
	env.LoadEnv()

	cfg, err := config.LoadConfig(env.GetEnv("DUOVIEW_CONFIG_DIR", "."))
	if err != nil {
		logrus.Fatalf("unable to load config: %v", err)
	}
	logging.InitLogger(cfg.Log.Debug || env.GetBool("DUOVIEW_DEBUG", false))
	log := logging.Component("gui")

	cmp, err := app.New(cfg, log)
	if err != nil {
		log.Fatal(err)
	}
	defer cmp.Pair.Close()

	store, err := session.Open(cfg.Session.Path)
	if err != nil {
		log.WithError(err).Warn("session store unavailable")
		store = nil
	} else {
		defer store.Close()
	}

	a := fyneapp.NewWithID("io.github.jaywantadh.duoview")
	w := a.NewWindow("DuoView")
	ui := newUI(cmp, w, cfg, log)
	w.SetContent(ui.build())
	w.CenterOnScreen()

	args := os.Args[1:]
	switch {
	case len(args) >= 2:
		if err := cmp.LoadStartup(args[0], args[1]); err != nil {
			log.WithError(err).Error("startup load failed")
		}
	case cfg.Session.Restore && store != nil:
		restore(cmp, store, log)
	}

	w.SetOnClosed(func() {
		if store == nil {
			return
		}
		if err := store.Save(cmp.Snapshot()); err != nil {
			log.WithError(err).Warn("saving session")
		}
	})
	w.ShowAndRun()
}

func restore(cmp *app.Compare, store *session.Store, log *logrus.Entry) {
	snap, err := store.Load()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.WithError(err).Warn("loading session")
		}
		return
	}
	if err := cmp.Restore(snap); err != nil {
		log.WithError(err).Warn("restoring session")
	}
}
