package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/jaywantadh/DuoView/config"
	"github.com/jaywantadh/DuoView/internal/app"
	"github.com/jaywantadh/DuoView/internal/document"
	"github.com/jaywantadh/DuoView/internal/export"
	"github.com/jaywantadh/DuoView/internal/render"
	"github.com/jaywantadh/DuoView/pkg/env"
	"github.com/jaywantadh/DuoView/pkg/logging"
)

func main() {
	env.LoadEnv()

	cliApp := &cli.App{
		Name:  "duoview",
		Usage: "Compare two versions of a PDF side by side",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: ".", Usage: "directory holding config.yaml"},
			&cli.BoolFlag{Name: "debug", Usage: "text logs at debug level", EnvVars: []string{"DUOVIEW_DEBUG"}},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			logging.InitLogger(c.Bool("debug") || cfg.Log.Debug)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Aliases:   []string{"i"},
				Usage:     "Print page count and page size of PDF files",
				ArgsUsage: "FILE...",
				Action:    inspect,
			},
			{
				Name:      "compare",
				Aliases:   []string{"c"},
				Usage:     "Render one page of both documents side by side into a PNG snapshot",
				ArgsUsage: "LEFT RIGHT",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Value: 1, Usage: "1-based page to show on the left; the right side follows"},
					&cli.IntFlag{Name: "width", Value: 500, Usage: "width of each viewport"},
					&cli.IntFlag{Name: "height", Value: 707, Usage: "height of each viewport"},
					&cli.StringFlag{Name: "out", Value: "./snapshots", Usage: "snapshot directory"},
					&cli.BoolFlag{Name: "unlinked", Usage: "do not mirror the page to the right side"},
				},
				Action: compare,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		if logging.Log == nil {
			logging.InitLogger(false)
		}
		logging.Log.Fatal(err)
	}
}

func inspect(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("inspect needs at least one file", 2)
	}
	for _, path := range c.Args().Slice() {
		info, err := document.Probe(path)
		if err != nil {
			logging.Log.WithError(err).WithField("path", path).Warn("probe failed")
			fmt.Printf("%s: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: %d pages, %.0fx%.0f pt\n", path, info.PageCount, info.Width, info.Height)
	}
	return nil
}

func compare(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("compare needs LEFT and RIGHT", 2)
	}
	log := logging.Component("cli")

	cmp, err := app.New(config.Config, log)
	if err != nil {
		return err
	}
	defer cmp.Pair.Close()
	cmp.Pair.SetLinked(!c.Bool("unlinked"))

	size := render.Size{W: c.Int("width"), H: c.Int("height")}
	left, right := cmp.Pair.Left(), cmp.Pair.Right()
	left.Resize(size)
	right.Resize(size)

	if err := left.Load(c.Args().Get(0)); err != nil {
		return err
	}
	if err := right.Load(c.Args().Get(1)); err != nil {
		return err
	}
	if err := left.CommitPageText(fmt.Sprint(c.Int("page"))); err != nil {
		return err
	}

	store, err := export.NewStore(c.String("out"))
	if err != nil {
		return err
	}
	id, err := store.Put(render.Compose(left.Frame(), right.Frame(), size))
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"left_page":  left.Page() + 1,
		"right_page": right.Page() + 1,
		"snapshot":   id,
	}).Info("snapshot written")
	fmt.Println(store.Path(id))
	return nil
}
