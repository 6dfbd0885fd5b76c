package main

import (
	"image"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/jaywantadh/DuoView/config"
	"github.com/jaywantadh/DuoView/internal/app"
	"github.com/jaywantadh/DuoView/internal/document"
	"github.com/jaywantadh/DuoView/internal/input"
	"github.com/jaywantadh/DuoView/internal/render"
	"github.com/jaywantadh/DuoView/internal/viewer"
)

var keyNames = map[fyne.KeyName]input.Key{
	fyne.KeyUp:       input.KeyUp,
	fyne.KeyDown:     input.KeyDown,
	fyne.KeyPageUp:   input.KeyPageUp,
	fyne.KeyPageDown: input.KeyPageDown,
	fyne.KeyHome:     input.KeyHome,
	fyne.KeyEnd:      input.KeyEnd,
}

type ui struct {
	cmp    *app.Compare
	win    fyne.Window
	cfg    *config.AppConfig
	log    *logrus.Entry
	views  [2]*pageView
	active render.Side

	pageEntry *widget.Entry
	total     *widget.Label
}

func newUI(cmp *app.Compare, w fyne.Window, cfg *config.AppConfig, log *logrus.Entry) *ui {
	return &ui{cmp: cmp, win: w, cfg: cfg, log: log}
}

func (u *ui) build() fyne.CanvasObject {
	minSize := fyne.NewSize(float32(u.cfg.Window.MinWidth)/2, float32(u.cfg.Window.MinHeight()-35))
	for _, side := range []render.Side{render.Left, render.Right} {
		v := newPageView(u, side, minSize)
		u.views[side] = v
		u.cmp.Pair.Viewer(side).Subscribe(v.update)
	}

	// page field and total only for the left (original) document
	u.pageEntry = widget.NewEntry()
	u.pageEntry.OnSubmitted = u.submitPage
	u.total = widget.NewLabel("--")
	u.cmp.Pair.Left().Subscribe(func(s viewer.State) {
		u.pageEntry.SetText(strconv.Itoa(s.DisplayPage()))
		u.total.SetText(strconv.Itoa(s.PageCount))
	})

	linked := widget.NewCheck("Sync pages", u.cmp.Pair.SetLinked)
	linked.SetChecked(u.cmp.Pair.Linked())

	leftBtn := widget.NewButton("Load original", func() { u.openDialog(render.Left) })
	rightBtn := widget.NewButton("Load revision", func() { u.openDialog(render.Right) })

	top := container.NewGridWithColumns(3,
		container.NewHBox(layout.NewSpacer(), leftBtn),
		container.NewCenter(container.NewHBox(u.pageEntry, widget.NewLabel("/"), u.total, linked)),
		container.NewHBox(rightBtn, layout.NewSpacer()),
	)

	u.win.SetOnDropped(u.dropped)
	u.win.Canvas().SetOnTypedKey(u.typedKey)
	return container.NewBorder(top, nil, nil, nil, container.NewGridWithColumns(2, u.views[render.Left], u.views[render.Right]))
}

func (u *ui) handle(side render.Side, ev input.Event) {
	if err := u.cmp.Handle(side, ev); err != nil {
		u.log.WithError(err).Error("navigation failed")
	}
}

func (u *ui) typedKey(ev *fyne.KeyEvent) {
	k, ok := keyNames[ev.Name]
	if !ok {
		return
	}
	u.handle(u.active, input.Event{Kind: input.KeyEvent, Key: k})
}

func (u *ui) submitPage(text string) {
	left := u.cmp.Pair.Left()
	if err := left.CommitPageText(text); err != nil {
		u.log.WithError(err).Error("navigation failed")
	}
	if left.Loaded() {
		u.pageEntry.SetText(strconv.Itoa(left.Page() + 1))
	}
}

func (u *ui) load(side render.Side, path string) {
	if err := u.cmp.Pair.Viewer(side).Load(path); err != nil {
		dialog.ShowError(err, u.win)
		return
	}
	u.active = side
}

func (u *ui) openDialog(side render.Side) {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.win)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		u.load(side, path)
	}, u.win)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".pdf", ".PDF"}))
	fd.Show()
}

// dropped loads the first dropped PDF into the viewport under the pointer.
func (u *ui) dropped(pos fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	path := document.CleanDropPath(uris[0].Path())
	if !document.IsPDFPath(path) {
		u.log.WithField("path", path).Debug("ignoring drop")
		return
	}
	side := render.Left
	if pos.X > u.win.Canvas().Size().Width/2 {
		side = render.Right
	}
	u.load(side, path)
}

// pageView draws one viewer's frame on a gray canvas.
type pageView struct {
	widget.BaseWidget
	ui      *ui
	side    render.Side
	minSize fyne.Size
	frame   render.Frame
	scale   float32 // device pixels per fyne unit
}

func newPageView(u *ui, side render.Side, minSize fyne.Size) *pageView {
	p := &pageView{ui: u, side: side, minSize: minSize, scale: 1}
	p.ExtendBaseWidget(p)
	return p
}

func (p *pageView) update(s viewer.State) {
	p.frame = s.Frame
	p.Refresh()
}

// Resize hands the viewer the size in device pixels so pages are
// rasterized at screen density.
func (p *pageView) Resize(size fyne.Size) {
	p.BaseWidget.Resize(size)
	p.scale = canvasScale(p)
	p.ui.cmp.Pair.Viewer(p.side).Resize(pixelSize(size, p.scale))
}

func (p *pageView) Tapped(*fyne.PointEvent) { p.ui.active = p.side }

func (p *pageView) Scrolled(ev *fyne.ScrollEvent) {
	p.ui.active = p.side
	p.ui.handle(p.side, input.Event{Kind: input.WheelEvent, WheelDelta: float64(ev.Scrolled.DY)})
}

func (p *pageView) MinSize() fyne.Size { return p.minSize }

func (p *pageView) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.Gray{Y: 128})
	img := &canvas.Image{FillMode: canvas.ImageFillStretch, ScaleMode: canvas.ImageScaleSmooth}
	return &pageRenderer{view: p, bg: bg, img: img, objects: []fyne.CanvasObject{bg, img}}
}

type pageRenderer struct {
	view    *pageView
	bg      *canvas.Rectangle
	img     *canvas.Image
	objects []fyne.CanvasObject
}

func (r *pageRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	f := r.view.frame
	if f.Image == nil {
		r.img.Hide()
		return
	}
	pos, sz := placement(f, r.view.scale)
	r.img.Move(pos)
	r.img.Resize(sz)
	r.img.Show()
}

// Refresh swaps in the current frame. The image is refreshed on its own:
// refreshing the parent widget does not invalidate cached image textures.
func (r *pageRenderer) Refresh() {
	f := r.view.frame
	changed := f.Image != nil && r.img.Image != image.Image(f.Image)
	if changed {
		r.img.Image = f.Image
	}
	r.Layout(r.view.Size())
	if changed {
		r.img.Refresh()
	}
	canvas.Refresh(r.view)
}

func (r *pageRenderer) MinSize() fyne.Size           { return r.view.MinSize() }
func (r *pageRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *pageRenderer) Destroy()                     {}

// canvasScale is the pixel density of the canvas showing obj, 1 until it
// is shown.
func canvasScale(obj fyne.CanvasObject) float32 {
	a := fyne.CurrentApp()
	if a == nil {
		return 1
	}
	if c := a.Driver().CanvasForObject(obj); c != nil && c.Scale() > 0 {
		return c.Scale()
	}
	return 1
}

func pixelSize(size fyne.Size, scale float32) render.Size {
	return render.Size{W: int(size.Width * scale), H: int(size.Height * scale)}
}

// placement converts a frame in device pixels back to fyne units.
func placement(f render.Frame, scale float32) (fyne.Position, fyne.Size) {
	if scale <= 0 {
		scale = 1
	}
	return fyne.NewPos(float32(f.X)/scale, 0), fyne.NewSize(float32(f.Width)/scale, float32(f.Height)/scale)
}
