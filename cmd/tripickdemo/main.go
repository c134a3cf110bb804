// Command tripickdemo is a terminal presentation adapter for the
// tripick core. It renders the triangle as a colored gradient, tracks
// mouse clicks and drags inside it, and keeps three percentage gauges in
// lockstep with the marker.
//
// Controls: click or drag inside the triangle; tab/backtab select a
// gauge; digits type a value into it; up/down nudge it; enter confirms
// and quits, printing the chosen weights; esc quits without confirming.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/tripick/tripick"
	"github.com/tripick/tripick/glyph"
)

const (
	// canvasSize is the edge of the displayed raster the triangle is
	// located in. Pointer events are mapped from terminal cells into
	// this space before they reach the picker.
	canvasSize = 128

	// assetSize is the edge of the synthesized glyph used when no
	// -image is given.
	assetSize = 256

	panelWidth = 30
	barWidth   = 20
	frameRate  = 30 * time.Millisecond
)

// channelRGB gives each channel a hue for the gradient fill, the marker
// and the gauge bars.
var channelRGB = [3][3]int32{
	{224, 92, 78},
	{84, 196, 120},
	{86, 128, 230},
}

type app struct {
	screen tcell.Screen
	picker *tripick.Picker
	canvas *image.NRGBA
	labels [3]string

	// triangle viewport in cells
	vpX, vpY, vpW, vpH int

	active   int    // gauge receiving keyboard edits
	editBuf  string // digits typed into the active gauge since focus
	dragging bool

	confirmed *tripick.WeightVector
}

func newApp(src image.Image, labels [3]string, cm tripick.ChannelMap) (*app, error) {
	// Scale the asset to its displayed size once; the triangle is
	// located in that space and never recomputed afterwards.
	canvas := image.NewNRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	picker, err := tripick.NewPicker(tripick.Locate(canvas), cm)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	a := &app{
		screen: screen,
		picker: picker,
		canvas: canvas,
		labels: labels,
	}
	a.layout()
	return a, nil
}

// layout fits the triangle viewport and the gauge panel into the
// current terminal size. Cells are roughly twice as tall as wide, so the
// viewport is kept near a 2:1 cell aspect to display the square canvas
// without distortion.
func (a *app) layout() {
	w, h := a.screen.Size()
	availW := w - panelWidth - 6
	availH := h - 4

	a.vpH = max(availH, 1)
	a.vpW = max(min(availW, a.vpH*2), 1)
	a.vpX, a.vpY = 2, 2
}

// cellToCanvas maps the center of a terminal cell into canvas
// coordinates, the space the triangle was located in.
func (a *app) cellToCanvas(cx, cy int) tripick.Point {
	return tripick.Pt(
		(float64(cx-a.vpX)+0.5)*canvasSize/float64(a.vpW),
		(float64(cy-a.vpY)+0.5)*canvasSize/float64(a.vpH),
	)
}

// canvasToCell maps a canvas point to the terminal cell containing it.
func (a *app) canvasToCell(pt tripick.Point) (int, int) {
	return a.vpX + int(pt.X*float64(a.vpW)/canvasSize),
		a.vpY + int(pt.Y*float64(a.vpH)/canvasSize)
}

// alphaAt samples the displayed raster's alpha at a canvas point.
func (a *app) alphaAt(pt tripick.Point) uint8 {
	x, y := int(pt.X), int(pt.Y)
	if x < 0 || x >= canvasSize || y < 0 || y >= canvasSize {
		return 0
	}
	return a.canvas.NRGBAAt(x, y).A
}

func (a *app) run() {
	ticker := time.NewTicker(frameRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			events <- a.screen.PollEvent()
		}
	}()

	a.draw()
	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.draw()
		}
	}
}

// handleEvent applies one terminal event. It returns false when the
// session is over.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.layout()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			a.picker.Confirm()
			return false
		case tcell.KeyTab:
			a.focusField((a.active + 1) % 3)
		case tcell.KeyBacktab:
			a.focusField((a.active + 2) % 3)
		case tcell.KeyUp:
			a.nudge(1)
		case tcell.KeyDown:
			a.nudge(-1)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if a.editBuf != "" {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
				a.applyEdit()
			}
		case tcell.KeyRune:
			r := ev.Rune()
			switch {
			case r == 'q':
				return false
			case r >= '0' && r <= '9', r == '.' && !strings.Contains(a.editBuf, "."):
				if len(a.editBuf) < 5 {
					a.editBuf += string(r)
					a.applyEdit()
				}
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		if ev.Buttons()&tcell.Button1 != 0 {
			_, ok := a.picker.UpdateFromPoint(a.cellToCanvas(x, y))
			if !a.dragging {
				// A press outside the triangle does not start a drag.
				a.dragging = ok
			}
		} else {
			a.dragging = false
		}
	}
	return true
}

// focusField moves keyboard focus to gauge i and drops any pending edit.
func (a *app) focusField(i int) {
	a.active = i
	a.editBuf = ""
}

// applyEdit forwards the typed value of the active gauge to the picker.
// A buffer that does not parse yet (empty, or a lone dot) leaves the
// state alone.
func (a *app) applyEdit() {
	v, err := strconv.ParseFloat(a.editBuf, 64)
	if err != nil {
		return
	}
	a.picker.UpdateFromEdit(a.active, v)
}

// nudge shifts the active gauge by delta percent.
func (a *app) nudge(delta float64) {
	a.editBuf = ""
	cur := a.picker.Weights()
	a.picker.UpdateFromEdit(a.active, cur[a.active]+delta)
}

func (a *app) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	dim := tcell.StyleDefault.Foreground(tcell.NewRGBColor(140, 140, 150))

	if w < panelWidth+16 || h < 10 {
		a.drawText(1, 0, "terminal too small", dim)
		a.screen.Show()
		return
	}

	a.drawText(2, 0, "tripick: three-way weight picker", tcell.StyleDefault.Bold(true))

	// Triangle gradient. Every cell inside the triangle shows the mix
	// its own position would select.
	tri := a.picker.Triangle()
	cm := a.picker.ChannelMap()
	for cy := a.vpY; cy < a.vpY+a.vpH && cy < h; cy++ {
		for cx := a.vpX; cx < a.vpX+a.vpW && cx < w; cx++ {
			pt := a.cellToCanvas(cx, cy)
			b := tri.Barycentric(pt)
			if b.Inside(tripick.InsideTolerance) {
				st := tcell.StyleDefault.Background(mixColor(cm.Vector(b)))
				a.screen.SetContent(cx, cy, ' ', nil, st)
			} else if a.alphaAt(pt) >= tripick.DefaultAlphaThreshold {
				// Silhouette fringe outside the located triangle.
				a.screen.SetContent(cx, cy, '.', nil, dim)
			}
		}
	}

	// Selection marker, on its own mixed background.
	mx, my := a.canvasToCell(a.picker.MarkerPoint())
	markerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(mixColor(a.picker.Weights())).
		Bold(true)
	a.screen.SetContent(mx, my, 'X', nil, markerStyle)

	a.drawPanel()

	a.drawText(2, h-2, "click or drag inside the triangle / tab: next field / digits: type a value", dim)
	a.drawText(2, h-1, "up/down: nudge / enter: confirm / esc: quit", dim)
	a.screen.Show()
}

// drawPanel renders the three percentage gauges and the running total.
func (a *app) drawPanel() {
	px := a.vpX + a.vpW + 3
	v := a.picker.Weights()

	for i := range 3 {
		y := a.vpY + i*3
		st := tcell.StyleDefault
		if i == a.active {
			st = st.Bold(true)
			a.drawText(px-2, y, ">", st)
		}

		line := fmt.Sprintf("%-9.9s %5.1f%%", a.labels[i], v[i])
		if i == a.active && a.editBuf != "" {
			line = fmt.Sprintf("%-9.9s %5s_", a.labels[i], a.editBuf)
		}
		a.drawText(px, y, line, st)

		filled := min(max(int(v[i]/100*barWidth+0.5), 0), barWidth)
		bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)
		a.drawText(px, y+1, bar, tcell.StyleDefault.Foreground(channelColor(i)))
	}

	a.drawText(px, a.vpY+9, fmt.Sprintf("total %.1f%%", v.Sum()),
		tcell.StyleDefault.Foreground(tcell.NewRGBColor(140, 140, 150)))
}

// drawText writes s one rune per cell starting at (x, y).
func (a *app) drawText(x, y int, s string, st tcell.Style) {
	col := x
	for _, r := range s {
		a.screen.SetContent(col, y, r, nil, st)
		col++
	}
}

// mixColor blends the three channel hues by their weights.
func mixColor(v tripick.WeightVector) tcell.Color {
	var rgb [3]float64
	for i := range 3 {
		k := v[i] / 100
		for c := range 3 {
			rgb[c] += k * float64(channelRGB[i][c])
		}
	}
	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2]))
}

func channelColor(i int) tcell.Color {
	return tcell.NewRGBColor(channelRGB[i][0], channelRGB[i][1], channelRGB[i][2])
}

// loadAsset decodes the picker asset, or synthesizes the default glyph
// when no path is given.
func loadAsset(path string) (image.Image, error) {
	if path == "" {
		return glyph.Image(assetSize, assetSize, glyph.WithInset(10)), nil
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	return img, err
}

// parseLabels splits a comma-separated list of exactly three channel
// labels.
func parseLabels(s string) ([3]string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]string{}, fmt.Errorf("want three comma-separated labels, got %q", s)
	}
	var labels [3]string
	for i, p := range parts {
		labels[i] = strings.TrimSpace(p)
		if labels[i] == "" {
			return [3]string{}, fmt.Errorf("empty label in %q", s)
		}
	}
	return labels, nil
}

// parseChannelMap reads the channel indices assigned to the top, left
// and right vertex roles, e.g. "2,0,1".
func parseChannelMap(s string) (tripick.ChannelMap, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return tripick.ChannelMap{}, fmt.Errorf("want three comma-separated indices, got %q", s)
	}
	var idx [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return tripick.ChannelMap{}, fmt.Errorf("channel index %q: %w", p, err)
		}
		idx[i] = n
	}
	return tripick.NewChannelMap(idx[0], idx[1], idx[2])
}

func main() {
	var (
		imagePath = flag.String("image", "", "image with the triangle in its alpha channel (default: synthesized glyph)")
		labelsArg = flag.String("labels", "cost,quality,deadline", "comma-separated channel labels")
		mapArg    = flag.String("map", "2,0,1", "channel index for the top,left,right vertex roles")
		debugPath = flag.String("debug", "", "write debug logs to this file")
	)
	flag.Parse()

	if *debugPath != "" {
		f, err := os.Create(filepath.Clean(*debugPath))
		if err != nil {
			log.Fatalf("Failed to open debug log: %v", err)
		}
		defer func() { _ = f.Close() }()
		tripick.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	labels, err := parseLabels(*labelsArg)
	if err != nil {
		log.Fatalf("Invalid -labels: %v", err)
	}
	cm, err := parseChannelMap(*mapArg)
	if err != nil {
		log.Fatalf("Invalid -map: %v", err)
	}
	src, err := loadAsset(*imagePath)
	if err != nil {
		log.Fatalf("Failed to load asset: %v", err)
	}

	a, err := newApp(src, labels, cm)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	sub := a.picker.OnConfirm(func(v tripick.WeightVector) { a.confirmed = &v })
	defer sub.Cancel()

	a.run()
	a.screen.Fini()

	if a.confirmed != nil {
		v := *a.confirmed
		fmt.Printf("%s %.1f%%  %s %.1f%%  %s %.1f%%\n",
			labels[0], v[0], labels[1], v[1], labels[2], v[2])
	}
}
