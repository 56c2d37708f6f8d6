package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/joshhsoj1902/steam-library-exporter/internal/library"
	"github.com/joshhsoj1902/steam-library-exporter/internal/logger"
	"github.com/sirupsen/logrus"
)

const SummaryFileName = "steam_games_summary.html"

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"hours":    formatHours,
	"gamePage": GamePageName,
}).ParseFS(templateFS, "templates/*.html.tmpl"))

// GamePageName is the file name of the detail page for appId.
func GamePageName(appId uint64) string {
	return fmt.Sprintf("game_%d.html", appId)
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

type summaryView struct {
	Title   string
	Sort    library.SortMode
	Summary library.Summary
}

type gameView struct {
	Game        library.GameRecord
	SummaryPage string
}

type HTMLRenderer struct {
	dir string
}

func NewHTMLRenderer(dir string) *HTMLRenderer {
	return &HTMLRenderer{dir: dir}
}

// Render writes the summary page in the requested order and regenerates the
// detail page of every game.
func (r *HTMLRenderer) Render(summary library.Summary, mode library.SortMode) error {
	sorted, err := summary.Sorted(mode)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", r.dir, err)
	}

	for _, game := range sorted.Games {
		if err := r.writeGamePage(game); err != nil {
			return err
		}
	}

	view := summaryView{
		Title:   "Steam Games Summary",
		Sort:    mode,
		Summary: sorted,
	}
	if err := r.execute("summary.html.tmpl", SummaryFileName, view); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"dir":   r.dir,
		"sort":  mode,
		"games": len(sorted.Games),
	}).Info("Wrote HTML summary and game pages")
	return nil
}

func (r *HTMLRenderer) writeGamePage(game library.GameRecord) error {
	view := gameView{
		Game:        game,
		SummaryPage: SummaryFileName,
	}
	return r.execute("game.html.tmpl", GamePageName(game.AppID), view)
}

func (r *HTMLRenderer) execute(name string, fileName string, data interface{}) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", fileName, err)
	}
	path := filepath.Join(r.dir, fileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
