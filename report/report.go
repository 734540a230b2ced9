// Package report renders an HTML summary file for each completed lead and
// returns the relative URL it is served under. Generation is memoized per
// session with a TTL cache so repeated completions of the same session reuse
// the existing file.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agencyos/leadbot/core"
)

// URLPrefix is the path reports are served under by the HTTP boundary.
const URLPrefix = "/reports/"

// Options configure the report Generator.
type Options struct {
	// CacheTTL bounds how long a generated report URL is remembered per
	// session before the file is rendered again on the next completion.
	CacheTTL time.Duration
}

// Generator writes one HTML report per completed lead into a directory.
type Generator struct {
	dir   string
	cache *gocache.Cache
}

// NewGenerator creates a Generator writing into dir.
func NewGenerator(dir string, optFns ...func(o *Options)) *Generator {
	opts := Options{CacheTTL: time.Hour}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Generator{
		dir:   dir,
		cache: gocache.New(opts.CacheTTL, 10*time.Minute),
	}
}

// Dir returns the directory reports are written to.
func (g *Generator) Dir() string { return g.dir }

type reportView struct {
	SessionID   string
	Name        string
	Email       string
	Budget      string
	Topics      []string
	GeneratedAt string
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Project Inquiry {{.SessionID}}</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
dt { font-weight: bold; margin-top: 0.75rem; }
</style>
</head>
<body>
<h1>Project Inquiry</h1>
<dl>
<dt>Session</dt><dd>{{.SessionID}}</dd>
<dt>Name</dt><dd>{{.Name}}</dd>
<dt>Email</dt><dd>{{.Email}}</dd>
<dt>Budget</dt><dd>{{.Budget}}</dd>
<dt>Topics</dt><dd>{{if .Topics}}{{range .Topics}}<span>{{.}}</span> {{end}}{{else}}General inquiry{{end}}</dd>
<dt>Generated</dt><dd>{{.GeneratedAt}}</dd>
</dl>
</body>
</html>
`))

// Generate renders the report for one completed lead and returns its relative
// URL. Calling it again for the same session within the cache TTL returns the
// previous URL without touching the filesystem.
func (g *Generator) Generate(sessionID string, data core.SessionData) (string, error) {
	if url, ok := g.cache.Get(sessionID); ok {
		return url.(string), nil
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	name := filepath.Base(sessionID) + ".html"
	f, err := os.Create(filepath.Join(g.dir, name))
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	view := reportView{
		SessionID:   sessionID,
		Name:        orDash(data.Name),
		Email:       orDash(data.Email),
		Budget:      orDash(data.Budget),
		Topics:      data.DetectedKeywords,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := reportTmpl.Execute(f, view); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	url := URLPrefix + name
	g.cache.Set(sessionID, url, gocache.DefaultExpiration)
	return url, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
