package preview

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"LeadDesk/entity"
	"LeadDesk/internal/lib/sl"
)

// Crawler user-agent substrings that get server-rendered Open Graph
// HTML instead of the SPA shell. Matching is case-insensitive.
var crawlerAgents = []string{
	"facebookexternalhit",
	"facebot",
	"twitterbot",
	"whatsapp",
	"linkedinbot",
	"telegrambot",
	"slackbot",
	"discordbot",
	"pinterest",
	"googlebot",
}

var propertyPath = regexp.MustCompile(`^/empreendimento/([^/]+)/([0-9]+)$`)

// PropertyGetter fetches a listing for meta-tag rendering.
type PropertyGetter interface {
	Get(ctx context.Context, id int64) (*entity.Property, error)
}

// Responder renders social-preview HTML for crawler requests on
// property-detail paths and reports pass-through for everything else.
type Responder struct {
	properties PropertyGetter
	siteName   string
	webUrl     string
	log        *slog.Logger
}

func NewResponder(properties PropertyGetter, siteName, webUrl string, logger *slog.Logger) *Responder {
	return &Responder{
		properties: properties,
		siteName:   siteName,
		webUrl:     webUrl,
		log:        logger.With(sl.Module("preview responder")),
	}
}

// IsCrawler reports whether the user agent belongs to a known
// social-preview crawler.
func IsCrawler(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, agent := range crawlerAgents {
		if strings.Contains(ua, agent) {
			return true
		}
	}
	return false
}

// MatchPath extracts the slug and numeric id from a property-detail path.
func MatchPath(path string) (slug string, id int64, ok bool) {
	parts := propertyPath.FindStringSubmatch(path)
	if parts == nil {
		return "", 0, false
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return parts[1], id, true
}

// Respond returns the preview HTML for a crawler request on a property
// path. ok=false is the pass-through signal: the request should be
// served by the SPA unmodified.
func (r *Responder) Respond(ctx context.Context, path, userAgent string) (html string, ok bool, err error) {
	slug, id, matched := MatchPath(path)
	if !matched || !IsCrawler(userAgent) {
		return "", false, nil
	}

	prop, err := r.properties.Get(ctx, id)
	if err != nil {
		r.log.With(
			sl.Err(err),
			slog.String("slug", slug),
			slog.Int64("id", id),
		).Error("fetch property for preview")
		return "", false, err
	}

	html, err = r.render(prop, path)
	if err != nil {
		return "", false, err
	}
	return html, true, nil
}

var pageTemplate = template.Must(template.New("og").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta property="og:type" content="website">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:image" content="{{.Image}}">
<meta property="og:url" content="{{.URL}}">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
<meta name="twitter:image" content="{{.Image}}">
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Description}}</p>
</body>
</html>
`))

type pageData struct {
	Title       string
	Description string
	Image       string
	URL         string
}

func (r *Responder) render(prop *entity.Property, path string) (string, error) {
	data := pageData{
		Title:       fmt.Sprintf("%s | %s", prop.Title, r.siteName),
		Description: prop.Description,
		Image:       prop.CoverImage,
		URL:         r.webUrl + path,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return buf.String(), nil
}
