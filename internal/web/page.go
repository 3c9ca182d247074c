package web

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/a-h/templ"
)

// statusPage renders the session overview: the last load and the view
// catalogue with the views the loaded country can export marked.
func statusPage(st core.Status, views []core.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<title>Census Analyser</title>`)
		b.WriteString(`<style>body{font-family:sans-serif;margin:2rem}table{border-collapse:collapse}td,th{padding:.25rem .75rem;border-bottom:1px solid #ddd;text-align:left}.muted{color:#888}</style>`)
		b.WriteString(`</head><body><h1>Census Analyser</h1>`)

		loaded := core.CountryUnknown
		if st.Last == nil {
			b.WriteString(`<p class="muted">No census data loaded.</p>`)
		} else {
			loaded = st.Last.Country
			fmt.Fprintf(&b, `<p>Loaded <strong>%s</strong> from <code>%s</code>: %d records`,
				templ.EscapeString(st.Last.Country.String()),
				templ.EscapeString(st.Last.Source),
				st.Last.Records)
			if st.Last.StateCodes != "" {
				fmt.Fprintf(&b, `, %d enriched from <code>%s</code>`,
					st.Last.Enriched, templ.EscapeString(st.Last.StateCodes))
			}
			fmt.Fprintf(&b, ` (%d ms, load %s).</p>`,
				st.Last.DurationMS, templ.EscapeString(st.Last.ID))
		}

		b.WriteString(`<h2>Views</h2><table><tr><th>Key</th><th>Country</th><th>Ordering</th><th>File</th></tr>`)
		for _, v := range views {
			class := ""
			if v.Country != loaded {
				class = ` class="muted"`
			}
			fmt.Fprintf(&b, `<tr%s><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				class,
				templ.EscapeString(v.Key),
				templ.EscapeString(v.Country.String()),
				templ.EscapeString(v.Ordering.String()),
				templ.EscapeString(v.FileName))
		}
		b.WriteString(`</table></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
