package web

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>1x1 Meeting Notes Tracker</title>
    <link rel="stylesheet" href="/static/app.css" />
    <script src="/static/app.js" defer></script>
  </head>
  <body>
    <main class="container">
      <header class="bar">
        <h1 class="title">1x1 Meeting Notes Tracker</h1>
        <nav>
          <a class="toggle" href="/?mode={{.ToggleMode}}" aria-label="toggle view">
            {{if eq .Mode "card"}}Show as List{{else}}Show as Cards{{end}}
          </a>
          <a class="print" href="/print?mode={{.Mode}}" target="_blank" rel="noopener">Print Notes</a>
        </nav>
      </header>

      {{if .Error}}<div class="error" role="alert">{{.Error}}</div>{{end}}

      <section class="panel">
        <h2>Add New Meeting Note</h2>
        <form method="post" action="/?mode={{.Mode}}">
          <input type="hidden" name="mode" value="{{.Mode}}" />
          <div class="row">
            <label>Date <input type="date" name="date" value="{{.Draft.Date}}" /></label>
            <label>Start Time <input type="time" name="start_time" value="{{.Draft.StartTime}}" /></label>
            <label>End Time <input type="time" name="end_time" value="{{.Draft.EndTime}}" /></label>
          </div>
          <label>Reportee Name <input type="text" name="reportee" value="{{.Draft.Reportee}}" /></label>
          <label>Discussion Points
            <textarea name="points" rows="6" placeholder="Use * or - for bullets, 1. for numbering, or any Markdown formatting.">{{.Draft.Points}}</textarea>
          </label>
          <button type="submit">Add Note</button>
        </form>
      </section>

      <div id="notes" data-mode="{{.Mode}}">{{.Notes}}</div>

      {{if .Rejected}}
      <dialog open class="missing" aria-labelledby="missing-title">
        <h3 id="missing-title">Missing Information</h3>
        {{if .Missing}}
        <p>Please fill in the following field{{if gt (len .Missing) 1}}s{{end}}:</p>
        <ul>{{range .Missing}}<li>{{.}}</li>{{end}}</ul>
        {{else if not .Invalid}}
        <p>Please fill in all fields before adding a note.</p>
        {{end}}
        {{with .Invalid}}<ul class="invalid">{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
        <form method="dialog"><button>OK</button></form>
      </dialog>
      {{end}}
    </main>
  </body>
</html>
`

const appCSS = `
body { font-family: 'Roboto', system-ui, sans-serif; background: #f5f7fa; margin: 0; }
.container { max-width: 880px; margin: 0 auto; padding: 32px 16px; }
.bar { display: flex; align-items: center; justify-content: space-between; background: #1976d2; color: #fff; border-radius: 8px; padding: 12px 20px; margin-bottom: 32px; }
.bar a { color: #fff; font-weight: bold; margin-left: 16px; text-decoration: none; }
.title { font-size: 1.25rem; margin: 0; }
.panel { background: #fff; border-radius: 12px; padding: 32px; margin-bottom: 32px; box-shadow: 0 2px 8px rgba(0,0,0,.08); }
.panel label { display: block; margin-bottom: 16px; font-weight: 500; }
.panel input, .panel textarea { display: block; width: 100%; box-sizing: border-box; padding: 8px; margin-top: 4px; border: 1px solid #ccc; border-radius: 6px; }
.panel textarea { background: #f5f7fa; }
.row { display: flex; gap: 16px; }
.row label { flex: 1; }
button { background: #1976d2; color: #fff; border: 0; border-radius: 8px; padding: 12px 32px; font-weight: bold; cursor: pointer; }
.error { background: #fdecea; color: #b71c1c; border-radius: 8px; padding: 12px 16px; margin-bottom: 16px; }
.note-title { display: block; font-weight: bold; color: #333; }
.note-date { display: block; color: #555; }
.note-points { margin-top: 8px; }
ul.note-list { list-style: none; padding: 0; }
.notes-empty { color: #666; }
dialog.missing { border: 0; border-radius: 8px; box-shadow: 0 4px 24px rgba(0,0,0,.2); }
`

const appJS = `(function () {
  if (!window.EventSource) return;
  var es = new EventSource("/events");
  es.addEventListener("note.created", function () {
    var box = document.getElementById("notes");
    if (!box) return;
    fetch("/fragment?mode=" + encodeURIComponent(box.dataset.mode || "card"))
      .then(function (r) { return r.ok ? r.text() : null; })
      .then(function (html) { if (html !== null) box.innerHTML = html; });
  });
})();
`
