package mcpserver

// NoteFormat describes a meeting note for LLM clients: the fields the
// add_meeting_note tool requires and the file layout the inbox imports.
const NoteFormat = `# Meeting Note Format

A 1x1 meeting note has five fields. All of them are required.

| Field | Label | Rules |
|---|---|---|
| date | Date | Any non-empty text; the web form uses ` + "`YYYY-MM-DD`" + ` |
| start_time | Start Time | Non-empty; the web form uses ` + "`HH:MM`" + ` |
| end_time | End Time | Non-empty; ` + "`HH:MM`" + ` |
| reportee | Reportee Name | Non-empty |
| points | Discussion Points | Markdown with visible text |

## Discussion points

Points are Markdown. Text made only of Markdown punctuation, digits or
HTML tags counts as empty, so ` + "`- `" + `, ` + "`1.`" + ` or ` + "`<br>`" + ` alone are rejected.
Links and inline code without other text are accepted.

## Time order

Depending on the server configuration, end_time may have to be after
start_time and both must then be valid ` + "`HH:MM`" + ` times.

## Inbox files

Notes can also be dropped as Markdown files into the inbox folder:

` + "```" + `markdown
---
date: 2024-06-01
start: "09:00"
end: "09:30"
reportee: Alex
---
- discussed roadmap
- **hiring** plan
` + "```" + `

The frontmatter carries the scalar fields and the body is the discussion
points. Accepted files are removed; rejected files are moved to
` + "`rejected/`" + ` with a ` + "`.txt`" + ` file naming the missing fields.

## Records

Accepted notes get a numeric id and are never edited or deleted. Listing
returns them in the order they were recorded.
`
