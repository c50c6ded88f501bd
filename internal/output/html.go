package output

import (
	"html/template"
	"io"

	"ltask/internal/task"
)

var htmlTemplate = template.Must(template.New("todos").Parse(`<ul id="todo-list" class="todo-list" data-filter="{{.Filter}}">
{{- range .Tasks}}
  <li class="todo-item{{if .Completed}} completed{{end}}" data-id="{{.ID}}">
    <input type="checkbox" class="todo-checkbox"{{if .Completed}} checked{{end}}>
    <span class="todo-text">{{.Text}}</span>
    <button class="delete-btn">Delete</button>
  </li>
{{- else}}
  <li class="empty-message">{{.Empty}}</li>
{{- end}}
</ul>
<p id="todo-count">{{.Summary}}</p>
`))

type htmlView struct {
	Filter  task.Filter
	Tasks   []task.Task
	Empty   string
	Summary string
}

// HTML writes the view as list markup. Task text is HTML-escaped.
func HTML(w io.Writer, view []task.Task, f task.Filter, sum task.Summary) error {
	return htmlTemplate.Execute(w, htmlView{
		Filter:  f,
		Tasks:   view,
		Empty:   EmptyMessage(f),
		Summary: sum.String(),
	})
}
