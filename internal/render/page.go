// Package render собирает HTML-документ страницы с комментариями.
//
// Поля комментариев и идентификатор страницы попадают в разметку как есть,
// если у Renderer не включён EscapeHTML. Это известный дефект (stored XSS),
// он сохранён для совместимости с уже существующими страницами.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/url"
	"text/template"

	"github.com/MosinFAM/comment-board/internal/models"
)

// Ограничения формы проверяет только браузер
const (
	UserMaxLength = 50
	UserPattern   = "[A-Za-z0-9]+"
	BodyMaxLength = 1000
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.PageID}}</title>
    <meta charset="utf-8">
</head>
<body>
{{- $page := .PageID}}
{{- range $i, $c := .Comments}}
<div id="page-{{$page}}-comment-{{$i}}" class="comment">
    <p class="comment-body"><em class="comment-user" style="display:inline">{{$c.User}}: </em>{{$c.Body}}</p>
</div>
{{- end}}
    <form id="comment-form" action="{{.CommentsURL}}" method="post">
      <label for="user">Username:</label>
      <br>
      <input id="user" name="user" type="text" maxlength="{{.UserMaxLength}}" size="20" pattern="{{.UserPattern}}" title="A-Z, a-z, 0-9 only" placeholder="username" />
      <br>

      <label for="body">Comment:</label>
      <br>
      <textarea id="body" name="body" maxlength="{{.BodyMaxLength}}" cols="50" rows="5" placeholder="comment"></textarea>
      <br>
      <br>

      <input type="submit" value="Submit">
    </form>
</body>
</html>
`))

type pageData struct {
	PageID        string
	CommentsURL   string
	Comments      []models.Comment
	UserMaxLength int
	UserPattern   string
	BodyMaxLength int
}

// Renderer рендерит страницы; нулевое значение пишет пользовательский ввод без экранирования
type Renderer struct {
	EscapeHTML bool
}

// Render пишет документ страницы pageID в w
func (r Renderer) Render(w io.Writer, pageID string, comments []models.Comment) error {
	data := pageData{
		PageID: pageID,
		// адрес формы экранируется всегда, иначе "a/b" или "a?b" не попадут в свой маршрут
		CommentsURL:   "/pages/" + url.PathEscape(pageID) + "/comments",
		Comments:      comments,
		UserMaxLength: UserMaxLength,
		UserPattern:   UserPattern,
		BodyMaxLength: BodyMaxLength,
	}
	if r.EscapeHTML {
		data.PageID = html.EscapeString(pageID)
		data.CommentsURL = html.EscapeString(data.CommentsURL)
		data.Comments = make([]models.Comment, len(comments))
		for i, c := range comments {
			data.Comments[i] = models.Comment{
				User: html.EscapeString(c.User),
				Body: html.EscapeString(c.Body),
			}
		}
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}
	return nil
}

// RenderPage рендерит страницу Renderer'ом по умолчанию (без экранирования)
func RenderPage(pageID string, comments []models.Comment) (string, error) {
	var buf bytes.Buffer
	if err := (Renderer{}).Render(&buf, pageID, comments); err != nil {
		return "", err
	}
	return buf.String(), nil
}
