package models

// Модель комментария к странице
type Comment struct {
	User string `json:"user" form:"user"` // имя автора, как пришло из формы
	Body string `json:"body" form:"body"`
}
