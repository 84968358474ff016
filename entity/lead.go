package entity

import (
	"net/url"
	"time"
)

// Lead is a prospective customer's contact submission.
type Lead struct {
	Name      string    `json:"name" bson:"name" validate:"required"`
	Email     string    `json:"email" bson:"email" validate:"omitempty,email"`
	Phone     string    `json:"phone" bson:"phone" validate:"omitempty,min=8,max=20"`
	Message   string    `json:"message" bson:"message" validate:"omitempty"`
	Source    string    `json:"source" bson:"source" validate:"omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"created_at"`
}

// PrefilledText composes the message used to pre-fill the WhatsApp
// conversation opened after the guided flow completes.
func (l *Lead) PrefilledText() string {
	text := "Olá! Acabei de preencher o formulário no site.\n"
	text += "Nome: " + l.Name + "\n"
	text += "E-mail: " + l.Email + "\n"
	text += "Telefone: " + l.Phone + "\n"
	text += "Mensagem: " + l.Message
	return text
}

// DeepLink builds the wa.me URL that opens a conversation with the
// recipient, pre-filled with the lead's details.
func (l *Lead) DeepLink(recipient string) string {
	return "https://wa.me/" + recipient + "?text=" + url.QueryEscape(l.PrefilledText())
}
