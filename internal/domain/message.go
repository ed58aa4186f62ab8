package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of an advisory conversation. It is never mutated after creation.
type Message struct {
	Role          Role
	Text          string
	AttachedImage string // preview handle, user turns only
	CreatedAt     time.Time
}

func (m Message) HasImage() bool {
	return m.AttachedImage != ""
}

// InlineImage is an image ready for the advisory request payload.
type InlineImage struct {
	MimeType string
	Data     string // base64, standard encoding
}
