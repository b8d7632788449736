package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the identity record. The password hash never serializes to JSON;
// it leaves the package only through ComparePasswordAndHash.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username       string         `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string         `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string         `bun:"password_hash" json:"-"`
	LoginAttempts  int            `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time     `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time     `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	Metadata       map[string]any `bun:"metadata" json:"metadata,omitempty"`
	CreatedAt      *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time     `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// AddMetadata will append information to a metadata attribute
func (u *User) AddMetadata(key string, val any) *User {
	if u.Metadata == nil {
		u.Metadata = make(map[string]any)
	}
	u.Metadata[key] = val
	return u
}

// ContentType labels what kind of processing a document requested.
type ContentType = string

const (
	ContentTypeDocument  ContentType = "document"
	ContentTypeSummarize ContentType = "summarize"
	ContentTypeAnalyze   ContentType = "analyze"
	ContentTypeExtract   ContentType = "extract"
	ContentTypeTranslate ContentType = "translate"
)

// Content is a user-generated document. ProcessedResult holds the output of
// the remote text processor when one ran; Metadata is free-form.
type Content struct {
	bun.BaseModel   `bun:"table:contents,alias:cnt"`
	ID              uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID          uuid.UUID      `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Title           string         `bun:"title,notnull" json:"title,omitempty"`
	Body            string         `bun:"body,notnull" json:"body,omitempty"`
	Type            ContentType    `bun:"content_type,notnull" json:"type,omitempty"`
	ProcessedResult string         `bun:"processed_result" json:"processed_result,omitempty"`
	Metadata        map[string]any `bun:"metadata" json:"metadata,omitempty"`
	CreatedAt       *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt       *time.Time     `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// AddMetadata will append information to a metadata attribute
func (c *Content) AddMetadata(key string, val any) *Content {
	if c.Metadata == nil {
		c.Metadata = make(map[string]any)
	}
	c.Metadata[key] = val
	return c
}
