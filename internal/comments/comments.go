// Package comments holds the comment shapes embedded in expense and calendar
// documents and the moderation policy shared by both.
package comments

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EditWindow is measured from a comment's current timestamp; a successful
// edit refreshes the timestamp and restarts the window.
const EditWindow = 5 * time.Minute

var (
	ErrNotFound      = errors.New("comment not found")
	ErrNotAuthor     = errors.New("not the comment author")
	ErrWindowExpired = errors.New("edit window expired")
	ErrEmptyText     = errors.New("comment text required")
)

// Actor is the session identity performing a comment operation. Author fields
// on comments come from here, never from the request body.
type Actor struct {
	ID      uint
	Name    string
	Phone   string
	IsAdmin bool
}

func (a Actor) displayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Phone != "" {
		return a.Phone
	}
	return "User"
}

type Comment struct {
	ID          string    `json:"id"`
	AuthorID    uint      `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	AuthorPhone string    `json:"authorPhone"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	Date        time.Time `json:"date"`
}

type Reply struct {
	ID        string    `json:"id"`
	AdminID   uint      `json:"adminId"`
	AdminName string    `json:"adminName"`
	Text      string    `json:"text"`
	AddedDate time.Time `json:"addedDate"`
}

type ThreadedComment struct {
	ID          string    `json:"id"`
	AuthorID    uint      `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	AuthorPhone string    `json:"authorPhone"`
	Text        string    `json:"text"`
	AddedDate   time.Time `json:"addedDate"`
	Replies     []Reply   `json:"replies"`
}

func New(actor Actor, text string, now time.Time) Comment {
	return Comment{
		ID:          uuid.NewString(),
		AuthorID:    actor.ID,
		AuthorName:  actor.displayName(),
		AuthorPhone: actor.Phone,
		Text:        text,
		Timestamp:   now,
		Date:        now,
	}
}

func NewThreaded(actor Actor, text string, now time.Time) ThreadedComment {
	return ThreadedComment{
		ID:          uuid.NewString(),
		AuthorID:    actor.ID,
		AuthorName:  actor.displayName(),
		AuthorPhone: actor.Phone,
		Text:        text,
		AddedDate:   now,
		Replies:     []Reply{},
	}
}

func NewReply(admin Actor, text string, now time.Time) Reply {
	name := admin.displayName()
	if admin.Name == "" && admin.Phone == "" {
		name = "Admin"
	}
	return Reply{
		ID:        uuid.NewString(),
		AdminID:   admin.ID,
		AdminName: name,
		Text:      text,
		AddedDate: now,
	}
}

// Append adds c to list, regenerating its id while it collides with an
// existing one. The store does not enforce uniqueness of nested ids.
func Append(list []Comment, c Comment) []Comment {
	for hasID(list, c.ID) {
		c.ID = uuid.NewString()
	}
	return append(list, c)
}

func hasID(list []Comment, id string) bool {
	for _, c := range list {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CanEdit reports whether actor may edit c at time now: author only, within
// the rolling window. Admins get no special editing rights.
func CanEdit(c Comment, actor Actor, now time.Time) error {
	if c.AuthorID != actor.ID {
		return ErrNotAuthor
	}
	if now.Sub(c.Timestamp) > EditWindow {
		return ErrWindowExpired
	}
	return nil
}

// CanDelete reports whether actor may delete c at time now: admins always,
// the author within the rolling window, nobody else.
func CanDelete(c Comment, actor Actor, now time.Time) error {
	if actor.IsAdmin {
		return nil
	}
	if c.AuthorID != actor.ID {
		return ErrNotAuthor
	}
	if now.Sub(c.Timestamp) > EditWindow {
		return ErrWindowExpired
	}
	return nil
}

// Edit applies the policy and rewrites the comment text in place, refreshing
// the timestamp so the window restarts.
func Edit(list []Comment, id string, actor Actor, text string, now time.Time) (Comment, error) {
	if text == "" {
		return Comment{}, ErrEmptyText
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if err := CanEdit(list[i], actor, now); err != nil {
			return Comment{}, err
		}
		list[i].Text = text
		list[i].Timestamp = now
		return list[i], nil
	}
	return Comment{}, ErrNotFound
}

// Remove applies the policy and drops the comment from the list.
func Remove(list []Comment, id string, actor Actor, now time.Time) ([]Comment, error) {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if err := CanDelete(list[i], actor, now); err != nil {
			return nil, err
		}
		return append(list[:i], list[i+1:]...), nil
	}
	return nil, ErrNotFound
}

// AppendThreaded mirrors Append for threaded comments.
func AppendThreaded(list []ThreadedComment, c ThreadedComment) []ThreadedComment {
	for hasThreadedID(list, c.ID) {
		c.ID = uuid.NewString()
	}
	return append(list, c)
}

func hasThreadedID(list []ThreadedComment, id string) bool {
	for _, c := range list {
		if c.ID == id {
			return true
		}
	}
	return false
}

// EditThreaded applies the same policy as Edit; AddedDate is the rolling
// stamp and is refreshed on success. Replies are left untouched.
func EditThreaded(list []ThreadedComment, id string, actor Actor, text string, now time.Time) (ThreadedComment, error) {
	if text == "" {
		return ThreadedComment{}, ErrEmptyText
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].AuthorID != actor.ID {
			return ThreadedComment{}, ErrNotAuthor
		}
		if now.Sub(list[i].AddedDate) > EditWindow {
			return ThreadedComment{}, ErrWindowExpired
		}
		list[i].Text = text
		list[i].AddedDate = now
		return list[i], nil
	}
	return ThreadedComment{}, ErrNotFound
}

// RemoveThreaded drops the comment and its entire reply list, under the same
// policy as Remove: admins always, the author within the window.
func RemoveThreaded(list []ThreadedComment, id string, actor Actor, now time.Time) ([]ThreadedComment, error) {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if !actor.IsAdmin {
			if list[i].AuthorID != actor.ID {
				return nil, ErrNotAuthor
			}
			if now.Sub(list[i].AddedDate) > EditWindow {
				return nil, ErrWindowExpired
			}
		}
		return append(list[:i], list[i+1:]...), nil
	}
	return nil, ErrNotFound
}

// AppendReply attaches a reply to the threaded comment with the given id, in
// arrival order. Replies never expire and are only ever appended.
func AppendReply(list []ThreadedComment, id string, reply Reply) (Reply, bool) {
	for i := range list {
		if list[i].ID == id {
			list[i].Replies = append(list[i].Replies, reply)
			return reply, true
		}
	}
	return Reply{}, false
}
