package comments

import (
	"errors"
	"testing"
	"time"
)

var (
	author = Actor{ID: 1, Name: "Ana", Phone: "9000000002"}
	other  = Actor{ID: 2, Name: "Ben", Phone: "9000000003"}
	admin  = Actor{ID: 3, Name: "Root", Phone: "9000000001", IsAdmin: true}
)

func TestNewCapturesActorIdentity(t *testing.T) {
	now := time.Now()
	c := New(author, "hello", now)

	if c.ID == "" {
		t.Fatal("expected generated id")
	}
	if c.AuthorID != author.ID || c.AuthorName != "Ana" || c.AuthorPhone != author.Phone {
		t.Fatalf("author fields not captured: %+v", c)
	}
	if !c.Timestamp.Equal(now) || !c.Date.Equal(now) {
		t.Fatalf("timestamps not set to now: %+v", c)
	}
}

func TestDisplayNameFallsBackToPhone(t *testing.T) {
	c := New(Actor{ID: 9, Phone: "123"}, "x", time.Now())
	if c.AuthorName != "123" {
		t.Fatalf("expected phone fallback, got %q", c.AuthorName)
	}

	c = New(Actor{ID: 9}, "x", time.Now())
	if c.AuthorName != "User" {
		t.Fatalf("expected generic fallback, got %q", c.AuthorName)
	}
}

func TestEditInsideWindow(t *testing.T) {
	created := time.Now()
	list := []Comment{New(author, "first", created)}

	edited, err := Edit(list, list[0].ID, author, "second", created.Add(4*time.Minute))
	if err != nil {
		t.Fatalf("edit inside window: %v", err)
	}
	if edited.Text != "second" || list[0].Text != "second" {
		t.Fatal("edit did not rewrite text in place")
	}
	if !edited.Timestamp.After(created) {
		t.Fatal("edit must refresh the timestamp")
	}
}

func TestEditRefreshRestartsWindow(t *testing.T) {
	created := time.Now()
	list := []Comment{New(author, "first", created)}

	if _, err := Edit(list, list[0].ID, author, "second", created.Add(4*time.Minute)); err != nil {
		t.Fatalf("first edit: %v", err)
	}

	// 8 minutes after creation but only 4 after the last edit.
	if _, err := Edit(list, list[0].ID, author, "third", created.Add(8*time.Minute)); err != nil {
		t.Fatalf("edit after refresh: %v", err)
	}

	if _, err := Edit(list, list[0].ID, author, "fourth", created.Add(14*time.Minute)); !errors.Is(err, ErrWindowExpired) {
		t.Fatalf("expected ErrWindowExpired, got %v", err)
	}
}

func TestEditRejectsNonAuthor(t *testing.T) {
	list := []Comment{New(author, "first", time.Now())}

	if _, err := Edit(list, list[0].ID, other, "hijack", time.Now()); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
	// Admins get no special edit rights.
	if _, err := Edit(list, list[0].ID, admin, "hijack", time.Now()); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor for admin, got %v", err)
	}
}

func TestEditValidation(t *testing.T) {
	list := []Comment{New(author, "first", time.Now())}

	if _, err := Edit(list, list[0].ID, author, "", time.Now()); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if _, err := Edit(list, "missing", author, "text", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePermissions(t *testing.T) {
	created := time.Now()

	fresh := func() []Comment { return []Comment{New(author, "first", created)} }

	// Author inside the window, boundary inclusive.
	list := fresh()
	got, err := Remove(list, list[0].ID, author, created.Add(EditWindow))
	if err != nil {
		t.Fatalf("author delete at window edge: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("comment not removed")
	}

	// Author outside the window.
	list = fresh()
	if _, err := Remove(list, list[0].ID, author, created.Add(EditWindow+time.Second)); !errors.Is(err, ErrWindowExpired) {
		t.Fatalf("expected ErrWindowExpired, got %v", err)
	}

	// Admin at any time.
	list = fresh()
	if _, err := Remove(list, list[0].ID, admin, created.Add(24*time.Hour)); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	// Unrelated member never.
	list = fresh()
	if _, err := Remove(list, list[0].ID, other, created); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
}

func TestAppendRegeneratesDuplicateID(t *testing.T) {
	now := time.Now()
	a := New(author, "a", now)
	b := New(other, "b", now)
	b.ID = a.ID

	list := Append(Append(nil, a), b)

	if len(list) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(list))
	}
	if list[0].ID == list[1].ID {
		t.Fatal("nested ids must be unique within the parent")
	}
}

func TestThreadedEditAndDelete(t *testing.T) {
	created := time.Now()
	list := []ThreadedComment{NewThreaded(author, "question", created)}
	id := list[0].ID

	if _, err := EditThreaded(list, id, other, "hijack", created); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}

	edited, err := EditThreaded(list, id, author, "better question", created.Add(time.Minute))
	if err != nil {
		t.Fatalf("threaded edit: %v", err)
	}
	if edited.Text != "better question" {
		t.Fatal("threaded edit did not apply")
	}

	if _, err := RemoveThreaded(list, id, author, created.Add(time.Minute+EditWindow+time.Second)); !errors.Is(err, ErrWindowExpired) {
		t.Fatalf("expected ErrWindowExpired, got %v", err)
	}

	got, err := RemoveThreaded(list, id, admin, created.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("admin threaded delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("threaded comment not removed")
	}
}

func TestRepliesAppendInArrivalOrder(t *testing.T) {
	now := time.Now()
	list := []ThreadedComment{NewThreaded(author, "question", now)}
	id := list[0].ID

	first := NewReply(admin, "answer one", now.Add(time.Minute))
	second := NewReply(admin, "answer two", now.Add(2*time.Minute))

	if _, ok := AppendReply(list, id, first); !ok {
		t.Fatal("append first reply")
	}
	if _, ok := AppendReply(list, id, second); !ok {
		t.Fatal("append second reply")
	}
	if _, ok := AppendReply(list, "missing", first); ok {
		t.Fatal("reply to missing comment must fail")
	}

	replies := list[0].Replies
	if len(replies) != 2 || replies[0].Text != "answer one" || replies[1].Text != "answer two" {
		t.Fatalf("replies out of order: %+v", replies)
	}
	if replies[0].AdminID != admin.ID {
		t.Fatal("reply must capture admin identity")
	}
}

func TestReplyNameFallback(t *testing.T) {
	r := NewReply(Actor{ID: 7, IsAdmin: true}, "x", time.Now())
	if r.AdminName != "Admin" {
		t.Fatalf("expected Admin fallback, got %q", r.AdminName)
	}
}

func TestDeleteThreadedRemovesReplies(t *testing.T) {
	now := time.Now()
	list := []ThreadedComment{NewThreaded(author, "question", now)}
	AppendReply(list, list[0].ID, NewReply(admin, "answer", now))

	got, err := RemoveThreaded(list, list[0].ID, admin, now)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatal("comment with replies must be fully removed")
	}
}
