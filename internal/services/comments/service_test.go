package comments

import (
	"context"
	"errors"
	"testing"

	"github.com/kingsubin/soob/internal/domain/model"
	"github.com/kingsubin/soob/internal/domain/rules"
	"github.com/kingsubin/soob/internal/repo/postgres"
)

type fakeComments struct {
	nextID int64
	byID   map[int64]model.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{nextID: 1, byID: make(map[int64]model.Comment)}
}

func (f *fakeComments) Create(_ context.Context, postID, authorID int64, content string) (int64, error) {
	id := f.nextID
	f.nextID++
	f.byID[id] = model.Comment{ID: id, PostID: postID, AuthorID: authorID, Content: content}
	return id, nil
}

func (f *fakeComments) FindByID(_ context.Context, id int64) (model.Comment, error) {
	comment, ok := f.byID[id]
	if !ok {
		return model.Comment{}, postgres.ErrCommentNotFound
	}
	return comment, nil
}

func (f *fakeComments) ListByPost(_ context.Context, postID int64) ([]model.Comment, error) {
	var out []model.Comment
	for _, comment := range f.byID {
		if comment.PostID == postID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (f *fakeComments) Update(_ context.Context, id int64, content string) error {
	comment, ok := f.byID[id]
	if !ok {
		return postgres.ErrCommentNotFound
	}
	comment.Content = content
	f.byID[id] = comment
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return postgres.ErrCommentNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePosts struct {
	byID map[int64]model.Post
}

func (f *fakePosts) FindByID(_ context.Context, id int64) (model.Post, error) {
	post, ok := f.byID[id]
	if !ok {
		return model.Post{}, postgres.ErrPostNotFound
	}
	return post, nil
}

type fakeLedger struct {
	deltas map[int64]int
}

func (f *fakeLedger) Award(_ context.Context, accountID int64, delta int) error {
	if f.deltas == nil {
		f.deltas = make(map[int64]int)
	}
	f.deltas[accountID] += delta
	return nil
}

func newCommentFixture() (*Service, *fakeComments, *fakeLedger) {
	comments := newFakeComments()
	posts := &fakePosts{byID: map[int64]model.Post{10: {ID: 10, BoardID: 1, AuthorID: 1}}}
	ledger := &fakeLedger{}
	return NewService(comments, posts, ledger, nil), comments, ledger
}

func TestCreateAwardsCommentPoints(t *testing.T) {
	svc, _, ledger := newCommentFixture()

	comment, err := svc.Create(context.Background(), 10, 7, "nice post")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comment.Content != "nice post" {
		t.Fatalf("content = %q", comment.Content)
	}
	if got := ledger.deltas[7]; got != rules.CommentPoints {
		t.Fatalf("points = %d, want %d", got, rules.CommentPoints)
	}
}

func TestCreateOnUnknownPost(t *testing.T) {
	svc, _, _ := newCommentFixture()

	if _, err := svc.Create(context.Background(), 99, 7, "hello"); !errors.Is(err, postgres.ErrPostNotFound) {
		t.Fatalf("err = %v, want ErrPostNotFound", err)
	}
}

func TestCreateRejectsBlankContent(t *testing.T) {
	svc, _, _ := newCommentFixture()

	if _, err := svc.Create(context.Background(), 10, 7, "  "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}
}

func TestUpdateByNonAuthorFails(t *testing.T) {
	svc, _, _ := newCommentFixture()

	comment, err := svc.Create(context.Background(), 10, 7, "first")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(context.Background(), comment.ID, 8, "edited"); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("err = %v, want ErrNotAuthor", err)
	}
}

func TestDeleteDeductsCommentAndHeartPoints(t *testing.T) {
	svc, comments, ledger := newCommentFixture()

	comment, err := svc.Create(context.Background(), 10, 7, "first")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stored := comments.byID[comment.ID]
	stored.HeartCount = 2
	comments.byID[comment.ID] = stored

	if err := svc.Delete(context.Background(), comment.ID, 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	want := rules.CommentPoints - (rules.CommentPoints + 2*rules.CommentHeartPoints)
	if got := ledger.deltas[7]; got != want {
		t.Fatalf("points = %d, want %d", got, want)
	}
}
