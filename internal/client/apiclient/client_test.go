package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AuthFlow(t *testing.T) {
	ts := newVault(t).httpServer(t)
	c := New(ts.URL+"/", 5*time.Second)
	ctx := context.Background()

	reg, err := c.Register(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "注册成功", reg.Message)
	assert.Equal(t, "alice", reg.User.UserName)

	_, err = c.Register(ctx, "alice", "other")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Contains(t, err.Error(), "该用户名已被使用")

	_, err = c.Login(ctx, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	login, err := c.Login(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, err = c.Me(ctx)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	me, err := c.WithToken(login.Token).Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, me.ID)

	_, err = c.WithToken("garbage").Me(ctx)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
}

func TestClient_Entries(t *testing.T) {
	ts := newVault(t).httpServer(t)
	ctx := context.Background()

	login, err := New(ts.URL, 5*time.Second).Register(ctx, "bob", "pw")
	require.NoError(t, err)
	c := New(ts.URL, 5*time.Second).WithToken(login.Token)

	created, err := c.CreateEntry(ctx, EntryInput{
		Title:    ptr("mail"),
		UserName: ptr("bob@example.com"),
		Password: ptr("s3cret"),
		Tags:     &[]string{"work", "mail"},
	})
	require.NoError(t, err)
	assert.Equal(t, "******", created.Password)
	assert.Equal(t, []string{"work", "mail"}, created.Tags)

	_, err = c.CreateEntry(ctx, EntryInput{Title: ptr("no password")})
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))

	list, err := c.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "******", list[0].Password)

	got, err := c.GetEntry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got.Password)

	_, err = c.UpdateEntry(ctx, created.ID, EntryInput{Password: ptr("n3w"), Notes: ptr("rotated")})
	require.NoError(t, err)

	got, err = c.GetEntry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "n3w", got.Password)
	assert.Equal(t, "rotated", got.Notes)
	assert.Equal(t, "mail", got.Title, "untouched fields are kept")

	require.NoError(t, c.DeleteEntry(ctx, created.ID))
	_, err = c.GetEntry(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Equal(t, http.StatusNotFound, StatusOf(c.DeleteEntry(ctx, created.ID)))
}

func TestClient_GenerateAndHealth(t *testing.T) {
	ts := newVault(t).httpServer(t)
	ctx := context.Background()

	h, err := New(ts.URL, time.Second).Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)

	login, err := New(ts.URL, time.Second).Register(ctx, "gen", "pw")
	require.NoError(t, err)

	pw, err := New(ts.URL, time.Second).WithToken(login.Token).GeneratePassword(ctx, GenerateOptions{Length: 20, Numbers: true})
	require.NoError(t, err)
	assert.Len(t, pw, 20)
	assert.Regexp(t, `^[0-9]+$`, pw)
}

func TestClient_ErrorsWithoutMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL, time.Second).Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.Equal(t, "server returned 502", err.Error())
}

func TestClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url, time.Second).Health(context.Background())
	require.Error(t, err)
	assert.Zero(t, StatusOf(err))
}
