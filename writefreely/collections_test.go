package writefreely

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionCreateValidation(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write(envelopeJSON(t, map[string]any{"alias": "notes", "title": "Notes"}))
	}))
	defer server.Close()

	ctx := context.Background()

	t.Run("both alias and title empty", func(t *testing.T) {
		client, err := NewClient(server.URL, zerolog.Nop(), WithToken("abc"))
		require.NoError(t, err)

		_, err = client.Collections().Create(ctx, "", "")
		assert.ErrorIs(t, err, ErrUsage)
		assert.Zero(t, requests)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		client, err := NewClient(server.URL, zerolog.Nop())
		require.NoError(t, err)

		_, err = client.Collections().Create(ctx, "notes", "")
		assert.ErrorIs(t, err, ErrLoggedOut)
		assert.Zero(t, requests)
	})

	t.Run("valid", func(t *testing.T) {
		client, err := NewClient(server.URL, zerolog.Nop(), WithToken("abc"))
		require.NoError(t, err)

		coll, err := client.Collections().Create(ctx, "notes", "Notes")
		require.NoError(t, err)
		assert.Equal(t, 1, requests)
		assert.Equal(t, "notes", coll.Alias)
		assert.NotNil(t, coll.client)
	})
}

func TestCollectionGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/collections/notes", r.URL.Path)
		w.Write(envelopeJSON(t, map[string]any{
			"alias":       "notes",
			"title":       "Notes",
			"public":      true,
			"total_posts": 3,
		}))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)

	coll, err := client.Collections().Get(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, "Notes", coll.Title)
	assert.True(t, coll.Public)
	assert.EqualValues(t, 3, coll.TotalPosts)
}

func TestCollectionPosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/collections/notes/posts":
			w.Write(envelopeJSON(t, []map[string]any{
				{"id": "1", "body": "first"},
				{"id": "2", "body": "second"},
			}))
		case "/api/collections/notes/posts/hello-world":
			w.Write(envelopeJSON(t, map[string]any{"id": "3", "slug": "hello-world", "body": "hi"}))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)
	coll := (&Collection{Alias: "notes"}).attach(client)

	t.Run("all posts", func(t *testing.T) {
		posts, err := coll.Posts(context.Background())
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "1", posts[0].ID)
		assert.Equal(t, "2", posts[1].ID)
		for i := range posts {
			assert.NotNil(t, posts[i].client)
		}
	})

	t.Run("single post by slug", func(t *testing.T) {
		post, err := coll.Post(context.Background(), "hello-world")
		require.NoError(t, err)
		assert.Equal(t, "hello-world", post.Slug)
		assert.NotNil(t, post.client)
	})
}

func TestMoveResultDecode(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		succeeded bool
		code      int
	}{
		{
			name:      "success shape",
			raw:       `{"code":200,"post":{"id":"42","body":"hi"}}`,
			succeeded: true,
			code:      200,
		},
		{
			name:      "error shape",
			raw:       `{"code":404,"error_msg":"Post not found."}`,
			succeeded: false,
			code:      404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result MoveResult
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &result))
			assert.Equal(t, tt.succeeded, result.Succeeded())
			assert.Equal(t, tt.code, result.Code)
			if tt.succeeded {
				assert.Equal(t, "42", result.Post.ID)
			} else {
				assert.Equal(t, "Post not found.", result.ErrorMsg)
			}
		})
	}
}

func TestPinResultDecode(t *testing.T) {
	t.Run("success shape", func(t *testing.T) {
		var result PinResult
		require.NoError(t, json.Unmarshal([]byte(`{"code":200,"id":"42"}`), &result))
		assert.True(t, result.Succeeded())
		assert.Equal(t, "42", result.ID)
	})

	t.Run("error shape", func(t *testing.T) {
		var result PinResult
		require.NoError(t, json.Unmarshal([]byte(`{"code":404,"error_msg":"Post not found."}`), &result))
		assert.False(t, result.Succeeded())
		assert.Equal(t, "Post not found.", result.ErrorMsg)
	})
}

func TestCollectionTakePosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/collections/notes/collect", r.URL.Path)

		var moves []MovePost
		require.NoError(t, json.NewDecoder(r.Body).Decode(&moves))
		require.Len(t, moves, 3)

		// parallel, positional results: second item fails
		w.Write(envelopeJSON(t, []map[string]any{
			{"code": 200, "post": map[string]any{"id": moves[0].ID, "body": "a"}},
			{"code": 404, "error_msg": "Post not found."},
			{"code": 200, "post": map[string]any{"id": moves[2].ID, "body": "c"}},
		}))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop(), WithToken("abc"))
	require.NoError(t, err)
	coll := (&Collection{Alias: "notes"}).attach(client)

	results, err := coll.TakePosts(context.Background(), []MovePost{
		{ID: "p1"}, {ID: "missing"}, {ID: "p3"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Succeeded())
	assert.Equal(t, "p1", results[0].Post.ID)
	assert.NotNil(t, results[0].Post.client)

	assert.False(t, results[1].Succeeded())
	assert.Equal(t, 404, results[1].Code)

	assert.True(t, results[2].Succeeded())
	assert.Equal(t, "p3", results[2].Post.ID)
	assert.NotNil(t, results[2].Post.client)
}

func TestCollectionTakePostsShortResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelopeJSON(t, []map[string]any{
			{"code": 200, "post": map[string]any{"id": "p1", "body": "a"}},
		}))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop(), WithToken("abc"))
	require.NoError(t, err)
	coll := (&Collection{Alias: "notes"}).attach(client)

	_, err = coll.TakePosts(context.Background(), []MovePost{{ID: "p1"}, {ID: "p2"}})
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestCollectionPinUnpin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pins []PinPost
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pins))

		switch r.URL.Path {
		case "/api/collections/notes/pin":
			require.Len(t, pins, 1)
			require.NotNil(t, pins[0].Position)
			assert.Equal(t, 1, *pins[0].Position)
		case "/api/collections/notes/unpin":
			require.Len(t, pins, 2)
			assert.Nil(t, pins[0].Position)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}

		results := make([]map[string]any, 0, len(pins))
		for _, pin := range pins {
			results = append(results, map[string]any{"code": 200, "id": pin.ID})
		}
		w.Write(envelopeJSON(t, results))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop(), WithToken("abc"))
	require.NoError(t, err)
	coll := (&Collection{Alias: "notes"}).attach(client)
	ctx := context.Background()

	t.Run("pin at position", func(t *testing.T) {
		position := 1
		results, err := coll.PinPosts(ctx, []PinPost{{ID: "p1", Position: &position}})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.True(t, results[0].Succeeded())
		assert.Equal(t, "p1", results[0].ID)
	})

	t.Run("unpin by id", func(t *testing.T) {
		results, err := coll.UnpinPosts(ctx, []string{"p1", "p2"})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "p1", results[0].ID)
		assert.Equal(t, "p2", results[1].ID)
	})
}

func TestCollectionUpdateDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/collections/notes", r.URL.Path)

		switch r.Method {
		case http.MethodPost:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "New Title", body["title"])
			assert.EqualValues(t, 2, body["visibility"])
			w.Write(envelopeJSON(t, map[string]any{"alias": "notes", "title": "New Title"}))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, zerolog.Nop(), WithToken("abc"))
	require.NoError(t, err)
	coll := (&Collection{Alias: "notes", Title: "Notes"}).attach(client)
	ctx := context.Background()

	t.Run("update", func(t *testing.T) {
		update := coll.BuildUpdate()
		update.Title = "New Title"
		visibility := VisibilityPrivate
		update.Visibility = &visibility

		updated, err := update.Send(ctx)
		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)
		assert.NotNil(t, updated.client)
	})

	t.Run("delete", func(t *testing.T) {
		assert.NoError(t, coll.Delete(ctx))
	})

	t.Run("detached entity", func(t *testing.T) {
		detached := &Collection{Alias: "notes"}
		assert.ErrorIs(t, detached.Delete(ctx), ErrUsage)
		_, err := detached.Posts(ctx)
		assert.ErrorIs(t, err, ErrUsage)
		_, err = detached.TakePosts(ctx, nil)
		assert.ErrorIs(t, err, ErrUsage)
	})
}
