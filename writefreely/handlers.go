package writefreely

import "context"

// UserHandler wraps user-scoped methods for the authenticated account.
type UserHandler struct {
	client  *Client
	current *User
}

// newUserHandler prefetches the authenticated user's info. A failed prefetch
// is logged and swallowed so the handler always constructs; Info returns nil
// in that case.
func newUserHandler(ctx context.Context, client *Client) *UserHandler {
	h := &UserHandler{client: client}

	user, err := apiGet[User](ctx, client, "/me")
	if err != nil {
		client.logger.Warn().Err(err).Msg("Failed to fetch current user info")
		return h
	}
	h.current = &user

	return h
}

// Info returns the cached current user, or nil if the prefetch failed.
func (h *UserHandler) Info() *User {
	return h.current
}

// Posts returns all posts belonging to the authenticated user.
func (h *UserHandler) Posts(ctx context.Context) ([]Post, error) {
	if !h.client.IsAuthenticated() {
		return nil, ErrLoggedOut
	}

	posts, err := apiGet[[]Post](ctx, h.client, "/me/posts")
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].attach(h.client)
	}
	return posts, nil
}

// Post returns the specified post.
func (h *UserHandler) Post(ctx context.Context, id string) (*Post, error) {
	if !h.client.IsAuthenticated() {
		return nil, ErrLoggedOut
	}

	post, err := apiGet[Post](ctx, h.client, "/posts/"+id)
	if err != nil {
		return nil, err
	}
	return post.attach(h.client), nil
}

// Collections returns all collections belonging to the authenticated user.
func (h *UserHandler) Collections(ctx context.Context) ([]Collection, error) {
	if !h.client.IsAuthenticated() {
		return nil, ErrLoggedOut
	}

	colls, err := apiGet[[]Collection](ctx, h.client, "/me/collections")
	if err != nil {
		return nil, err
	}
	for i := range colls {
		colls[i].attach(h.client)
	}
	return colls, nil
}

// Collection returns the specified collection.
func (h *UserHandler) Collection(ctx context.Context, alias string) (*Collection, error) {
	if !h.client.IsAuthenticated() {
		return nil, ErrLoggedOut
	}

	coll, err := apiGet[Collection](ctx, h.client, "/collections/"+alias)
	if err != nil {
		return nil, err
	}
	return coll.attach(h.client), nil
}

// PostHandler wraps post methods that do not reference an already-fetched
// entity.
type PostHandler struct {
	client *Client
}

// Get retrieves a post by ID.
func (h *PostHandler) Get(ctx context.Context, id string) (*Post, error) {
	post, err := apiGet[Post](ctx, h.client, "/posts/"+id)
	if err != nil {
		return nil, err
	}
	return post.attach(h.client), nil
}

// Ref returns a lightweight handle for a known post ID without fetching it.
// An edit token may be supplied for anonymous operations; pass "" otherwise.
func (h *PostHandler) Ref(id, token string) *Post {
	return (&Post{ID: id, Token: token}).attach(h.client)
}

// Create returns a draft bound to the handler's client with the given body.
// Optional fields may be filled in before Publish.
func (h *PostHandler) Create(body string) *PostCreation {
	return &PostCreation{
		client: h.client,
		Body:   body,
	}
}

// Publish sends a previously built draft to the server. Drafts targeting a
// collection are created through that collection's post endpoint.
func (h *PostHandler) Publish(ctx context.Context, draft *PostCreation) (*Post, error) {
	if draft == nil {
		return nil, ErrUsage
	}

	endpoint := "/posts"
	if draft.collection != "" {
		endpoint = "/collections/" + draft.collection + "/post"
	}

	post, err := apiPost[Post](ctx, h.client, endpoint, draft)
	if err != nil {
		return nil, err
	}
	return post.attach(h.client), nil
}

// collectionParams is the request body for collection creation.
type collectionParams struct {
	Alias string `json:"alias,omitempty"`
	Title string `json:"title,omitempty"`
}

// CollectionHandler wraps collection methods that do not reference an
// already-fetched entity.
type CollectionHandler struct {
	client *Client
}

// Create creates a new collection. At least one of alias and title must be
// given (ErrUsage otherwise) and the client must be authenticated
// (ErrLoggedOut otherwise); both checks happen before any network call.
func (h *CollectionHandler) Create(ctx context.Context, alias, title string) (*Collection, error) {
	if alias == "" && title == "" {
		return nil, ErrUsage
	}
	if !h.client.IsAuthenticated() {
		return nil, ErrLoggedOut
	}

	coll, err := apiPost[Collection](ctx, h.client, "/collections", collectionParams{
		Alias: alias,
		Title: title,
	})
	if err != nil {
		return nil, err
	}
	return coll.attach(h.client), nil
}

// Get retrieves a collection by alias.
func (h *CollectionHandler) Get(ctx context.Context, alias string) (*Collection, error) {
	coll, err := apiGet[Collection](ctx, h.client, "/collections/"+alias)
	if err != nil {
		return nil, err
	}
	return coll.attach(h.client), nil
}
