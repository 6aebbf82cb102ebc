package writefreely

import (
	"context"
	"encoding/json"
)

// CollectionVisibility describes a collection's visibility level. Serialized
// as a JSON number on the wire.
type CollectionVisibility int

// Collection visibility levels.
const (
	VisibilityUnlisted CollectionVisibility = 0
	VisibilityPublic   CollectionVisibility = 1
	VisibilityPrivate  CollectionVisibility = 2
	VisibilityPassword CollectionVisibility = 4
)

// Collection describes a single collection (blog). The client that fetched it
// is attached once after decoding; entity operations fail with ErrUsage
// without it.
type Collection struct {
	client *Client

	Alias            string `json:"alias"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	StyleSheet       string `json:"style_sheet,omitempty"`
	Public           bool   `json:"public"`
	Views            int64  `json:"views,omitempty"`
	VerificationLink string `json:"verification_link,omitempty"`
	TotalPosts       int64  `json:"total_posts,omitempty"`
}

func (c *Collection) attach(client *Client) *Collection {
	c.client = client
	return c
}

// CollectionUpdate describes a pending update to a collection.
type CollectionUpdate struct {
	client *Client
	alias  string

	Title       string                `json:"title,omitempty"`
	Description string                `json:"description,omitempty"`
	StyleSheet  string                `json:"style_sheet,omitempty"`
	Script      string                `json:"script,omitempty"`
	Visibility  *CollectionVisibility `json:"visibility,omitempty"`
	Pass        string                `json:"pass,omitempty"`
	MathJax     bool                  `json:"mathjax,omitempty"`
}

// Send dispatches the update and returns the refreshed collection with the
// client re-attached.
func (u *CollectionUpdate) Send(ctx context.Context) (*Collection, error) {
	if u.client == nil || u.alias == "" {
		return nil, ErrUsage
	}

	coll, err := apiPost[Collection](ctx, u.client, "/collections/"+u.alias, u)
	if err != nil {
		return nil, err
	}
	return coll.attach(u.client), nil
}

// BuildUpdate returns a CollectionUpdate bound to this collection and its
// client. Fields may be set before Send.
func (c *Collection) BuildUpdate() *CollectionUpdate {
	return &CollectionUpdate{
		client: c.client,
		alias:  c.Alias,
	}
}

// Update dispatches an existing CollectionUpdate against this collection.
func (c *Collection) Update(ctx context.Context, update *CollectionUpdate) (*Collection, error) {
	if c.client == nil {
		return nil, ErrUsage
	}

	coll, err := apiPost[Collection](ctx, c.client, "/collections/"+c.Alias, update)
	if err != nil {
		return nil, err
	}
	return coll.attach(c.client), nil
}

// Delete removes this collection.
func (c *Collection) Delete(ctx context.Context) error {
	if c.client == nil {
		return ErrUsage
	}
	return c.client.apiDelete(ctx, "/collections/"+c.Alias, nil)
}

// Posts returns all posts belonging to this collection.
func (c *Collection) Posts(ctx context.Context) ([]Post, error) {
	if c.client == nil {
		return nil, ErrUsage
	}

	posts, err := apiGet[[]Post](ctx, c.client, "/collections/"+c.Alias+"/posts")
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].attach(c.client)
	}
	return posts, nil
}

// Post returns a single post in this collection by slug.
func (c *Collection) Post(ctx context.Context, slug string) (*Post, error) {
	if c.client == nil {
		return nil, ErrUsage
	}

	post, err := apiGet[Post](ctx, c.client, "/collections/"+c.Alias+"/posts/"+slug)
	if err != nil {
		return nil, err
	}
	return post.attach(c.client), nil
}

// MovePost identifies a post to move into a collection. Token is required
// when the post is not owned by the authenticated account.
type MovePost struct {
	ID    string `json:"id"`
	Token string `json:"token,omitempty"`
}

// MoveResult reports the per-post outcome of a collect request.
//
// The wire format carries no discriminator field: decoding tries the success
// shape {code, post} first and falls back to the error shape
// {code, error_msg}. A payload satisfying both shapes cannot be told apart;
// the API gives no hard guarantee against this.
type MoveResult struct {
	Code     int
	Post     *Post
	ErrorMsg string
}

// Succeeded reports whether the post was moved.
func (r MoveResult) Succeeded() bool {
	return r.Post != nil
}

// UnmarshalJSON decodes the untagged wire union.
func (r *MoveResult) UnmarshalJSON(data []byte) error {
	var success struct {
		Code int   `json:"code"`
		Post *Post `json:"post"`
	}
	if err := json.Unmarshal(data, &success); err == nil && success.Post != nil {
		r.Code = success.Code
		r.Post = success.Post
		return nil
	}

	var failure struct {
		Code     int    `json:"code"`
		ErrorMsg string `json:"error_msg"`
	}
	if err := json.Unmarshal(data, &failure); err != nil {
		return err
	}
	r.Code = failure.Code
	r.ErrorMsg = failure.ErrorMsg
	return nil
}

// PinPost identifies a post to pin to a collection, optionally at a given
// position. Position must not be set when unpinning.
type PinPost struct {
	ID       string `json:"id"`
	Position *int   `json:"position,omitempty"`
}

// PinResult reports the per-post outcome of a pin or unpin request. Decoded
// like MoveResult: success shape {code, id} first, then {code, error_msg}.
type PinResult struct {
	Code     int
	ID       string
	ErrorMsg string
}

// Succeeded reports whether the pin state changed.
func (r PinResult) Succeeded() bool {
	return r.ID != ""
}

// UnmarshalJSON decodes the untagged wire union.
func (r *PinResult) UnmarshalJSON(data []byte) error {
	var success struct {
		Code int    `json:"code"`
		ID   string `json:"id"`
	}
	if err := json.Unmarshal(data, &success); err == nil && success.ID != "" {
		r.Code = success.Code
		r.ID = success.ID
		return nil
	}

	var failure struct {
		Code     int    `json:"code"`
		ErrorMsg string `json:"error_msg"`
	}
	if err := json.Unmarshal(data, &failure); err != nil {
		return err
	}
	r.Code = failure.Code
	r.ErrorMsg = failure.ErrorMsg
	return nil
}

// TakePosts moves the given posts into this collection. Results are
// positional: the response mirrors the request list in order and length, and
// a shorter response yields ErrUnknown. Successful payloads get the client
// re-attached.
func (c *Collection) TakePosts(ctx context.Context, posts []MovePost) ([]MoveResult, error) {
	if c.client == nil {
		return nil, ErrUsage
	}

	results, err := apiPost[[]MoveResult](ctx, c.client, "/collections/"+c.Alias+"/collect", posts)
	if err != nil {
		return nil, err
	}
	if len(results) < len(posts) {
		return nil, ErrUnknown
	}

	for i := range results {
		if results[i].Post != nil {
			results[i].Post.attach(c.client)
		}
	}
	return results, nil
}

// PinPosts pins the given posts to this collection. Results are positional,
// as in TakePosts.
func (c *Collection) PinPosts(ctx context.Context, posts []PinPost) ([]PinResult, error) {
	if c.client == nil {
		return nil, ErrUsage
	}

	results, err := apiPost[[]PinResult](ctx, c.client, "/collections/"+c.Alias+"/pin", posts)
	if err != nil {
		return nil, err
	}
	if len(results) < len(posts) {
		return nil, ErrUnknown
	}
	return results, nil
}

// UnpinPosts unpins the posts with the given IDs from this collection.
func (c *Collection) UnpinPosts(ctx context.Context, ids []string) ([]PinResult, error) {
	if c.client == nil {
		return nil, ErrUsage
	}

	posts := make([]PinPost, 0, len(ids))
	for _, id := range ids {
		posts = append(posts, PinPost{ID: id})
	}

	results, err := apiPost[[]PinResult](ctx, c.client, "/collections/"+c.Alias+"/unpin", posts)
	if err != nil {
		return nil, err
	}
	if len(results) < len(posts) {
		return nil, ErrUnknown
	}
	return results, nil
}
