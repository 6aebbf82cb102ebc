package writefreely

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// PostAppearance describes the font family a post is rendered with.
type PostAppearance string

// Post appearance values accepted by the API.
const (
	AppearanceSans  PostAppearance = "sans"
	AppearanceSerif PostAppearance = "serif"
	AppearanceWrap  PostAppearance = "wrap"
	AppearanceMono  PostAppearance = "mono"
	AppearanceCode  PostAppearance = "code"
)

// UnmarshalJSON normalizes the legacy "norm" wire value to serif.
func (a *PostAppearance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "norm" {
		s = "serif"
	}
	*a = PostAppearance(s)
	return nil
}

// Post describes a single post. The client that fetched it is attached once,
// immediately after decoding; entity operations fail with ErrUsage without it.
type Post struct {
	client *Client

	ID         string         `json:"id"`
	Slug       string         `json:"slug,omitempty"`
	Appearance PostAppearance `json:"appearance,omitempty"`
	Language   string         `json:"language,omitempty"`
	RTL        bool           `json:"rtl"`
	Created    *time.Time     `json:"created,omitempty"`
	Title      string         `json:"title,omitempty"`
	Body       string         `json:"body"`
	Tags       []string       `json:"tags"`
	Views      int64          `json:"views,omitempty"`
	Collection *Collection    `json:"collection,omitempty"`

	// Token is the per-post edit token, present when the post is not owned
	// by an authenticated account. It grants anonymous edit capability.
	Token string `json:"token,omitempty"`
}

// attach stores the client back-reference. Called exactly once, right after
// deserialization.
func (p *Post) attach(c *Client) *Post {
	p.client = c
	return p
}

// PostUpdate describes a pending update to a post. Zero-valued optional
// fields are omitted from the request.
type PostUpdate struct {
	client *Client
	id     string

	// Token is the post edit token, required when the post is not owned.
	Token string `json:"token,omitempty"`

	Body  string         `json:"body"`
	Title string         `json:"title,omitempty"`
	Font  PostAppearance `json:"font,omitempty"`
	Lang  string         `json:"lang,omitempty"`
	RTL   bool           `json:"rtl,omitempty"`
}

// Send dispatches the update and returns the refreshed post with the client
// re-attached.
func (u *PostUpdate) Send(ctx context.Context) (*Post, error) {
	if u.client == nil {
		return nil, ErrUsage
	}

	post, err := apiPost[Post](ctx, u.client, "/posts/"+u.id, u)
	if err != nil {
		return nil, err
	}
	return post.attach(u.client), nil
}

// BuildUpdate returns a PostUpdate bound to this post and its client, with
// the given replacement body. Remaining fields may be set before Send.
func (p *Post) BuildUpdate(body string) *PostUpdate {
	return &PostUpdate{
		client: p.client,
		id:     p.ID,
		Body:   body,
	}
}

// Update dispatches an existing PostUpdate against this post.
func (p *Post) Update(ctx context.Context, update *PostUpdate) (*Post, error) {
	if p.client == nil {
		return nil, ErrUsage
	}

	post, err := apiPost[Post](ctx, p.client, "/posts/"+p.ID, update)
	if err != nil {
		return nil, err
	}
	return post.attach(p.client), nil
}

// Delete removes this post. When the client is unauthenticated and the post
// carries an edit token, the token is sent as a query parameter instead of an
// auth header, supporting link-shared anonymous deletion.
func (p *Post) Delete(ctx context.Context) error {
	if p.client == nil {
		return ErrUsage
	}

	var query url.Values
	if !p.client.IsAuthenticated() && p.Token != "" {
		query = url.Values{"token": {p.Token}}
	}

	return p.client.apiDelete(ctx, "/posts/"+p.ID, query)
}

// MoveTo moves this post into the collection with the given alias. The
// collection is resolved first, then a single-item collect request is issued;
// there is no rollback if the move fails after a successful resolve.
func (p *Post) MoveTo(ctx context.Context, alias string) (*MoveResult, error) {
	if p.client == nil {
		return nil, ErrUsage
	}

	coll, err := p.client.Collections().Get(ctx, alias)
	if err != nil {
		return nil, err
	}

	move := MovePost{ID: p.ID}
	if !p.client.IsAuthenticated() {
		move.Token = p.Token
	}

	results, err := coll.TakePosts(ctx, []MovePost{move})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrUnknown
	}

	return &results[0], nil
}

// PostCreation describes a post to be published. Create a draft through
// PostHandler.Create, fill in the optional fields, then call Publish.
type PostCreation struct {
	client     *Client
	collection string

	Body    string         `json:"body"`
	Title   string         `json:"title,omitempty"`
	Font    PostAppearance `json:"font,omitempty"`
	Lang    string         `json:"lang,omitempty"`
	RTL     *bool          `json:"rtl,omitempty"`
	Created *time.Time     `json:"created,omitempty"`
}

// InCollection targets the draft at a collection; Publish will use the
// collection's post-creation endpoint.
func (d *PostCreation) InCollection(alias string) *PostCreation {
	d.collection = alias
	return d
}

// Publish sends the draft to the server and returns the created post.
func (d *PostCreation) Publish(ctx context.Context) (*Post, error) {
	if d.client == nil {
		return nil, ErrUsage
	}

	endpoint := "/posts"
	if d.collection != "" {
		endpoint = "/collections/" + d.collection + "/post"
	}

	post, err := apiPost[Post](ctx, d.client, endpoint, d)
	if err != nil {
		return nil, err
	}
	return post.attach(d.client), nil
}
