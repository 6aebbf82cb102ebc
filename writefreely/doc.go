// Package writefreely provides a typed client for WriteFreely and
// Write.as-compatible blogging APIs.
//
// The Client is an immutable session value holding the instance base URL and
// an optional access token. Authenticate and Logout return a new Client
// instead of mutating the receiver, so entities fetched earlier keep working
// against the session that produced them.
//
// # Features
//
//   - Token and username/password authentication
//   - Post creation, retrieval, update, deletion, and collection moves
//   - Collection management including batch collect, pin, and unpin
//   - Anonymous edit capability via per-post access tokens
//   - Typed errors for request, transport, parse, and usage failures
//
// # Usage
//
//	client, err := writefreely.NewClient("https://write.example.com", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err = client.Authenticate(ctx, writefreely.LoginAuth{
//	    Username: "matt",
//	    Password: "hunter2",
//	})
//
//	post, err := client.Posts().Get(ctx, "rf3t35fkax0aw")
//	if err == nil {
//	    result, _ := post.MoveTo(ctx, "myblog")
//	    if result.Succeeded() {
//	        // post now lives in myblog
//	    }
//	}
package writefreely
