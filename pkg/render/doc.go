// Package render turns diagram source into a URL on a PlantUML-compatible
// rendering server.
//
// # Overview
//
// A [Renderer] validates the source, encodes it with [plantuml.Encoder],
// and joins the token onto the server URL:
//
//	{BaseURL}/{Format}/~1{token}
//
// The "~1" prefix tells the server the token is deflate-compressed text in
// the PlantUML alphabet. The returned [Result] carries the URL, the raw
// token and diagnostic metadata (timestamp and the original source).
//
//	r, err := render.New(render.Options{})
//	res, err := r.Render(ctx, "@startuml\nAlice -> Bob\n@enduml")
//	fmt.Println(res.URL)
//
// # Caching
//
// Tokens are cached by source hash and encoder configuration through a
// [cache.Cache]. Encoding is cheap, so the cache mainly helps servers that
// see the same diagrams repeatedly; pass nil to disable it.
//
// # Fetching
//
// [Renderer.Fetch] downloads the rendered image once. Failures of the remote
// service are returned as coded errors and never retried.
//
// [plantuml.Encoder]: github.com/matzehuels/umlpad/pkg/plantuml#Encoder
// [cache.Cache]: github.com/matzehuels/umlpad/pkg/cache#Cache
package render
