// Package spap serves single page application assets out of an S3 bucket
// behind an API Gateway proxy integration.
//
// A request's path is resolved against the gateway resource template into an
// object name, the object is read from a bucket and prefix parsed once at
// startup, and the result is rendered as a gateway proxy response.
//
// # Key Components
//
//   - Location: bucket, prefix and partition parsed from an S3 ARN or s3:// URL
//   - ObjectStore: interface for fetching raw objects (S3, local filesystem)
//   - ObjectReader: reads an object name under the bound prefix into a Content
//   - Handler: object name resolution, single-level 404 rewrite, response rendering
//
// # Object Names
//
// With the resource template "/spa/{proxy+}":
//
//	/spa/css/app.css -> css/app.css
//	/spa/            -> index.html
//	/spa/docs/       -> docs/index.html
//
// # Responses
//
// A found object renders as 200 with Cache-Control, Content-Type and
// X-SPAP-Origin-Arn headers when known. Image, video and audio content is
// base64 encoded. A miss retries the configured rewrite target once, then
// renders a 404 HTML page naming the requested path.
//
// # Example Usage
//
//	loc, err := spap.ParseLocation("s3://my-bucket/site")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reader := spap.NewObjectReader(store, loc)
//	handler, err := spap.NewHandler(reader, spap.HandlerConfig{Rewrite404: "index.html"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := handler.Serve(ctx, spap.Request{Resource: "/{proxy+}", Path: "/about"})
//
// See the s3store and filesystem packages for ObjectStore implementations and
// the apigateway and http packages for runtime adapters.
package spap
