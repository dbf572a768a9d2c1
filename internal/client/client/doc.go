// Package client talks to the property backend over HTTP.
//
// HTTPClient is the transport: it serialises request bodies, attaches the
// session bearer token, enforces a request timeout, unwraps the
// {success, data, error} envelope and classifies failures into a
// *RequestError. Resource[T, I] builds the per-kind list/get/create/
// update/delete contract on top of it, and API groups one Resource per
// entity kind together with the auth, upload-credential and image-delete
// endpoints.
//
// Nothing in this package caches; see package query for that.
//
// The package also bootstraps the local session database (InitDatabase,
// RunMigrations).
package client
